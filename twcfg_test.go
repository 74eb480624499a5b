package twcfg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicAPI(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"tailwind/tailwind.config.js": `module.exports = {
  content: ['templates/**/*.html'],
  input: 'tailwind/base.css',
  output: 'static/css/styles.css',
  theme: { extend: { colors: { brand: '#0f766e' } } },
  plugins: [],
}`,
		"tailwind/base.css":    "@tailwind base;\n@tailwind utilities;\n",
		"templates/index.html": "<main></main>",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	configPath := filepath.Join(root, "tailwind", "tailwind.config.js")
	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Empty(t, Validate(cfg, Options{Root: root, CheckFiles: true}))

	result, err := Check(context.Background(), []string{configPath}, Options{Root: root, CheckFiles: true})
	require.NoError(t, err)
	assert.Empty(t, result.Issues)
	assert.Empty(t, CompareVariants(result.Configs))

	found, _, err := ResolveContent(cfg, root, ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"templates/index.html"}, found)

	tokens := MergeTheme(DefaultTokens(), cfg.Theme)
	colors := tokens["colors"].(map[string]any)
	assert.Equal(t, "#0f766e", colors["brand"])
	assert.Equal(t, "#000", colors["black"])
}
