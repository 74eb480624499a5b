package buildconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadVariants(t *testing.T) []*Config {
	t.Helper()
	configs := make([]*Config, 0, len(variantFiles))
	for _, path := range variantFiles {
		cfg, err := Load(path)
		require.NoError(t, err)
		configs = append(configs, cfg)
	}
	return configs
}

func TestCompareVariants_KnownVariantsAgree(t *testing.T) {
	configs := loadVariants(t)
	assert.Empty(t, CompareVariants(configs))

	scopes := ContentScopes(configs)
	require.Len(t, scopes, 3)
	assert.Equal(t, []string{"templates/**/*.html"}, scopes[0].Patterns)
	assert.Len(t, scopes[2].Patterns, 3)
	assert.Equal(t, variantFiles[1]+": templates/*.html, templates/partials/*.html", scopes[1].String())
}

func TestCompareVariants_FlagsDivergence(t *testing.T) {
	configs := loadVariants(t)
	configs[1].Input = "tailwind/base.css"
	configs[2].Output = "public/app.css"
	configs[2].Theme.Extend = map[string]any{"colors": map[string]any{"brand": "#123"}}
	configs[2].Plugins = []Plugin{{ID: "@tailwindcss/forms"}}

	issues := CompareVariants(configs)
	require.Len(t, issues, 4)

	assert.Equal(t, RuleVariantIODivergence, issues[0].Rule)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Equal(t, FieldInput, issues[0].Field)
	assert.Equal(t, variantFiles[1], issues[0].Pos.Filename)
	assert.Contains(t, issues[0].Text, `"tailwind/base.css" differs from "base.css"`)

	assert.Equal(t, RuleVariantIODivergence, issues[1].Rule)
	assert.Equal(t, FieldOutput, issues[1].Field)

	assert.Equal(t, RuleVariantTheme, issues[2].Rule)
	assert.Equal(t, SeverityWarning, issues[2].Severity)
	assert.NotEmpty(t, issues[2].Detail)

	assert.Equal(t, RuleVariantPlugins, issues[3].Rule)
	assert.Contains(t, issues[3].Text, "@tailwindcss/forms")
}

func TestCompareVariants_EquivalentPaths(t *testing.T) {
	a := validConfig()
	b := validConfig()
	b.Input = "./base.css"
	b.Content = []string{"other/**"}

	assert.Empty(t, CompareVariants([]*Config{a, b}))
	assert.Nil(t, CompareVariants([]*Config{a}))
}
