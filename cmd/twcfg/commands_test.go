package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBuildConfig = `module.exports = {
  content: ['templates/**/*.html'],
  input: 'base.css',
  output: 'static/css/styles.css',
  theme: { extend: { colors: { brand: '#0f766e' } } },
  plugins: [],
}
`

// setupProject writes a project into a fresh working directory.
func setupProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	t.Chdir(dir)
	return dir
}

func validProject() map[string]string {
	return map[string]string{
		"tailwind.config.js":        validBuildConfig,
		"base.css":                  "@tailwind base;\n@tailwind components;\n@tailwind utilities;\n",
		"templates/index.html":      "<main></main>",
		"templates/partials/a.html": "<nav></nav>",
	}
}

// resetFlags restores every flag to its default so Execute calls don't leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetKoanf()
	resetFlags(rootCmd)
	t.Setenv("FORCE_COLOR", "")
	t.Setenv("GITHUB_ACTIONS", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	if args == nil {
		// cobra falls back to os.Args when given nil.
		args = []string{}
	}
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCheckCommand(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		args     []string
		wantErr  bool
		contains []string
	}{
		{
			name:     "valid config",
			files:    validProject(),
			args:     []string{"check"},
			contains: []string{"1 config checked, no issues"},
		},
		{
			name:     "root command runs check",
			files:    validProject(),
			args:     nil,
			contains: []string{"1 config checked, no issues"},
		},
		{
			name: "missing input fails",
			files: map[string]string{
				"tailwind.config.js":   validBuildConfig,
				"templates/index.html": "<main></main>",
			},
			args:     []string{"check"},
			wantErr:  true,
			contains: []string{"(input-missing)"},
		},
		{
			name: "missing input passes without file checks",
			files: map[string]string{
				"tailwind.config.js":   validBuildConfig,
				"templates/index.html": "<main></main>",
			},
			args:     []string{"check", "--check-files=false"},
			contains: []string{"no issues"},
		},
		{
			name: "warning fails only in strict mode",
			files: map[string]string{
				"tailwind.config.js": strings.Replace(validBuildConfig, "plugins: [],", "plugins: [],\n  darkMod: 'class',", 1),
				"base.css":           "@tailwind utilities;\n",
				"templates/a.html":   "<p></p>",
			},
			args:     []string{"check", "--strict"},
			wantErr:  true,
			contains: []string{"warning:", "(unknown-field)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupProject(t, tt.files)
			out, err := execute(t, tt.args...)
			if tt.wantErr {
				require.ErrorIs(t, err, errIssuesFound)
			} else {
				require.NoError(t, err)
			}
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestCheckCommand_Variants(t *testing.T) {
	files := validProject()
	files["tailwind/split.config.js"] = strings.Replace(validBuildConfig,
		"content: ['templates/**/*.html'],",
		"content: ['templates/*.html', 'templates/partials/*.html'],", 1)
	files["tailwind/moved.config.js"] = strings.Replace(validBuildConfig, "static/css/styles.css", "dist/styles.css", 1)
	setupProject(t, files)

	out, err := execute(t, "check", "--check-files=false", "--output-format", "json",
		"tailwind.config.js", "tailwind/split.config.js", "tailwind/moved.config.js")
	require.ErrorIs(t, err, errIssuesFound)

	var report struct {
		Summary struct {
			Errors         int `json:"errors"`
			ConfigsChecked int `json:"configs_checked"`
		} `json:"summary"`
		Issues []struct {
			File string `json:"file"`
			Rule string `json:"rule"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 3, report.Summary.ConfigsChecked)
	assert.Equal(t, 1, report.Summary.Errors)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "variant-io-divergence", report.Issues[0].Rule)
	assert.Equal(t, "tailwind/moved.config.js", report.Issues[0].File)
}

func TestCheckCommand_SettingsFile(t *testing.T) {
	files := validProject()
	files[".twcfg.yaml"] = "check:\n  output-format: json\n"
	setupProject(t, files)

	out, err := execute(t, "check")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), out)

	// An explicit flag beats the settings file.
	out, err = execute(t, "check", "--output-format", "issues")
	require.NoError(t, err)
	assert.Contains(t, out, "no issues")
}

func TestCheckCommand_EnvironmentSettings(t *testing.T) {
	setupProject(t, validProject())
	t.Setenv("TWCFG_CHECK__OUTPUT_FORMAT", "json")

	out, err := execute(t, "check")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), out)
}

func TestCheckCommand_Quiet(t *testing.T) {
	setupProject(t, map[string]string{"tailwind.config.js": "module.exports = {\n  content: [],\n}\n"})

	out, err := execute(t, "check", "--quiet")
	require.ErrorIs(t, err, errIssuesFound)
	assert.Empty(t, out)
}

func TestShowCommand(t *testing.T) {
	setupProject(t, validProject())

	out, err := execute(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "input: base.css")
	assert.Contains(t, out, "templates/**/*.html")

	out, err = execute(t, "show", "--format", "json")
	require.NoError(t, err)
	var view struct {
		Content []string       `json:"content"`
		Output  string         `json:"output"`
		Theme   map[string]any `json:"theme"`
		Plugins []string       `json:"plugins"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, []string{"templates/**/*.html"}, view.Content)
	assert.Equal(t, "static/css/styles.css", view.Output)
	assert.Contains(t, view.Theme, "extend")
	assert.Empty(t, view.Plugins)

	_, err = execute(t, "show", "--format", "toml")
	require.Error(t, err)
}

func TestFilesCommand(t *testing.T) {
	files := validProject()
	files["templates/draft.html"] = "<p></p>"
	files[".gitignore"] = "templates/draft.html\n"
	setupProject(t, files)

	out, err := execute(t, "files")
	require.NoError(t, err)
	assert.Equal(t, "templates/index.html\ntemplates/partials/a.html\n", out)

	out, err = execute(t, "files", "--no-gitignore")
	require.NoError(t, err)
	assert.Equal(t, "templates/draft.html\ntemplates/index.html\ntemplates/partials/a.html\n", out)
}

func TestTokensCommand(t *testing.T) {
	setupProject(t, validProject())

	out, err := execute(t, "tokens", "tailwind.config.js", "colors")
	require.NoError(t, err)
	var colors map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &colors))
	assert.Equal(t, "#0f766e", colors["brand"])
	assert.Contains(t, colors, "black")

	out, err = execute(t, "tokens")
	require.NoError(t, err)
	var tokens map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tokens))
	assert.Contains(t, tokens, "spacing")

	_, err = execute(t, "tokens", "tailwind.config.js", "shadows")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown token section "shadows"`)
}

func TestInitCommand(t *testing.T) {
	dir := setupProject(t, nil)

	out, err := execute(t, "init", "--build-config")
	require.NoError(t, err)
	assert.Contains(t, out, "Created .twcfg.yaml")
	assert.Contains(t, out, "Created tailwind.config.js")
	assert.FileExists(t, filepath.Join(dir, ".twcfg.yaml"))

	data, err := os.ReadFile(filepath.Join(dir, "tailwind.config.js"))
	require.NoError(t, err)
	assert.Equal(t, defaultBuildConfig, string(data))

	_, err = execute(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "init", "--force")
	require.NoError(t, err)

	// The generated settings must load and point at the starter config.
	resetKoanf()
	require.NoError(t, loadConfigFromPath(filepath.Join(dir, ".twcfg.yaml")))
	assert.Equal(t, []string{"tailwind.config.js"}, configPaths(nil))
	assert.True(t, buildCheckOptions().CheckFiles)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "twcfg dev\n", out)
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "twcfg")

	_, err = execute(t, "completion", "tcsh")
	require.Error(t, err)
}
