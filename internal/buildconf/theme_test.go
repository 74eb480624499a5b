package buildconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeTheme_EmptyThemeKeepsDefaults(t *testing.T) {
	merged := MergeTheme(DefaultTokens(), Theme{HasExtend: true})
	assert.Equal(t, DefaultTokens(), merged)
}

func TestMergeTheme_SectionsReplaceAndExtendMerges(t *testing.T) {
	theme := Theme{
		Sections: map[string]any{
			"screens": map[string]any{"tablet": "640px"},
		},
		Extend: map[string]any{
			"colors": map[string]any{
				"brand": "#0f766e",
				"gray":  map[string]any{"500": "#777777"},
			},
			"zIndex": map[string]any{"modal": "100"},
		},
	}

	merged := MergeTheme(DefaultTokens(), theme)

	assert.Equal(t, map[string]any{"tablet": "640px"}, merged["screens"])

	colors, ok := merged["colors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "#0f766e", colors["brand"])
	assert.Equal(t, "#fff", colors["white"])
	assert.Equal(t, map[string]any{"100": "#f3f4f6", "500": "#777777", "900": "#111827"}, colors["gray"])

	assert.Equal(t, map[string]any{"modal": "100"}, merged["zIndex"])
	assert.Contains(t, merged, "spacing")
}

func TestMergeTheme_DoesNotMutateInputs(t *testing.T) {
	defaults := DefaultTokens()
	extend := map[string]any{"colors": map[string]any{"brand": "#000"}}
	theme := Theme{Extend: extend}

	merged := MergeTheme(defaults, theme)
	merged["colors"].(map[string]any)["white"] = "#eee"

	assert.Equal(t, DefaultTokens(), defaults)
	assert.Equal(t, map[string]any{"colors": map[string]any{"brand": "#000"}}, extend)
}

func TestMergeTheme_ExtendOverridesSection(t *testing.T) {
	theme := Theme{
		Sections: map[string]any{"spacing": map[string]any{"1": "4px"}},
		Extend:   map[string]any{"spacing": map[string]any{"2": "8px"}},
	}

	merged := MergeTheme(Tokens{}, theme)
	assert.Equal(t, map[string]any{"1": "4px", "2": "8px"}, merged["spacing"])
}

func TestMergeTheme_NonMapReplaces(t *testing.T) {
	theme := Theme{
		Extend: map[string]any{"fontFamily": map[string]any{"sans": []any{"Inter", "sans-serif"}}},
	}

	merged := MergeTheme(DefaultTokens(), theme)
	fonts := merged["fontFamily"].(map[string]any)
	assert.Equal(t, []any{"Inter", "sans-serif"}, fonts["sans"])
	assert.Equal(t, []any{"ui-monospace", "monospace"}, fonts["mono"])
}
