package buildconf

// knownThemeSections are the design-token sections the build tool understands.
var knownThemeSections = map[string]bool{
	"accentColor": true, "animation": true, "aria": true, "aspectRatio": true,
	"backdropBlur": true, "backgroundColor": true, "backgroundImage": true,
	"backgroundOpacity": true, "backgroundPosition": true, "backgroundSize": true,
	"blur": true, "borderColor": true, "borderOpacity": true, "borderRadius": true,
	"borderSpacing": true, "borderWidth": true, "boxShadow": true, "boxShadowColor": true,
	"brightness": true, "caretColor": true, "colors": true, "columns": true,
	"container": true, "content": true, "contrast": true, "cursor": true,
	"divideColor": true, "divideWidth": true, "dropShadow": true, "fill": true,
	"flex": true, "flexBasis": true, "flexGrow": true, "flexShrink": true,
	"fontFamily": true, "fontSize": true, "fontWeight": true, "gap": true,
	"gradientColorStops": true, "grayscale": true, "gridAutoColumns": true,
	"gridAutoRows": true, "gridColumn": true, "gridRow": true,
	"gridTemplateColumns": true, "gridTemplateRows": true, "height": true,
	"hueRotate": true, "inset": true, "invert": true, "keyframes": true,
	"letterSpacing": true, "lineClamp": true, "lineHeight": true, "listStyleType": true,
	"margin": true, "maxHeight": true, "maxWidth": true, "minHeight": true,
	"minWidth": true, "objectPosition": true, "opacity": true, "order": true,
	"outlineColor": true, "outlineOffset": true, "outlineWidth": true, "padding": true,
	"placeholderColor": true, "ringColor": true, "ringOffsetColor": true,
	"ringOffsetWidth": true, "ringOpacity": true, "ringWidth": true, "rotate": true,
	"saturate": true, "scale": true, "screens": true, "scrollMargin": true,
	"scrollPadding": true, "sepia": true, "size": true, "skew": true, "space": true,
	"spacing": true, "stroke": true, "strokeWidth": true, "supports": true,
	"textColor": true, "textDecorationColor": true, "textDecorationThickness": true,
	"textIndent": true, "textOpacity": true, "textUnderlineOffset": true,
	"transformOrigin": true, "transitionDelay": true, "transitionDuration": true,
	"transitionProperty": true, "transitionTimingFunction": true, "translate": true,
	"typography": true, "width": true, "willChange": true, "zIndex": true,
}

// DefaultTokens returns the built-in design tokens a theme is merged into.
// Each call returns a fresh tree.
func DefaultTokens() Tokens {
	return Tokens{
		"screens": map[string]any{
			"sm":  "640px",
			"md":  "768px",
			"lg":  "1024px",
			"xl":  "1280px",
			"2xl": "1536px",
		},
		"colors": map[string]any{
			"transparent": "transparent",
			"current":     "currentColor",
			"black":       "#000",
			"white":       "#fff",
			"gray": map[string]any{
				"100": "#f3f4f6",
				"500": "#6b7280",
				"900": "#111827",
			},
			"blue": map[string]any{
				"100": "#dbeafe",
				"500": "#3b82f6",
				"900": "#1e3a8a",
			},
		},
		"spacing": map[string]any{
			"0":   "0px",
			"px":  "1px",
			"0.5": "0.125rem",
			"1":   "0.25rem",
			"2":   "0.5rem",
			"4":   "1rem",
			"8":   "2rem",
		},
		"fontFamily": map[string]any{
			"sans": []any{"ui-sans-serif", "system-ui", "sans-serif"},
			"mono": []any{"ui-monospace", "monospace"},
		},
		"borderRadius": map[string]any{
			"none":    "0px",
			"DEFAULT": "0.25rem",
			"lg":      "0.5rem",
			"full":    "9999px",
		},
	}
}

// MergeTheme resolves a theme against defaults: top-level theme sections
// replace the default section, then theme.extend is deep-merged on top.
// Neither argument is modified.
func MergeTheme(defaults Tokens, theme Theme) Tokens {
	merged := make(Tokens, len(defaults)+len(theme.Sections))
	for name, section := range defaults {
		merged[name] = deepCopy(section)
	}
	for name, section := range theme.Sections {
		merged[name] = deepCopy(section)
	}
	for name, section := range theme.Extend {
		merged[name] = deepMerge(merged[name], section)
	}
	return merged
}

// deepMerge merges src into a copy of dst. Maps merge key by key; any other
// value in src replaces dst.
func deepMerge(dst, src any) any {
	srcMap, srcOK := asMap(src)
	dstMap, dstOK := asMap(dst)
	if !srcOK || !dstOK {
		return deepCopy(src)
	}

	out := make(map[string]any, len(dstMap)+len(srcMap))
	for key, value := range dstMap {
		out[key] = deepCopy(value)
	}
	for key, value := range srcMap {
		out[key] = deepMerge(out[key], value)
	}
	return out
}

func deepCopy(value any) any {
	if m, ok := asMap(value); ok {
		out := make(map[string]any, len(m))
		for key, v := range m {
			out[key] = deepCopy(v)
		}
		return out
	}
	if list, ok := value.([]any); ok {
		out := make([]any, len(list))
		for i, v := range list {
			out[i] = deepCopy(v)
		}
		return out
	}
	return value
}
