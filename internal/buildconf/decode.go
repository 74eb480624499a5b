package buildconf

import (
	"fmt"
	"sort"
)

// Decode converts a raw key/value tree into a Config. Type mismatches and
// unknown keys become issues on the returned Config.
func Decode(raw map[string]any) *Config {
	cfg := &Config{
		Present: make(map[string]bool),
		Lines:   make(map[string]int),
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw[key]
		cfg.Present[key] = true

		switch key {
		case FieldContent:
			cfg.decodeContent(value)
		case FieldInput:
			cfg.Input = cfg.decodeString(FieldInput, value)
		case FieldOutput:
			cfg.Output = cfg.decodeString(FieldOutput, value)
		case FieldTheme:
			cfg.decodeTheme(value)
		case FieldPlugins:
			cfg.decodePlugins(value)
		default:
			if !passthroughFields[key] {
				cfg.Issues = append(cfg.Issues, cfg.newIssue(RuleUnknownField, SeverityWarning, key,
					"unknown field %q is ignored by the build tool", key))
			}
		}
	}

	return cfg
}

func (c *Config) schemaIssue(field, format string, args ...any) {
	c.Issues = append(c.Issues, c.newIssue(RuleSchema, SeverityError, field, format, args...))
}

func (c *Config) decodeString(field string, value any) string {
	s, ok := value.(string)
	if !ok {
		c.schemaIssue(field, "%s must be a path string, got %s", field, describe(value))
		return ""
	}
	return s
}

// decodeContent accepts a list of patterns or {files: [...], relative: bool}.
func (c *Config) decodeContent(value any) {
	switch v := value.(type) {
	case []any:
		c.Content = c.decodePatterns(FieldContent, v)
	case string:
		// The build tool reads a lone string as a single pattern.
		c.Content = []string{v}
		c.Issues = append(c.Issues, c.newIssue(RuleSchema, SeverityWarning, FieldContent,
			"content should be a list of glob patterns, got a single string"))
	case map[string]any:
		files, ok := v["files"]
		if !ok {
			c.schemaIssue(FieldContent, "content object must have a files list")
			return
		}
		list, ok := files.([]any)
		if !ok {
			c.schemaIssue(FieldContent, "content.files must be a list of glob patterns, got %s", describe(files))
			return
		}
		c.Content = c.decodePatterns(FieldContent, list)
		if rel, ok := v["relative"]; ok {
			b, isBool := rel.(bool)
			if !isBool {
				c.schemaIssue(FieldContent, "content.relative must be a boolean, got %s", describe(rel))
			}
			c.Relative = b
		}
	default:
		c.schemaIssue(FieldContent, "content must be a list of glob patterns, got %s", describe(value))
	}
}

func (c *Config) decodePatterns(field string, list []any) []string {
	patterns := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			c.schemaIssue(field, "%s[%d] must be a glob string, got %s", field, i, describe(item))
			continue
		}
		patterns = append(patterns, s)
	}
	return patterns
}

func (c *Config) decodeTheme(value any) {
	m, ok := asMap(value)
	if !ok {
		c.Issues = append(c.Issues, c.newIssue(RuleThemeType, SeverityError, FieldTheme,
			"theme must be an object, got %s", describe(value)))
		return
	}

	for key, section := range m {
		if key == "extend" {
			c.Theme.HasExtend = true
			ext, ok := asMap(section)
			if !ok {
				c.Issues = append(c.Issues, c.newIssue(RuleThemeExtend, SeverityError, FieldTheme,
					"theme.extend must be an object, got %s", describe(section)))
				continue
			}
			if len(ext) > 0 {
				c.Theme.Extend = ext
			}
			continue
		}
		if c.Theme.Sections == nil {
			c.Theme.Sections = make(map[string]any)
		}
		c.Theme.Sections[key] = section
	}
}

func (c *Config) decodePlugins(value any) {
	list, ok := value.([]any)
	if !ok {
		c.schemaIssue(FieldPlugins, "plugins must be a list, got %s", describe(value))
		return
	}

	c.Plugins = make([]Plugin, 0, len(list))
	for i, item := range list {
		switch v := item.(type) {
		case string:
			c.Plugins = append(c.Plugins, Plugin{ID: v})
		case requireCall:
			c.Plugins = append(c.Plugins, Plugin{ID: v.ID, Require: true})
		default:
			c.schemaIssue(FieldPlugins, "plugins[%d] must be a plugin identifier or require() call, got %s", i, describe(item))
		}
	}
}

// asMap normalises YAML-style maps with non-string keys.
func asMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[fmt.Sprint(key)] = val
		}
		return out, true
	}
	return nil, false
}

func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, uint64:
		return "number"
	case []any:
		return "list"
	case map[string]any, map[any]any:
		return "object"
	case requireCall:
		return "require() call"
	}
	return fmt.Sprintf("%T", value)
}
