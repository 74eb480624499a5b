package buildconf

// ConfigView is the normalised, serialisable form of a Config.
type ConfigView struct {
	Content  []string       `json:"content" yaml:"content"`
	Relative bool           `json:"relative,omitempty" yaml:"relative,omitempty"`
	Input    string         `json:"input" yaml:"input"`
	Output   string         `json:"output" yaml:"output"`
	Theme    map[string]any `json:"theme" yaml:"theme"`
	Plugins  []string       `json:"plugins" yaml:"plugins"`
}

// View returns the normalised record: theme sections plus an "extend" key
// when one was written, and plugins reduced to their identifiers.
func (c *Config) View() ConfigView {
	view := ConfigView{
		Content:  append([]string{}, c.Content...),
		Relative: c.Relative,
		Input:    c.Input,
		Output:   c.Output,
		Theme:    make(map[string]any),
		Plugins:  make([]string, 0, len(c.Plugins)),
	}
	for name, section := range c.Theme.Sections {
		view.Theme[name] = deepCopy(section)
	}
	if c.Theme.HasExtend || len(c.Theme.Extend) > 0 {
		extend := make(map[string]any, len(c.Theme.Extend))
		for name, section := range c.Theme.Extend {
			extend[name] = deepCopy(section)
		}
		view.Theme["extend"] = extend
	}
	for _, p := range c.Plugins {
		view.Plugins = append(view.Plugins, p.ID)
	}
	return view
}
