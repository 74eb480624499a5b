package buildconf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// keyDelim separates koanf key paths. Theme keys such as "0.5" and "1/2" are
// legal, so neither "." nor "/" can be used.
const keyDelim = "::"

// ErrUnsupportedFormat is returned for config files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// jsProvider is a koanf.Provider reading the object literal exported by a
// JS config file.
type jsProvider struct {
	path  string
	lines map[string]int
}

func (p *jsProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("js provider does not support ReadBytes")
}

func (p *jsProvider) Read() (map[string]any, error) {
	src, err := os.ReadFile(p.path)
	if err != nil {
		return nil, err
	}
	lit, err := extractLiteral(src)
	if err != nil {
		return nil, err
	}
	p.lines = lit.lines
	return lit.values, nil
}

// Load reads and decodes a build configuration. JS sources (.js, .cjs, .mjs)
// are reduced to their exported object literal; YAML and JSON are parsed
// directly. Decode problems are recorded on Config.Issues; the error is
// reserved for unreadable or syntactically broken files.
func Load(path string) (*Config, error) {
	k := koanf.New(keyDelim)

	var lines map[string]int
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".js", ".cjs", ".mjs":
		p := &jsProvider{path: path}
		if err := k.Load(p, nil); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		lines = p.lines
	case ".yaml", ".yml", ".json":
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q (want .js, .cjs, .mjs, .yaml, .yml or .json)", ErrUnsupportedFormat, ext)
	}

	cfg := Decode(k.Raw())
	cfg.Path = path
	if lines != nil {
		cfg.Lines = lines
	}
	for i := range cfg.Issues {
		cfg.Issues[i].Pos.Filename = path
		if line, ok := cfg.Lines[cfg.Issues[i].Field]; ok {
			cfg.Issues[i].Pos.Line = line
			cfg.Issues[i].Pos.Column = 1
		}
	}
	return cfg, nil
}
