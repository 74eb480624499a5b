package buildconf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// splitNegation strips a leading "!" from an exclusion pattern.
func splitNegation(pattern string) (string, bool) {
	if strings.HasPrefix(pattern, "!") {
		return pattern[1:], true
	}
	return pattern, false
}

// normalizePattern cleans a relative pattern into fs.FS form ("./a/**" -> "a/**").
// Patterns leaving base ("../shared/**") cannot be walked through fs.FS and are
// made absolute.
func normalizePattern(base, pattern string) string {
	if filepath.IsAbs(pattern) {
		return filepath.ToSlash(pattern)
	}
	cleaned := path.Clean(filepath.ToSlash(pattern))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		if abs, err := filepath.Abs(filepath.Join(base, filepath.FromSlash(cleaned))); err == nil {
			return filepath.ToSlash(abs)
		}
	}
	return cleaned
}

// ContentRoot returns the directory content patterns are relative to.
// With content.relative they follow the config file, otherwise the project root.
func ContentRoot(cfg *Config, root string) string {
	if cfg.Relative && cfg.Path != "" {
		return filepath.Dir(cfg.Path)
	}
	return root
}

// loadGitIgnore loads root/.gitignore. A missing file is not an error.
func loadGitIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// ResolveContent expands the content patterns into the list of files the
// build tool would scan. Patterns apply in order; "!" patterns remove files
// selected so far. The returned paths are slash-separated and relative to
// the content root, except for absolute patterns which stay absolute.
func ResolveContent(cfg *Config, root string, opts ResolveOptions) ([]string, ResolveStats, error) {
	var stats ResolveStats
	base := ContentRoot(cfg, root)
	fsys := os.DirFS(base)

	var gi *ignore.GitIgnore
	if opts.RespectGitignore {
		gi = loadGitIgnore(base)
	}

	selected := make(map[string]bool)
	for _, raw := range cfg.Content {
		stats.Patterns++
		pattern, negated := splitNegation(raw)
		pattern = normalizePattern(base, pattern)

		if negated {
			for file := range selected {
				if ok, _ := doublestar.Match(pattern, file); ok {
					delete(selected, file)
					stats.FilesNegated++
				}
			}
			continue
		}

		var matches []string
		var err error
		if filepath.IsAbs(pattern) {
			matches, err = doublestar.FilepathGlob(filepath.FromSlash(pattern), doublestar.WithFilesOnly())
		} else {
			matches, err = doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		}
		if err != nil {
			return nil, stats, fmt.Errorf("expanding %q: %w", raw, err)
		}

		for _, match := range matches {
			match = filepath.ToSlash(match)
			if selected[match] {
				continue
			}
			stats.FilesDiscovered++
			if gi != nil && !filepath.IsAbs(match) && gi.MatchesPath(match) {
				stats.FilesIgnored++
				continue
			}
			selected[match] = true
		}
	}

	files := make([]string, 0, len(selected))
	for file := range selected {
		files = append(files, file)
	}
	sort.Strings(files)
	stats.FilesSelected = len(files)

	return files, stats, nil
}

var errMatchFound = errors.New("match found")

// patternMatchesAny reports whether the pattern selects at least one file.
func patternMatchesAny(base, pattern string) (bool, error) {
	pattern = normalizePattern(base, pattern)
	if filepath.IsAbs(pattern) {
		matches, err := doublestar.FilepathGlob(filepath.FromSlash(pattern), doublestar.WithFilesOnly())
		return len(matches) > 0, err
	}

	err := doublestar.GlobWalk(os.DirFS(base), pattern, func(string, fs.DirEntry) error {
		return errMatchFound
	}, doublestar.WithFilesOnly())
	if errors.Is(err, errMatchFound) {
		return true, nil
	}
	return false, err
}
