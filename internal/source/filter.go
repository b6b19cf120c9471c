package source

import (
	"path/filepath"

	"glance/internal/errors"

	"github.com/gobwas/glob"
)

// Filter drops path requests matching any ignore pattern. Patterns are
// matched against both the full path and its base name.
type Filter struct {
	globs []glob.Glob
}

// NewFilter compiles patterns. An empty list yields a filter that ignores
// nothing.
func NewFilter(patterns []string) (*Filter, error) {
	f := &Filter{}
	for _, p := range patterns {
		g, err := glob.Compile(p, filepath.Separator)
		if err != nil {
			return nil, errors.NewConfigError("invalid ignore pattern", p, errors.InvalidConfig, err)
		}
		f.globs = append(f.globs, g)
	}
	return f, nil
}

// Ignored reports whether path matches an ignore pattern
func (f *Filter) Ignored(path string) bool {
	if f == nil {
		return false
	}
	base := filepath.Base(path)
	for _, g := range f.globs {
		if g.Match(path) || g.Match(base) {
			return true
		}
	}
	return false
}
