// Package template provides the named agenda presets offered per event kind.
package template

import (
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrTemplateNotFound indicates no preset matches the requested name.
var ErrTemplateNotFound = errors.New("template not found")

//go:embed presets/builtin.yaml
var builtinYAML []byte

// Catalog holds presets grouped by kind, in declaration order.
type Catalog struct {
	kinds   []domain.EventKind
	presets map[domain.EventKind][]Preset
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{presets: map[domain.EventKind][]Preset{}}
}

// Builtin returns a catalog holding the embedded presets.
func Builtin() (*Catalog, error) {
	file, err := ParseSchema(builtinYAML)
	if err != nil {
		return nil, err
	}
	if errs := ValidateSchema(file); len(errs) > 0 {
		return nil, fmt.Errorf("builtin presets: %w", errors.Join(errs...))
	}
	c := NewCatalog()
	c.Merge(file)
	return c, nil
}

// MustBuiltin is Builtin for callers that treat a broken embed as fatal.
func MustBuiltin() *Catalog {
	c, err := Builtin()
	if err != nil {
		panic(err)
	}
	return c
}

// Merge adds every preset in file. A preset with an existing kind and name
// replaces the old one in place; new ones are appended.
func (c *Catalog) Merge(file PresetFile) {
	for _, k := range file {
		if !slices.Contains(c.kinds, k.Kind) {
			c.kinds = append(c.kinds, k.Kind)
		}
		for _, pc := range k.Presets {
			p := Preset{Kind: k.Kind, Name: pc.Name, Labels: slices.Clone(pc.Labels)}
			list := c.presets[k.Kind]
			idx := slices.IndexFunc(list, func(existing Preset) bool { return existing.Name == p.Name })
			if idx >= 0 {
				list[idx] = p
			} else {
				list = append(list, p)
			}
			c.presets[k.Kind] = list
		}
	}
}

// LoadDir merges every *.yaml / *.yml preset file under dir. A missing dir
// is not an error. Invalid files are skipped and logged.
func (c *Catalog) LoadDir(fs afero.Fs, dir string, logger *zap.Logger) error {
	if dir == "" {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	exists, err := afero.DirExists(fs, dir)
	if err != nil {
		return fmt.Errorf("checking template dir: %w", err)
	}
	if !exists {
		return nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := afero.Glob(fs, filepath.Join(dir, pattern))
		if err != nil {
			return fmt.Errorf("listing templates: %w", err)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)

	for _, path := range files {
		file, err := LoadSchema(fs, path)
		if err != nil {
			logger.Warn("skipping template file", zap.String("path", path), zap.Error(err))
			continue
		}
		if errs := ValidateSchema(file); len(errs) > 0 {
			logger.Warn("skipping invalid template file", zap.String("path", path), zap.Error(errors.Join(errs...)))
			continue
		}
		c.Merge(file)
	}
	return nil
}

// Kinds returns the event kinds that have presets.
func (c *Catalog) Kinds() []domain.EventKind {
	return slices.Clone(c.kinds)
}

// List returns the presets of one kind in declaration order.
func (c *Catalog) List(kind domain.EventKind) []Preset {
	return slices.Clone(c.presets[kind])
}

// Default returns the first preset of kind.
func (c *Catalog) Default(kind domain.EventKind) (Preset, error) {
	list := c.presets[kind]
	if len(list) == 0 {
		return Preset{}, fmt.Errorf("%w: no presets for %s", ErrTemplateNotFound, kind)
	}
	return list[0], nil
}

// Get resolves a preset by name (case-insensitive) or by the 1-based number
// shown in `template list`.
func (c *Catalog) Get(kind domain.EventKind, name string) (Preset, error) {
	input := strings.TrimSpace(name)
	list := c.presets[kind]

	for _, p := range list {
		if strings.EqualFold(p.Name, input) {
			return p, nil
		}
	}

	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(list) {
		return list[n-1], nil
	}

	return Preset{}, fmt.Errorf("%w: %s / %q", ErrTemplateNotFound, kind, name)
}
