package template

import (
	"github.com/alexanderramin/cuesheet/internal/domain"
)

// CustomName is the preset that starts from an empty agenda and leaves the
// event name blank.
const CustomName = "직접 입력"

// PresetFile is one YAML document: a list of kinds, each with its presets.
type PresetFile []KindConfig

// KindConfig groups the presets of one event kind.
type KindConfig struct {
	Kind    domain.EventKind `yaml:"kind"`
	Presets []PresetConfig   `yaml:"presets"`
}

// PresetConfig is a named list of default agenda labels.
type PresetConfig struct {
	Name   string   `yaml:"name"`
	Labels []string `yaml:"labels"`
}

// Preset is a resolved template ready to seed an agenda editor.
type Preset struct {
	Kind   domain.EventKind `json:"kind"`
	Name   string           `json:"name"`
	Labels []string         `json:"labels"`
}

// Key identifies the preset across kinds. Two kinds may share a name
// (both have 직접 입력), so the kind is part of the key.
func (p Preset) Key() string {
	return string(p.Kind) + "/" + p.Name
}

// DefaultLabels returns the agenda labels the preset seeds.
func (p Preset) DefaultLabels() []string {
	return p.Labels
}

// IsCustom reports whether this is the empty free-form preset.
func (p Preset) IsCustom() bool {
	return p.Name == CustomName
}

// SuggestedEventName is the value prefilled into the event name field.
func (p Preset) SuggestedEventName() string {
	if p.IsCustom() {
		return ""
	}
	return p.Name
}
