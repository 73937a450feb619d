package template

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ParseSchema decodes a preset YAML document.
func ParseSchema(data []byte) (PresetFile, error) {
	var file PresetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return file, nil
}

// LoadSchema reads and decodes a preset file from fs.
func LoadSchema(fs afero.Fs, path string) (PresetFile, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	return ParseSchema(data)
}
