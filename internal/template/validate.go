package template

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cuesheet/internal/domain"
)

// ValidateSchema checks a PresetFile for structural errors.
// Returns a slice of errors (empty if valid).
func ValidateSchema(file PresetFile) []error {
	var errs []error

	if len(file) == 0 {
		errs = append(errs, fmt.Errorf("at least one kind is required"))
	}

	for i, k := range file {
		if !domain.ValidEventKinds[k.Kind] {
			errs = append(errs, fmt.Errorf("kind[%d]: unknown kind %q", i, k.Kind))
		}
		names := map[string]bool{}
		for j, p := range k.Presets {
			if strings.TrimSpace(p.Name) == "" {
				errs = append(errs, fmt.Errorf("kind[%d].preset[%d]: name is required", i, j))
			}
			if names[p.Name] {
				errs = append(errs, fmt.Errorf("kind[%d].preset[%d]: duplicate name %q", i, j, p.Name))
			}
			names[p.Name] = true
			for n, label := range p.Labels {
				if strings.TrimSpace(label) == "" {
					errs = append(errs, fmt.Errorf("kind[%d].preset[%d].labels[%d]: label is empty", i, j, n))
				}
			}
		}
	}

	return errs
}
