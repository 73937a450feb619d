package service

import (
	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/alexanderramin/cuesheet/internal/template"
)

type templateService struct {
	catalog *template.Catalog
}

// NewTemplateService exposes a preset catalog to the CLI and HTTP layers.
func NewTemplateService(catalog *template.Catalog) TemplateService {
	return &templateService{catalog: catalog}
}

func (s *templateService) Kinds() []domain.EventKind {
	return s.catalog.Kinds()
}

func (s *templateService) List(kind domain.EventKind) []template.Preset {
	return s.catalog.List(kind)
}

func (s *templateService) Get(kind domain.EventKind, name string) (template.Preset, error) {
	return s.catalog.Get(kind, name)
}

func (s *templateService) Default(kind domain.EventKind) (template.Preset, error) {
	return s.catalog.Default(kind)
}
