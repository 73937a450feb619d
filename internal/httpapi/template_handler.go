package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/alexanderramin/cuesheet/internal/service"
	"github.com/alexanderramin/cuesheet/internal/template"
)

type TemplateHandler struct {
	templates service.TemplateService
}

func NewTemplateHandler(templates service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

type kindTemplates struct {
	Kind    domain.EventKind  `json:"kind"`
	Presets []template.Preset `json:"presets"`
}

// List returns presets grouped by kind, optionally filtered by ?kind=.
func (h *TemplateHandler) List(c *gin.Context) {
	kinds := h.templates.Kinds()
	if raw := c.Query("kind"); raw != "" {
		kind, ok := domain.ParseEventKind(raw)
		if !ok {
			RespondError(c, http.StatusBadRequest, CodeInvalidRequest, fmt.Errorf("unknown event kind %q", raw))
			return
		}
		kinds = []domain.EventKind{kind}
	}

	out := make([]kindTemplates, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, kindTemplates{Kind: k, Presets: h.templates.List(k)})
	}
	RespondOK(c, gin.H{"kinds": out})
}
