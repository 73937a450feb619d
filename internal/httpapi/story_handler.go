package httpapi

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/alexanderramin/cuesheet/internal/service"
	"github.com/alexanderramin/cuesheet/internal/sheet"
)

// maxUploadBytes bounds the uploaded spreadsheet.
const maxUploadBytes = 10 << 20

type StoryHandler struct {
	stories service.StoryService
}

func NewStoryHandler(stories service.StoryService) *StoryHandler {
	return &StoryHandler{stories: stories}
}

// Template downloads the blank problem spreadsheet.
func (h *StoryHandler) Template(c *gin.Context) {
	data, err := sheet.BlankTemplate()
	if err != nil {
		respondDomainError(c, err, storyProviderMessage)
		return
	}
	respondFile(c, sheet.TemplateFileName, sheet.ContentType, data)
}

// Generate reads the uploaded "file", generates one story per row and
// returns the two-column workbook.
func (h *StoryHandler) Generate(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		respondDomainError(c, domain.NewValidationError("file", "파일을 업로드해주세요."), storyProviderMessage)
		return
	}
	if fh.Size > maxUploadBytes {
		respondDomainError(c, domain.NewValidationError("file", "파일이 너무 큽니다."), storyProviderMessage)
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondDomainError(c, fmt.Errorf("opening upload: %w", err), storyProviderMessage)
		return
	}
	defer f.Close()

	res, err := h.stories.Process(c.Request.Context(), f, fh.Filename)
	if err != nil {
		respondDomainError(c, err, storyProviderMessage)
		return
	}
	respondFile(c, outputFileName(fh.Filename), sheet.ContentType, res.Data)
}

func outputFileName(upload string) string {
	base := strings.TrimSuffix(filepath.Base(upload), filepath.Ext(upload))
	if base == "" || base == "." {
		base = "문제"
	}
	return base + "_문장제.xlsx"
}
