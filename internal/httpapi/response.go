package httpapi

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/cuesheet/internal/agenda"
	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/alexanderramin/cuesheet/internal/llm"
	"github.com/alexanderramin/cuesheet/internal/service"
	"github.com/alexanderramin/cuesheet/internal/session"
	"github.com/alexanderramin/cuesheet/internal/sheet"
	"github.com/alexanderramin/cuesheet/internal/template"
)

// Error codes returned in the error envelope.
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeValidation      = "VALIDATION"
	CodeIndexOutOfRange = "INDEX_OUT_OF_RANGE"
	CodeBusy            = "BUSY"
	CodeNotFound        = "NOT_FOUND"
	CodeProvider        = "PROVIDER"
	CodeInternal        = "INTERNAL"
)

// User-facing messages for completion failures; the cause is only logged.
const (
	scenarioProviderMessage = service.ScenarioFailureMessage
	storyProviderMessage    = service.StoryFailureMessage
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondDomainError maps a service error onto a status and code. The
// original error is attached to the context for the request logger.
// providerMsg replaces the message of completion failures.
func respondDomainError(c *gin.Context, err error, providerMsg string) {
	_ = c.Error(err)

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorEnvelope{
			Error: APIError{Message: verr.Message, Code: CodeValidation, Field: verr.Field},
		})
	case errors.Is(err, agenda.ErrIndexOutOfRange):
		RespondError(c, http.StatusConflict, CodeIndexOutOfRange, err)
	case errors.Is(err, session.ErrBusy):
		RespondError(c, http.StatusConflict, CodeBusy, err)
	case errors.Is(err, session.ErrNotFound), errors.Is(err, template.ErrTemplateNotFound):
		RespondError(c, http.StatusNotFound, CodeNotFound, err)
	case errors.Is(err, sheet.ErrUnsupportedFormat):
		RespondError(c, http.StatusBadRequest, CodeValidation, err)
	case errors.Is(err, llm.ErrProvider):
		RespondError(c, http.StatusBadGateway, CodeProvider, errors.New(providerMsg))
	default:
		RespondError(c, http.StatusInternalServerError, CodeInternal, errors.New("internal error"))
	}
}

// respondFile sends data as a download named filename.
func respondFile(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Data(http.StatusOK, contentType, data)
}
