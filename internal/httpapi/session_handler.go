package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/cuesheet/internal/agenda"
	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/alexanderramin/cuesheet/internal/service"
	"github.com/alexanderramin/cuesheet/internal/session"
	"github.com/alexanderramin/cuesheet/internal/template"
)

// dateLayout is the wire format of EventMeta.Date.
const dateLayout = "2006-01-02"

type SessionHandler struct {
	store     *session.Store
	templates service.TemplateService
	scenarios service.ScenarioService
}

func NewSessionHandler(store *session.Store, templates service.TemplateService, scenarios service.ScenarioService) *SessionHandler {
	return &SessionHandler{store: store, templates: templates, scenarios: scenarios}
}

type templateRef struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

type metaView struct {
	Kind         domain.EventKind `json:"kind"`
	Name         string           `json:"name"`
	Date         string           `json:"date"`
	Location     string           `json:"location"`
	MCCount      int              `json:"mc_count"`
	VIPAttendees string           `json:"vip_attendees,omitempty"`
}

type rowView struct {
	ID              int64  `json:"id"`
	Position        int    `json:"position"`
	Label           string `json:"label"`
	DurationMinutes int    `json:"duration_minutes"`
	Detail          string `json:"detail"`
}

type sessionView struct {
	ID           string      `json:"id"`
	Template     templateRef `json:"template"`
	Meta         metaView    `json:"meta"`
	Agenda       []rowView   `json:"agenda"`
	TotalMinutes int         `json:"total_minutes"`
	Busy         bool        `json:"busy"`
}

// render builds the full view. Every mutating endpoint answers with it so
// clients always redraw the whole list from current positions.
func render(s *session.Session) sessionView {
	v := sessionView{ID: s.ID(), Busy: s.Busy()}
	s.View(func(ed *agenda.Editor, meta domain.EventMeta, p template.Preset) {
		v.Template = templateRef{Kind: string(p.Kind), Name: p.Name}
		v.Meta = metaView{
			Kind:         meta.Kind,
			Name:         meta.Name,
			Date:         meta.Date.Format(dateLayout),
			Location:     meta.Location,
			MCCount:      meta.MCCount,
			VIPAttendees: meta.VIPAttendees,
		}
		rows := ed.Rows()
		v.Agenda = make([]rowView, len(rows))
		for i, r := range rows {
			v.Agenda[i] = rowView{
				ID:              r.ID,
				Position:        i + 1,
				Label:           r.Label,
				DurationMinutes: r.DurationMinutes,
				Detail:          r.Detail,
			}
		}
		v.TotalMinutes = ed.TotalMinutes()
	})
	return v
}

func (h *SessionHandler) resolvePreset(ref templateRef) (template.Preset, error) {
	kind := domain.KindSchool
	if ref.Kind != "" {
		k, ok := domain.ParseEventKind(ref.Kind)
		if !ok {
			return template.Preset{}, domain.NewValidationError("kind", "행사 유형을 선택해주세요.")
		}
		kind = k
	}
	if ref.Name == "" {
		return h.templates.Default(kind)
	}
	return h.templates.Get(kind, ref.Name)
}

func (h *SessionHandler) session(c *gin.Context) (*session.Session, bool) {
	s, err := h.store.Get(c.Param("id"))
	if err != nil {
		respondDomainError(c, err, scenarioProviderMessage)
		return nil, false
	}
	return s, true
}

// Create starts a session. The body is optional: {"kind": "...", "name": "..."}.
func (h *SessionHandler) Create(c *gin.Context) {
	var ref templateRef
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&ref); err != nil {
			RespondError(c, http.StatusBadRequest, CodeInvalidRequest, err)
			return
		}
	}
	p, err := h.resolvePreset(ref)
	if err != nil {
		respondDomainError(c, err, scenarioProviderMessage)
		return
	}
	s := h.store.Create(p)
	c.JSON(http.StatusCreated, render(s))
}

func (h *SessionHandler) Get(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	RespondOK(c, render(s))
}

func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		respondDomainError(c, err, scenarioProviderMessage)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetTemplate switches the preset; the agenda resets only when it differs.
func (h *SessionHandler) SetTemplate(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var ref templateRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalidRequest, err)
		return
	}
	p, err := h.resolvePreset(ref)
	if err != nil {
		respondDomainError(c, err, scenarioProviderMessage)
		return
	}
	if _, err := s.ApplyTemplate(p); err != nil {
		respondDomainError(c, err, scenarioProviderMessage)
		return
	}
	RespondOK(c, render(s))
}

type metaRequest struct {
	Name         *string `json:"name"`
	Date         *string `json:"date"`
	Location     *string `json:"location"`
	MCCount      *int    `json:"mc_count"`
	VIPAttendees *string `json:"vip_attendees"`
}

// SetMeta updates the metadata fields present in the body. The kind follows
// the template and cannot be set here.
func (h *SessionHandler) SetMeta(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req metaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalidRequest, err)
		return
	}

	var date time.Time
	if req.Date != nil {
		d, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			respondDomainError(c, domain.NewValidationError("date", "날짜는 YYYY-MM-DD 형식이어야 합니다."), scenarioProviderMessage)
			return
		}
		date = d
	}
	if req.MCCount != nil && *req.MCCount != 1 && *req.MCCount != 2 {
		respondDomainError(c, domain.NewValidationError("mc_count", "사회자 수는 1명 또는 2명이어야 합니다."), scenarioProviderMessage)
		return
	}

	err := s.Mutate(func(_ *agenda.Editor, meta *domain.EventMeta) error {
		if req.Name != nil {
			meta.Name = *req.Name
		}
		if req.Date != nil {
			meta.Date = date
		}
		if req.Location != nil {
			meta.Location = *req.Location
		}
		if req.MCCount != nil {
			meta.MCCount = *req.MCCount
		}
		if req.VIPAttendees != nil && meta.Kind.HasVIPs() {
			meta.VIPAttendees = *req.VIPAttendees
		}
		return nil
	})
	if err != nil {
		respondDomainError(c, err, scenarioProviderMessage)
		return
	}
	RespondOK(c, render(s))
}

type appendRequest struct {
	Label           string `json:"label"`
	DurationMinutes *int   `json:"duration_minutes"`
	Detail          string `json:"detail"`
}

// AppendItem adds a row at the end.
func (h *SessionHandler) AppendItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req appendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalidRequest, err)
		return
	}
	minutes := domain.DefaultDurationMinutes
	if req.DurationMinutes != nil {
		minutes = *req.DurationMinutes
	}
	if minutes < 1 {
		respondDomainError(c, errDuration, scenarioProviderMessage)
		return
	}

	err := s.Mutate(func(ed *agenda.Editor, _ *domain.EventMeta) error {
		if !ed.Append(req.Label, minutes, req.Detail) {
			return domain.NewValidationError("label", "행사 순서를 입력해주세요.")
		}
		return nil
	})
	if err != nil {
		respondDomainError(c, err, scenarioProviderMessage)
		return
	}
	c.JSON(http.StatusCreated, render(s))
}

var errDuration = domain.NewValidationError("duration_minutes", "소요 시간은 1분 이상이어야 합니다.")

type updateRequest struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

// UpdateItem overwrites one field of a row. The row is addressed by its
// 1-based position, or by row ID with ?by=id.
func (h *SessionHandler) UpdateItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	ref, ok := rowRef(c)
	if !ok {
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalidRequest, err)
		return
	}
	field, err := agenda.ParseField(req.Field)
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalidRequest, err)
		return
	}
	value, err := decodeFieldValue(field, req.Value)
	if err != nil {
		respondDomainError(c, err, scenarioProviderMessage)
		return
	}

	err = s.Mutate(func(ed *agenda.Editor, _ *domain.EventMeta) error {
		if ref.byID {
			return ed.UpdateByID(ref.value, field, value)
		}
		return ed.Update(int(ref.value)-1, field, value)
	})
	if err != nil {
		respondDomainError(c, err, scenarioProviderMessage)
		return
	}
	RespondOK(c, render(s))
}

// RemoveItem deletes a row and returns the whole renumbered agenda.
func (h *SessionHandler) RemoveItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	ref, ok := rowRef(c)
	if !ok {
		return
	}
	err := s.Mutate(func(ed *agenda.Editor, _ *domain.EventMeta) error {
		if ref.byID {
			return ed.RemoveByID(ref.value)
		}
		return ed.Remove(int(ref.value) - 1)
	})
	if err != nil {
		respondDomainError(c, err, scenarioProviderMessage)
		return
	}
	RespondOK(c, render(s))
}

// Generate runs the scenario workflow on the session's current state.
func (h *SessionHandler) Generate(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	res, err := h.scenarios.GenerateForSession(c.Request.Context(), s)
	if err != nil {
		respondDomainError(c, err, scenarioProviderMessage)
		return
	}
	RespondOK(c, gin.H{"text": res.Text, "file_name": res.FileName})
}

type rowAddress struct {
	byID  bool
	value int64
}

func rowRef(c *gin.Context) (rowAddress, bool) {
	raw := c.Param("index")
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalidRequest, fmt.Errorf("invalid row reference %q", raw))
		return rowAddress{}, false
	}
	return rowAddress{byID: strings.EqualFold(c.Query("by"), "id"), value: n}, true
}

func decodeFieldValue(field agenda.Field, raw json.RawMessage) (any, error) {
	invalid := domain.NewValidationError(field.String(), "값의 형식이 올바르지 않습니다.")
	if len(raw) == 0 {
		return nil, invalid
	}
	switch field {
	case agenda.FieldDuration:
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, invalid
		}
		if n < 1 {
			return nil, errDuration
		}
		return n, nil
	default:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, invalid
		}
		return s, nil
	}
}

