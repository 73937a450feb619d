package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/alexanderramin/cuesheet/internal/intelligence"
	"github.com/alexanderramin/cuesheet/internal/llm"
	"github.com/alexanderramin/cuesheet/internal/service"
	"github.com/alexanderramin/cuesheet/internal/session"
	"github.com/alexanderramin/cuesheet/internal/sheet"
	"github.com/alexanderramin/cuesheet/internal/template"
	"github.com/alexanderramin/cuesheet/internal/testutil"
)

type testAPI struct {
	router http.Handler
	fake   *testutil.FakeLLM
	store  *session.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := &testutil.FakeLLM{Default: "사회자: 지금부터 행사를 시작하겠습니다."}
	store := session.NewStore(time.Hour, nil)
	templates := service.NewTemplateService(template.MustBuiltin())
	scenarios := service.NewScenarioService(intelligence.NewScenarioWriter(fake))
	stories := service.NewStoryService(intelligence.NewStoryWriter(fake), service.StoryOptions{})

	r := NewRouter(RouterConfig{
		HealthHandler:   NewHealthHandler(),
		TemplateHandler: NewTemplateHandler(templates),
		SessionHandler:  NewSessionHandler(store, templates, scenarios),
		StoryHandler:    NewStoryHandler(stories),
	})
	return &testAPI{router: r, fake: fake, store: store}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (a *testAPI) createSession(t *testing.T, body any) sessionView {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/sessions", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[sessionView](t, rec)
}

func labels(v sessionView) []string {
	out := make([]string, len(v.Agenda))
	for i, r := range v.Agenda {
		out[i] = r.Label
	}
	return out
}

func TestHealthcheck(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestListTemplates(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/templates", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[struct {
		Kinds []kindTemplates `json:"kinds"`
	}](t, rec)
	require.Len(t, all.Kinds, 2)
	assert.Equal(t, domain.KindSchool, all.Kinds[0].Kind)
	assert.Equal(t, "입학식", all.Kinds[0].Presets[0].Name)

	rec = api.do(t, http.MethodGet, "/api/templates?kind=office", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	office := decode[struct {
		Kinds []kindTemplates `json:"kinds"`
	}](t, rec)
	require.Len(t, office.Kinds, 1)
	assert.Equal(t, domain.KindOffice, office.Kinds[0].Kind)

	rec = api.do(t, http.MethodGet, "/api/templates?kind=club", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSession_EntranceCeremonyFlow(t *testing.T) {
	api := newTestAPI(t)
	v := api.createSession(t, nil)

	assert.Equal(t, "입학식", v.Template.Name)
	assert.Equal(t, "입학식", v.Meta.Name)
	assert.Equal(t, []string{"개식사", "국민의례", "학교장 환영사", "신입생 선서", "교가 제창", "폐식사"}, labels(v))

	rec := api.do(t, http.MethodPost, "/api/sessions/"+v.ID+"/items",
		map[string]any{"label": "기념촬영", "duration_minutes": 10, "detail": ""})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	v = decode[sessionView](t, rec)
	require.Len(t, v.Agenda, 7)

	rec = api.do(t, http.MethodDelete, "/api/sessions/"+v.ID+"/items/3", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	v = decode[sessionView](t, rec)

	assert.Equal(t, []string{"개식사", "국민의례", "신입생 선서", "교가 제창", "폐식사", "기념촬영"}, labels(v))
	for i, r := range v.Agenda {
		assert.Equal(t, i+1, r.Position)
	}
	assert.Equal(t, 10, v.Agenda[5].DurationMinutes)
	assert.Equal(t, 35, v.TotalMinutes)
}

func TestSession_UpdateItem(t *testing.T) {
	api := newTestAPI(t)
	v := api.createSession(t, map[string]string{"kind": "school", "name": "졸업식"})
	id := v.Agenda[2].ID

	rec := api.do(t, http.MethodPatch, "/api/sessions/"+v.ID+"/items/1",
		map[string]any{"field": "detail", "value": "사회자 단독"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Remove the first row, then edit by the ID captured before the removal.
	rec = api.do(t, http.MethodDelete, "/api/sessions/"+v.ID+"/items/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(t, http.MethodPatch, "/api/sessions/"+v.ID+"/items/"+itoa(id)+"?by=id",
		map[string]any{"field": "duration_minutes", "value": 15})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	v = decode[sessionView](t, rec)

	assert.Equal(t, "졸업장 수여", v.Agenda[1].Label)
	assert.Equal(t, 15, v.Agenda[1].DurationMinutes)

	// Empty labels are accepted while editing.
	rec = api.do(t, http.MethodPatch, "/api/sessions/"+v.ID+"/items/1",
		map[string]any{"field": "label", "value": ""})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSession_ItemErrors(t *testing.T) {
	api := newTestAPI(t)
	v := api.createSession(t, nil)
	base := "/api/sessions/" + v.ID + "/items"

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"blank label", http.MethodPost, base, map[string]any{"label": "  "}, http.StatusBadRequest, CodeValidation},
		{"zero duration", http.MethodPost, base, map[string]any{"label": "축사", "duration_minutes": 0}, http.StatusBadRequest, CodeValidation},
		{"out of range update", http.MethodPatch, base + "/7", map[string]any{"field": "label", "value": "x"}, http.StatusConflict, CodeIndexOutOfRange},
		{"position zero", http.MethodDelete, base + "/0", nil, http.StatusConflict, CodeIndexOutOfRange},
		{"out of range remove", http.MethodDelete, base + "/99", nil, http.StatusConflict, CodeIndexOutOfRange},
		{"bad reference", http.MethodDelete, base + "/first", nil, http.StatusBadRequest, CodeInvalidRequest},
		{"unknown field", http.MethodPatch, base + "/1", map[string]any{"field": "color", "value": "red"}, http.StatusBadRequest, CodeInvalidRequest},
		{"wrong value type", http.MethodPatch, base + "/1", map[string]any{"field": "duration_minutes", "value": "ten"}, http.StatusBadRequest, CodeValidation},
		{"unknown id", http.MethodDelete, base + "/12345?by=id", nil, http.StatusConflict, CodeIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			env := decode[ErrorEnvelope](t, rec)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}

	rec := api.do(t, http.MethodGet, "/api/sessions/"+v.ID, nil)
	assert.Len(t, decode[sessionView](t, rec).Agenda, 6, "failed requests must not change the agenda")
}

func TestSession_TemplateSwitch(t *testing.T) {
	api := newTestAPI(t)
	v := api.createSession(t, nil)
	path := "/api/sessions/" + v.ID

	api.do(t, http.MethodPost, path+"/items", map[string]any{"label": "기념촬영"})

	rec := api.do(t, http.MethodPut, path+"/template", map[string]string{"kind": "school", "name": "입학식"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[sessionView](t, rec).Agenda, 7, "same template keeps edits")

	rec = api.do(t, http.MethodPut, path+"/template", map[string]string{"kind": "office", "name": "교육청 학술대회"})
	require.Equal(t, http.StatusOK, rec.Code)
	v = decode[sessionView](t, rec)
	assert.Equal(t, domain.KindOffice, v.Meta.Kind)
	assert.Equal(t, "교육청 학술대회", v.Meta.Name)
	assert.Len(t, v.Agenda, 6)

	rec = api.do(t, http.MethodPut, path+"/template", map[string]string{"kind": "office", "name": "송년회"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSession_MetaAndGenerate(t *testing.T) {
	api := newTestAPI(t)
	v := api.createSession(t, map[string]string{"kind": "office", "name": "교육청 연수"})
	path := "/api/sessions/" + v.ID

	rec := api.do(t, http.MethodPut, path+"/meta", map[string]any{
		"date":          "2025-07-01",
		"location":      "대강당",
		"mc_count":      2,
		"vip_attendees": "교육감",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	v = decode[sessionView](t, rec)
	assert.Equal(t, "2025-07-01", v.Meta.Date)
	assert.Equal(t, 2, v.Meta.MCCount)

	rec = api.do(t, http.MethodPost, path+"/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decode[map[string]string](t, rec)
	assert.Equal(t, "사회자: 지금부터 행사를 시작하겠습니다.", out["text"])
	assert.Equal(t, "교육청 연수_시나리오.txt", out["file_name"])

	prompt := api.fake.Calls()[0].UserPrompt
	assert.Contains(t, prompt, "일시: 2025년 07월 01일")
	assert.Contains(t, prompt, "주요 참석자:\n교육감\n")
	assert.Contains(t, prompt, "사회자 2명이 번갈아가며")
}

func TestSession_MetaValidation(t *testing.T) {
	api := newTestAPI(t)
	v := api.createSession(t, nil)
	path := "/api/sessions/" + v.ID + "/meta"

	rec := api.do(t, http.MethodPut, path, map[string]any{"date": "07/01/2025"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPut, path, map[string]any{"mc_count": 3})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSession_GenerateValidation(t *testing.T) {
	api := newTestAPI(t)
	v := api.createSession(t, map[string]string{"kind": "school", "name": "직접 입력"})
	path := "/api/sessions/" + v.ID

	rec := api.do(t, http.MethodPost, path+"/generate", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode[ErrorEnvelope](t, rec)
	assert.Equal(t, "Name", env.Error.Field)
	assert.Equal(t, "행사명을 입력해주세요.", env.Error.Message)

	api.do(t, http.MethodPut, path+"/meta", map[string]any{"name": "학급 발표회"})
	rec = api.do(t, http.MethodPost, path+"/generate", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "agenda", decode[ErrorEnvelope](t, rec).Error.Field)

	assert.Equal(t, 0, api.fake.CallCount())
}

func TestSession_GenerateProviderError(t *testing.T) {
	api := newTestAPI(t)
	api.fake.Err = testutil.ProviderFailure(llm.CodeAuth)
	v := api.createSession(t, nil)

	rec := api.do(t, http.MethodPost, "/api/sessions/"+v.ID+"/generate", nil)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	env := decode[ErrorEnvelope](t, rec)
	assert.Equal(t, CodeProvider, env.Error.Code)
	assert.Equal(t, "시나리오 생성 중 오류가 발생했습니다.", env.Error.Message)

	rec = api.do(t, http.MethodGet, "/api/sessions/"+v.ID, nil)
	v = decode[sessionView](t, rec)
	assert.Len(t, v.Agenda, 6)
	assert.False(t, v.Busy)
}

func TestSession_BusyRejectsEdits(t *testing.T) {
	api := newTestAPI(t)
	v := api.createSession(t, nil)
	s, err := api.store.Get(v.ID)
	require.NoError(t, err)
	_, err = s.Begin()
	require.NoError(t, err)
	defer s.End()

	rec := api.do(t, http.MethodDelete, "/api/sessions/"+v.ID+"/items/1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, CodeBusy, decode[ErrorEnvelope](t, rec).Error.Code)

	rec = api.do(t, http.MethodPost, "/api/sessions/"+v.ID+"/generate", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/sessions/"+v.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[sessionView](t, rec).Busy)
}

func TestSession_NotFoundAndDelete(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/api/sessions/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	v := api.createSession(t, nil)
	rec = api.do(t, http.MethodDelete, "/api/sessions/"+v.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = api.do(t, http.MethodGet, "/api/sessions/"+v.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStoryTemplateDownload(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/story/template", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sheet.ContentType, rec.Header().Get("Content-Type"))
	_, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, sheet.TemplateFileName, params["filename"])

	problems, err := sheet.ReadColumn(bytes.NewReader(rec.Body.Bytes()), "t.xlsx", domain.ProblemColumn)
	require.NoError(t, err)
	assert.Equal(t, sheet.ExampleProblems, problems)
}

func upload(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/story", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestStoryGenerate(t *testing.T) {
	api := newTestAPI(t)
	api.fake.Responses = map[string]string{"수식: 5 + 7": "사탕 5개와 7개는 모두 몇 개일까요?"}
	api.fake.Default = "기본 문장제"

	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, upload(t, "3학년.csv", "문제\n5 + 7\n\n12 x 3\n"))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	_, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "3학년_문장제.xlsx", params["filename"])

	stories, err := sheet.ReadColumn(bytes.NewReader(rec.Body.Bytes()), "out.xlsx", domain.StoryColumn)
	require.NoError(t, err)
	assert.Equal(t, []string{"사탕 5개와 7개는 모두 몇 개일까요?", "", "기본 문장제"}, stories)
	assert.Equal(t, 2, api.fake.CallCount())
}

func TestStoryGenerate_Errors(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/story", nil)
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "파일을 업로드해주세요.", decode[ErrorEnvelope](t, rec).Error.Message)

	rec = httptest.NewRecorder()
	api.router.ServeHTTP(rec, upload(t, "x.csv", "수식\n5 + 7\n"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeValidation, decode[ErrorEnvelope](t, rec).Error.Code)

	rec = httptest.NewRecorder()
	api.router.ServeHTTP(rec, upload(t, "x.pdf", "%PDF"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	api.fake.Err = testutil.ProviderFailure(llm.CodeTimeout)
	rec = httptest.NewRecorder()
	api.router.ServeHTTP(rec, upload(t, "x.csv", "문제\n5 + 7\n"))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "문장제 생성 중 오류가 발생했습니다.", decode[ErrorEnvelope](t, rec).Error.Message)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.OPTIONS("/api/sessions", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodOptions, "/api/sessions", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, logs := testutil.NewObservedLogger()
	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/api/sessions/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/abc", nil))

	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/api/sessions/:id", fields["path"])
	assert.Equal(t, int64(http.StatusNotFound), fields["status"])
	assert.Equal(t, "abc", fields["session_id"])
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
