package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/producthouse/producthouse/internal/collab"
	"github.com/producthouse/producthouse/internal/domain"
	"github.com/producthouse/producthouse/internal/llm"
	"github.com/producthouse/producthouse/internal/repository"
	"github.com/producthouse/producthouse/internal/service"
	"github.com/producthouse/producthouse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubCompletions struct {
	response string
	err      error
}

func (s *stubCompletions) Complete(context.Context, llm.CompleteRequest) (*llm.CompleteResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompleteResponse{Content: s.response, Model: "stub", StopReason: "end_turn"}, nil
}

func (s *stubCompletions) GenerateMasterplan(context.Context, []llm.Message, string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type fixture struct {
	server *Server
	plans  repository.MasterplanRepo
}

func newFixture(t *testing.T, completions llm.Client) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	plans := repository.NewSQLiteMasterplanRepo(database)
	versions := repository.NewSQLiteVersionRepo(database)
	commentRepo := repository.NewSQLiteCommentRepo(database)
	uow := testutil.NewTestUoW(database)

	srv, err := NewServer(Config{Host: "127.0.0.1", Port: 0}, zaptest.NewLogger(t),
		service.NewMasterplanService(plans, completions),
		service.NewCollabService(plans, versions, completions, uow, collab.DefaultVersionPolicy()),
		service.NewCommentService(plans, commentRepo),
		completions,
	)
	require.NoError(t, err)
	return &fixture{server: srv, plans: plans}
}

func (f *fixture) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody *strings.Reader
	if body == "" {
		reqBody = strings.NewReader("")
	} else {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reqBody)
	if body != "" {
		req.Header.Set(echoHeaderContentType, "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

const echoHeaderContentType = "Content-Type"

var authHeaders = map[string]string{
	"X-User-Id":   "user-1",
	"X-User-Name": "Ada",
}

func (f *fixture) seedPlan(t *testing.T, title string) *domain.Masterplan {
	t.Helper()
	plan := testutil.NewTestMasterplan(title)
	require.NoError(t, f.plans.Create(context.Background(), plan))
	return plan
}

func TestServer_Health(t *testing.T) {
	f := newFixture(t, &stubCompletions{})
	rec := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_Complete(t *testing.T) {
	f := newFixture(t, &stubCompletions{response: "hello"})

	rec := f.do(t, http.MethodPost, "/api/complete",
		`{"messages":[{"role":"user","content":"hi"}]}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp completeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "hello", resp.Content)
}

func TestServer_Complete_EmptyMessages(t *testing.T) {
	f := newFixture(t, &stubCompletions{})
	rec := f.do(t, http.MethodPost, "/api/complete", `{"messages":[]}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Complete_UpstreamFailure(t *testing.T) {
	f := newFixture(t, &stubCompletions{err: &llm.UpstreamServiceError{StatusCode: 500, Message: "overloaded"}})
	rec := f.do(t, http.MethodPost, "/api/complete",
		`{"messages":[{"role":"user","content":"hi"}]}`, nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestServer_GenerateMasterplan(t *testing.T) {
	f := newFixture(t, &stubCompletions{response: "# Overview\nAn app.\n## Core Features\n- One\n"})

	rec := f.do(t, http.MethodPost, "/api/masterplans",
		`{"conversationId":"conv-1","title":"My App","messages":[{"role":"user","content":"build it"}]}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var mp domain.Masterplan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mp))
	assert.Equal(t, "My App", mp.Title)
	assert.Equal(t, "1.0", mp.Version)
	assert.Len(t, mp.Sections, 2)
}

func TestServer_GenerateMasterplan_UnknownFormat(t *testing.T) {
	f := newFixture(t, &stubCompletions{response: "# H\n"})
	rec := f.do(t, http.MethodPost, "/api/masterplans",
		`{"messages":[{"role":"user","content":"x"}],"formats":["docx"]}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_GetMasterplan_NotFound(t *testing.T) {
	f := newFixture(t, &stubCompletions{})
	rec := f.do(t, http.MethodGet, "/api/masterplans/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ListMasterplans_ByConversation(t *testing.T) {
	f := newFixture(t, &stubCompletions{})
	plan := f.seedPlan(t, "Scoped")

	rec := f.do(t, http.MethodGet, "/api/masterplans?conversationId="+plan.ConversationID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []domain.Masterplan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, plan.ID, list[0].ID)

	rec = f.do(t, http.MethodGet, "/api/masterplans?conversationId=other", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestServer_DeleteMasterplan(t *testing.T) {
	f := newFixture(t, &stubCompletions{})
	plan := f.seedPlan(t, "Deleted")

	rec := f.do(t, http.MethodDelete, "/api/masterplans/"+plan.ID, "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/masterplans/"+plan.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Export(t *testing.T) {
	f := newFixture(t, &stubCompletions{})
	plan := f.seedPlan(t, "Exported Plan")

	rec := f.do(t, http.MethodGet, "/api/masterplans/"+plan.ID+"/export/markdown", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/markdown")
	assert.Equal(t, `attachment; filename="exported-plan.md"`, rec.Header().Get("Content-Disposition"))

	rec = f.do(t, http.MethodGet, "/api/masterplans/"+plan.ID+"/export/docx", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_SaveVersion(t *testing.T) {
	f := newFixture(t, &stubCompletions{})
	plan := f.seedPlan(t, "Versioned")

	body := `{"sections":[
		{"id":"section-1","title":"Overview","level":1,"content":"changed"},
		{"id":"section-2","title":"Core Features","level":2,"content":"- Feature one\n- Feature two"}
	]}`
	rec := f.do(t, http.MethodPost, "/api/masterplans/"+plan.ID+"/versions", body, authHeaders)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp saveVersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "1.1", resp.Masterplan.Version)
	require.NotNil(t, resp.Version)
	require.Len(t, resp.Version.Changes, 1)
	assert.Equal(t, "section-1", resp.Version.Changes[0].SectionID)
}

func TestServer_SaveVersion_RequiresIdentity(t *testing.T) {
	f := newFixture(t, &stubCompletions{})
	plan := f.seedPlan(t, "Guarded")

	rec := f.do(t, http.MethodPost, "/api/masterplans/"+plan.ID+"/versions", `{"sections":[]}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_VersionHistoryAndRestore(t *testing.T) {
	f := newFixture(t, &stubCompletions{})
	plan := f.seedPlan(t, "Restored")

	body := `{"sections":[
		{"id":"section-1","title":"Overview","level":1,"content":"v2 content"},
		{"id":"section-2","title":"Core Features","level":2,"content":"- Feature one\n- Feature two"}
	]}`
	rec := f.do(t, http.MethodPost, "/api/masterplans/"+plan.ID+"/versions", body, authHeaders)
	require.Equal(t, http.StatusCreated, rec.Code)
	var saved saveVersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))

	rec = f.do(t, http.MethodGet, "/api/masterplans/"+plan.ID+"/versions", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []domain.Version
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 1)

	rec = f.do(t, http.MethodGet, "/api/masterplans/"+plan.ID+"/versions/"+saved.Version.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail versionDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Len(t, detail.Previews, 1)
	assert.Contains(t, detail.Previews[0].Diff, "+v2 content")

	rec = f.do(t, http.MethodPost,
		"/api/masterplans/"+plan.ID+"/versions/"+saved.Version.ID+"/restore", "", authHeaders)
	require.Equal(t, http.StatusOK, rec.Code)
	var restored domain.Masterplan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &restored))
	// Restore takes the target's version string and leaves history alone.
	assert.Equal(t, "1.1", restored.Version)
	assert.Equal(t, "v2 content", restored.Sections[0].Content)

	rec = f.do(t, http.MethodGet, "/api/masterplans/"+plan.ID+"/versions", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Len(t, history, 1)
}

func TestServer_RefineSection(t *testing.T) {
	f := newFixture(t, &stubCompletions{response: "refined content"})
	plan := f.seedPlan(t, "Refined")

	rec := f.do(t, http.MethodPost, "/api/masterplans/"+plan.ID+"/refine",
		`{"sectionId":"section-1","instruction":"tighten"}`, authHeaders)
	require.Equal(t, http.StatusOK, rec.Code)

	var mp domain.Masterplan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mp))
	assert.Equal(t, "refined content", mp.Sections[0].Content)
}

func TestServer_ReviewFlow(t *testing.T) {
	response := strings.Join([]string{
		"SECTION_ID: section-1",
		"SECTION_TITLE: Overview",
		"SUGGESTED_CONTENT:",
		"reviewed overview",
		"END_SECTION",
	}, "\n")
	f := newFixture(t, &stubCompletions{response: response})
	plan := f.seedPlan(t, "Reviewed")

	rec := f.do(t, http.MethodPost, "/api/masterplans/"+plan.ID+"/review",
		`{"prompt":"clarity"}`, authHeaders)
	require.Equal(t, http.StatusOK, rec.Code)
	var session collab.ReviewSession
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.Len(t, session.Suggestions, 1)

	sessionJSON, err := json.Marshal(session)
	require.NoError(t, err)
	rec = f.do(t, http.MethodPost, "/api/masterplans/"+plan.ID+"/review/apply",
		`{"session":`+string(sessionJSON)+`}`, authHeaders)
	require.Equal(t, http.StatusOK, rec.Code)

	var mp domain.Masterplan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mp))
	assert.Equal(t, "reviewed overview", mp.Sections[0].Content)
}

func TestServer_ApplyReview_MismatchedSession(t *testing.T) {
	f := newFixture(t, &stubCompletions{})
	plan := f.seedPlan(t, "Mismatched")

	rec := f.do(t, http.MethodPost, "/api/masterplans/"+plan.ID+"/review/apply",
		`{"session":{"masterplanId":"other","prompt":"","suggestions":[]}}`, authHeaders)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Comments(t *testing.T) {
	f := newFixture(t, &stubCompletions{})
	plan := f.seedPlan(t, "Commented")

	rec := f.do(t, http.MethodPost, "/api/masterplans/"+plan.ID+"/comments",
		`{"sectionId":"section-1","content":"needs work @bob","category":"modification"}`, authHeaders)
	require.Equal(t, http.StatusCreated, rec.Code)
	var comment domain.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comment))
	assert.Equal(t, []string{"bob"}, comment.Mentions)

	rec = f.do(t, http.MethodGet, "/api/masterplans/"+plan.ID+"/comments?sectionId=section-1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []domain.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = f.do(t, http.MethodPut, "/api/comments/"+comment.ID,
		`{"content":"resolved","category":"technical"}`, authHeaders)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/comments/"+comment.ID, "", authHeaders)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestServer_Comments_RequireIdentity(t *testing.T) {
	f := newFixture(t, &stubCompletions{})
	plan := f.seedPlan(t, "Anonymous")

	rec := f.do(t, http.MethodPost, "/api/masterplans/"+plan.ID+"/comments",
		`{"sectionId":"section-1","content":"hi","category":"risk"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_Comments_InvalidCategory(t *testing.T) {
	f := newFixture(t, &stubCompletions{})
	plan := f.seedPlan(t, "Strict")

	rec := f.do(t, http.MethodPost, "/api/masterplans/"+plan.ID+"/comments",
		`{"sectionId":"section-1","content":"hi","category":"praise"}`, authHeaders)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
