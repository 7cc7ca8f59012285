package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/producthouse/producthouse/internal/collab"
	"github.com/producthouse/producthouse/internal/domain"
	"github.com/producthouse/producthouse/internal/llm"
	"github.com/producthouse/producthouse/internal/repository"
	"github.com/producthouse/producthouse/internal/testutil"
	"github.com/stretchr/testify/require"
)

// fakeCompletions is a canned llm.Client. It records the last request so
// tests can assert on prompt construction.
type fakeCompletions struct {
	response    string
	err         error
	lastRequest *llm.CompleteRequest

	generateResponse string
	lastMessages     []llm.Message
	lastSystemPrompt string
}

func (f *fakeCompletions) Complete(_ context.Context, req llm.CompleteRequest) (*llm.CompleteResponse, error) {
	f.lastRequest = &req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompleteResponse{Content: f.response, Model: "fake", StopReason: "end_turn"}, nil
}

func (f *fakeCompletions) GenerateMasterplan(_ context.Context, messages []llm.Message, systemPrompt string) (string, error) {
	f.lastMessages = messages
	f.lastSystemPrompt = systemPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.generateResponse, nil
}

var testUser = domain.User{ID: "user-1", Name: "Ada"}

func newCollabFixture(t *testing.T, completions llm.Client) (*sql.DB, CollabService, repository.MasterplanRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	plans := repository.NewSQLiteMasterplanRepo(database)
	versions := repository.NewSQLiteVersionRepo(database)
	svc := NewCollabService(plans, versions, completions, testutil.NewTestUoW(database), collab.DefaultVersionPolicy())
	return database, svc, plans
}

func mustCreatePlan(t *testing.T, plans repository.MasterplanRepo, mp *domain.Masterplan) {
	t.Helper()
	require.NoError(t, plans.Create(context.Background(), mp))
}
