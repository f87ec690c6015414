package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	controller "github.com/secmon-lab/mnemosyne/pkg/controller/http"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/repository/memory"
	"github.com/secmon-lab/mnemosyne/pkg/service/memstore"
	"github.com/secmon-lab/mnemosyne/pkg/service/ratelimit"
	"github.com/secmon-lab/mnemosyne/pkg/usecase"
)

// stubCoach answers with canned responses, no LLM behind it
type stubCoach struct {
	reply string
}

func (c *stubCoach) Reply(ctx context.Context, doc *model.MemoryDocument, message string) (string, error) {
	return c.reply, nil
}

func (c *stubCoach) AnalyzeMood(ctx context.Context, text string) (*model.MoodAnalysis, error) {
	return &model.MoodAnalysis{Emotion: "content", Intensity: 5}, nil
}

func (c *stubCoach) SuggestActions(ctx context.Context, events []model.LifeEvent) ([]model.ActionItem, error) {
	return []model.ActionItem{
		{Title: "Plan the week", Priority: "medium", Category: "productivity"},
	}, nil
}

func (c *stubCoach) Insights(ctx context.Context, report *model.ProgressReport, moods []model.MoodEntry) ([]model.Insight, error) {
	return nil, nil
}

func newTestServer(t *testing.T, opts ...controller.Options) *controller.Server {
	t.Helper()
	store := memstore.New(memory.New())
	uc := usecase.New(store, &stubCoach{reply: "you are doing fine"})
	return controller.New(uc, opts...)
}

func postJSON(t *testing.T, srv *controller.Server, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	gt.NoError(t, err).Required()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func getPath(t *testing.T, srv *controller.Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	w := getPath(t, srv, "/api/health")
	gt.Value(t, w.Code).Equal(http.StatusOK)
}

func TestChatEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/api/chat", map[string]string{"message": "went for a run"}, nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)

	var resp map[string]string
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp)).Required()
	gt.Value(t, resp["response"]).Equal("you are doing fine")

	mem := getPath(t, srv, "/api/memory")
	gt.Value(t, mem.Code).Equal(http.StatusOK)

	var doc model.MemoryDocument
	gt.NoError(t, json.Unmarshal(mem.Body.Bytes(), &doc)).Required()
	gt.Array(t, doc.LifeEvents).Length(1)
	gt.Value(t, doc.LifeEvents[0].Text).Equal("went for a run")
}

func TestChatEmptyMessageIsBadRequest(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/api/chat", map[string]string{"message": ""}, nil)
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)

	var resp map[string]string
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp)).Required()
	gt.String(t, resp["error"]).NotEqual("")
}

func TestInvalidUserHeaderIsBadRequest(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/api/chat", map[string]string{"message": "hi"},
		map[string]string{controller.UserIDHeader: "no spaces allowed"})
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
}

func TestUsersAreIsolatedByHeader(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/api/chat", map[string]string{"message": "first entry"},
		map[string]string{controller.UserIDHeader: "alice"})
	gt.Value(t, w.Code).Equal(http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/api/memory", nil)
	req.Header.Set(controller.UserIDHeader, "bob")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var doc model.MemoryDocument
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc)).Required()
	gt.Array(t, doc.LifeEvents).Length(0)
}

func TestGoalEndpoints(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/api/goals", map[string]string{"text": "run a marathon", "category": "fitness"}, nil)
	gt.Value(t, w.Code).Equal(http.StatusCreated)

	var goal model.Goal
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &goal)).Required()
	gt.Value(t, goal.ID).Equal(int64(1))
	gt.Value(t, goal.Category).Equal("fitness")

	w = postJSON(t, srv, "/api/goals/1/progress", map[string]int{"progress": 250}, nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &goal)).Required()
	gt.Value(t, goal.Progress).Equal(100)

	w = postJSON(t, srv, "/api/goals/1/complete", nil, nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)

	w = postJSON(t, srv, "/api/goals/99/complete", nil, nil)
	gt.Value(t, w.Code).Equal(http.StatusNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/api/goals/1", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	w = postJSON(t, srv, "/api/goals/abc/complete", nil, nil)
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
}

func TestHabitEndpoints(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/api/habits", map[string]string{"name": "meditate", "frequency": "weekly"}, nil)
	gt.Value(t, w.Code).Equal(http.StatusCreated)

	var habit model.Habit
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &habit)).Required()
	gt.Value(t, string(habit.Frequency)).Equal("weekly")

	w = postJSON(t, srv, "/api/habits/1/checkin", nil, nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &habit)).Required()
	gt.Value(t, habit.CurrentStreak).Equal(1)

	// same-day check-in stays idempotent
	w = postJSON(t, srv, "/api/habits/1/checkin", nil, nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &habit)).Required()
	gt.Value(t, habit.TotalCompletions).Equal(1)
}

func TestMoodEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/api/mood", map[string]string{"text": "feeling pretty good"}, nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)

	var entry model.MoodEntry
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry)).Required()
	gt.Value(t, entry.Emotion).Equal("content")
}

func TestActionItemsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := getPath(t, srv, "/api/action-items")
	gt.Value(t, w.Code).Equal(http.StatusOK)

	var resp struct {
		ActionItems []model.ActionItem `json:"action_items"`
	}
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp)).Required()
	gt.Array(t, resp.ActionItems).Length(1)
}

func TestExportEndpoint(t *testing.T) {
	srv := newTestServer(t)

	postJSON(t, srv, "/api/chat", map[string]string{"message": "logged something"}, nil)

	w := getPath(t, srv, "/api/export")
	gt.Value(t, w.Code).Equal(http.StatusOK)

	var bundle model.ExportBundle
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &bundle)).Required()
	gt.String(t, string(bundle.ExportID)).NotEqual("")
	gt.Value(t, bundle.Summary.TotalEvents).Equal(1)
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := ratelimit.New(ratelimit.WithLimit(3), ratelimit.WithWindow(time.Minute))
	srv := newTestServer(t, controller.WithRateLimiter(limiter))

	for i := 0; i < 3; i++ {
		w := getPath(t, srv, "/api/memory")
		gt.Value(t, w.Code).Equal(http.StatusOK)
	}

	w := getPath(t, srv, "/api/memory")
	gt.Value(t, w.Code).Equal(http.StatusTooManyRequests)

	// health is not throttled
	h := getPath(t, srv, "/api/health")
	gt.Value(t, h.Code).Equal(http.StatusOK)
}
