package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campuscalm/brain/internal/concierge"
	"github.com/campuscalm/brain/internal/content"
	"github.com/campuscalm/brain/internal/engine"
)

// fakeStore backs every engine port in memory.
type fakeStore struct {
	interactions  []engine.Interaction
	pendings      map[uuid.UUID]*concierge.PendingAction
	tasks         []concierge.Task
	events        []concierge.Event
	notifications []concierge.Notification
	session       map[uuid.UUID]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		pendings: make(map[uuid.UUID]*concierge.PendingAction),
		session:  make(map[uuid.UUID]string),
	}
}

func (f *fakeStore) Append(ctx context.Context, in engine.Interaction) error {
	f.interactions = append(f.interactions, in)
	return nil
}

func (f *fakeStore) Recent(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]engine.Interaction, error) {
	var out []engine.Interaction
	for i := len(f.interactions) - 1; i >= 0 && len(out) < limit; i-- {
		if f.interactions[i].UserID == userID {
			out = append(out, f.interactions[i])
		}
	}
	return out, nil
}

func (f *fakeStore) LastReply(ctx context.Context, userID uuid.UUID) (string, error) {
	for i := len(f.interactions) - 1; i >= 0; i-- {
		if f.interactions[i].UserID == userID {
			return f.interactions[i].Reply, nil
		}
	}
	return "", nil
}

func (f *fakeStore) LastInterventionName(ctx context.Context, userID uuid.UUID) (string, error) {
	return f.session[userID], nil
}

func (f *fakeStore) SetLastInterventionName(ctx context.Context, userID uuid.UUID, name string) error {
	f.session[userID] = name
	return nil
}

func (f *fakeStore) Get(ctx context.Context, userID uuid.UUID) (*concierge.PendingAction, error) {
	pa, ok := f.pendings[userID]
	if !ok {
		return nil, nil
	}
	cp := *pa
	return &cp, nil
}

func (f *fakeStore) Put(ctx context.Context, pa *concierge.PendingAction) error {
	cp := *pa
	f.pendings[pa.UserID] = &cp
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, userID uuid.UUID) error {
	delete(f.pendings, userID)
	return nil
}

func (f *fakeStore) CreateTask(ctx context.Context, t concierge.Task) error {
	f.tasks = append(f.tasks, t)
	return nil
}

func (f *fakeStore) CreateEvent(ctx context.Context, e concierge.Event) error {
	f.events = append(f.events, e)
	return nil
}

func (f *fakeStore) RecentTaskExists(ctx context.Context, userID uuid.UUID, title string, since time.Time) (bool, error) {
	return false, nil
}

func (f *fakeStore) RecentEventExists(ctx context.Context, userID uuid.UUID, title string, startAt time.Time, since time.Time) (bool, error) {
	return false, nil
}

func (f *fakeStore) CreateNotification(ctx context.Context, n concierge.Notification) error {
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeStore) RecentNotificationExists(ctx context.Context, userID uuid.UUID, title string, since time.Time) (bool, error) {
	return false, nil
}

func newTestServer(t *testing.T, apiToken string) *Server {
	t.Helper()
	pack, err := content.DefaultPack()
	if err != nil {
		t.Fatalf("load content pack: %v", err)
	}
	repo := content.NewMemoryRepository(pack)
	store := newFakeStore()
	logger := slog.Default()
	conc := concierge.New(store, store, store, concierge.Config{}, nil, logger)
	eng := engine.New(repo, store, store, conc, engine.DefaultSettings(), func(n int) int { return 0 }, nil, logger)
	return NewServer(8780, apiToken, eng, nil, logger)
}

func postChat(srv *Server, token, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/v1/chat", strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestStatusEndpoint(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest("GET", "/api/v1/brain/status", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["service"] != "brain" {
		t.Errorf("expected service brain, got %q", body["service"])
	}
}

func TestChatRequiresBearerToken(t *testing.T) {
	srv := newTestServer(t, "sekrit")

	w := postChat(srv, "", uuid.NewString(), `{"message":"oi"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", w.Code)
	}

	w = postChat(srv, "wrong", uuid.NewString(), `{"message":"oi"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: expected 401, got %d", w.Code)
	}

	w = postChat(srv, "sekrit", uuid.NewString(), `{"message":"oi"}`)
	if w.Code != http.StatusOK {
		t.Errorf("good token: expected 200, got %d", w.Code)
	}
}

func TestChatRejectsBadInput(t *testing.T) {
	srv := newTestServer(t, "")

	if w := postChat(srv, "", "", `{"message":"oi"}`); w.Code != http.StatusBadRequest {
		t.Errorf("missing user header: expected 400, got %d", w.Code)
	}
	if w := postChat(srv, "", "not-a-uuid", `{"message":"oi"}`); w.Code != http.StatusBadRequest {
		t.Errorf("bad user header: expected 400, got %d", w.Code)
	}
	if w := postChat(srv, "", uuid.NewString(), `{"message"`); w.Code != http.StatusBadRequest {
		t.Errorf("bad JSON: expected 400, got %d", w.Code)
	}
	if w := postChat(srv, "", uuid.NewString(), `{"message":"   "}`); w.Code != http.StatusBadRequest {
		t.Errorf("blank message: expected 400, got %d", w.Code)
	}
	long := strings.Repeat("a", engine.MaxMessageLen+1)
	if w := postChat(srv, "", uuid.NewString(), `{"message":"`+long+`"}`); w.Code != http.StatusBadRequest {
		t.Errorf("oversized message: expected 400, got %d", w.Code)
	}
}

func TestChatClassifiesAndShapesResponse(t *testing.T) {
	srv := newTestServer(t, "")

	w := postChat(srv, "", uuid.NewString(), `{"message":"estou muito ansioso com as provas"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body ChatResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Reply == "" {
		t.Error("expected a non-empty reply")
	}
	if body.Category == nil || *body.Category != "estresse" {
		t.Errorf("expected category estresse, got %v", body.Category)
	}
	if body.Emoji == nil || *body.Emoji == "" {
		t.Error("expected an emoji for a classified turn")
	}
	if len(body.Interventions) != 1 {
		t.Errorf("expected one micro-intervention, got %d", len(body.Interventions))
	}
}

func TestChatUnclassifiedReturnsNullCategory(t *testing.T) {
	srv := newTestServer(t, "")

	w := postChat(srv, "", uuid.NewString(), `{"message":"qwerty zxcvb asdfgh"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body ChatResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Category != nil {
		t.Errorf("expected null category, got %q", *body.Category)
	}
	if body.Interventions == nil {
		t.Error("expected micro_interventions to serialize as an empty array")
	}
}

func TestChatLocaleCookie(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest("POST", "/api/v1/chat", strings.NewReader(`{"message":"qwerty zxcvb asdfgh"}`))
	req.Header.Set("X-User-ID", uuid.NewString())
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "locale", Value: "en"})
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body ChatResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Reply != "I'm here with you. Want to tell me a bit more about it?" {
		t.Errorf("expected the English fallback, got %q", body.Reply)
	}
}

func TestNotFoundEndpoint(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest("GET", "/nonexistent", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
