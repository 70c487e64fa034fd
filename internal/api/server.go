package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/campuscalm/brain/internal/engine"
	"github.com/campuscalm/brain/internal/events"
)

type Server struct {
	router    *chi.Mux
	port      int
	engine    *engine.Engine
	publisher *events.Publisher
	logger    *slog.Logger
}

// NewServer wires the chat routes. publisher may be nil when no broker is
// configured; fan-out is skipped in that case.
func NewServer(port int, apiToken string, eng *engine.Engine, publisher *events.Publisher, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:    router,
		port:      port,
		engine:    eng,
		publisher: publisher,
		logger:    logger,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/brain/status", s.status)
	router.With(BearerAuthMiddleware(apiToken)).Post("/api/v1/chat", s.chat)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "brain",
		"status":  "ready",
	})
}

// ChatRequest is the widget's message payload.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse mirrors what the widget renders: the reply text, the resolved
// emotional category (null when none) and zero or one micro-interventions.
type ChatResponse struct {
	Reply         string             `json:"reply"`
	Category      *string            `json:"category"`
	Emoji         *string            `json:"emoji"`
	Interventions []InterventionView `json:"micro_interventions"`
}

type InterventionView struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.Header.Get("X-User-ID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing or invalid X-User-ID header")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.engine.HandleMessage(r.Context(), userID, req.Message, localeSignal(r))
	switch {
	case err == nil:
	case err == engine.ErrEmptyMessage:
		writeError(w, http.StatusBadRequest, "message is required")
		return
	case err == engine.ErrMessageTooLong:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("message exceeds %d characters", engine.MaxMessageLen))
		return
	default:
		s.logger.Error("chat turn failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.fanOut(userID, res)
	writeJSON(w, http.StatusOK, toChatResponse(res))
}

func (s *Server) fanOut(userID uuid.UUID, res engine.Result) {
	if s.publisher == nil {
		return
	}
	s.publisher.TurnHandled(userID, res.CategorySlug, res.Locale, s.engine.Now())
	if t := res.CreatedTask; t != nil {
		s.publisher.TaskCreated(t.ID, userID, t.Title, t.When)
	}
	if e := res.CreatedEvent; e != nil {
		s.publisher.EventCreated(e.ID, userID, e.Title, e.EventType, e.When)
	}
	if n := res.CreatedNote; n != nil {
		s.publisher.NotificationCreated(n.ID, userID, n.Title, n.Link)
	}
}

// localeSignal prefers the gateway header, falling back to the widget's
// locale cookie.
func localeSignal(r *http.Request) string {
	if v := r.Header.Get("X-Locale"); v != "" {
		return v
	}
	if c, err := r.Cookie("locale"); err == nil {
		return c.Value
	}
	return ""
}

func toChatResponse(res engine.Result) ChatResponse {
	out := ChatResponse{
		Reply:         res.Reply,
		Interventions: []InterventionView{},
	}
	if res.CategorySlug != "" {
		slug := res.CategorySlug
		out.Category = &slug
	}
	if res.Emoji != "" {
		emoji := res.Emoji
		out.Emoji = &emoji
	}
	for _, iv := range res.Interventions {
		out.Interventions = append(out.Interventions, InterventionView{Name: iv.Name, Text: iv.Text})
	}
	return out
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
