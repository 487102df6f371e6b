// internal/server/server.go

// Package server is the HTTP presentation adapter. It validates the caller,
// runs the turn through the processor, and marshals the typed response; no
// rendering logic lives here.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/finassist/internal/assist"
	"github.com/user/finassist/internal/session"
	"github.com/user/finassist/internal/store"
)

type Server struct {
	store     *store.Store
	processor *assist.Processor
	welcome   *session.Generator
	router    chi.Router
}

func New(st *store.Store, processor *assist.Processor, welcome *session.Generator) *Server {
	s := &Server{
		store:     st,
		processor: processor,
		welcome:   welcome,
		router:    chi.NewRouter(),
	}
	s.router.Get("/health", s.handleHealth)
	s.router.Post("/chat", s.handleChat)
	s.router.Get("/api/welcome", s.handleWelcome)
	s.router.Get("/api/context", s.handleContext)
	s.router.Get("/api/users", s.handleUsers)
	s.router.Get("/api/actions", s.handleActions)
	s.router.Get("/api/tickets", s.handleTickets)
	s.router.Get("/api/conversations", s.handleConversations)
	return s
}

// ServeHTTP delegates to the internal router, implementing http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requireUser reads the user_id query parameter and checks it against the
// user collection.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return "", false
	}
	if _, ok := s.store.UserByID(userID); !ok {
		writeError(w, http.StatusNotFound, "unknown user")
		return "", false
	}
	return userID, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.UserID == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "user_id and message are required")
		return
	}
	if _, ok := s.store.UserByID(req.UserID); !ok {
		writeError(w, http.StatusNotFound, "unknown user")
		return
	}

	resp, err := s.processor.ProcessTurn(r.Context(), req.UserID, req.Message)
	if err != nil {
		slog.Error("chat turn failed", "user", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.welcome.WelcomeMessage(userID))
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": s.welcome.ContextSummary(userID)})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.AllUsers())
}

func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.store.AllowedActions(userID))
}

func (s *Server) handleTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	status := r.URL.Query().Get("status")
	writeJSON(w, http.StatusOK, s.store.SupportTickets(userID, status))
}

func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.store.Conversations(userID))
}
