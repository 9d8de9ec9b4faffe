package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"ai-support-companion/internal/domain"
	"ai-support-companion/internal/infra/logging"
	"ai-support-companion/internal/usecase"
)

// Server exposes the support pipeline over HTTP.
type Server struct {
	uc      usecase.SupportUseCase
	timeout time.Duration
	log     *zerolog.Logger
}

func NewServer(uc usecase.SupportUseCase, requestTimeout time.Duration, logger *zerolog.Logger) *Server {
	if requestTimeout <= 0 {
		requestTimeout = 60 * time.Second
	}
	return &Server{uc: uc, timeout: requestTimeout, log: logger}
}

// Handler builds the router with the guard chain applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/v1/messages", s.handleMessage)
	r.Delete("/api/v1/sessions/{id}", s.handleClear)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return Chain(r,
		TraceID(),
		RequestLog(s.log),
		Recover(s.log),
		MaxBody(64<<10),
		Timeout(s.timeout),
	)
}

type messageRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
	Language  string `json:"language,omitempty"`
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	ctx := logging.WithSessID(r.Context(), req.SessionID)
	reply, err := s.uc.ProcessMessage(ctx, req.SessionID, req.Text, req.Language)
	if err != nil {
		s.writeUCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "session id is required")
		return
	}
	if err := s.uc.ClearSession(logging.WithSessID(r.Context(), id), id); err != nil {
		s.writeUCError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeUCError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyMessage), errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case r.Context().Err() != nil:
		writeError(w, http.StatusGatewayTimeout, "request timed out")
	default:
		l := logging.With(r.Context(), s.log)
		l.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
