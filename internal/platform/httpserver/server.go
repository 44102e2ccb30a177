package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	doodlepoll "doodle/contexts/community-scheduling/doodle-poll"
	doodleerrors "doodle/contexts/community-scheduling/doodle-poll/domain/errors"
	doodlehttp "doodle/contexts/community-scheduling/doodle-poll/transport/http"
	_ "doodle/internal/platform/httpserver/docs"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

const maxRequestBody = 1 << 20

type Server struct {
	mux     *http.ServeMux
	handler http.Handler
	logger  *slog.Logger
	addr    string
	doodle  doodlepoll.Module
	srv     *http.Server
}

// New builds the server. allowedOrigins feeds CORS for pages embedding the
// poll; empty means any origin.
func New(doodle doodlepoll.Module, logger *slog.Logger, addr string, allowedOrigins []string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		doodle: doodle,
	}
	s.registerRoutes()
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	s.handler = cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(s.mux)
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("POST /v1/doodle/render", s.handleRenderPoll)
	s.mux.HandleFunc("GET /v1/doodle/polls/{storage_key}/votes", s.handleGetVoteSet)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRenderPoll godoc
// @Summary Render a poll, applying at most one submitted vote
// @Tags doodle
// @Accept json
// @Produce json
// @Param request body doodlehttp.RenderPollRequest true "poll and optional vote"
// @Success 200 {object} doodlehttp.PollResponse
// @Failure 400 {object} doodlehttp.ErrorResponse
// @Failure 503 {object} doodlehttp.ErrorResponse
// @Router /v1/doodle/render [post]
func (s *Server) handleRenderPoll(w http.ResponseWriter, r *http.Request) {
	var req doodlehttp.RenderPollRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeDoodleError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.doodle.Handler.RenderPollHandler(r.Context(), req, resolveClientIP(r))
	if err != nil {
		s.writeDoodleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetVoteSet godoc
// @Summary List the stored votes of a poll
// @Tags doodle
// @Produce json
// @Param storage_key path string true "poll storage key"
// @Param sorted_by query string false "name or time"
// @Success 200 {object} doodlehttp.VoteSetResponse
// @Failure 503 {object} doodlehttp.ErrorResponse
// @Router /v1/doodle/polls/{storage_key}/votes [get]
func (s *Server) handleGetVoteSet(w http.ResponseWriter, r *http.Request) {
	resp, err := s.doodle.Handler.VoteSetHandler(
		r.Context(),
		r.PathValue("storage_key"),
		r.URL.Query().Get("sorted_by"),
	)
	if err != nil {
		s.writeDoodleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeDoodleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, doodleerrors.ErrConfig):
		writeDoodleError(w, http.StatusBadRequest, "invalid_poll_config", err.Error())
	case errors.Is(err, doodleerrors.ErrInvalidPollMarkup):
		writeDoodleError(w, http.StatusBadRequest, "invalid_poll_markup", err.Error())
	case errors.Is(err, doodleerrors.ErrStorage), errors.Is(err, doodleerrors.ErrUnsupportedFormat):
		writeDoodleError(w, http.StatusServiceUnavailable, "storage_unavailable", "vote storage is unavailable")
	default:
		s.logger.Error("unhandled doodle error",
			"event", "http_doodle_unhandled_error",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"path", r.URL.Path,
			"error", err.Error(),
		)
		writeDoodleError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeDoodleError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, doodlehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// resolveClientIP prefers the first X-Forwarded-For hop.
func resolveClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
