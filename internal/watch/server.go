package watch

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/report"
)

// NewRouter serves the latest check status:
//
//	GET /healthz   liveness and the last outcome
//	GET /report    latest report (?format=text for plain text)
//	GET /tree      latest navigation tree as JSON
//
// metricsHandler is mounted at metricsPath when non-nil.
func NewRouter(state *State, metricsHandler http.Handler, metricsPath string) chi.Router {
	h := &handlers{state: state, errors: ferrors.NewHTTPErrorAdapter(nil)}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)

	router.Get("/healthz", h.health)
	router.Get("/report", h.report)
	router.Get("/tree", h.tree)
	if metricsHandler != nil {
		router.Handle(metricsPath, metricsHandler)
	}
	return router
}

type handlers struct {
	state  *State
	errors *ferrors.HTTPErrorAdapter
}

type healthResponse struct {
	Status    string     `json:"status"`
	Runs      int        `json:"runs"`
	RunID     string     `json:"run_id,omitempty"`
	Outcome   string     `json:"outcome,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Error     string     `json:"error,omitempty"`
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	st := h.state.Load()
	resp := healthResponse{Status: "ok", Runs: st.Runs}
	if st.Runs == 0 {
		resp.Status = "starting"
	} else {
		resp.UpdatedAt = &st.UpdatedAt
	}
	if st.Result != nil {
		resp.RunID = st.Result.RunID
		resp.Outcome = string(st.Result.Outcome)
	}
	if st.Err != nil {
		resp.Error = h.errors.FormatErrorResponse(st.Err).Error
	}
	writeJSON(w, http.StatusOK, resp)
}

// current returns the latest result that carries a report, writing an error
// response otherwise.
func (h *handlers) current(w http.ResponseWriter, r *http.Request) (Status, bool) {
	st := h.state.Load()
	switch {
	case st.Runs == 0:
		h.errors.WriteErrorResponse(w, r, ferrors.NewError(ferrors.CategoryNotFound, "no check has completed yet").Build())
		return st, false
	case st.Result == nil || st.Result.Report == nil:
		err := st.Err
		if err == nil {
			err = ferrors.InternalError("check produced no report").Build()
		}
		h.errors.WriteErrorResponse(w, r, err)
		return st, false
	}
	return st, true
}

func (h *handlers) report(w http.ResponseWriter, r *http.Request) {
	st, ok := h.current(w, r)
	if !ok {
		return
	}
	// JSON unless the client asks for text.
	raw := r.URL.Query().Get("format")
	if raw == "" {
		raw = string(report.FormatJSON)
	}
	format, err := report.ParseFormat(raw)
	if err != nil {
		h.errors.WriteErrorResponse(w, r, err)
		return
	}

	if format == report.FormatText {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	if err := report.NewFormatter(format).Format(w, st.Result); err != nil {
		slog.Error("Failed to write report", "error", err)
	}
}

func (h *handlers) tree(w http.ResponseWriter, r *http.Request) {
	st, ok := h.current(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, st.Result.Tree)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// Server is the HTTP server of watch mode.
type Server struct {
	httpServer *http.Server
	addr       string
}

// NewServer creates a server for handler on addr.
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		addr: addr,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("Starting HTTP server", "addr", s.addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "http server error").
			WithContext("addr", s.addr).Build()
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
