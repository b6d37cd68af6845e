// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle answer API.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, access log, panic recovery,
//     timeouts, JSON content type, CORS allow-list).
//   - Public endpoints: "/", "/health", GET /api/today, GET /api/wordle/{date},
//     GET /api/answers.
//   - Archive endpoints: GET /api/archive, POST /api/archive/refresh (admin JWT).
//
// Notes:
//   - "Not found" is a normal answer, reported as {"error": ...} with 200.
//   - Only a malformed date is a client error (400).

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-answer/internal/archive"
	"github.com/robalobadob/wordle-answer/internal/words"
)

// Answers resolves answers for the API.
type Answers interface {
	Today(ctx context.Context) (words.Record, bool)
	ForKey(ctx context.Context, key string) (words.Record, bool, error)
	Recent(ctx context.Context, limit int) ([]words.Record, error)
}

// Archive serves the archive snapshot.
type Archive interface {
	Enabled() bool
	Records(ctx context.Context) ([]words.Record, error)
	Refresh(ctx context.Context) (*archive.Snapshot, error)
}

// Options configures a Server.
type Options struct {
	CORSOrigins    []string
	AdminSecret    string        // empty disables POST /api/archive/refresh
	RequestTimeout time.Duration // default 60s
}

// Server bundles the router and its dependencies.
type Server struct {
	r       *chi.Mux
	answers Answers
	archive Archive
	opts    Options
}

// New constructs a Server, installs middleware, and registers routes.
// archive may be nil.
func New(answers Answers, arc Archive, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"http://localhost:5173"}
	}
	s := &Server{r: chi.NewRouter(), answers: answers, archive: arc, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                    // add X-Request-ID
	s.r.Use(chimw.RealIP)                       // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))        // request-scoped logger
	s.r.Use(hlog.AccessHandler(accessLog))      // one line per request
	s.r.Use(chimw.Recoverer)                    // recover from panics
	s.r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                    // default JSON responses
	s.r.Use(corsAllowList(opts.CORSOrigins))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "wordle-answer",
			"endpoints": s.endpoints(),
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountAnswers(s.r)
	s.mountArchive(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.r }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) endpoints() []string {
	eps := []string{"/health", "/api/today", "/api/wordle/{date}", "/api/answers", "/api/archive"}
	if s.opts.AdminSecret != "" {
		eps = append(eps, "POST /api/archive/refresh")
	}
	return eps
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsAllowList enables credentialed CORS for the configured origins.
func corsAllowList(origins []string) func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)
}

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("request_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
