// Package server exposes the delay analyzer over HTTP: an HTML upload page,
// a JSON API, the run log, health and Prometheus metrics.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/delay-cli/internal/analysis"
	"github.com/sells-group/delay-cli/internal/fetcher"
	"github.com/sells-group/delay-cli/internal/store"
)

// Config configures the server.
type Config struct {
	MaxUploadMB    int
	RateLimit      float64
	RateBurst      int
	AllowedOrigins []string
	Analysis       analysis.Options
	Load           fetcher.LoadOptions
}

// Server handles uploads and run log queries.
type Server struct {
	cfg     Config
	store   store.Store
	metrics *Metrics
	limiter *rate.Limiter
	router  chi.Router
}

// New builds a server. A nil store disables the run log.
func New(cfg Config, st store.Store, m *Metrics) *Server {
	if st == nil {
		st = store.Nop{}
	}
	if m == nil {
		m = NewMetrics()
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 20
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 5
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 10
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		cfg:     cfg,
		store:   st,
		metrics: m,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleIndex)
	r.Get("/health", handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.With(s.rateLimit).Post("/analyze", s.handleAnalyzePage)

	r.Route("/api/v1", func(r chi.Router) {
		r.With(s.rateLimit).Post("/analyze", s.handleAnalyzeAPI)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	})

	return r
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
