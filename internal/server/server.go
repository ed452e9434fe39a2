package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/omarshaarawi/tempad/internal/models"
)

// Timelines is the engine behind the manager routes.
type Timelines interface {
	Report(ctx context.Context, managerID int) (*models.TimelineReport, error)
	ScoreHistory(ctx context.Context, managerID int) (*models.ManagerHistory, []models.GameweekScore, error)
}

// Reference serves player search and reports reference data freshness.
type Reference interface {
	SearchPlayers(ctx context.Context, query string, limit int) ([]models.Element, error)
	ReferenceUpdatedAt() time.Time
}

type Server struct {
	router    *chi.Mux
	server    *http.Server
	timelines Timelines
	reference Reference
}

func New(addr string, timelines Timelines, reference Reference) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		timelines: timelines,
		reference: reference,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(loggingMiddleware)
	s.router.Use(middleware.Timeout(4 * time.Minute))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/managers/{managerID}", func(r chi.Router) {
			r.Get("/history", s.handleHistory)
			r.Get("/timeline", s.handleTimeline)
		})
		r.Get("/players", s.handlePlayers)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	slog.Info("Starting HTTP server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		slog.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
