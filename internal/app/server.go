package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/markdave123-py/s3-previewer/internal/api/handlers"
	appMiddleware "github.com/markdave123-py/s3-previewer/internal/api/middlewares"
	"github.com/markdave123-py/s3-previewer/internal/config"
	"github.com/markdave123-py/s3-previewer/internal/metrics"
	"github.com/markdave123-py/s3-previewer/internal/models"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
	log        zerolog.Logger
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, previews handlers.Previewer, rec *metrics.Recorder, gatherer prometheus.Gatherer, log zerolog.Logger) *Server {
	previewHandler := handlers.NewPreviewHandler(previews, log)
	pageHandler := handlers.NewPageHandler(previews, models.URLMode(cfg.PageURLMode), cfg.LegacyPrefix, handlers.SiteInfo{
		BannerText: cfg.BannerText,
		BannerLogo: cfg.BannerLogo,
		Bucket:     cfg.BucketName,
		Folder:     cfg.BaseFolder,
	}, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appMiddleware.RequestLogger(log, rec))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// pages
	r.Get("/", pageHandler.Home)
	r.Post("/preview", pageHandler.Submit)
	r.Get("/preview/", pageHandler.Home)
	r.Get("/preview/{key}", pageHandler.Preview)

	// API routes
	r.Route("/api", func(api chi.Router) {
		api.Use(appMiddleware.JWTMiddleware(cfg.JWTSecret))
		api.Get("/preview", previewHandler.MissingKey)
		api.Get("/preview/", previewHandler.MissingKey)
		api.Get("/preview/{key}", previewHandler.GetPreview)
	})

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{httpServer: httpSrv, log: log}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
