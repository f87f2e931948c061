package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/haideralmesaody/asrspulse/internal/analysis"
	"github.com/haideralmesaody/asrspulse/internal/config"
	"github.com/haideralmesaody/asrspulse/internal/dataprocessing"
	"github.com/haideralmesaody/asrspulse/internal/errors"
	"github.com/haideralmesaody/asrspulse/internal/infrastructure"
	customMiddleware "github.com/haideralmesaody/asrspulse/internal/middleware"
	"github.com/haideralmesaody/asrspulse/internal/services"
	handlers "github.com/haideralmesaody/asrspulse/internal/transport/http"
)

const (
	VERSION = "v1.0.0"
	AppName = "ASRS Pulse - Aviation Incident Analysis"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	Metrics       *infrastructure.Metrics
	Registry      *prometheus.Registry
	SessionStore  *services.SessionStore
	ASRSService   *services.ASRSService
	UploadService *services.UploadService
	HealthService *services.HealthService
}

// NewApplication creates a new application instance with dependency injection
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", VERSION))

	app := &Application{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() error {
	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(collectors.NewGoCollector())
	a.Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.Metrics = infrastructure.NewMetrics(a.Registry)

	pipeline := dataprocessing.NewPipeline(a.Logger)

	opts := analysis.Options{
		MaxFeatures: a.Config.Analysis.MaxFeatures,
		NumTopics:   a.Config.Analysis.NumTopics,
		TopKeywords: a.Config.Analysis.TopKeywords,
		Seed:        a.Config.Analysis.Seed,
		Workers:     a.Config.Analysis.Workers,
	}
	registry := analysis.NewDefaultRegistry(a.Logger, opts)
	orchestrator := analysis.NewOrchestrator(a.Logger, registry, opts.Workers)

	a.SessionStore = services.NewSessionStore(a.Config.Sessions.TTL, a.Config.Sessions.Capacity)

	a.ASRSService = services.NewASRSService(a.Logger, pipeline, orchestrator, a.SessionStore, a.Metrics)
	a.UploadService = services.NewUploadService(a.Logger, a.Config.Paths.UploadsDir, a.Config.Server.MaxUploadBytes)
	a.HealthService = services.NewHealthService(VERSION, "", a.Config.Paths.UploadsDir, a.ASRSService, a.SessionStore, a.Logger)

	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Middleware ordering: RequestID → RealIP → Logger → Recoverer → SecurityHeaders
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.Compress(5))
	r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		ExposedHeaders: []string{"X-Request-ID"},
		Logger:         a.Logger,
	}))

	errorHandler := errors.NewErrorHandler(a.Logger, a.Config.Logging.Development)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(a.metricsMiddleware())

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Mount("/health", healthHandler.Routes())
		r.Get("/version", healthHandler.Version)

		analysisHandler := handlers.NewAnalysisHandler(a.ASRSService, a.UploadService, a.Logger, errorHandler)

		// Upload is rate limited separately from the rest of the API
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.NewRateLimiter(5, 10, a.Logger).Handler)
			r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))
			r.Post("/upload", analysisHandler.Upload)
		})

		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.Timeout(a.Config.Server.WriteTimeout, a.Logger))
			r.Use(customMiddleware.ContentTypeValidator("application/json"))
			r.Use(customMiddleware.NewValidationMiddleware(a.Logger, errorHandler).ValidateRequest)
			r.Post("/preprocess", analysisHandler.Preprocess)
			r.Post("/analyze", analysisHandler.Analyze)
			r.Post("/compare", analysisHandler.Compare)
			r.Post("/report", analysisHandler.Report)
			r.Get("/sessions", analysisHandler.Sessions)
			r.Get("/techniques", analysisHandler.Techniques)
		})
	})

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	// Prometheus endpoint outside the API group
	r.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))

	a.Router = r
}

// metricsMiddleware records request durations per route and status
func (a *Application) metricsMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			a.Metrics.RequestDuration.
				WithLabelValues(route, fmt.Sprintf("%d", ww.status)).
				Observe(time.Since(start).Seconds())
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start starts the HTTP server
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", AppName),
		slog.String("version", VERSION),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level),
		slog.String("uploads_dir", a.Config.Paths.UploadsDir))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))

	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.SessionStore.Stop()
	infrastructure.CloseLogFile()

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
