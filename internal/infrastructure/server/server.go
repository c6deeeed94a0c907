package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/nounsos/desktop/backend/internal/api/http"
	"github.com/nounsos/desktop/backend/internal/api/middleware"
	"github.com/nounsos/desktop/backend/internal/api/ws"
	"github.com/nounsos/desktop/backend/internal/domain/catalog"
	"github.com/nounsos/desktop/backend/internal/domain/layout"
	"github.com/nounsos/desktop/backend/internal/domain/session"
	"github.com/nounsos/desktop/backend/internal/domain/window"
	"github.com/nounsos/desktop/backend/internal/infrastructure/config"
	"github.com/nounsos/desktop/backend/internal/infrastructure/logging"
	"github.com/nounsos/desktop/backend/internal/infrastructure/monitoring"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	http    *http.Server
	windows *window.Manager
	layouts *session.Manager
	store   *session.DiskStore
	stream  *ws.Handler
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.FromConfig(cfg.Logging))
	if err != nil {
		return nil, err
	}

	logger.Info("Initializing NounsOS desktop server",
		zap.String("port", cfg.Server.Port),
		zap.Int("viewport_width", cfg.Desktop.ViewportWidth),
		zap.Int("viewport_height", cfg.Desktop.ViewportHeight),
	)

	metrics := monitoring.NewMetrics()
	metrics.RegisterRuntimeCollectors()

	apps := catalog.Builtin()
	if cfg.Desktop.CatalogGlob != "" {
		loadCatalog(apps, cfg.Desktop.CatalogGlob, logger.Component("catalog"))
	}

	viewport := layout.NewViewport(cfg.Desktop.ViewportWidth, cfg.Desktop.ViewportHeight, cfg.Desktop.RootFontSize)
	resolver := layout.NewResolver(apps, viewport, layout.Options{
		StackingOffset: cfg.Desktop.StackingOffset,
		TaskbarHeight:  cfg.Desktop.TaskbarHeight,
	})

	windows := window.NewManager(resolver).
		WithLogger(logger.Component("window")).
		WithMetrics(metrics)

	var (
		store     *session.DiskStore
		layoutSrc session.Store
	)
	if cfg.Session.Dir != "" {
		store, err = session.NewDiskStore(cfg.Session.Dir, logger.Component("session"))
		if err != nil {
			return nil, err
		}
		layoutSrc = store
	}

	layouts := session.NewManager(windows, layoutSrc).
		WithLogger(logger.Component("session")).
		WithMetrics(metrics)

	n, err := layouts.Load(context.Background())
	if err != nil {
		logger.Warn("Failed to load saved layouts", zap.Error(err))
	} else if store != nil {
		logger.Info("Loaded saved layouts", zap.Int("count", n), zap.String("dir", store.Dir()))
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(logger.Component("http")))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	handlers := apihttp.NewHandlers(windows, layouts, apps, viewport, metrics, logger.Component("http"))
	handlers.Register(router)

	stream := ws.NewHandler(windows, layouts, viewport).
		WithLogger(logger.Component("ws")).
		WithMetrics(metrics)
	router.GET("/stream", stream.HandleConnection)

	logger.Info("Server initialized successfully", zap.Int("apps", apps.Len()))

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		windows: windows,
		layouts: layouts,
		store:   store,
		stream:  stream,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// loadCatalog applies app overrides matching pattern. Failures are logged.
func loadCatalog(apps *catalog.Catalog, pattern string, logger *zap.Logger) {
	root := "."
	if filepath.IsAbs(pattern) {
		root = string(filepath.Separator)
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "/")
	}

	result, err := apps.Load(os.DirFS(root), pattern)
	if err != nil {
		logger.Warn("Failed to load catalog overrides", zap.String("pattern", pattern), zap.Error(err))
		return
	}
	for file, ferr := range result.Failed {
		logger.Warn("Skipped catalog file", zap.String("file", file), zap.Error(ferr))
	}
	logger.Info("Catalog overrides loaded",
		zap.Strings("files", result.Files),
		zap.Int("apps", result.Apps),
	)
}

// Handler returns the HTTP handler with every route mounted
func (s *Server) Handler() http.Handler {
	return s.router
}

// Windows returns the panel manager
func (s *Server) Windows() *window.Manager {
	return s.windows
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	s.stream.CloseAll()

	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to shut down http server: %w", err))
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close layout store: %w", err))
		}
	}

	_ = s.logger.Sync()

	return errors.Join(errs...)
}
