package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/teveclub/internal/api/http"
	"github.com/GriffinCanCode/teveclub/internal/api/middleware"
	"github.com/GriffinCanCode/teveclub/internal/api/ws"
	"github.com/GriffinCanCode/teveclub/internal/domain/markers"
	"github.com/GriffinCanCode/teveclub/internal/infrastructure/config"
	"github.com/GriffinCanCode/teveclub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/teveclub/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/teveclub/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/teveclub/internal/shared/pool"
	"github.com/GriffinCanCode/teveclub/internal/upstream"
)

// sweepInterval is how often idle sessions are expired
const sweepInterval = time.Minute

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	bots     *pool.Pool[*apihttp.Bot]
	breaker  *resilience.Breaker
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	registry *prometheus.Registry
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	logger.Info("Initializing teveclub server",
		zap.String("port", cfg.Server.Port),
		zap.String("upstream", cfg.Upstream.BaseURL),
	)

	profile := markers.DefaultProfile()
	if cfg.Upstream.ProfilePath != "" {
		p, err := markers.LoadProfile(cfg.Upstream.ProfilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load site profile: %w", err)
		}
		profile = p
		logger.Info("Site profile loaded",
			zap.String("path", cfg.Upstream.ProfilePath),
			zap.Int("user_agents", len(profile.UserAgents)),
		)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(registry)

	// One breaker for the site, shared by every session
	breaker := resilience.New("teveclub", resilience.Settings{
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Upstream circuit changed state",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
			metrics.SetBreakerOpen(to == resilience.StateOpen)
		},
	})

	bots := pool.New(apihttp.NewBotFactory(apihttp.BotConfig{
		Upstream: upstream.Config{
			BaseURL: cfg.Upstream.BaseURL,
			Timeout: cfg.Upstream.Timeout,
			Retries: cfg.Upstream.Retries,
			RPS:     cfg.Upstream.RPS,
			Burst:   cfg.Upstream.Burst,
			Breaker: breaker,
		},
		Profile:         profile,
		FeedDelay:       cfg.Client.FeedDelay,
		MaxFeedAttempts: cfg.Client.MaxFeedAttempts,
		Metrics:         metrics,
		Logger:          logger,
	}), cfg.Upstream.SessionIdle, logger, metrics.SetSessionsActive)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.SetHTMLTemplate(apihttp.IndexTemplate)

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLog(logger))
	router.Use(monitoring.Middleware(metrics))

	corsCfg := middleware.DefaultCORSConfig().WithHeaders(cfg.Security.CSRFHeader)
	corsCfg.AllowOrigins = cfg.Security.AllowedOrigins
	router.Use(middleware.CORS(corsCfg))

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

	router.Use(middleware.BodyLimit(middleware.MaxBodySize))
	router.Use(middleware.Session(middleware.SessionConfig{
		CookieName: cfg.Security.SessionCookie,
		MaxAge:     middleware.DefaultSessionConfig().MaxAge,
	}))
	router.Use(middleware.CSRF(middleware.CSRFConfig{
		CookieName: cfg.Security.CSRFCookie,
		HeaderName: cfg.Security.CSRFHeader,
	}))

	handlers := apihttp.NewHandlers(bots, breaker, metrics, logger)
	wsHandler := ws.NewHandler(bots, metrics, logger, cfg.Security.AllowedOrigins...)

	// Register routes
	router.GET("/", handlers.Index)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	{
		api.POST("/proxy/", handlers.Proxy)
		api.GET("/current-food-drink/", handlers.CurrentFoodDrink)
		api.GET("/current-trick/", handlers.CurrentTrick)

		api.POST("/login/", handlers.Login)
		api.POST("/feed/", handlers.Feed)
		api.POST("/learn/", handlers.Learn)
		api.POST("/guess/", handlers.Guess)
		api.POST("/food/", handlers.Food)
		api.POST("/drink/", handlers.Drink)
		api.POST("/logout/", handlers.Logout)
		api.POST("/auto/", handlers.Auto)
		api.GET("/auto/stream", wsHandler.AutoStream)
	}

	logger.Info("Server initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		router:   router,
		bots:     bots,
		breaker:  breaker,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
		registry: registry,
		ctx:      ctx,
		cancel:   cancel,
	}
	s.http = &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the compressed HTTP handler
func (s *Server) Handler() http.Handler {
	return gzhttp.GzipHandler(s.router)
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	go s.bots.Run(s.ctx, sweepInterval)

	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	var err error
	if err = s.http.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
		err = fmt.Errorf("failed to shut down http server: %w", err)
	}

	// Sync logger before exit
	_ = s.logger.Sync()

	return err
}
