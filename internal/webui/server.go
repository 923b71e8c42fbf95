// Package webui hosts the HTTP API over the session store.
package webui

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"alquimia/internal/config"
	"alquimia/internal/importer"
	"alquimia/internal/logging"
	"alquimia/internal/pinterest"
	"alquimia/internal/store"
	"alquimia/internal/webui/handlers"
	"alquimia/internal/webui/middleware"
)

// Version is reported by the health endpoint.
const Version = "0.3.0"

// Server wires the store, the importer and the HTTP surface together.
type Server struct {
	store    *store.Store
	importer *importer.Importer
	client   *pinterest.Client

	engine     *gin.Engine
	httpServer *http.Server

	logger    logging.Logger
	host      string
	port      int
	startTime time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer builds the server from configuration. A missing Pinterest
// credential set leaves the import routes answering 503 while everything
// else works.
func NewServer(cfg *config.Config, logger logging.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	logger = logging.OrNop(logger)

	st := store.New()

	var client *pinterest.Client
	var fetcher importer.Fetcher
	if cfg.Pinterest.Enabled() {
		client = pinterest.NewClient(pinterest.Credentials{
			ClientID:     cfg.Pinterest.ClientID,
			ClientSecret: cfg.Pinterest.ClientSecret,
			RedirectURI:  cfg.Pinterest.CallbackAddress,
		}, pinterest.WithBaseURL(cfg.Pinterest.BaseURL), pinterest.WithTimeout(cfg.Pinterest.Timeout))
		fetcher = client
	} else {
		logger.Info("Pinterest credentials not configured, import disabled")
	}
	imp := importer.New(fetcher, st, cfg.Pinterest.Timeout, logger)

	ctx, cancel := context.WithCancel(context.Background())

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	if cfg.Server.EnableCORS {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"}
		engine.Use(cors.New(corsConfig))
	}

	server := &Server{
		store:     st,
		importer:  imp,
		client:    client,
		engine:    engine,
		logger:    logger,
		host:      cfg.Server.Host,
		port:      cfg.Server.Port,
		startTime: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
	}

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	server.setupRoutes()

	return server, nil
}

// Store exposes the session store, mainly for tests.
func (s *Server) Store() *store.Store {
	return s.store
}

// Engine exposes the gin engine for httptest round-trips.
func (s *Server) Engine() http.Handler {
	return s.engine
}

func (s *Server) setupRoutes() {
	stateHandler := handlers.NewStateHandler(s.store)
	goalsHandler := handlers.NewGoalsHandler(s.store)
	dashboardHandler := handlers.NewDashboardHandler(s.store)
	exportHandler := handlers.NewExportHandler(s.store)
	importHandler := handlers.NewImportHandler(s.client, s.importer)

	api := s.engine.Group("/api")
	api.Use(middleware.JSONMiddleware())
	api.Use(middleware.MetricsMiddleware())

	api.GET("/health", s.handleHealth)

	wheel := api.Group("/wheel")
	{
		wheel.GET("", stateHandler.GetWheel)
		wheel.PUT("/:area", stateHandler.PutArea)
	}

	archetypes := api.Group("/archetypes")
	{
		archetypes.GET("", stateHandler.GetArchetypes)
		archetypes.PUT("/:name", stateHandler.PutArchetype)
	}

	reflections := api.Group("/reflections")
	{
		reflections.GET("", stateHandler.GetReflections)
		reflections.PUT("/:key", stateHandler.PutReflection)
	}

	vision := api.Group("/vision")
	{
		vision.GET("", stateHandler.GetVision)
		vision.PUT("/:category", stateHandler.PutVisionText)
		vision.POST("/:category/images", stateHandler.PostVisionImage)
		vision.DELETE("/:category", stateHandler.DeleteVision)
	}

	goals := api.Group("/goals")
	{
		goals.GET("", goalsHandler.ListGoals)
		goals.POST("", goalsHandler.CreateGoal)
		goals.DELETE("/:id", goalsHandler.DeleteGoal)
		goals.POST("/:id/toggle", goalsHandler.ToggleGoal)
	}

	api.GET("/dashboard", dashboardHandler.GetDashboard)

	checkins := api.Group("/checkins")
	{
		checkins.GET("", dashboardHandler.ListCheckIns)
		checkins.POST("", dashboardHandler.PostCheckIn)
		checkins.DELETE("", dashboardHandler.ClearCheckIns)
	}

	export := api.Group("/export")
	{
		export.GET("", exportHandler.ListFormats)
		export.GET("/record", exportHandler.GetRecord)
		export.GET("/goals.csv", exportHandler.GetGoalsCSV)
	}

	imports := api.Group("/import")
	{
		imports.POST("", importHandler.StartImport)
		imports.GET("/boards", importHandler.ListBoards)
		imports.GET("/jobs/:id", importHandler.GetJob)
		imports.GET("/auth/url", importHandler.GetAuthURL)
		imports.POST("/auth/token", importHandler.PostAuthToken)
	}

	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, handlers.APIResponse{
		Success: true,
		Data: HealthResponse{
			Status:    "ok",
			Version:   Version,
			Timestamp: time.Now(),
			Uptime:    time.Since(s.startTime).String(),
			Import:    s.importer.Enabled(),
		},
	})
}

// Start blocks serving HTTP until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("Starting Alquimia server on %s:%d", s.host, s.port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop shuts the server down, draining in-flight requests for up to 10s.
func (s *Server) Stop() error {
	s.logger.Info("Stopping Alquimia server...")

	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Error shutting down HTTP server: %v", err)
		return err
	}

	s.wg.Wait()
	s.logger.Info("Server stopped")
	return nil
}
