package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	customerapp "github.com/constructpro/dashboard/internal/application/customer"
	projectapp "github.com/constructpro/dashboard/internal/application/project"
	saleapp "github.com/constructpro/dashboard/internal/application/sale"
	"github.com/constructpro/dashboard/internal/application/session"
	"github.com/constructpro/dashboard/internal/application/submission"
	unitapp "github.com/constructpro/dashboard/internal/application/unit"
	"github.com/constructpro/dashboard/internal/domain/form"
	"github.com/constructpro/dashboard/internal/domain/project"
	"github.com/constructpro/dashboard/internal/infrastructure/apiclient"
	"github.com/constructpro/dashboard/internal/infrastructure/auth"
	"github.com/constructpro/dashboard/internal/infrastructure/cache"
	"github.com/constructpro/dashboard/internal/infrastructure/config"
	"github.com/constructpro/dashboard/internal/infrastructure/logger"
	"github.com/constructpro/dashboard/internal/infrastructure/metrics"
	"github.com/constructpro/dashboard/internal/infrastructure/persistence"
	"github.com/constructpro/dashboard/internal/infrastructure/phone"
	"github.com/constructpro/dashboard/internal/infrastructure/postal"
	"github.com/constructpro/dashboard/internal/infrastructure/telemetry"
	"github.com/constructpro/dashboard/internal/infrastructure/validation"
	"github.com/constructpro/dashboard/internal/interfaces/http/handler"
	"github.com/constructpro/dashboard/internal/interfaces/http/middleware"
	"github.com/constructpro/dashboard/internal/interfaces/http/router"
)

//	@title			ConstructPro Dashboard API
//	@version		1.0
//	@description	Backend-for-frontend of the ConstructPro dashboard: input masks, lists and forms

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token issued by the identity provider. Format: "Bearer {token}"

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ConstructPro Dashboard",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("api", cfg.API.BaseURL),
	)

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, cfg.App.Name,
		telemetry.WithLogger(log),
		telemetry.WithServiceVersion(version),
	)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	registry := metrics.NewRegistry()

	// Preference store
	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), 200*time.Millisecond)
	db, err := persistence.NewDatabase(cfg.Storage, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to open preference store", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing preference store", zap.Error(err))
		}
	}()
	prefs := persistence.NewGormPreferenceRepository(db.DB)

	// Query cache
	store, err := cache.NewStoreFactory(cfg.Cache, cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create query cache", zap.Error(err))
	}
	queryCache := cache.NewQueryCache(store, cfg.Cache.TTL,
		cache.WithCacheLogger(log),
		cache.WithObserver(registry),
	)
	defer func() {
		_ = queryCache.Close()
	}()

	// Token revocations share the cache's Redis connection when there is one
	var revocations session.Revocations = auth.NewInMemoryTokenBlacklist()
	if rs, ok := store.(*cache.RedisStore); ok {
		revocations = auth.NewRedisTokenBlacklistWithClient(rs.Client())
	}

	// Upstream clients
	api, err := apiclient.New(cfg.API,
		apiclient.WithLogger(log),
		apiclient.WithObserver(registry),
	)
	if err != nil {
		log.Fatal("Failed to create API client", zap.Error(err))
	}
	postalClient := postal.New(cfg.Postal,
		postal.WithLogger(log),
		postal.WithObserver(registry),
	)
	phones := phone.NewFormatter()

	// Validation
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}
	validator := validation.New()

	// Application services
	tokens := auth.NewTokenParser(cfg.Identity)
	if !tokens.Verifies() {
		log.Warn("Token signatures are not verified locally; the upstream API verifies them")
	}
	sessionService := session.NewService(tokens, revocations, api, prefs, session.WithLogger(log))
	// upstream 401s sign out in the session middleware
	runner := submission.NewRunner(submission.WithLogger(log))

	customerService := customerapp.NewService(api, validator, runner,
		customerapp.WithPostalLookup(postalClient),
		customerapp.WithCache(queryCache, apiclient.TenantFromContext),
		customerapp.WithPaging(cfg.Lists.PageSize(customerapp.Resource), cfg.Lists.MaxVisiblePages),
	)
	projectService := projectapp.NewService(api, validator, runner,
		projectapp.WithCache(queryCache, apiclient.TenantFromContext),
		projectapp.WithPaging(cfg.Lists.PageSize(projectapp.Resource), cfg.Lists.MaxVisiblePages),
	)
	unitService := unitapp.NewService(api, validator, runner,
		unitapp.WithCache(queryCache, apiclient.TenantFromContext),
		unitapp.WithPaging(cfg.Lists.PageSize(unitapp.Resource), cfg.Lists.MaxVisiblePages),
		unitapp.WithFeatureSuggestions(form.ParseSuggestions(cfg.Forms.UnitFeatureSuggestions)),
	)
	saleService := saleapp.NewService(api,
		saleapp.WithCache(queryCache, apiclient.TenantFromContext),
		saleapp.WithPaging(cfg.Lists.PageSize(saleapp.Resource), cfg.Lists.MaxVisiblePages),
		saleapp.WithUser(session.UserID),
	)

	// Handlers
	handlers := router.Handlers{
		System: handler.NewSystemHandler(cfg.App.Name, version).AddCheck("storage", db.Ping),
		Mask: handler.NewMaskHandler(postalClient, phones, map[string][]string{
			unitapp.Resource:    unitService.Suggestions(),
			projectapp.Resource: project.DefaultFeatures,
		}),
		Postal: handler.NewPostalHandler(postalClient),
		List: handler.NewListHandler(
			handler.ListSource{Definition: customerapp.ListDefinition, Load: handler.ListOf(customerService.List)},
			handler.ListSource{Definition: projectapp.ListDefinition, Load: handler.ListOf(projectService.List)},
			handler.ListSource{Definition: unitapp.ListDefinition, Load: handler.ListOf(unitService.List)},
			handler.ListSource{Definition: saleapp.ListDefinition, Load: handler.ListOf(saleService.List)},
		),
		Customer: handler.NewCustomerHandler(customerService),
		Project:  handler.NewProjectHandler(projectService),
		Unit:     handler.NewUnitHandler(unitService),
		Session:  handler.NewSessionHandler(sessionService),
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Tracing - Start the request span
	// 4. Logger - Log requests with trace IDs
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. Metrics - Count requests by route
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	if tracerProvider.IsEnabled() {
		engine.Use(middleware.Tracing(cfg.App.Name, tracerProvider.Provider()))
		engine.Use(middleware.SpanAttributes())
	}
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.Metrics.Enabled {
		engine.Use(middleware.HTTPMetrics(registry))
		engine.GET(cfg.Metrics.Path, gin.WrapH(registry.Handler()))
		log.Info("Metrics enabled", zap.String("path", cfg.Metrics.Path))
	}

	router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithAuth(middleware.Session(sessionService, log)),
	).Mount(handlers).Setup()

	log.Info("Routes registered", zap.Strings("lists", handlers.List.Resources()))

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
