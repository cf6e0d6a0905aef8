package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	appcatalog "github.com/marketplace/catalogue/internal/application/catalog"
	"github.com/marketplace/catalogue/internal/infrastructure/config"
	"github.com/marketplace/catalogue/internal/infrastructure/logger"
	"github.com/marketplace/catalogue/internal/infrastructure/peers"
	"github.com/marketplace/catalogue/internal/infrastructure/persistence"
	"github.com/marketplace/catalogue/internal/infrastructure/telemetry"
	"github.com/marketplace/catalogue/internal/interfaces/http/handler"
	"github.com/marketplace/catalogue/internal/interfaces/http/middleware"
	"github.com/marketplace/catalogue/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting catalogue service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.Telemetry.Enabled {
		provider, err := telemetry.NewTracerProvider(context.Background(), &cfg.Telemetry, cfg.App.Env)
		if err != nil {
			log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := provider.Shutdown(ctx); err != nil {
				log.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, cfg.Log.Level,
		cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)

	// Peer clients
	authClient := peers.NewAuthClient(cfg.Peers.Auth.BaseURL, cfg.Peers.MetadataTimeout, log)
	inventoryClient := peers.NewInventoryClient(cfg.Peers.Inventory.BaseURL, cfg.Peers.MetadataTimeout, log)
	mediaClient := peers.NewMediaClient(cfg.Peers.Media.BaseURL, cfg.Peers.MetadataTimeout, cfg.Peers.UploadTimeout, log)
	promotionsClient := peers.NewPromotionsClient(cfg.Peers.Promotions.BaseURL, cfg.Peers.MetadataTimeout, log)
	reviewsClient := peers.NewReviewsClient(cfg.Peers.Reviews.BaseURL, cfg.Peers.MetadataTimeout, log)

	// Application services
	productService := appcatalog.NewProductService(
		productRepo, categoryRepo,
		inventoryClient, mediaClient, promotionsClient, reviewsClient,
		log,
	)
	categoryService := appcatalog.NewCategoryService(categoryRepo, productRepo, log)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.MaxMultipartMemory = cfg.HTTP.MaxMultipartMem

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(middleware.CORSConfig{AllowOrigins: cfg.HTTP.CORSAllowOrigins}))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	adminAuth := middleware.AdminAuth(authClient, log)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(db))
	r.Register(handler.NewProductHandler(productService, adminAuth))
	r.Register(handler.NewCategoryHandler(categoryService, adminAuth))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

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
