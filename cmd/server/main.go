package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"krishiconnect/internal/config"
	"krishiconnect/internal/handler"
	"krishiconnect/internal/i18n"
	"krishiconnect/internal/logging"
	"krishiconnect/internal/middleware"
	"krishiconnect/internal/repository"
	"krishiconnect/internal/service"
	"krishiconnect/internal/telemetry"
	"krishiconnect/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const serviceName = "krishiconnect"

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	cfg, warnings, err := config.LoadAppConfig()
	if err != nil {
		log.Fatalf("Failed to load app config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, !cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	for _, w := range warnings {
		logger.Warn(w)
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// run owns every resource it opens; each is released before it returns
func run(cfg *config.AppConfig, logger *zap.Logger) error {
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		return fmt.Errorf("failed to load DB config: %w", err)
	}

	shutdownTracing, err := telemetry.Init(serviceName, cfg.TracingEnabled, os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, dbCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(ctx, dbPool, logger); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	// --- Session storage ---
	redisClient, err := config.ConnectRedis(ctx, cfg.RedisURL, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpirationHours)
	catalog := i18n.MustLoad()
	decimal.MarshalJSONWithoutQuotes = true

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)
	orderRepo := repository.NewOrderRepository(dbPool)
	sessionStore := repository.NewSessionStore(redisClient, jwtUtil.Lifetime())

	// --- Initialize Services ---
	throttle := &service.LoginThrottle{Store: sessionStore, MaxAttempts: cfg.LoginMaxAttempts, Window: cfg.LoginWindow}
	authService := service.NewAuthService(userRepo, jwtUtil, throttle, logger)
	productService := service.NewProductService(productRepo, userRepo, logger)
	orderService := service.NewOrderService(orderRepo, logger)
	cartService := service.NewCartService(sessionStore, productService, orderService)
	chatService := service.NewChatService(sessionStore, cfg.ChatReplyDelay, logger)
	defer chatService.Close()

	if cfg.SeedDemoData {
		if err := service.NewSeeder(userRepo, productRepo, cfg.DemoFarmerPassword, logger).Seed(ctx); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	chatHandler := handler.NewChatHandler(chatService, logger)
	i18nHandler := handler.NewI18nHandler(catalog)
	healthHandler := handler.NewHealthHandler(map[string]handler.CheckFunc{
		"db":    dbPool.Ping,
		"redis": func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	})

	// --- Setup Gin Router ---
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(logger), middleware.Recovery(logger), middleware.CORS())

	// --- Initialize Middlewares ---
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)
	farmerRoleMW := middleware.FarmerMiddleware()
	buyerRoleMW := middleware.BuyerMiddleware()

	// --- Register Routes ---
	apiGroup := router.Group("/api")
	authHandler.RegisterAuthRoutes(apiGroup, jwtAuthMW)
	productHandler.RegisterProductRoutes(apiGroup, jwtAuthMW, farmerRoleMW)
	orderHandler.RegisterOrderRoutes(apiGroup, jwtAuthMW)
	cartHandler.RegisterCartRoutes(apiGroup, jwtAuthMW, buyerRoleMW)
	chatHandler.RegisterChatRoutes(apiGroup, jwtAuthMW)
	i18nHandler.RegisterI18nRoutes(apiGroup)
	router.GET("/health", healthHandler.Health)

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           telemetry.Middleware(serviceName, "/health")(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", zap.String("port", cfg.ServerPort), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// --- Graceful Shutdown ---
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return shutdownTracing(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	logger.Info("Server exiting")
	return nil
}
