package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/bookhaven/backend/internal/application/cart"
	catalogapp "github.com/bookhaven/backend/internal/application/catalog"
	checkoutapp "github.com/bookhaven/backend/internal/application/checkout"
	identityapp "github.com/bookhaven/backend/internal/application/identity"
	orderapp "github.com/bookhaven/backend/internal/application/order"
	"github.com/bookhaven/backend/internal/infrastructure/auth"
	"github.com/bookhaven/backend/internal/infrastructure/cache"
	"github.com/bookhaven/backend/internal/infrastructure/config"
	"github.com/bookhaven/backend/internal/infrastructure/event"
	"github.com/bookhaven/backend/internal/infrastructure/logger"
	"github.com/bookhaven/backend/internal/infrastructure/notification"
	"github.com/bookhaven/backend/internal/infrastructure/persistence"
	"github.com/bookhaven/backend/internal/infrastructure/storage"
	"github.com/bookhaven/backend/internal/infrastructure/telemetry"
	"github.com/bookhaven/backend/internal/interfaces/http/handler"
	"github.com/bookhaven/backend/internal/interfaces/http/middleware"
	"github.com/bookhaven/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Book Haven backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis backs the cart cache, checkout sessions, idempotency keys
	// and the token blacklist
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected successfully")

	// Initialize telemetry providers
	ctx := context.Background()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Trace database queries when telemetry is on
	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled
	dbTracing.DBName = cfg.Database.DBName
	if err := telemetry.RegisterDBTracing(db.DB, dbTracing, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Initialize repositories
	bookRepo := persistence.NewGormBookRepository(db.DB)
	listingRepo := persistence.NewGormListingRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Redis-backed stores
	cartCache := cache.NewRedisCartCache(redisClient, cfg.Checkout.CartCacheTTL)
	sessionStore := cache.NewRedisSessionStore(redisClient, cfg.Checkout.SessionTTL)
	idempotencyStore := cache.NewRedisIdempotencyStore(redisClient, cfg.Checkout.IdempotencyTTL)

	// Cover storage: S3 when a bucket is configured, in-memory stub otherwise
	var covers catalogapp.CoverStorage
	if cfg.Storage.Bucket != "" {
		covers, err = storage.NewS3CoverStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize cover storage", zap.Error(err))
		}
		log.Info("Cover storage initialized",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("region", cfg.Storage.Region),
		)
	} else {
		covers = storage.NewStubCoverStorage()
		log.Warn("No object storage configured, cover uploads are kept in memory")
	}

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Order placed -> confirmation email
	var notifier notification.OrderNotifier
	if cfg.Email.Enabled {
		notifier, err = notification.NewPostmarkNotifier(&cfg.Email, log)
		if err != nil {
			log.Fatal("Failed to initialize email notifier", zap.Error(err))
		}
	} else {
		notifier = notification.NewLogNotifier(log)
		log.Info("Email sending disabled, order confirmations are logged only")
	}
	orderConfirmationHandler := notification.NewOrderConfirmationHandler(notifier)
	eventBus.Subscribe(orderConfirmationHandler)

	// Business events -> storefront metrics
	storefrontMetrics, err := telemetry.NewStorefrontMetrics(telemetry.StorefrontMetricsConfig{
		Meter:  meterProvider.Meter("bookhaven/storefront"),
		Logger: log,
	})
	if err != nil {
		log.Fatal("Failed to initialize storefront metrics", zap.Error(err))
	}
	storefrontEventHandler := telemetry.NewStorefrontEventHandler(storefrontMetrics)
	eventBus.Subscribe(storefrontEventHandler)

	log.Info("Event handlers registered",
		zap.Strings("order_confirmation_events", orderConfirmationHandler.EventTypes()),
		zap.Strings("storefront_metrics_events", storefrontEventHandler.EventTypes()),
	)

	// Auth services
	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist := auth.NewRedisTokenBlacklist(redisClient)

	// Initialize application services
	bookService := catalogapp.NewBookService(bookRepo, log)
	listingService := catalogapp.NewListingService(listingRepo, bookRepo, covers, eventBus, log)
	cartService := cartapp.NewCartService(cartRepo, bookRepo, cartCache, log)
	checkoutService := checkoutapp.NewCheckoutService(cartRepo, orderRepo, sessionStore, idempotencyStore, eventBus, log)
	orderService := orderapp.NewOrderService(orderRepo, eventBus, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)

	// Initialize HTTP handlers
	bookHandler := handler.NewBookHandler(bookService)
	listingHandler := handler.NewListingHandler(listingService)
	cartHandler := handler.NewCartHandler(cartService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	orderHandler := handler.NewOrderHandler(orderService)
	authHandler := handler.NewAuthHandler(authService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
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
	// 3. Logger - Log requests
	// 4. Tracing - OpenTelemetry spans (if enabled)
	// 5. Metrics - HTTP metrics (if enabled)
	// 6. Security - Add security headers
	// 7. CORS - Handle cross-origin requests
	// 8. BodyLimit - Limit request body size
	// 9. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}
	engine.Use(middleware.HTTPMetricsWithMeter(meterProvider.Meter("bookhaven/http"), meterProvider.IsEnabled()))

	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoints (outside API versioning)
	engine.GET("/health", healthHandler(db, redisClient))
	engine.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	// Browsing the catalog never requires an account
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		SkipPathPrefixes: []string{
			"/api/v1/catalog",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Auth routes (register/login/refresh are public via JWT skip paths)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.RateLimitByKey(authLimiter, func(c *gin.Context) string {
			return c.ClientIP()
		}))
		log.Info("Auth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// Catalog domain (public browsing)
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.GET("/books", bookHandler.ListBooks)
	catalogRoutes.GET("/books/featured", bookHandler.GetFeatured)
	catalogRoutes.GET("/books/:id", bookHandler.GetBook)
	catalogRoutes.GET("/genres", bookHandler.ListGenres)

	// Cart domain
	cartRoutes := router.NewDomainGroup("cart", "/cart")
	cartRoutes.GET("", cartHandler.GetCart)
	cartRoutes.POST("/items", cartHandler.AddItem)
	cartRoutes.PUT("/items/:id", cartHandler.UpdateQuantity)
	cartRoutes.DELETE("/items/:id", cartHandler.RemoveItem)
	cartRoutes.DELETE("", cartHandler.Clear)

	// Checkout wizard
	checkoutRoutes := router.NewDomainGroup("checkout", "/checkout")
	checkoutRoutes.POST("/start", checkoutHandler.Start)
	checkoutRoutes.GET("", checkoutHandler.GetSession)
	checkoutRoutes.POST("/advance", checkoutHandler.Proceed)
	checkoutRoutes.POST("/back", checkoutHandler.Back)
	checkoutRoutes.POST("/shipping", checkoutHandler.SubmitShipping)
	checkoutRoutes.POST("/payment", checkoutHandler.PlaceOrder)

	// Moderation and fulfillment endpoints require a staff account
	staffOnly := middleware.RequireStaff()

	// Order history and fulfillment
	orderRoutes := router.NewDomainGroup("order", "/orders")
	orderRoutes.GET("", orderHandler.ListOrders)
	orderRoutes.GET("/number/:number", orderHandler.GetOrderByNumber)
	orderRoutes.GET("/:id", orderHandler.GetOrder)
	orderRoutes.POST("/:id/cancel", orderHandler.CancelOrder)
	orderRoutes.PUT("/:id/status", staffOnly, orderHandler.AdvanceStatus)

	// Sell-used-books listings
	listingRoutes := router.NewDomainGroup("listing", "/listings")
	listingRoutes.POST("", listingHandler.SubmitListing)
	listingRoutes.GET("/mine", listingHandler.MyListings)
	listingRoutes.GET("/pending", staffOnly, listingHandler.PendingListings)
	listingRoutes.POST("/:id/approve", staffOnly, listingHandler.ApproveListing)
	listingRoutes.POST("/:id/reject", staffOnly, listingHandler.RejectListing)

	// System routes
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(authRoutes).
		Register(catalogRoutes).
		Register(cartRoutes).
		Register(checkoutRoutes).
		Register(orderRoutes).
		Register(listingRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		status := http.StatusOK
		dbStatus := "ok"
		redisStatus := "ok"

		if err := db.Ping(); err != nil {
			reqLog.Warn("Database health check failed", zap.Error(err))
			dbStatus = "error"
			status = http.StatusServiceUnavailable
		}
		if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			reqLog.Warn("Redis health check failed", zap.Error(err))
			redisStatus = "error"
			status = http.StatusServiceUnavailable
		}

		overall := "healthy"
		if status != http.StatusOK {
			overall = "unhealthy"
		}
		c.JSON(status, gin.H{
			"status":   overall,
			"time":     time.Now().Format(time.RFC3339),
			"database": dbStatus,
			"redis":    redisStatus,
		})
	}
}
