package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/AnshRaj112/heritage-backend/internal/config"
	"github.com/AnshRaj112/heritage-backend/internal/database"
	"github.com/AnshRaj112/heritage-backend/internal/handlers"
	"github.com/AnshRaj112/heritage-backend/internal/logger"
	"github.com/AnshRaj112/heritage-backend/internal/middleware"
	"github.com/AnshRaj112/heritage-backend/internal/mirror"
	"github.com/AnshRaj112/heritage-backend/internal/routes"
	"github.com/AnshRaj112/heritage-backend/internal/services"
	"github.com/AnshRaj112/heritage-backend/internal/session"
)

func main() {
	// Load env
	envErr := godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	lg, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer lg.Sync()
	if envErr != nil {
		lg.Info("No .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Mirror layout
	disk := mirror.NewDisk(cfg.DataDir)
	if err := disk.EnsureLayout(); err != nil {
		lg.Fatal("Failed to prepare data directory", zap.String("dir", cfg.DataDir), zap.Error(err))
	}

	// Record store
	dbURL := cfg.DatabaseURL
	if dbURL == "" {
		dbURL = filepath.Join(cfg.DataDir, database.DefaultSQLitePath)
	}
	store, err := database.Open(ctx, dbURL, lg)
	if err != nil {
		lg.Fatal("Failed to open database", zap.Error(err))
	}
	defer store.Close()
	lg.Info("✅ Database ready", zap.Stringer("dialect", store.Dialect()))

	mirrors := mirror.Multi{disk}

	// Optional MongoDB document mirror
	if cfg.MongoURI != "" {
		client, db, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			lg.Warn("MongoDB unavailable, document mirror disabled", zap.Error(err))
		} else {
			defer database.DisconnectMongo(client)
			mirrors = append(mirrors, mirror.NewMongo(db))
			lg.Info("✅ MongoDB mirror enabled", zap.String("database", db.Name()))
		}
	}

	// Optional Cloudinary image mirror
	if cfg.CloudinaryEnabled() {
		cld, err := mirror.NewCloudinary(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, lg)
		if err != nil {
			lg.Warn("Failed to initialize Cloudinary, image mirror disabled", zap.Error(err))
		} else {
			mirrors = append(mirrors, cld)
			lg.Info("✅ Cloudinary mirror enabled")
		}
	}

	// Sessions and rate limiting: Redis when configured, in-process otherwise
	var (
		sessions session.Store
		limiter  middleware.Limiter
	)
	if cfg.RedisURI != "" {
		rdb, err := database.ConnectRedis(ctx, cfg.RedisURI)
		if err != nil {
			lg.Warn("Redis unavailable, using in-memory sessions", zap.Error(err))
		} else {
			defer rdb.Close()
			sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
			limiter = middleware.NewRedisWindowLimiter(rdb, cfg.SubmitRatePerMinute)
			lg.Info("✅ Redis sessions enabled")
		}
	}
	if sessions == nil {
		memSessions := session.NewMemoryStore(cfg.SessionTTL)
		go memSessions.Run(ctx, 0)
		sessions = memSessions
		ipLimiter := middleware.NewIPRateLimiter(cfg.SubmitRatePerMinute)
		go ipLimiter.Run(ctx)
		limiter = ipLimiter
	}
	var submitLimit func(http.Handler) http.Handler
	if cfg.SubmitRatePerMinute > 0 {
		submitLimit = middleware.SubmitRateLimit(limiter, lg.Named("RateLimit"))
	}

	// Geolocation
	var locator services.Locator = services.StaticLocator
	if cfg.GeoLookupEnabled() {
		locator = services.NewIPLocator(cfg.GeoLookupURL, cfg.GeoTimeout, lg)
	}

	h, err := handlers.New(handlers.Options{
		Submissions:    services.NewSubmissionService(store, mirrors, lg),
		Listings:       services.NewListingService(store, disk, lg),
		Exports:        services.NewExportService(store, disk, lg),
		Sessions:       sessions,
		Locator:        locator,
		Health:         store,
		MediaRoot:      cfg.DataDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
		SecureCookies:  cfg.IsProduction(),
		Logger:         lg,
	})
	if err != nil {
		lg.Fatal("Failed to build handlers", zap.Error(err))
	}

	r := routes.NewRouter(h, routes.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		SubmitLimit:    submitLimit,
		TrustProxy:     cfg.TrustProxy,
		ExportEnabled:  cfg.ExportEnabled,
		Production:     cfg.IsProduction(),
		AllowedHost:    cfg.AllowedHost,
		Logger:         lg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			lg.Error("Graceful shutdown failed", zap.Error(err))
		}
	}()

	lg.Info("🚀 Heritage portal running", zap.String("addr", srv.Addr), zap.String("env", cfg.Environment))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Fatal("Failed to start server", zap.Error(err))
	}
	lg.Info("Server stopped")
}
