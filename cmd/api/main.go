//	@title			Medialog API
//	@version		1.0
//	@description	Minimal personal media-blog backend: upload images and videos with captions, list them newest-first.
//
//	@host		localhost:8080
//	@BasePath	/

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"github.com/medialog/service/internal/config"
	"github.com/medialog/service/internal/db"
	"github.com/medialog/service/internal/logger"
	appMiddleware "github.com/medialog/service/internal/middleware"
	"github.com/medialog/service/internal/storage"
	"github.com/medialog/service/internal/upload"
	"github.com/medialog/service/internal/web"

	_ "github.com/medialog/service/docs/swagger"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg)
	defer logger.Log.Sync() //nolint:errcheck

	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Log.Fatal("database migration failed", zap.Error(err))
	}

	// Select the media storage backend. Exactly one variant is active for
	// the whole process; it is not switchable per request.
	var media storage.Storage
	var localStore *storage.LocalStorage
	switch cfg.MediaBackend {
	case config.BackendLocal:
		localStore, err = storage.NewLocalStorage(cfg.PublicDir)
		if err != nil {
			logger.Log.Fatal("local storage init failed", zap.Error(err))
		}
		media = localStore
	case config.BackendRemote:
		if cfg.StorageAccessKey == "" || cfg.StorageSecretKey == "" {
			logger.Log.Fatal("remote media backend requires STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY")
		}
		media, err = storage.NewMinioStorage(
			cfg.StorageEndpoint,
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			cfg.StorageBucket,
			cfg.StorageFolder,
			cfg.StoragePublicBase,
			cfg.StorageUseSSL,
		)
		if err != nil {
			logger.Log.Fatal("object storage init failed", zap.Error(err))
		}
	default:
		logger.Log.Fatal("unknown MEDIA_BACKEND", zap.String("value", cfg.MediaBackend))
	}

	// Wire dependencies: repository → service → handler
	uploadRepo := upload.NewRepository(pool)
	uploadSvc := upload.NewService(uploadRepo, media)
	uploadHandler := upload.NewHandler(uploadSvc, cfg.MaxUploadMB<<20)

	webHandler := web.NewHandler(cfg.SiteBaseURL)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API
	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", uploadHandler.Create)
		r.Get("/upload", uploadHandler.List)
	})

	// Pages
	r.Get("/", webHandler.Gallery)
	r.Get("/admin", webHandler.Admin)

	// With the local backend, serve the uploaded files statically under the
	// same relative path the records point at.
	if localStore != nil {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(localStore.Dir())))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second, // large uploads need the headroom
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Log.Info("server listening",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.AppEnv),
			zap.String("media_backend", cfg.MediaBackend),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Log.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("forced shutdown", zap.Error(err))
	}

	logger.Log.Info("server stopped")
}
