package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-platform/config"
	"blog-platform/handlers"
	"blog-platform/helper"
	"blog-platform/logging"
	"blog-platform/middleware"
	"blog-platform/repositories"
	"blog-platform/services"
	"blog-platform/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	logger := logging.New(logging.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Component: "blog-api",
	})

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
		if cfg.UsesDefaultSecret() {
			log.Fatal("JWT_SECRET must be set in production")
		}
	} else if cfg.UsesDefaultSecret() {
		logger.Warn("using the default JWT secret")
	}

	// Initialize database
	db, err := config.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	migrateStart := time.Now()
	err = config.RunMigrations(db)
	logger.DBQueryLog("migrate", "users,posts,comments", time.Since(migrateStart), err)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	validate, translator := helper.NewValidator()
	httpHelper := helper.NewHTTPHelper(translator, logger.Named("http"))

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	// Upload storage
	var store storage.Store
	uploadDir := ""
	if cfg.MinIO.Enabled() {
		minioStore, err := storage.NewMinioStore(cfg.MinIO)
		if err != nil {
			log.Fatalf("Failed to create MinIO client: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = minioStore.EnsureBucket(ctx)
		cancel()
		if err != nil {
			log.Fatalf("Failed to prepare MinIO bucket: %v", err)
		}
		store = minioStore
	} else {
		localStore, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.URLPrefix)
		if err != nil {
			log.Fatalf("Failed to prepare upload dir: %v", err)
		}
		store = localStore
		uploadDir = cfg.Upload.Dir
	}

	// Initialize services
	tokens := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiration)
	resolver := services.NewIdentityResolver(tokens, userRepo)
	authService := services.NewAuthService(userRepo, services.NewPasswordHasher(0), tokens, validate, logger)
	postService := services.NewPostService(postRepo, validate, logger)
	commentService := services.NewCommentService(commentRepo, postRepo, validate, logger)
	uploadService := services.NewUploadService(store, cfg.Upload.MaxFileSize, logger)

	// Rate limiting is shared through Redis; without it the API is unlimited.
	var limiter middleware.Limiter
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			logger.WithError(err).Warn("redis unavailable, rate limiting disabled")
		} else {
			log.Printf("[Redis] Connected to %s", cfg.Redis.Addr)
			limiter = middleware.NewRedisLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window)
			defer rdb.Close()
		}
	}

	router := handlers.NewRouter(handlers.Handlers{
		Auth:    handlers.NewAuthHandler(authService, httpHelper),
		Post:    handlers.NewPostHandler(postService, httpHelper),
		Comment: handlers.NewCommentHandler(commentService, httpHelper),
		Upload:  handlers.NewUploadHandler(uploadService, httpHelper),
	}, handlers.RouterOptions{
		Logger:          logger.Named("http"),
		Helper:          httpHelper,
		Auth:            middleware.NewAuthMiddleware(resolver, httpHelper),
		Metrics:         middleware.NewMetrics("blog"),
		Limiter:         limiter,
		CORSOrigins:     cfg.CORS.Origins,
		UploadDir:       uploadDir,
		UploadURLPrefix: cfg.Upload.URLPrefix,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
