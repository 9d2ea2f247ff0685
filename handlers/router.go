package handlers

import (
	"net/http"
	"time"

	"blog-platform/helper"
	"blog-platform/logging"
	"blog-platform/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth    *AuthHandler
	Post    *PostHandler
	Comment *CommentHandler
	Upload  *UploadHandler
}

type RouterOptions struct {
	Logger      *logging.Logger
	Helper      *helper.HTTPHelper
	Auth        *middleware.AuthMiddleware
	Metrics     *middleware.Metrics
	Limiter     middleware.Limiter // nil disables rate limiting
	CORSOrigins []string

	// UploadDir is served at UploadURLPrefix when uploads are kept on local disk.
	UploadDir       string
	UploadURLPrefix string
}

func NewRouter(h Handlers, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(opts.Logger))
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	router.Use(middleware.CORS(opts.CORSOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	if opts.UploadDir != "" {
		router.Static(opts.UploadURLPrefix, opts.UploadDir)
	}

	api := router.Group("/api")
	if opts.Limiter != nil {
		api.Use(middleware.RateLimit(opts.Limiter, opts.Helper, opts.Metrics, opts.Logger))
	}

	requireAuth := opts.Auth.RequireAuth()
	optionalAuth := opts.Auth.OptionalAuth()

	{
		api.GET("/test", func(c *gin.Context) {
			opts.Helper.SendSuccess(c, "API working", gin.H{"timestamp": time.Now().UTC()})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.GET("/verify", requireAuth, h.Auth.Verify)
			auth.GET("/profile", requireAuth, h.Auth.GetProfile)
			auth.PUT("/profile", requireAuth, h.Auth.UpdateProfile)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", h.Post.GetPosts)
			posts.GET("/my", requireAuth, h.Post.GetMyPosts)
			posts.GET("/my/:id", requireAuth, h.Post.GetMyPost)
			posts.GET("/:id", optionalAuth, h.Post.GetPost)
			posts.POST("", requireAuth, h.Post.CreatePost)
			posts.PUT("/:id", requireAuth, h.Post.UpdatePost)
			posts.DELETE("/:id", requireAuth, h.Post.DeletePost)

			posts.GET("/:id/comments", optionalAuth, h.Comment.GetComments)
			posts.POST("/:id/comments", requireAuth, h.Comment.CreateComment)
		}

		api.DELETE("/comments/:id", requireAuth, h.Comment.DeleteComment)

		if h.Upload != nil {
			api.POST("/upload/image", requireAuth, h.Upload.UploadImage)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		opts.Helper.SendNotFoundError(c, "Route not found", opts.Helper.EmptyJsonMap())
	})

	return router
}
