package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openblog/blog-api/internal/api/handler"
	"github.com/openblog/blog-api/internal/api/middleware"
	"github.com/openblog/blog-api/internal/core/domain"
	"github.com/openblog/blog-api/internal/core/ports"
	"github.com/openblog/blog-api/internal/core/service"
	"github.com/openblog/blog-api/internal/infrastructure/config"
	mongodb "github.com/openblog/blog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/openblog/blog-api/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with every route registered.
//
// Authorization is split between two layers: routes that target a concrete
// resource use the bearer middleware only and let the service decide, so a
// missing resource always surfaces as 404 rather than 403. Routes with no
// resource to resolve (stats, user management, category creation) gate on
// role at the router with RBAC.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, sink service.AuditSink, audit ports.AuditService, repos *mongodb.Repositories, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("blog"))

	// --- Services ---
	statsCache := redisdb.NewStatsCache(rdb, log)
	authService := service.NewAuthService(repos.Users, repos.Credentials, cfg.JWTSecret, cfg.TokenTTL, sink, log)
	userService := service.NewUserService(repos.Users, repos.Credentials, repos.Posts, repos.Comments, sink, log)
	postService := service.NewPostService(repos.Posts, repos.Comments, repos.Categories, sink, log)
	commentService := service.NewCommentService(repos.Comments, repos.Posts, sink, log)
	categoryService := service.NewCategoryService(repos.Categories, sink, log)
	statsService := service.NewStatsService(repos.Stats, statsCache, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	statsHandler := handler.NewStatsHandler(statsService, audit)
	healthHandler := handler.NewHealthHandler(db, rdb)

	auth := middleware.Auth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/profile", authHandler.Profile, auth)
	e.PUT("/auth/profile", authHandler.UpdateProfile, auth)

	// --- Users ---
	e.GET("/users", userHandler.List, auth)
	e.GET("/users/:user_id", userHandler.Get, auth)
	e.PUT("/users/:user_id", userHandler.Update, auth)
	e.DELETE("/users/:user_id", userHandler.Delete, auth)
	e.POST("/users/admin/manage", userHandler.Manage, auth, middleware.RBAC(domain.RoleAdmin))

	// --- Posts ---
	e.GET("/posts", postHandler.List)
	e.GET("/posts/:post_id", postHandler.Get)
	e.POST("/posts", postHandler.Create, auth)
	e.PUT("/posts/:post_id", postHandler.Replace, auth)
	e.PATCH("/posts/:post_id", postHandler.Patch, auth)
	e.DELETE("/posts/:post_id", postHandler.Delete, auth)

	// --- Comments ---
	e.GET("/posts/:post_id/comments", commentHandler.List, optionalAuth)
	e.GET("/posts/:post_id/comments/:comment_id", commentHandler.Get, optionalAuth)
	e.POST("/posts/:post_id/comments", commentHandler.Create, auth)
	e.PUT("/posts/:post_id/comments/:comment_id", commentHandler.Update, auth)
	e.DELETE("/posts/:post_id/comments/:comment_id", commentHandler.Delete, auth)
	e.PUT("/comments/:comment_id/moderate", commentHandler.Moderate, auth)

	// --- Categories ---
	e.GET("/categories", categoryHandler.List)
	e.GET("/categories/:category_id", categoryHandler.Get)
	e.POST("/categories", categoryHandler.Create, auth, middleware.RBAC(domain.RoleAdmin))
	e.PUT("/categories/:category_id", categoryHandler.Update, auth)
	e.DELETE("/categories/:category_id", categoryHandler.Delete, auth)

	// --- Stats ---
	e.GET("/stats", statsHandler.Totals, auth, middleware.RBAC(domain.RoleAdmin, domain.RoleModerator))
	e.GET("/stats/detailed", statsHandler.Detailed, auth, middleware.RBAC(domain.RoleAdmin))
	e.GET("/stats/activity", statsHandler.Activity, auth, middleware.RBAC(domain.RoleAdmin, domain.RoleModerator))

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
