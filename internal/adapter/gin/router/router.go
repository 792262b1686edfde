package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-service/internal/adapter/gin/handler"
	"user-service/internal/adapter/gin/middleware"
)

// Options carries everything the router wires into routes and middleware.
type Options struct {
	UserHandler   *handler.UserHandler
	HealthHandler *handler.HealthHandler
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *middleware.RateLimiter
	Log         *zap.Logger
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(opts Options) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Global middleware
	router.Use(middleware.Recovery(opts.Log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(opts.Log))

	router.NoRoute(handler.NoRoute)
	router.NoMethod(handler.NoMethod)

	// Health check endpoint, never rate limited
	router.GET("/health", opts.HealthHandler.CheckHealth)

	api := router.Group("")
	if opts.RateLimiter != nil {
		api.Use(opts.RateLimiter.Middleware())
	}

	api.GET("/", opts.UserHandler.Index)
	users := api.Group("/users")
	{
		users.GET("", opts.UserHandler.ListUsers)
		users.POST("", opts.UserHandler.CreateUser)
		users.GET("/:id", opts.UserHandler.GetUser)
		users.PUT("/:id", opts.UserHandler.UpdateUser)
		users.DELETE("/:id", opts.UserHandler.DeleteUser)
	}

	return router
}
