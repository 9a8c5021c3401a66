package httptransport

import (
	"log/slog"
	"net/http"

	"todo-backend/internal/auth"
	"todo-backend/internal/repository"
	"todo-backend/internal/transport/http/handler"
	"todo-backend/internal/transport/http/middleware"

	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	todoHandler *handler.TodoHandler,
	tokens *auth.TokenService,
	userRepo repository.UserRepository,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "todo-backend"})
	})

	// Public auth routes
	r.POST("/auth/signup", authHandler.Signup)
	r.POST("/auth/login", authHandler.Login)

	authMW := middleware.Auth(tokens, userRepo, logger)

	r.GET("/me", authMW, authHandler.Me)

	// Protected todo routes
	todos := r.Group("/todos", authMW)
	todos.POST("", todoHandler.Create)
	todos.GET("", todoHandler.List)
	todos.GET("/:id", todoHandler.GetByID)
	todos.PATCH("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)

	return r
}
