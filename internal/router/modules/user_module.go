package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"user-directory-service/internal/container"
	handlers "user-directory-service/internal/interface/http"
	"user-directory-service/internal/interface/middleware"
)

// UserModule wires the directory CRUD routes:
// POST /api/users, GET /api/users, GET/PUT/DELETE /api/users/:id
// Mutating routes carry a per-IP limiter; private clients bypass it.

type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	writeLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	users := rg.Group("/users")
	{
		users.POST("", writeLimiter, m.Handler.CreateUser)
		users.GET("", m.Handler.ListUsers)
		users.GET("/:id", m.Handler.GetUser)
		users.PUT("/:id", writeLimiter, m.Handler.UpdateUser)
		users.DELETE("/:id", writeLimiter, m.Handler.DeleteUser)
	}
}
