package auth

import (
	"go-orgkit/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	authGroup := r.Group("/auth")

	// Endpoint kredensial dibatasi per IP untuk meredam brute force.
	limited := middleware.RateLimitByIP(5, 10)

	{
		authGroup.POST("/register", limited, h.Register)
		authGroup.POST("/login", limited, h.Login)
		authGroup.POST("/refresh", limited, h.Refresh)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/me", middleware.AuthMiddleware(), h.GetMe)
	}
}
