package user

import (
	"go-orgkit/internal/authz"
	"go-orgkit/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	policy middleware.PolicyService,
) {
	users := r.Group("/users")

	users.Use(middleware.AuthMiddleware())

	{
		users.GET("", middleware.Authorize(policy, authz.ResourceUser, authz.ActionRead), h.GetAll)
		users.GET("/options", middleware.Authorize(policy, authz.ResourceUser, authz.ActionRead), h.GetOptions)
		users.GET("/:id", middleware.Authorize(policy, authz.ResourceUser, authz.ActionRead), h.GetById)
		users.POST("", middleware.Authorize(policy, authz.ResourceUser, authz.ActionWrite), h.CreateMember)
		users.DELETE("/:id", middleware.Authorize(policy, authz.ResourceUser, authz.ActionWrite), h.Delete)
	}
}
