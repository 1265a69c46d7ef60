package bmc

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
	canvas := r.Group("/bmc")

	canvas.Use(middleware.AuthMiddleware())

	read := middleware.Authorize(policy, authz.ResourceBmc, authz.ActionRead)
	write := middleware.Authorize(policy, authz.ResourceBmc, authz.ActionWrite)

	{
		canvas.GET("", read, h.GetCanvas)
		canvas.POST("/items", write, h.CreateItem)
		canvas.PUT("/items/:id", write, h.UpdateItem)
		canvas.DELETE("/items/:id", write, h.DeleteItem)
	}
}
