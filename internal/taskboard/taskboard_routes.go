package taskboard

import (
	"go-orgkit/internal/authz"
	"go-orgkit/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	policy middleware.PolicyService,
	rdb *redis.Client,
) {
	board := r.Group("/taskboard")

	board.Use(middleware.AuthMiddleware())

	read := middleware.Authorize(policy, authz.ResourceProject, authz.ActionRead)
	write := middleware.Authorize(policy, authz.ResourceProject, authz.ActionWrite)

	{
		board.GET("/overview", read, h.GetPerformanceReport)

		board.GET("/projects", read, h.ListProjects)
		board.GET("/projects/:id", read, h.GetProject)
		board.POST("/projects", write, middleware.Idempotency(rdb), h.CreateProject)
		board.PUT("/projects/:id", write, h.UpdateProject)
		board.DELETE("/projects/:id", write, h.DeleteProject)

		// Label dan task terbuka untuk member; pengecekan member-or-admin
		// dilakukan service.
		board.POST("/projects/:id/labels", read, h.AddLabel)
		board.DELETE("/projects/:id/labels", read, h.RemoveLabel)

		board.POST("/projects/:id/tasks", read, h.CreateTask)
		board.PUT("/tasks/:id", read, h.UpdateTask)
		board.DELETE("/tasks/:id", read, h.DeleteTask)
	}
}
