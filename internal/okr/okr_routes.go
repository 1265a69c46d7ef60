package okr

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
	group := r.Group("/okr")

	group.Use(middleware.AuthMiddleware())

	read := middleware.Authorize(policy, authz.ResourceOkr, authz.ActionRead)
	write := middleware.Authorize(policy, authz.ResourceOkr, authz.ActionWrite)
	goalWrite := middleware.Authorize(policy, authz.ResourceOkrGoal, authz.ActionWrite)

	{
		group.GET("/tree", read, h.GetTree)

		group.POST("/goals", goalWrite, h.CreateGoal)
		group.PUT("/goals/:id", goalWrite, h.UpdateGoal)
		group.DELETE("/goals/:id", goalWrite, h.DeleteGoal)

		group.POST("/objectives", write, h.CreateObjective)
		group.PUT("/objectives/:id", write, h.UpdateObjective)
		group.DELETE("/objectives/:id", write, h.DeleteObjective)

		group.POST("/key-results", write, h.CreateKeyResult)
		group.PUT("/key-results/:id", write, h.UpdateKeyResult)
		group.DELETE("/key-results/:id", write, h.DeleteKeyResult)

		group.POST("/action-plans", write, h.CreateActionPlan)
		group.PUT("/action-plans/:id", write, h.UpdateActionPlan)
		group.DELETE("/action-plans/:id", write, h.DeleteActionPlan)
	}
}
