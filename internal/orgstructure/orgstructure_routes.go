package orgstructure

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
	org := r.Group("/org-structure")

	org.Use(middleware.AuthMiddleware())

	{
		org.GET("/tree", middleware.Authorize(policy, authz.ResourceOrg, authz.ActionRead), h.GetOrgTree)

		org.POST("/departments", middleware.Authorize(policy, authz.ResourceDept, authz.ActionWrite), h.CreateDepartment)
		org.PUT("/departments/:id", middleware.Authorize(policy, authz.ResourceDept, authz.ActionWrite), h.UpdateDepartment)
		org.DELETE("/departments/:id", middleware.Authorize(policy, authz.ResourceDept, authz.ActionWrite), h.DeleteDepartment)

		org.PUT("/users/:id/hierarchy", middleware.Authorize(policy, authz.ResourceHier, authz.ActionWrite), h.ReassignUser)
	}
}
