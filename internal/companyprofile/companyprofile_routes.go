package companyprofile

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
	profile := r.Group("/company-profile")

	profile.Use(middleware.AuthMiddleware())

	read := middleware.Authorize(policy, authz.ResourceProfile, authz.ActionRead)
	write := middleware.Authorize(policy, authz.ResourceProfile, authz.ActionWrite)

	{
		profile.GET("", read, h.GetProfile)
		profile.PUT("/vision", write, h.UpsertVision)

		profile.POST("/missions", write, h.CreateMission)
		profile.PUT("/missions/:id", write, h.UpdateMission)
		profile.DELETE("/missions/:id", write, h.DeleteMission)

		profile.POST("/core-values", write, h.CreateCoreValue)
		profile.PUT("/core-values/:id", write, h.UpdateCoreValue)
		profile.DELETE("/core-values/:id", write, h.DeleteCoreValue)
	}
}
