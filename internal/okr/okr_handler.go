package okr

import (
	"net/http"

	"go-orgkit/internal/shared/apperror"
	"go-orgkit/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("okr.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("okr.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("okr request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return false
	}
	return true
}

func (h *Handler) GetTree(c *gin.Context) {
	ceoID := c.GetString("ceo_id")

	resp, err := h.service.GetTree(c.Request.Context(), ceoID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateGoal(c *gin.Context) {
	ceoID := c.GetString("ceo_id")

	var req CreateGoalRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateGoal(c.Request.Context(), ceoID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateGoal(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	id := c.Param("id")

	var req UpdateGoalRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateGoal(c.Request.Context(), ceoID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteGoal(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	id := c.Param("id")

	if err := h.service.DeleteGoal(c.Request.Context(), ceoID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) CreateObjective(c *gin.Context) {
	ceoID := c.GetString("ceo_id")

	var req CreateObjectiveRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateObjective(c.Request.Context(), ceoID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateObjective(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	id := c.Param("id")

	var req UpdateObjectiveRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateObjective(c.Request.Context(), ceoID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteObjective(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	id := c.Param("id")

	if err := h.service.DeleteObjective(c.Request.Context(), ceoID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) CreateKeyResult(c *gin.Context) {
	ceoID := c.GetString("ceo_id")

	var req CreateKeyResultRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateKeyResult(c.Request.Context(), ceoID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateKeyResult(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	id := c.Param("id")

	var req UpdateKeyResultRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateKeyResult(c.Request.Context(), ceoID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteKeyResult(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	id := c.Param("id")

	if err := h.service.DeleteKeyResult(c.Request.Context(), ceoID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) CreateActionPlan(c *gin.Context) {
	ceoID := c.GetString("ceo_id")

	var req CreateActionPlanRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateActionPlan(c.Request.Context(), ceoID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateActionPlan(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	id := c.Param("id")

	var req UpdateActionPlanRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateActionPlan(c.Request.Context(), ceoID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteActionPlan(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	id := c.Param("id")

	if err := h.service.DeleteActionPlan(c.Request.Context(), ceoID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
