package companyprofile

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
	l := zap.L().Named("companyprofile.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("companyprofile.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("company profile request failed",
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

func (h *Handler) GetProfile(c *gin.Context) {
	ceoID := c.GetString("ceo_id")

	resp, err := h.service.GetProfile(c.Request.Context(), ceoID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpsertVision(c *gin.Context) {
	ceoID := c.GetString("ceo_id")

	var req UpsertVisionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpsertVision(c.Request.Context(), ceoID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateMission(c *gin.Context) {
	ceoID := c.GetString("ceo_id")

	var req CreateEntryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateMission(c.Request.Context(), ceoID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateMission(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	id := c.Param("id")

	var req UpdateEntryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateMission(c.Request.Context(), ceoID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteMission(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	id := c.Param("id")

	if err := h.service.DeleteMission(c.Request.Context(), ceoID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) CreateCoreValue(c *gin.Context) {
	ceoID := c.GetString("ceo_id")

	var req CreateEntryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateCoreValue(c.Request.Context(), ceoID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateCoreValue(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	id := c.Param("id")

	var req UpdateEntryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateCoreValue(c.Request.Context(), ceoID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteCoreValue(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	id := c.Param("id")

	if err := h.service.DeleteCoreValue(c.Request.Context(), ceoID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
