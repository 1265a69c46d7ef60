package taskboard

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go-orgkit/internal/middleware"
	"go-orgkit/internal/shared/apperror"
	"go-orgkit/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("taskboard.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("taskboard.handler")
	}
	return &Handler{service: service, logger: l}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("taskboard request failed",
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

func (h *Handler) ListProjects(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	p := middleware.PrincipalFromContext(c)

	resp, err := h.service.ListProjects(c.Request.Context(), p, ceoID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetProject(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	p := middleware.PrincipalFromContext(c)
	id := c.Param("id")

	resp, err := h.service.GetProject(c.Request.Context(), p, ceoID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateProject(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	// Lock dilepas apa pun hasilnya; retry setelah kegagalan harus bisa
	// langsung jalan, tidak menunggu TTL.
	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	ceoID := c.GetString("ceo_id")

	var req CreateProjectRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateProject(c.Request.Context(), ceoID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	id := c.Param("id")

	var req UpdateProjectRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateProject(c.Request.Context(), ceoID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	id := c.Param("id")

	if err := h.service.DeleteProject(c.Request.Context(), ceoID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) AddLabel(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	p := middleware.PrincipalFromContext(c)
	id := c.Param("id")

	var req LabelRequest
	if !h.bindJSON(c, &req) {
		return
	}

	labels, err := h.service.AddLabel(c.Request.Context(), p, ceoID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"labels": labels}, nil)
}

func (h *Handler) RemoveLabel(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	p := middleware.PrincipalFromContext(c)
	id := c.Param("id")

	var req LabelRequest
	if !h.bindJSON(c, &req) {
		return
	}

	labels, err := h.service.RemoveLabel(c.Request.Context(), p, ceoID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"labels": labels}, nil)
}

func (h *Handler) CreateTask(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	p := middleware.PrincipalFromContext(c)
	projectID := c.Param("id")

	var req CreateTaskRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateTask(c.Request.Context(), p, ceoID, projectID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	id := c.Param("id")

	var req UpdateTaskRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateTask(c.Request.Context(), ceoID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	ceoID := c.GetString("ceo_id")
	id := c.Param("id")

	if err := h.service.DeleteTask(c.Request.Context(), ceoID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) GetPerformanceReport(c *gin.Context) {
	ceoID := c.GetString("ceo_id")

	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))

	resp, err := h.service.GetPerformanceReport(c.Request.Context(), ceoID, month, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
