package taskboard

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProjectService struct {
	Service

	resp ProjectResponse
	err  error
}

func (s *stubProjectService) CreateProject(ctx context.Context, ceoID string, req CreateProjectRequest) (ProjectResponse, error) {
	return s.resp, s.err
}

func newCreateProjectContext(t *testing.T, w *httptest.ResponseRecorder) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body, err := json.Marshal(CreateProjectRequest{
		Name:    "Website Revamp",
		Members: []string{uuid.New().String()},
	})
	require.NoError(t, err)

	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/taskboard/projects", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("ceo_id", uuid.New().String())
	return c
}

func TestCreateProject_CachesResponseAndReleasesLock(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	resp := ProjectResponse{
		ID:     uuid.New().String(),
		Name:   "Website Revamp",
		Status: ProjectStatusActive,
		Labels: DefaultLabels,
	}
	h := NewHandlerWithRedis(&stubProjectService{resp: resp}, rdb)

	w := httptest.NewRecorder()
	c := newCreateProjectContext(t, w)
	c.Set("idempotency_cache_key", "idemp:/taskboard/projects:u1:k1")
	c.Set("idempotency_lock_key", "idemp:/taskboard/projects:u1:k1:lock")

	payload, err := json.Marshal(resp)
	require.NoError(t, err)
	mock.ExpectSet("idemp:/taskboard/projects:u1:k1", payload, 24*time.Hour).SetVal("OK")
	mock.ExpectDel("idemp:/taskboard/projects:u1:k1:lock").SetVal(1)

	h.CreateProject(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProject_ReleasesLockOnServiceError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	h := NewHandlerWithRedis(&stubProjectService{err: assert.AnError}, rdb)

	w := httptest.NewRecorder()
	c := newCreateProjectContext(t, w)
	c.Set("idempotency_cache_key", "idemp:/taskboard/projects:u1:k1")
	c.Set("idempotency_lock_key", "idemp:/taskboard/projects:u1:k1:lock")

	// Gagal: lock tetap dilepas, response tidak di-cache.
	mock.ExpectDel("idemp:/taskboard/projects:u1:k1:lock").SetVal(1)

	h.CreateProject(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProject_NoIdempotencyKeyStillWorks(t *testing.T) {
	h := NewHandler(&stubProjectService{resp: ProjectResponse{ID: uuid.New().String()}})

	w := httptest.NewRecorder()
	c := newCreateProjectContext(t, w)

	h.CreateProject(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}
