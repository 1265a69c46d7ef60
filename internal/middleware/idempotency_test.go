package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newIdempotencyRouter(rdb *redis.Client, handlerCalled *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/projects",
		func(c *gin.Context) { c.Set("user_id", "u1") },
		Idempotency(rdb),
		func(c *gin.Context) {
			*handlerCalled = true
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		},
	)
	return r
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	mock.ExpectGet("idemp:/projects:u1:key-1").SetVal(`{"id":"p1"}`)

	handlerCalled := false
	r := newIdempotencyRouter(rdb, &handlerCalled)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/projects", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "p1")
	assert.False(t, handlerCalled, "cached replay must not reach the handler")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ConflictWhileInFlight(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	mock.ExpectGet("idemp:/projects:u1:key-1").RedisNil()
	mock.ExpectSetNX("idemp:/projects:u1:key-1:lock", "locked", 30*time.Second).SetVal(false)

	handlerCalled := false
	r := newIdempotencyRouter(rdb, &handlerCalled)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/projects", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, handlerCalled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_FreshKeyPassesThroughWithKeys(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	mock.ExpectGet("idemp:/projects:u1:key-1").RedisNil()
	mock.ExpectSetNX("idemp:/projects:u1:key-1:lock", "locked", 30*time.Second).SetVal(true)

	gin.SetMode(gin.TestMode)
	r := gin.New()

	var cacheKey, lockKey string
	r.POST("/projects",
		func(c *gin.Context) { c.Set("user_id", "u1") },
		Idempotency(rdb),
		func(c *gin.Context) {
			cacheKey = c.GetString("idempotency_cache_key")
			lockKey = c.GetString("idempotency_lock_key")
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		},
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/projects", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "idemp:/projects:u1:key-1", cacheKey)
	assert.Equal(t, "idemp:/projects:u1:key-1:lock", lockKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_NoKeySkipsRedis(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	handlerCalled := false
	r := newIdempotencyRouter(rdb, &handlerCalled)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/projects", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, handlerCalled)
	assert.NoError(t, mock.ExpectationsWereMet())
}
