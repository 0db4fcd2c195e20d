package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ashu-Az/employee-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func newIdempotencyRouter(t *testing.T) (*gin.Engine, redismock.ClientMock, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()
	handlerCalls := 0

	r := gin.New()
	r.POST("/api/attendance", middleware.Idempotency(rdb), func(c *gin.Context) {
		handlerCalls++
		c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(`{"ok":true}`))
	})
	return r, mock, &handlerCalls
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	r, mock, calls := newIdempotencyRouter(t)

	cached := `{"ok":true,"data":{"employeeId":"EMP001"}}`
	mock.ExpectGet("idemp:/api/attendance:key-1").SetVal(cached)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/attendance", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("Idempotency-Replayed"))
	assert.Equal(t, cached, w.Body.String())
	assert.Zero(t, *calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_RejectsWhileFirstAttemptRuns(t *testing.T) {
	r, mock, calls := newIdempotencyRouter(t)

	mock.ExpectGet("idemp:/api/attendance:key-2").RedisNil()
	mock.ExpectSetNX("idemp:/api/attendance:key-2:lock", "locked", 30*time.Second).SetVal(false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/attendance", nil)
	req.Header.Set("Idempotency-Key", "key-2")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "PROCESSING")
	assert.Zero(t, *calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_CachesSuccessfulFirstAttempt(t *testing.T) {
	r, mock, calls := newIdempotencyRouter(t)

	mock.ExpectGet("idemp:/api/attendance:key-3").RedisNil()
	mock.ExpectSetNX("idemp:/api/attendance:key-3:lock", "locked", 30*time.Second).SetVal(true)
	mock.ExpectSet("idemp:/api/attendance:key-3", `{"ok":true}`, 24*time.Hour).SetVal("OK")
	mock.ExpectDel("idemp:/api/attendance:key-3:lock").SetVal(1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/attendance", nil)
	req.Header.Set("Idempotency-Key", "key-3")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, *calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_NoHeaderPassesThrough(t *testing.T) {
	r, mock, calls := newIdempotencyRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/attendance", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, *calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
