package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"area1337-backend/internal/delivery/http/middleware"
	"area1337-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.RequestIDFrom(c))
	})

	t.Run("Generates when absent", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		id := w.Header().Get(middleware.RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("Reuses a valid incoming id", func(t *testing.T) {
		incoming := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, incoming)
		w := serve(r, req)
		assert.Equal(t, incoming, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("Replaces garbage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "<script>")
		w := serve(r, req)
		assert.NotEqual(t, "<script>", w.Header().Get(middleware.RequestIDHeader))
	})
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/app", func(c *gin.Context) {
		c.Error(apperror.BadGateway("Failed to send message. Please try again later.", errors.New("status 401")))
	})
	r.GET("/raw", func(c *gin.Context) {
		c.Error(errors.New("pq: password authentication failed"))
	})
	r.GET("/written", func(c *gin.Context) {
		c.JSON(http.StatusAccepted, gin.H{"ok": true})
		c.Error(apperror.BadRequest("ignored"))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/app", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"Failed to send message. Please try again later."}`, w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/raw", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")

	w = serve(r, httptest.NewRequest(http.MethodGet, "/written", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestRateLimitInMemory(t *testing.T) {
	cfg := middleware.ContactRateLimitConfig(3, time.Minute, false)
	cfg.KeyPrefix = "rl:test:" + uuid.NewString() + ":"

	r := gin.New()
	r.POST("/", middleware.RateLimitMiddleware(cfg), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	hit := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = addr
		return serve(r, req)
	}

	for i := 0; i < 3; i++ {
		w := hit("198.51.100.1:1000")
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}
	assert.Equal(t, "0", hit("198.51.100.1:1000").Header().Get("X-RateLimit-Remaining"))

	blocked := hit("198.51.100.1:1000")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.JSONEq(t, `{"error":"Too many requests. Please try again later."}`, blocked.Body.String())

	// Other clients keep their own budget
	assert.Equal(t, http.StatusOK, hit("198.51.100.2:1000").Code)
}

func TestRateLimitDisabled(t *testing.T) {
	cfg := middleware.ContactRateLimitConfig(0, time.Minute, false)
	cfg.KeyPrefix = "rl:test:" + uuid.NewString() + ":"

	r := gin.New()
	r.POST("/", middleware.RateLimitMiddleware(cfg), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodPost, "/", nil)).Code)
	}
}

// unreachableRedis fails every command without a server
func unreachableRedis(t *testing.T) *goredis.Client {
	t.Helper()
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRateLimitStoreUnavailable(t *testing.T) {
	newRouter := func(failClosed bool) *gin.Engine {
		cfg := middleware.ContactRateLimitConfig(5, time.Minute, failClosed)
		cfg.KeyPrefix = "rl:test:" + uuid.NewString() + ":"
		cfg.Store = unreachableRedis(t)

		r := gin.New()
		r.POST("/", middleware.RateLimitMiddleware(cfg), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	t.Run("Fail open falls back to memory", func(t *testing.T) {
		w := serve(newRouter(false), httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("Fail closed rejects", func(t *testing.T) {
		w := serve(newRouter(true), httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"error":"Service temporarily unavailable. Please try again."}`, w.Body.String())
	})
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(middleware.SecurityHeadersMiddleware("/api/swagger"))
	r.GET("/api/site", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/swagger/index.html", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/site", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/swagger/index.html", nil))
	assert.Empty(t, w.Header().Get("Content-Security-Policy"))
}
