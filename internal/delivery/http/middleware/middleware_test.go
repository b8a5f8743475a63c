package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/apperror"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func do(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := NewRateLimitConfig(2, time.Minute)
	cfg.KeyPrefix = "test:redis:"
	cfg.Client = client
	r := newEngine(RateLimitMiddleware(cfg))

	t.Run("Should allow requests up to the limit", func(t *testing.T) {
		w := do(r, http.MethodGet, "/ping", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

		w = do(r, http.MethodGet, "/ping", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("Should block once the limit is exceeded", func(t *testing.T) {
		w := do(r, http.MethodGet, "/ping", nil)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("Should keep the counter in redis with a TTL", func(t *testing.T) {
		keys := mr.Keys()
		require.Len(t, keys, 1)
		assert.Equal(t, "test:redis:192.0.2.1", keys[0])
		assert.Greater(t, mr.TTL(keys[0]), time.Duration(0))
	})

	t.Run("Should start over after the window expires", func(t *testing.T) {
		mr.FastForward(time.Minute + time.Second)
		w := do(r, http.MethodGet, "/ping", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRateLimitRedisFailure(t *testing.T) {
	t.Run("Should fail closed when configured", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
		t.Cleanup(func() { _ = client.Close() })
		mr.Close()

		cfg := NewRateLimitConfig(5, time.Minute)
		cfg.KeyPrefix = "test:closed:"
		cfg.Client = client
		cfg.FailClosed = true

		w := do(newEngine(RateLimitMiddleware(cfg)), http.MethodGet, "/ping", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("Should fall back to memory when failing open", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
		t.Cleanup(func() { _ = client.Close() })
		mr.Close()

		cfg := NewRateLimitConfig(1, time.Minute)
		cfg.KeyPrefix = "test:open:"
		cfg.Client = client
		r := newEngine(RateLimitMiddleware(cfg))

		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", nil).Code)
		assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodGet, "/ping", nil).Code)
	})
}

func TestRateLimitInMemory(t *testing.T) {
	cfg := NewRateLimitConfig(1, time.Minute)
	cfg.KeyPrefix = "test:memory:"
	r := newEngine(RateLimitMiddleware(cfg))

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodGet, "/ping", nil).Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		seen, _ = c.Request.Context().Value(domain.KeyRequestID).(string)
		c.Status(http.StatusNoContent)
	})

	t.Run("Should propagate an incoming id", func(t *testing.T) {
		w := do(r, http.MethodGet, "/ping", map[string]string{RequestIDHeader: "abc-123"})
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", seen)
	})

	t.Run("Should generate an id when absent", func(t *testing.T) {
		w := do(r, http.MethodGet, "/ping", nil)
		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, seen)
	})
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/fail/:kind", func(c *gin.Context) {
		switch c.Param("kind") {
		case "email":
			c.Error(&domain.EmailAlreadyExistsError{Email: "a@x.com"})
		case "candidate":
			c.Error(fmt.Errorf("wrapped: %w", &domain.CandidateNotFoundError{ID: 3}))
		case "resume":
			c.Error(&domain.ResumeNotFoundError{ID: 4})
		case "bad":
			c.Error(apperror.BadRequest("bad input"))
		case "violation":
			c.Error(&domain.ConstraintViolation{Kind: domain.ConstraintUnique, Field: "email"})
		default:
			c.Error(errors.New("pq: password authentication failed for user admin"))
		}
	})

	cases := []struct {
		kind    string
		code    int
		message string
	}{
		{"email", http.StatusConflict, `"message":"Email already registered."`},
		{"candidate", http.StatusNotFound, `"message":"Candidate with ID 3 not found."`},
		{"resume", http.StatusNotFound, `"message":"Resume with ID 4 not found."`},
		{"bad", http.StatusBadRequest, `"message":"bad input"`},
		{"violation", http.StatusInternalServerError, `"message":"An unexpected error occurred. Please try again later."`},
		{"other", http.StatusInternalServerError, `"message":"An unexpected error occurred. Please try again later."`},
	}
	for _, tc := range cases {
		t.Run("Should map "+tc.kind, func(t *testing.T) {
			w := do(r, http.MethodGet, "/fail/"+tc.kind, nil)
			assert.Equal(t, tc.code, w.Code)
			assert.Contains(t, w.Body.String(), tc.message)
			assert.Contains(t, w.Body.String(), `"request_id":"`)
			assert.NotContains(t, w.Body.String(), "password")
		})
	}

	t.Run("Should include email and suggestion on conflict", func(t *testing.T) {
		w := do(r, http.MethodGet, "/fail/email", nil)
		assert.Contains(t, w.Body.String(), `"email":"a@x.com"`)
		assert.Contains(t, w.Body.String(), `"suggestion":"Please use a different email address or try logging in."`)
	})
}

func TestCORSMiddleware(t *testing.T) {
	r := newEngine(CORSMiddleware([]string{"http://localhost:3000"}))

	t.Run("Should allow a configured origin", func(t *testing.T) {
		w := do(r, http.MethodGet, "/ping", map[string]string{"Origin": "http://localhost:3000"})
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Should refuse an unknown origin", func(t *testing.T) {
		w := do(r, http.MethodGet, "/ping", map[string]string{"Origin": "http://evil.example"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestSecurityHeaders(t *testing.T) {
	r := newEngine(SecurityHeadersMiddleware(true))
	w := do(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}
