package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	clock := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return clock }

	assert.True(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.2"), "buckets are per IP")

	clock = clock.Add(time.Minute)
	assert.True(t, rl.allow("10.0.0.1"), "refilled after one interval")
}

func TestRateLimiter_Cleanup(t *testing.T) {
	clock := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5, time.Minute)
	rl.now = func() time.Time { return clock }

	rl.allow("10.0.0.1")
	clock = clock.Add(2 * time.Minute)
	rl.allow("10.0.0.2")
	clock = clock.Add(2 * time.Minute)
	rl.cleanup()

	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name  string
		rate  int
		codes []int
	}{
		{"limited", 1, []int{http.StatusOK, http.StatusTooManyRequests}},
		{"disabled", 0, []int{http.StatusOK, http.StatusOK, http.StatusOK}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(NewRateLimiter(tt.rate, time.Minute).Middleware())
			r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			for _, want := range tt.codes {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
				assert.Equal(t, want, w.Code)
			}
		})
	}
}
