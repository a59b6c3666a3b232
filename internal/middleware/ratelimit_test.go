package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AlexBrence/TODO-list-app/internal/config"
	"github.com/AlexBrence/TODO-list-app/internal/middleware"

	"github.com/gin-gonic/gin"
)

func TestRateLimiterExhaustsBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := middleware.NewRateLimiter(&config.Config{
		RateLimit: config.RateLimitConfig{
			Enabled:         true,
			RequestsPerMin:  1,
			BurstSize:       3,
			CleanupInterval: time.Minute,
		},
	})

	router := gin.New()
	router.POST("/login/", limiter.Middleware(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	statuses := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req, _ := http.NewRequest("POST", "/login/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	for i := 0; i < 3; i++ {
		if statuses[i] != http.StatusOK {
			t.Errorf("Expected request %d to pass, got %d", i, statuses[i])
		}
	}
	if statuses[3] != http.StatusTooManyRequests {
		t.Errorf("Expected request 4 to be limited, got %d", statuses[3])
	}
}

func TestRateLimiterStop(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := middleware.NewRateLimiter(&config.Config{
		RateLimit: config.RateLimitConfig{
			Enabled:         true,
			RequestsPerMin:  60,
			BurstSize:       5,
			CleanupInterval: time.Millisecond,
		},
	})

	limiter.Stop()
	// Idempotent.
	limiter.Stop()

	router := gin.New()
	router.POST("/login/", limiter.Middleware(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// Buckets keep limiting after the cleanup goroutine is gone.
	req, _ := http.NewRequest("POST", "/login/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected limiter to keep serving after Stop, got %d", w.Code)
	}
}

func TestRateLimiterIsPerClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := middleware.NewRateLimiter(&config.Config{
		RateLimit: config.RateLimitConfig{
			Enabled:         true,
			RequestsPerMin:  1,
			BurstSize:       1,
			CleanupInterval: time.Minute,
		},
	})

	router := gin.New()
	router.POST("/login/", limiter.Middleware(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	send := func(addr string) int {
		req, _ := http.NewRequest("POST", "/login/", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	if code := send("10.0.0.1:1234"); code != http.StatusOK {
		t.Errorf("Expected first client to pass, got %d", code)
	}
	if code := send("10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("Expected first client to be limited, got %d", code)
	}
	if code := send("10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("Expected second client to pass, got %d", code)
	}
}
