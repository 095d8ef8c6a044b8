package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func pingEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return r
}

func TestSecurityHeaders(t *testing.T) {
	r := pingEngine(SecurityHeaders())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	want := map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"X-XSS-Protection":       "1; mode=block",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for header, value := range want {
		if got := w.Header().Get(header); got != value {
			t.Errorf("expected %s: %q, got %q", header, value, got)
		}
	}
	if w.Header().Get("Content-Security-Policy") == "" {
		t.Errorf("expected a Content-Security-Policy header")
	}
	if w.Header().Get("Permissions-Policy") == "" {
		t.Errorf("expected a Permissions-Policy header")
	}
}

func TestRateLimiter_RejectsAfterBurst(t *testing.T) {
	// Zero refill and burst 2: the third request must be rejected.
	limiter := NewRateLimiter(0, 2)
	r := pingEngine(limiter.Middleware())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("expected the burst to be admitted, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after the burst, got %v", codes)
	}

	// The rejection carries the error envelope.
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("expected envelope body: %v", err)
	}
	if envelope.Code != http.StatusTooManyRequests || envelope.Message == "" {
		t.Errorf("unexpected envelope %+v", envelope)
	}
}

func TestRateLimiter_BucketsPerClient(t *testing.T) {
	limiter := NewRateLimiter(0, 1)
	r := pingEngine(limiter.Middleware())

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:2"} {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("client %s should have its own bucket, got %d", addr, w.Code)
		}
	}
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	r := pingEngine(RequestID())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(RequestIDHeader) == "" {
		t.Errorf("expected a generated request id")
	}

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "client-chosen")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "client-chosen" {
		t.Errorf("expected client request id to be honored, got %q", got)
	}
}
