package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dalfonso89/flight-compensation-service/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	t.Run("generates uuid", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		requestID := w.Header().Get(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			t.Errorf("X-Request-ID = %q is not a UUID: %v", requestID, err)
		}
		if w.Body.String() != requestID {
			t.Errorf("context request ID = %q, header = %q", w.Body.String(), requestID)
		}
	})

	t.Run("propagates caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
			t.Errorf("X-Request-ID = %q, want abc-123", got)
		}
	})
}

func TestSecurityHeaders(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeaders())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	expected := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"X-XSS-Protection":       "1; mode=block",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for header, value := range expected {
		if got := w.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
}

func TestRequestLogger(t *testing.T) {
	var buffer bytes.Buffer
	router := gin.New()
	router.Use(RequestID())
	router.Use(RequestLogger(logger.NewWithOutput("info", &buffer)))
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buffer.Bytes()), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buffer.String())
	}
	if line["level"] != "warning" {
		t.Errorf("level = %v, want warning", line["level"])
	}
	if line["path"] != "/missing" || line["method"] != http.MethodGet {
		t.Errorf("unexpected request fields: %v", line)
	}
	if line[RequestIDKey] != "req-1" {
		t.Errorf("request_id = %v, want req-1", line[RequestIDKey])
	}
	if line["component"] != "http" {
		t.Errorf("component = %v, want http", line["component"])
	}
}
