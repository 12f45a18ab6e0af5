package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockcharts/internal/logger"
)

func TestToString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"3f1c", "3f1c"},
		{42, ""},
	}
	for _, tc := range cases {
		if got := toString(tc.in); got != tc.want {
			t.Fatalf("toString(%v)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestRequestLogger_PassesThroughStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.Init()

	cases := []struct {
		name   string
		status int
	}{
		{name: "ok", status: http.StatusOK},
		{name: "unknown company", status: http.StatusNotFound},
		{name: "upstream failure", status: http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RequestID(), RequestLogger())
			r.GET("/metrics", func(c *gin.Context) { c.Status(tc.status) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics?companies=Google", nil))
			if w.Code != tc.status {
				t.Fatalf("status %d, want %d", w.Code, tc.status)
			}
			if w.Header().Get(RequestIDHeader) == "" {
				t.Fatalf("missing X-Request-ID header")
			}
		})
	}
}
