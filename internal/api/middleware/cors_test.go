package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bidding-engine/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		origin     string
		method     string
		wantOrigin string
		wantStatus int
	}{
		{"wildcard echoes origin", []string{"*"}, "https://shop.example", http.MethodGet, "https://shop.example", http.StatusTeapot},
		{"listed origin", []string{"https://shop.example"}, "https://shop.example", http.MethodPost, "https://shop.example", http.StatusTeapot},
		{"unlisted origin", []string{"https://shop.example"}, "https://evil.example", http.MethodGet, "", http.StatusTeapot},
		{"no origin", []string{"*"}, "", http.MethodGet, "", http.StatusTeapot},
		{"preflight", []string{"*"}, "https://shop.example", http.MethodOptions, "https://shop.example", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/auctions/a1", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowed)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	RequestLogger(logger.NewNop())(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
