package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"http://localhost:5173", " https://eval.example.com/ "}, next)

	tests := []struct {
		name        string
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		wantMethods bool
	}{
		{"allowed origin", http.MethodGet, "http://localhost:5173", http.StatusOK, "http://localhost:5173", false},
		{"trimmed origin", http.MethodGet, "https://eval.example.com", http.StatusOK, "https://eval.example.com", false},
		{"unknown origin", http.MethodGet, "https://evil.example.com", http.StatusOK, "", false},
		{"no origin", http.MethodGet, "", http.StatusOK, "", false},
		{"preflight allowed", http.MethodOptions, "http://localhost:5173", http.StatusNoContent, "http://localhost:5173", true},
		{"preflight unknown", http.MethodOptions, "https://evil.example.com", http.StatusNoContent, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/datasets", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantMethods {
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
				assert.NotEmpty(t, rec.Header().Get("Access-Control-Max-Age"))
			} else {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}
