package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	t.Parallel()

	const heatmapOrigin = "https://heatmap.example.com"

	tests := []struct {
		name            string
		allowed         []string
		method          string
		origin          string
		preflightMethod string
		wantStatus      int
		wantAllowOrigin string
	}{
		{
			name:            "configured origin on feed read",
			allowed:         []string{heatmapOrigin},
			method:          http.MethodGet,
			origin:          heatmapOrigin,
			wantStatus:      http.StatusOK,
			wantAllowOrigin: heatmapOrigin,
		},
		{
			name:            "blank entries ignored",
			allowed:         []string{" ", heatmapOrigin + " "},
			method:          http.MethodGet,
			origin:          heatmapOrigin,
			wantStatus:      http.StatusOK,
			wantAllowOrigin: heatmapOrigin,
		},
		{
			name:            "unconfigured origin still served without header",
			allowed:         []string{"https://allowed.example.com"},
			method:          http.MethodGet,
			origin:          "https://other.example.com",
			wantStatus:      http.StatusOK,
			wantAllowOrigin: "",
		},
		{
			name:            "wildcard preflight for GET",
			allowed:         []string{"*"},
			method:          http.MethodOptions,
			origin:          heatmapOrigin,
			preflightMethod: http.MethodGet,
			wantStatus:      http.StatusNoContent,
			wantAllowOrigin: "*",
		},
		{
			name:            "preflight for write method rejected",
			allowed:         []string{"*"},
			method:          http.MethodOptions,
			origin:          heatmapOrigin,
			preflightMethod: http.MethodPost,
			wantStatus:      http.StatusNoContent,
			wantAllowOrigin: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(tt.method, "/api/v1/heatmap/1204/3838001", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflightMethod != "" {
				req.Header.Set("Access-Control-Request-Method", tt.preflightMethod)
			}
			rec := httptest.NewRecorder()

			CORS(tt.allowed, next).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			require.Equal(t, tt.wantAllowOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
