package router

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct{}

func (pinger) RegisterPing(api huma.API) {
	huma.Get(api, "/ping", func(context.Context, *struct{}) (*struct{ Body string }, error) {
		return &struct{ Body string }{Body: "pong"}, nil
	})
}

func TestNew(t *testing.T) {
	var seen []string
	h := New("test", "0.0.0",
		func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
		func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, "up 1\n") },
		OptUseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
			seen = append(seen, ctx.Operation().Path)
			next(ctx)
		}),
		OptGroup("/api", OptGroup("/v1", OptAutoRegister(pinger{}))),
	)

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/liveness", http.StatusOK, ""},
		{"/readiness", http.StatusServiceUnavailable, ""},
		{"/metrics", http.StatusOK, "up 1\n"},
		{"/api/v1/ping", http.StatusOK, `"pong"`},
		{"/ping", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.Equal(t, tt.code, rec.Code)
			if tt.body != "" {
				assert.Contains(t, rec.Body.String(), tt.body)
			}
		})
	}

	assert.Equal(t, []string{"/api/v1/ping"}, seen)
}
