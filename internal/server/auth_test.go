package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBearerTokenGate(t *testing.T) {
	env := setupServer(t)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "malformed scheme", header: "Basic abc123", want: http.StatusUnauthorized},
		{name: "bare token without scheme", header: testToken, want: http.StatusUnauthorized},
		{name: "wrong token", header: "Bearer wrong", want: http.StatusUnauthorized},
		{name: "correct token", header: "Bearer " + testToken, want: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/tasks/", nil, map[string]string{"Authorization": tc.header})
			assert.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestGateCoversAllTaskRoutes(t *testing.T) {
	env := setupServer(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/tasks/"},
		{http.MethodGet, "/tasks/"},
		{http.MethodGet, "/tasks/1"},
		{http.MethodPut, "/tasks/1"},
		{http.MethodDelete, "/tasks/1"},
		{http.MethodPost, "/tasks/1/suggestions"},
	}

	for _, r := range routes {
		rec := env.do(t, r.method, r.path, nil, map[string]string{"Authorization": ""})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s must be gated", r.method, r.path)
	}
}
