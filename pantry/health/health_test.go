package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, checks map[string]Check) (int, Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler(checks, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestHandlerLiveness(t *testing.T) {
	code, resp := serve(t, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, resp.Checks)
}

func TestHandlerChecks(t *testing.T) {
	code, resp := serve(t, map[string]Check{
		"registry": func(context.Context) error { return nil },
		"noop":     nil,
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]string{"registry": "ok", "noop": "ok"}, resp.Checks)

	code, resp = serve(t, map[string]Check{
		"registry": func(context.Context) error { return nil },
		"engine":   func(context.Context) error { return errors.New("boom") },
	})
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "error: boom", resp.Checks["engine"])
	assert.Equal(t, "ok", resp.Checks["registry"])
}
