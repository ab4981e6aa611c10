package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type matchInfo struct {
	v2 bool
}

func (m matchInfo) MatchFunction() string {
	if m.v2 {
		return "match_asset_chunks_v2"
	}

	return "match_asset_chunks"
}

func (m matchInfo) SupportsCapabilityFilter() bool { return m.v2 }

func serve(h gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/", h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	return w
}

func TestHandler(t *testing.T) {
	w := serve(Handler)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestReadyHandler(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })

	w := serve(ReadyHandler(map[string]Pinger{"postgres": ok, "redis": ok}, matchInfo{v2: true}))
	require.Equal(t, http.StatusOK, w.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, map[string]string{"postgres": "up", "redis": "up"}, resp.Checks)
	assert.Equal(t, "match_asset_chunks_v2", resp.MatchFunction)
	assert.True(t, resp.CapabilityFilter)
}

func TestReadyHandler_DependencyDown(t *testing.T) {
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	w := serve(ReadyHandler(map[string]Pinger{"postgres": down}, matchInfo{}))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unavailable", resp.Status)
	assert.Equal(t, "down", resp.Checks["postgres"])
	assert.Equal(t, "match_asset_chunks", resp.MatchFunction)
}
