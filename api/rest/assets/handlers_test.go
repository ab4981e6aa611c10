package assets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/showcase/server/internal/assets"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const assetID = "0b7f3c1e-5a52-4a8e-9d36-0f5d6b1c2a11"

func init() {
	gin.SetMode(gin.TestMode)
}

type mockRepo struct {
	get func(ctx context.Context, id string) (*assets.Asset, error)
}

func (m *mockRepo) Get(ctx context.Context, id string) (*assets.Asset, error) {
	return m.get(ctx, id)
}

func serve(repo AssetGetter, path string) *httptest.ResponseRecorder {
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	return w
}

func TestGetHandler(t *testing.T) {
	repo := &mockRepo{get: func(_ context.Context, id string) (*assets.Asset, error) {
		return &assets.Asset{ID: id, Type: assets.TypeVideo, Title: "Explainer"}, nil
	}}

	w := serve(repo, "/api/v1/assets/"+assetID)
	require.Equal(t, http.StatusOK, w.Code)

	var got assets.Asset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, assetID, got.ID)
	assert.Equal(t, assets.TypeVideo, got.Type)
}

func TestGetHandler_Errors(t *testing.T) {
	notFound := &mockRepo{get: func(context.Context, string) (*assets.Asset, error) {
		return nil, assets.ErrAssetNotFound
	}}

	assert.Equal(t, http.StatusNotFound, serve(notFound, "/api/v1/assets/"+assetID).Code)
	assert.Equal(t, http.StatusBadRequest, serve(notFound, "/api/v1/assets/not-a-uuid").Code)

	broken := &mockRepo{get: func(context.Context, string) (*assets.Asset, error) {
		return nil, errors.New("connection reset")
	}}

	assert.Equal(t, http.StatusInternalServerError, serve(broken, "/api/v1/assets/"+assetID).Code)
}
