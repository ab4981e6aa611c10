package assets

import (
	"context"
	"errors"
	"net/http"

	"codeberg.org/showcase/server/internal/assets"
	apierrors "codeberg.org/showcase/server/internal/errors"
	"github.com/gin-gonic/gin"
)

type AssetGetter interface {
	Get(ctx context.Context, id string) (*assets.Asset, error)
}

// GetHandler godoc
// @Summary Get an asset
// @Description Returns a single asset, e.g. when the front end deep-links a search result
// @Tags assets
// @Produce json
// @Param id path string true "Asset ID (UUID)"
// @Success 200 {object} assets.Asset
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/assets/{id} [get]
func GetHandler(repo AssetGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := apierrors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		asset, err := repo.Get(c.Request.Context(), id)
		if errors.Is(err, assets.ErrAssetNotFound) {
			apierrors.NotFound(c, "asset")
			return
		}

		if err != nil {
			apierrors.DependencyError(c, "failed to load asset", err)
			return
		}

		c.JSON(http.StatusOK, asset)
	}
}
