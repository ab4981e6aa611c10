package assets

import "github.com/gin-gonic/gin"

// registers asset lookup routes
func RegisterRoutes(router *gin.RouterGroup, repo AssetGetter) {
	router.GET("/assets/:id", GetHandler(repo))
}
