package search

import "github.com/gin-gonic/gin"

// registers search and capability routes; limit (optional) guards the endpoints that embed
func RegisterRoutes(router *gin.RouterGroup, searcher Searcher, recorder QueryRecorder, stats StatsReader, limit gin.HandlerFunc) {
	group := router.Group("/search")
	if limit != nil {
		group.Use(limit)
	}

	{
		group.POST("", Handler(searcher, recorder))
		group.POST("/assets", AssetsHandler(searcher))
	}

	if stats != nil {
		router.GET("/search/stats", StatsHandler(stats))
	}

	capabilities := router.Group("/capabilities")

	{
		capabilities.GET("", CapabilitiesHandler)
		capabilities.POST("/detect", DetectHandler)
	}
}
