package server

import (
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
)

func (s *Server) SetUpRouter() *gin.Engine {
	router := gin.New()
	router.Use(RequestId())
	router.Use(Logger())
	router.Use(gin.Recovery())
	pprof.Register(router)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "ok",
		})
	})

	apiV1 := router.Group("/api/v1")
	s.SetUpApiV1Router(apiV1)

	return router
}

func (s *Server) SetUpApiV1Router(apiV1 *gin.RouterGroup) {
	apiV1.GET("/summary", s.handleSummary)
	apiV1.DELETE("/summary/cache", s.handleBustCache)

	apiV1.GET("/growth/period", s.handlePeriodGrowth)
	apiV1.GET("/growth/yoy", s.handleYoyGrowth)
	apiV1.GET("/clusters", s.handleClusters)
	apiV1.GET("/heatmap", s.handleHeatmap)

	apiV1.GET("/notes", s.handleGetNotes)
	apiV1.PUT("/notes", s.handleSaveNotes)
}
