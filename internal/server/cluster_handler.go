package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobpulse/internal/analytics"
	"jobpulse/internal/dao"
)

const (
	defaultClusters    = 4
	defaultClusterPool = 50
)

// handleClusters groups companies by the shape of their vacancy time series.
// @Summary Cluster companies by vacancy trend
// @Produce json
// @Param clusters query int false "Cluster count" default(4)
// @Param topN query int false "Candidate pool size" default(50)
// @Success 200 {object} dao.ClusterResponse
// @Router /api/v1/clusters [get]
func (s *Server) handleClusters(c *gin.Context) {
	var req dao.ClusterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}
	clusters := req.Clusters
	if clusters == 0 {
		clusters = defaultClusters
	}
	topN := req.TopN
	if topN == 0 {
		topN = defaultClusterPool
	}

	assignments, err := analytics.Cluster(clusters, topN)
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dao.ClusterResponse{Assignments: assignments})
}
