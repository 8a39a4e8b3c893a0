package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobpulse/internal/analytics"
	"jobpulse/internal/dao"
)

const defaultHeatmapIndustries = 20

// handleHeatmap serves the industry×period vacancy pivot.
// @Summary Industry vacancy heatmap
// @Produce json
// @Param topN query int false "Number of industries" default(20)
// @Success 200 {object} analytics.Heatmap
// @Router /api/v1/heatmap [get]
func (s *Server) handleHeatmap(c *gin.Context) {
	var req dao.HeatmapRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}
	topN := req.TopN
	if topN == 0 {
		topN = defaultHeatmapIndustries
	}

	pivot, err := analytics.IndustryPivot(topN)
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, pivot)
}
