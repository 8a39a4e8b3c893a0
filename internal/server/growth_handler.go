package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobpulse/internal/analytics"
	"jobpulse/internal/dao"
)

const defaultTopMovers = 20

// handlePeriodGrowth ranks companies by vacancy growth between the two most
// recent periods in the store.
// @Summary Top movers, period over period
// @Produce json
// @Param topN query int false "Number of movers" default(20)
// @Success 200 {object} dao.GrowthResponse
// @Router /api/v1/growth/period [get]
func (s *Server) handlePeriodGrowth(c *gin.Context) {
	s.serveGrowth(c, analytics.PeriodGrowth)
}

// handleYoyGrowth ranks companies by growth between the two most recent
// calendar years.
// @Summary Top movers, year over year
// @Produce json
// @Param topN query int false "Number of movers" default(20)
// @Success 200 {object} dao.GrowthResponse
// @Router /api/v1/growth/yoy [get]
func (s *Server) handleYoyGrowth(c *gin.Context) {
	s.serveGrowth(c, analytics.YearOverYearGrowth)
}

func (s *Server) serveGrowth(c *gin.Context, compute func(int) ([]analytics.CompanyGrowth, error)) {
	var req dao.GrowthRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}
	topN := req.TopN
	if topN == 0 {
		topN = defaultTopMovers
	}

	items, err := compute(topN)
	if err != nil {
		s.writeDomainError(c, err)
		return
	}

	resp := dao.GrowthResponse{Items: make([]dao.GrowthItem, 0, len(items))}
	for _, it := range items {
		resp.Items = append(resp.Items, dao.GrowthItem{
			Company:   it.Company,
			Last:      it.Last,
			Prev:      it.Prev,
			PctChange: analytics.FormatPct(it.PctChange),
		})
	}
	c.JSON(http.StatusOK, resp)
}
