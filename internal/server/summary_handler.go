package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobpulse/internal/cache"
	"jobpulse/internal/dao"
	"jobpulse/internal/dataset"
	"jobpulse/internal/summary"
)

// handleSummary runs (or serves from cache) one streaming pass over the
// configured source.
// @Summary Streaming dataset summary
// @Produce json
// @Param sampleSize query int false "Row sample size" default(20000)
// @Param freq query string false "Period bucket: week or month"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/summary [get]
func (s *Server) handleSummary(c *gin.Context) {
	var req dao.SummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}

	sampleSize := req.SampleSize
	if sampleSize == 0 {
		sampleSize = s.conf.Dataset.SampleSize
	}
	freqStr := req.Freq
	if freqStr == "" {
		freqStr = s.conf.Dataset.Freq
	}
	freq, err := dataset.ParseFreq(freqStr)
	if err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}

	path := s.conf.Dataset.CSVPath
	key := cache.SummaryKey(path, sampleSize, string(freq))
	meta := dao.SummaryMeta{Source: path, SampleSize: sampleSize, Freq: string(freq)}

	var cached summary.Summary
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.logger.Warnf("summary cache read failed: %v", err)
	}
	if found {
		meta.Cached = true
		c.JSON(http.StatusOK, gin.H{"meta": meta, "summary": cached})
		return
	}

	sum, err := summary.Summarize(path, summary.Options{
		SampleSize: sampleSize,
		Freq:       freq,
	})
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	if err := s.cache.Set(key, sum); err != nil {
		s.logger.Warnf("summary cache write failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"meta": meta, "summary": sum})
}

// handleBustCache drops every cached summary.
// @Summary Invalidate the summary cache
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/summary/cache [delete]
func (s *Server) handleBustCache(c *gin.Context) {
	if err := s.cache.Bust(); err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cache cleared"})
}
