package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobpulse/internal/dao"
	"jobpulse/internal/notes"
)

// handleGetNotes returns the flat-file notes table.
// @Summary List notes
// @Produce json
// @Success 200 {object} dao.NotesResponse
// @Router /api/v1/notes [get]
func (s *Server) handleGetNotes(c *gin.Context) {
	items, err := notes.Load(s.conf.NotesPath)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, dao.NotesResponse{Items: items})
}

// handleSaveNotes rewrites the notes table wholesale.
// @Summary Replace notes
// @Accept json
// @Produce json
// @Success 200 {object} dao.NotesResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/notes [put]
func (s *Server) handleSaveNotes(c *gin.Context) {
	var req dao.SaveNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}
	if err := notes.Save(s.conf.NotesPath, req.Items); err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, dao.NotesResponse{Items: req.Items})
}
