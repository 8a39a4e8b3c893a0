package dao

import "jobpulse/internal/notes"

type NotesResponse struct {
	Items []notes.Note `json:"items"`
}

// SaveNotesRequest replaces the notes table wholesale.
type SaveNotesRequest struct {
	Items []notes.Note `json:"items" binding:"required,dive"`
}
