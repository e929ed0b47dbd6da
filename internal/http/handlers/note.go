package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yardvine/yardvine-backend/internal/http/response"
	"github.com/yardvine/yardvine-backend/internal/services"
)

type NoteHandler struct {
	noteService services.NoteService
}

func NewNoteHandler(noteService services.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (nh *NoteHandler) ListClientNotes(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	notes, err := nh.noteService.ListNotesForClient(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	response.RespondOK(c, gin.H{"notes": notes})
}

func (nh *NoteHandler) AddNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Body string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	note, err := nh.noteService.AddNote(c.Request.Context(), id, req.Body)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "create_failed", err)
		return
	}
	response.RespondOK(c, note)
}

func (nh *NoteHandler) UpdateNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Body string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	note, err := nh.noteService.UpdateNote(c.Request.Context(), id, req.Body)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "update_failed", err)
		return
	}
	response.RespondOK(c, note)
}

func (nh *NoteHandler) DeleteNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := nh.noteService.DeleteNote(c.Request.Context(), id); err != nil {
		response.RespondError(c, http.StatusBadRequest, "delete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
