package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yardvine/yardvine-backend/internal/http/response"
	"github.com/yardvine/yardvine-backend/internal/services"
)

type CommunicationHandler struct {
	commService services.CommunicationService
}

func NewCommunicationHandler(commService services.CommunicationService) *CommunicationHandler {
	return &CommunicationHandler{commService: commService}
}

func (ch *CommunicationHandler) ListClientCommunications(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	entries, err := ch.commService.ListCommunicationsForClient(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	response.RespondOK(c, gin.H{"communications": entries})
}

func (ch *CommunicationHandler) LogCommunication(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Type  string `json:"type"`
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	entry, err := ch.commService.LogCommunication(c.Request.Context(), id, req.Type, req.Notes)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "create_failed", err)
		return
	}
	response.RespondOK(c, entry)
}
