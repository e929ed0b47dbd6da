package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yardvine/yardvine-backend/internal/http/response"
	"github.com/yardvine/yardvine-backend/internal/services"
)

type QuoteHandler struct {
	quoteService services.QuoteService
}

func NewQuoteHandler(quoteService services.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

func (qh *QuoteHandler) ListClientQuotes(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	quotes, err := qh.quoteService.ListQuotesForClient(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	response.RespondOK(c, gin.H{"quotes": quotes})
}

func (qh *QuoteHandler) CreateQuote(c *gin.Context) {
	var req struct {
		ClientID uuid.UUID `json:"client_id"`
		services.QuoteInput
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.ClientID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("client_id is required"))
		return
	}
	quote, err := qh.quoteService.CreateQuote(c.Request.Context(), req.ClientID, req.QuoteInput)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "create_failed", err)
		return
	}
	response.RespondOK(c, quote)
}

func (qh *QuoteHandler) UpdateQuote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.QuoteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	quote, err := qh.quoteService.UpdateQuote(c.Request.Context(), id, req)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "update_failed", err)
		return
	}
	response.RespondOK(c, quote)
}

func (qh *QuoteHandler) UpdateQuoteStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	quote, err := qh.quoteService.UpdateQuoteStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "status_failed", err)
		return
	}
	response.RespondOK(c, quote)
}

func (qh *QuoteHandler) DeleteQuote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := qh.quoteService.DeleteQuote(c.Request.Context(), id); err != nil {
		response.RespondError(c, http.StatusBadRequest, "delete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
