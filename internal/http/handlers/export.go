package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yardvine/yardvine-backend/internal/http/response"
	"github.com/yardvine/yardvine-backend/internal/services"
)

type ExportHandler struct {
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func respondCSV(c *gin.Context, csv, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

// ExportClients honors the same query params as the client list, so the
// download matches the filtered view.
func (eh *ExportHandler) ExportClients(c *gin.Context) {
	f, search := filterFromQuery(c)
	csv, filename, err := eh.exportService.ExportClients(c.Request.Context(), f, search)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "export_failed", err)
		return
	}
	respondCSV(c, csv, filename)
}

func (eh *ExportHandler) ExportJobHistory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	csv, filename, err := eh.exportService.ExportJobHistory(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "export_failed", err)
		return
	}
	respondCSV(c, csv, filename)
}
