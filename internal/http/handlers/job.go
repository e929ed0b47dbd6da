package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yardvine/yardvine-backend/internal/http/response"
	"github.com/yardvine/yardvine-backend/internal/services"
)

type JobHandler struct {
	jobService services.JobService
}

func NewJobHandler(jobService services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

func (jh *JobHandler) ListClientJobs(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	jobs, err := jh.jobService.ListJobsForClient(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	response.RespondOK(c, gin.H{"jobs": jobs})
}

func (jh *JobHandler) CreateJob(c *gin.Context) {
	var req struct {
		ClientID uuid.UUID `json:"client_id"`
		services.JobInput
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.ClientID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("client_id is required"))
		return
	}
	job, err := jh.jobService.CreateJob(c.Request.Context(), req.ClientID, req.JobInput)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "create_failed", err)
		return
	}
	response.RespondOK(c, job)
}

func (jh *JobHandler) UpdateJob(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.JobInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	job, err := jh.jobService.UpdateJob(c.Request.Context(), id, req)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "update_failed", err)
		return
	}
	response.RespondOK(c, job)
}

func (jh *JobHandler) DeleteJob(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := jh.jobService.DeleteJob(c.Request.Context(), id); err != nil {
		response.RespondError(c, http.StatusBadRequest, "delete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
