package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yardvine/yardvine-backend/internal/directory"
	"github.com/yardvine/yardvine-backend/internal/http/response"
	"github.com/yardvine/yardvine-backend/internal/services"
)

type ClientHandler struct {
	clientService    services.ClientService
	directoryService services.DirectoryService
	profileService   services.ProfileService
}

func NewClientHandler(
	clientService services.ClientService,
	directoryService services.DirectoryService,
	profileService services.ProfileService,
) *ClientHandler {
	return &ClientHandler{
		clientService:    clientService,
		directoryService: directoryService,
		profileService:   profileService,
	}
}

// filterFromQuery builds the directory filter from list/export query
// params: search, status, tags (comma separated), min_spent, sort.
func filterFromQuery(c *gin.Context) (directory.Filter, string) {
	f := directory.Filter{
		Status: directory.ParseStatusFilter(c.Query("status")),
		SortBy: directory.ParseSortKey(c.Query("sort")),
	}
	if raw := strings.TrimSpace(c.Query("tags")); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				f.Tags = append(f.Tags, tag)
			}
		}
	}
	if raw := strings.TrimSpace(c.Query("min_spent")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			f.MinSpent = v
		}
	}
	return f, c.Query("search")
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, false
	}
	return id, true
}

// ListClients returns the filtered directory cards plus the book-wide
// summary stats the dashboard header shows.
func (ch *ClientHandler) ListClients(c *gin.Context) {
	f, search := filterFromQuery(c)
	cards, err := ch.directoryService.ListClients(c.Request.Context(), f, search)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	summary, err := ch.directoryService.Summary(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "summary_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"clients": cards, "summary": summary})
}

func (ch *ClientHandler) Summary(c *gin.Context) {
	summary, err := ch.directoryService.Summary(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "summary_failed", err)
		return
	}
	response.RespondOK(c, summary)
}

func (ch *ClientHandler) CreateClient(c *gin.Context) {
	var req services.ClientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	client, err := ch.clientService.CreateClient(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "create_failed", err)
		return
	}
	response.RespondOK(c, client)
}

func (ch *ClientHandler) GetProfile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	profile, err := ch.profileService.GetProfile(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	response.RespondOK(c, profile)
}

func (ch *ClientHandler) UpdateClient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.ClientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	client, err := ch.clientService.UpdateClient(c.Request.Context(), id, req)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "update_failed", err)
		return
	}
	response.RespondOK(c, client)
}

func (ch *ClientHandler) DeleteClient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ch.clientService.DeleteClient(c.Request.Context(), id); err != nil {
		response.RespondError(c, http.StatusBadRequest, "delete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ch *ClientHandler) AddTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Tag string `json:"tag"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	client, err := ch.clientService.AddTag(c.Request.Context(), id, req.Tag)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "tag_failed", err)
		return
	}
	response.RespondOK(c, client)
}

func (ch *ClientHandler) RemoveTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tag := c.Param("tag")
	client, err := ch.clientService.RemoveTag(c.Request.Context(), id, tag)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "tag_failed", err)
		return
	}
	response.RespondOK(c, client)
}

func (ch *ClientHandler) SetRating(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Rating int `json:"rating"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	client, err := ch.clientService.SetRating(c.Request.Context(), id, req.Rating)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "rating_failed", err)
		return
	}
	response.RespondOK(c, client)
}

// AvatarPNG serves the generated initials avatar stored on the client row.
func (ch *ClientHandler) AvatarPNG(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	client, err := ch.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	if len(client.AvatarPNG) == 0 {
		response.RespondError(c, http.StatusNotFound, "no_avatar", nil)
		return
	}
	c.Data(http.StatusOK, "image/png", client.AvatarPNG)
}
