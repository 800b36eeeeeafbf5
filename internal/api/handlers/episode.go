package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"story_web/internal/service"
)

type EpisodeHandler struct {
	episodeService *service.EpisodeService
}

func NewEpisodeHandler(episodeService *service.EpisodeService) *EpisodeHandler {
	return &EpisodeHandler{episodeService: episodeService}
}

type EpisodeInput struct {
	Title string `json:"title" binding:"required,notblank,max=255"`
}

// List 列出故事的章節，依建立順序
func (h *EpisodeHandler) List(c *gin.Context) {
	storyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	episodes, err := h.episodeService.List(c.Request.Context(), currentUser(c), storyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, episodes)
}

func (h *EpisodeHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	episode, err := h.episodeService.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, episode)
}

func (h *EpisodeHandler) Create(c *gin.Context) {
	storyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input EpisodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	episode, err := h.episodeService.Create(c.Request.Context(), currentUser(c), storyID, input.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, episode)
}

func (h *EpisodeHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input EpisodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	episode, err := h.episodeService.Update(c.Request.Context(), currentUser(c), id, input.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, episode)
}

func (h *EpisodeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.episodeService.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
