package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"story_web/internal/repository"
	"story_web/internal/service"
)

// StoryHandler 處理故事、按讚與收藏
type StoryHandler struct {
	storyService *service.StoryService
}

func NewStoryHandler(storyService *service.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

// StoryInput 建立與更新故事的請求
type StoryInput struct {
	Title       string `json:"title" binding:"required,notblank,max=255"`
	Description string `json:"description" binding:"max=5000"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	Image       string `json:"image"`
}

func (in StoryInput) toService() service.StoryInput {
	return service.StoryInput{
		Title:       in.Title,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Image:       in.Image,
	}
}

// List 已發布的故事，支援 search、ordering 與分頁
func (h *StoryHandler) List(c *gin.Context) {
	page := pageFromQuery(c)
	filter := repository.StoryFilter{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Page:     page,
	}
	stories, total, err := h.storyService.List(c.Request.Context(), currentUser(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, page, total, stories)
}

// Mine 目前用戶自己的故事（含草稿）
func (h *StoryHandler) Mine(c *gin.Context) {
	page := pageFromQuery(c)
	stories, total, err := h.storyService.ListMine(c.Request.Context(), currentUser(c), page)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, page, total, stories)
}

// Saved 目前用戶收藏的故事
func (h *StoryHandler) Saved(c *gin.Context) {
	page := pageFromQuery(c)
	stories, total, err := h.storyService.ListSaved(c.Request.Context(), currentUser(c), page)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, page, total, stories)
}

func (h *StoryHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	story, err := h.storyService.Get(c.Request.Context(), currentUser(c), id, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *StoryHandler) Create(c *gin.Context) {
	var input StoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	story, err := h.storyService.Create(c.Request.Context(), currentUser(c), input.toService())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, story)
}

func (h *StoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input StoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	story, err := h.storyService.Update(c.Request.Context(), currentUser(c), id, input.toService())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *StoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.storyService.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StoryHandler) Publish(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	story, err := h.storyService.Publish(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

// ToggleLike 按讚或取消按讚
func (h *StoryHandler) ToggleLike(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	liked, err := h.storyService.ToggleLike(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

func (h *StoryHandler) Save(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.storyService.Save(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

func (h *StoryHandler) Unsave(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.storyService.Unsave(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": false})
}
