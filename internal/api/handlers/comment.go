package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"story_web/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type CommentInput struct {
	Text string `json:"text" binding:"required,notblank,max=2000"`
}

// List 故事的留言，新的在前
func (h *CommentHandler) List(c *gin.Context) {
	storyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page := pageFromQuery(c)
	comments, total, err := h.commentService.List(c.Request.Context(), currentUser(c), storyID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, page, total, comments)
}

func (h *CommentHandler) Create(c *gin.Context) {
	storyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	comment, err := h.commentService.Create(c.Request.Context(), currentUser(c), storyID, input.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.commentService.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) ToggleLike(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	liked, err := h.commentService.ToggleLike(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}
