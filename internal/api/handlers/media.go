package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"story_web/internal/service"
)

// MediaHandler 接收上傳的圖片、影片與音訊
type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

type MediaInput struct {
	Kind string `form:"kind" binding:"required,oneof=image video audio"`
}

// Upload 儲存檔案並回傳可放進訊息內容的網址
func (h *MediaHandler) Upload(c *gin.Context) {
	var input MediaInput
	if err := c.ShouldBind(&input); err != nil {
		respondBindError(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required", "code": "invalid_request"})
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	ref, err := h.mediaService.Store(input.Kind, header.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": ref})
}
