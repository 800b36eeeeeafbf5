package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"story_web/internal/models"
	"story_web/internal/service"
)

// MessageHandler 處理章節訊息的新增、修改、排序與刪除
type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// MessageInput order 可以是數字或字串，原樣交給服務層驗證
type MessageInput struct {
	Order         json.RawMessage    `json:"order"`
	MessageType   models.MessageType `json:"message_type"`
	CharacterID   *uint              `json:"character_id"`
	TextContent   *string            `json:"text_content"`
	ImageContent  *string            `json:"image_content"`
	VideoContent  *string            `json:"video_content"`
	AudioContent  *string            `json:"audio_content"`
	StatusContent *string            `json:"status_content"`
}

func (in MessageInput) content() service.ContentPayload {
	return service.ContentPayload{
		CharacterID:   in.CharacterID,
		TextContent:   in.TextContent,
		ImageContent:  in.ImageContent,
		VideoContent:  in.VideoContent,
		AudioContent:  in.AudioContent,
		StatusContent: in.StatusContent,
	}
}

type OrderInput struct {
	Order json.RawMessage `json:"order"`
}

// rawOrder 取出排序鍵的原始文字；未提供或 null 時 present 為 false
func rawOrder(raw json.RawMessage) (value string, present bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, true
		}
	}
	return string(raw), true
}

// knownType 在查詢任何資料前先擋下未知的訊息種類，空值交給服務層判斷
func knownType(c *gin.Context, t models.MessageType) bool {
	if t == "" || service.ValidMessageType(t) {
		return true
	}
	respondError(c, service.ErrUnknownMessageType)
	return false
}

func (h *MessageHandler) List(c *gin.Context) {
	episodeID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page := pageFromQuery(c)
	messages, total, err := h.messageService.ListByEpisode(c.Request.Context(), currentUser(c), episodeID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, page, total, messages)
}

func (h *MessageHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	message, err := h.messageService.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message)
}

func (h *MessageHandler) Create(c *gin.Context) {
	episodeID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input MessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	if !knownType(c, input.MessageType) {
		return
	}

	order, _ := rawOrder(input.Order)
	message, err := h.messageService.Create(c.Request.Context(), currentUser(c), service.CreateMessageInput{
		EpisodeID:   episodeID,
		Order:       order,
		MessageType: input.MessageType,
		Content:     input.content(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

// Update PUT 與 PATCH 都只更新有帶的欄位
func (h *MessageHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input MessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	if !knownType(c, input.MessageType) {
		return
	}

	update := service.UpdateMessageInput{
		MessageType: input.MessageType,
		Content:     input.content(),
	}
	if order, present := rawOrder(input.Order); present {
		update.Order = &order
	}

	message, err := h.messageService.Update(c.Request.Context(), currentUser(c), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message)
}

// Reorder 只變更排序鍵
func (h *MessageHandler) Reorder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	order, _ := rawOrder(input.Order)
	message, err := h.messageService.Reorder(c.Request.Context(), currentUser(c), id, order)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message)
}

func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.messageService.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
