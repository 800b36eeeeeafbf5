package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"story_web/internal/metrics"
	"story_web/internal/models"
	"story_web/internal/repository"
)

// CreateMessageInput 新增訊息的輸入，Order 為原始字串，空字串代表未提供
type CreateMessageInput struct {
	EpisodeID   uint
	Order       string
	MessageType models.MessageType
	Content     ContentPayload
}

// UpdateMessageInput 部分更新，Order 為 nil 時不變更排序
type UpdateMessageInput struct {
	Order       *string
	MessageType models.MessageType
	Content     ContentPayload
}

// MessageView 回傳給前端的訊息，附帶角色資料
type MessageView struct {
	models.Message
	CharacterInfo *models.Character `json:"character"`
}

type MessageService struct {
	access
	messageRepo   repository.MessageRepository
	characterRepo repository.CharacterRepository
	logger        *zap.Logger
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	episodeRepo repository.EpisodeRepository,
	storyRepo repository.StoryRepository,
	characterRepo repository.CharacterRepository,
	logger *zap.Logger,
) *MessageService {
	return &MessageService{
		access:        access{storyRepo: storyRepo, episodeRepo: episodeRepo},
		messageRepo:   messageRepo,
		characterRepo: characterRepo,
		logger:        logger.Named("MessageService"),
	}
}

// Create 新增訊息：權限 → 排序鍵 → 內容 → 寫入
func (s *MessageService) Create(ctx context.Context, userID uint, in CreateMessageInput) (*MessageView, error) {
	_, story, err := s.ownedEpisode(ctx, userID, in.EpisodeID)
	if err != nil {
		return nil, err
	}

	existing, err := s.messageRepo.ListOrders(ctx, in.EpisodeID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	order, err := ValidateOrder(in.Order, existing)
	if err != nil {
		s.countConflict(err, "precheck")
		return nil, err
	}

	content, err := ResolveContent(ctx, story.ID, in.MessageType, in.Content, s.characterRepo)
	if err != nil {
		return nil, err
	}

	message := &models.Message{EpisodeID: in.EpisodeID, Order: order}
	content.Apply(message)

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, s.writeError(err, "create")
	}

	metrics.MessagesCreatedTotal.WithLabelValues(string(message.MessageType)).Inc()
	s.logger.Debug("message created",
		zap.Uint("messageID", message.ID),
		zap.Uint("episodeID", message.EpisodeID),
		zap.Float64("order", message.Order),
		zap.String("type", string(message.MessageType)),
	)
	return s.view(ctx, message)
}

// Update 部分更新訊息內容，可同時變更排序鍵
func (s *MessageService) Update(ctx context.Context, userID, messageID uint, in UpdateMessageInput) (*MessageView, error) {
	message, story, err := s.ownedMessage(ctx, userID, messageID)
	if err != nil {
		return nil, err
	}

	updated := *message
	if in.Order != nil {
		order, err := s.validateNewOrder(ctx, message, *in.Order)
		if err != nil {
			return nil, err
		}
		updated.Order = order
	}

	content, err := ResolveContentUpdate(ctx, story.ID, message, in.MessageType, in.Content, s.characterRepo)
	if err != nil {
		return nil, err
	}
	content.Apply(&updated)

	if err := s.messageRepo.Update(ctx, &updated); err != nil {
		return nil, s.writeError(err, "update")
	}
	return s.view(ctx, &updated)
}

// Reorder 只變更排序鍵，內容不動
func (s *MessageService) Reorder(ctx context.Context, userID, messageID uint, requestedOrder string) (*MessageView, error) {
	message, _, err := s.ownedMessage(ctx, userID, messageID)
	if err != nil {
		return nil, err
	}

	order, err := s.validateNewOrder(ctx, message, requestedOrder)
	if err != nil {
		return nil, err
	}

	updated := *message
	updated.Order = order
	if err := s.messageRepo.Update(ctx, &updated); err != nil {
		return nil, s.writeError(err, "reorder")
	}

	s.logger.Debug("message reordered",
		zap.Uint("messageID", message.ID),
		zap.Float64("from", message.Order),
		zap.Float64("to", order),
	)
	return s.view(ctx, &updated)
}

func (s *MessageService) Get(ctx context.Context, viewerID, messageID uint) (*MessageView, error) {
	message, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		return nil, notFound(err, "message")
	}
	if _, _, err := s.readableEpisode(ctx, viewerID, message.EpisodeID); err != nil {
		return nil, err
	}
	return s.view(ctx, message)
}

// ListByEpisode 依排序鍵由小到大列出訊息
func (s *MessageService) ListByEpisode(ctx context.Context, viewerID, episodeID uint, page repository.Page) ([]MessageView, int64, error) {
	if _, _, err := s.readableEpisode(ctx, viewerID, episodeID); err != nil {
		return nil, 0, err
	}

	messages, total, err := s.messageRepo.ListByEpisode(ctx, episodeID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list messages: %w", err)
	}

	ids := make([]uint, 0, len(messages))
	for _, m := range messages {
		if m.CharacterID != nil {
			ids = append(ids, *m.CharacterID)
		}
	}
	characters, err := s.characterRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load characters: %w", err)
	}

	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		v := MessageView{Message: m}
		if m.CharacterID != nil {
			if c, ok := characters[*m.CharacterID]; ok {
				v.CharacterInfo = &c
			}
		}
		views = append(views, v)
	}
	return views, total, nil
}

func (s *MessageService) Delete(ctx context.Context, userID, messageID uint) error {
	message, _, err := s.ownedMessage(ctx, userID, messageID)
	if err != nil {
		return err
	}
	if err := s.messageRepo.Delete(ctx, message.ID); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

func (s *MessageService) ownedMessage(ctx context.Context, userID, messageID uint) (*models.Message, *models.Story, error) {
	message, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		return nil, nil, notFound(err, "message")
	}
	_, story, err := s.ownedEpisode(ctx, userID, message.EpisodeID)
	if err != nil {
		return nil, nil, err
	}
	return message, story, nil
}

// validateNewOrder 排除訊息自己的排序鍵後再檢查，設成原本的值視為成功
func (s *MessageService) validateNewOrder(ctx context.Context, message *models.Message, requested string) (float64, error) {
	existing, err := s.messageRepo.ListOrders(ctx, message.EpisodeID, message.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to list orders: %w", err)
	}
	order, err := ValidateOrder(requested, existing)
	if err != nil {
		s.countConflict(err, "precheck")
		return 0, err
	}
	return order, nil
}

// writeError 寫入時違反唯一約束等同排序鍵重複
func (s *MessageService) writeError(err error, op string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		metrics.OrderConflictsTotal.WithLabelValues("constraint").Inc()
		s.logger.Info("order conflict detected by storage", zap.String("op", op))
		return ErrDuplicateOrder
	}
	return fmt.Errorf("failed to %s message: %w", op, err)
}

func (s *MessageService) countConflict(err error, stage string) {
	if errors.Is(err, ErrDuplicateOrder) {
		metrics.OrderConflictsTotal.WithLabelValues(stage).Inc()
	}
}

func (s *MessageService) view(ctx context.Context, message *models.Message) (*MessageView, error) {
	v := &MessageView{Message: *message}
	if message.CharacterID == nil {
		return v, nil
	}
	character, err := s.characterRepo.FindByID(ctx, *message.CharacterID)
	switch {
	case err == nil:
		v.CharacterInfo = character
	case errors.Is(err, repository.ErrNotFound):
	default:
		return nil, fmt.Errorf("failed to load character: %w", err)
	}
	return v, nil
}
