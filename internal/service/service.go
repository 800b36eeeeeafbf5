package service

import (
	"go.uber.org/zap"

	"story_web/internal/repository"
	"story_web/internal/utils"
)

type Services struct {
	UserService         *UserService
	CategoryService     *CategoryService
	StoryService        *StoryService
	CharacterService    *CharacterService
	EpisodeService      *EpisodeService
	MessageService      *MessageService
	CommentService      *CommentService
	NotificationService *NotificationService
	MediaService        *MediaService
	WebSocketService    *WebSocketService
}

func NewServices(repos *repository.Repositories, tokens *utils.TokenManager, mediaRoot string, logger *zap.Logger) *Services {
	wsService := NewWebSocketService(logger)
	notificationService := NewNotificationService(repos.Notification, wsService, logger)

	return &Services{
		UserService:     NewUserService(repos.User, tokens),
		CategoryService: NewCategoryService(repos.Category),
		StoryService: NewStoryService(
			repos.Story, repos.Episode, repos.User, repos.Category, repos.View,
			notificationService, logger,
		),
		CharacterService: NewCharacterService(repos.Character, repos.Story, repos.Episode),
		EpisodeService:   NewEpisodeService(repos.Episode, repos.Story),
		MessageService: NewMessageService(
			repos.Message, repos.Episode, repos.Story, repos.Character, logger,
		),
		CommentService: NewCommentService(
			repos.Comment, repos.Story, repos.Episode, repos.User, notificationService,
		),
		NotificationService: notificationService,
		MediaService:        NewMediaService(mediaRoot),
		WebSocketService:    wsService,
	}
}
