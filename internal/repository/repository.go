package repository

import (
	"github.com/redis/go-redis/v9"

	"story_web/internal/storage"
)

type Repositories struct {
	User         UserRepository
	Category     CategoryRepository
	Story        StoryRepository
	Character    CharacterRepository
	Episode      EpisodeRepository
	Message      MessageRepository
	Comment      CommentRepository
	Notification NotificationRepository
	View         ViewRepository
}

func NewRepositories(db *storage.PostgresDB, rdb *redis.Client) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Category:     NewCategoryRepository(db),
		Story:        NewStoryRepository(db),
		Character:    NewCharacterRepository(db),
		Episode:      NewEpisodeRepository(db),
		Message:      NewMessageRepository(db),
		Comment:      NewCommentRepository(db),
		Notification: NewNotificationRepository(db),
		View:         NewViewRepository(rdb),
	}
}
