package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"story_web/internal/models"
	"story_web/internal/repository"
	"story_web/internal/repository/memory"
	"story_web/internal/utils"
)

// recordingPusher 記錄推送的通知
type recordingPusher struct {
	mu     sync.Mutex
	pushed map[uint][]models.Notification
}

func newRecordingPusher() *recordingPusher {
	return &recordingPusher{pushed: map[uint][]models.Notification{}}
}

func (p *recordingPusher) PushNotification(userID uint, n *models.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushed[userID] = append(p.pushed[userID], *n)
}

func (p *recordingPusher) count(userID uint) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pushed[userID])
}

// testEnv 以記憶體儲存組出完整的服務
type testEnv struct {
	repos  *repository.Repositories
	pusher *recordingPusher

	users         *UserService
	categories    *CategoryService
	stories       *StoryService
	characters    *CharacterService
	episodes      *EpisodeService
	messages      *MessageService
	comments      *CommentService
	notifications *NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repos := memory.NewStore().Repositories()
	pusher := newRecordingPusher()
	logger := zap.NewNop()
	notifications := NewNotificationService(repos.Notification, pusher, logger)

	return &testEnv{
		repos:         repos,
		pusher:        pusher,
		users:         NewUserService(repos.User, utils.NewTokenManager("test-secret", time.Hour)),
		categories:    NewCategoryService(repos.Category),
		stories:       NewStoryService(repos.Story, repos.Episode, repos.User, repos.Category, repos.View, notifications, logger),
		characters:    NewCharacterService(repos.Character, repos.Story, repos.Episode),
		episodes:      NewEpisodeService(repos.Episode, repos.Story),
		messages:      NewMessageService(repos.Message, repos.Episode, repos.Story, repos.Character, logger),
		comments:      NewCommentService(repos.Comment, repos.Story, repos.Episode, repos.User, notifications),
		notifications: notifications,
	}
}

func (e *testEnv) user(t *testing.T, username string) uint {
	t.Helper()
	u := &models.User{Username: username, Password: "x"}
	require.NoError(t, e.repos.User.Create(context.Background(), u))
	return u.ID
}

func (e *testEnv) story(t *testing.T, authorID uint, published bool) *models.Story {
	t.Helper()
	s := &models.Story{Title: "The Lighthouse", AuthorID: authorID, Published: published}
	require.NoError(t, e.repos.Story.Create(context.Background(), s))
	return s
}

func (e *testEnv) episode(t *testing.T, storyID uint) uint {
	t.Helper()
	ep := &models.Episode{Title: "Chapter 1", StoryID: storyID}
	require.NoError(t, e.repos.Episode.Create(context.Background(), ep))
	return ep.ID
}

func (e *testEnv) character(t *testing.T, storyID uint, name string) uint {
	t.Helper()
	c := &models.Character{Name: name, StoryID: storyID}
	require.NoError(t, e.repos.Character.Create(context.Background(), c))
	return c.ID
}

func strPtr(s string) *string { return &s }

func uintPtr(v uint) *uint { return &v }
