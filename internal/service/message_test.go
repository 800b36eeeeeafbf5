package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"story_web/internal/models"
	"story_web/internal/repository"
)

type messageFixture struct {
	*testEnv
	author    uint
	reader    uint
	storyID   uint
	episodeID uint
	hero      uint
}

func newMessageFixture(t *testing.T) *messageFixture {
	env := newTestEnv(t)
	f := &messageFixture{testEnv: env}
	f.author = env.user(t, "author")
	f.reader = env.user(t, "reader")
	story := env.story(t, f.author, true)
	f.storyID = story.ID
	f.episodeID = env.episode(t, story.ID)
	f.hero = env.character(t, story.ID, "Hero")
	return f
}

func (f *messageFixture) text(t *testing.T, order, text string) *MessageView {
	t.Helper()
	m, err := f.messages.Create(context.Background(), f.author, CreateMessageInput{
		EpisodeID:   f.episodeID,
		Order:       order,
		MessageType: models.MessageTypeText,
		Content:     ContentPayload{CharacterID: uintPtr(f.hero), TextContent: strPtr(text)},
	})
	require.NoError(t, err)
	return m
}

func (f *messageFixture) orders(t *testing.T) []float64 {
	t.Helper()
	list, _, err := f.messages.ListByEpisode(context.Background(), f.reader, f.episodeID, repository.Page{Page: 1, PageSize: 100})
	require.NoError(t, err)
	out := make([]float64, 0, len(list))
	for _, m := range list {
		out = append(out, m.Order)
	}
	return out
}

func TestMessageCreateKeepsEpisodeOrdered(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)
	f.text(t, "1024", "one")
	f.text(t, "2048", "two")
	f.text(t, "3072", "three")

	_, err := f.messages.Create(ctx, f.author, CreateMessageInput{
		EpisodeID:   f.episodeID,
		Order:       "2048",
		MessageType: models.MessageTypeText,
		Content:     ContentPayload{CharacterID: uintPtr(f.hero), TextContent: strPtr("dup")},
	})
	assert.ErrorIs(t, err, ErrDuplicateOrder)
	assert.Equal(t, []float64{1024, 2048, 3072}, f.orders(t))

	m := f.text(t, "1500", "between")
	assert.Equal(t, 1500.0, m.Order)
	assert.Equal(t, []float64{1024, 1500, 2048, 3072}, f.orders(t))
}

func TestMessageCreateStatusWithoutCharacter(t *testing.T) {
	f := newMessageFixture(t)

	m, err := f.messages.Create(context.Background(), f.author, CreateMessageInput{
		EpisodeID:   f.episodeID,
		Order:       "1",
		MessageType: models.MessageTypeStatus,
		Content:     ContentPayload{StatusContent: strPtr("storm approaches")},
	})
	require.NoError(t, err)
	assert.Nil(t, m.CharacterID)
	assert.Nil(t, m.CharacterInfo)
	require.NotNil(t, m.StatusContent)
	assert.Equal(t, "storm approaches", *m.StatusContent)
}

func TestMessageCreateRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)

	tests := []struct {
		name    string
		in      CreateMessageInput
		wantErr error
	}{
		{
			name:    "missing order",
			in:      CreateMessageInput{MessageType: models.MessageTypeStatus, Content: ContentPayload{StatusContent: strPtr("x")}},
			wantErr: ErrMissingOrder,
		},
		{
			name:    "zero order",
			in:      CreateMessageInput{Order: "0", MessageType: models.MessageTypeStatus, Content: ContentPayload{StatusContent: strPtr("x")}},
			wantErr: ErrNonPositiveOrder,
		},
		{
			name:    "empty text",
			in:      CreateMessageInput{Order: "1", MessageType: models.MessageTypeText, Content: ContentPayload{CharacterID: uintPtr(f.hero), TextContent: strPtr("")}},
			wantErr: ErrMissingContent,
		},
		{
			name:    "unknown character",
			in:      CreateMessageInput{Order: "1", MessageType: models.MessageTypeText, Content: ContentPayload{CharacterID: uintPtr(777), TextContent: strPtr("hi")}},
			wantErr: ErrCharacterNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.EpisodeID = f.episodeID
			_, err := f.messages.Create(ctx, f.author, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, f.orders(t))
}

func TestMessageCreateRequiresAuthor(t *testing.T) {
	f := newMessageFixture(t)

	_, err := f.messages.Create(context.Background(), f.reader, CreateMessageInput{
		EpisodeID:   f.episodeID,
		Order:       "1",
		MessageType: models.MessageTypeStatus,
		Content:     ContentPayload{StatusContent: strPtr("x")},
	})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.messages.Create(context.Background(), f.author, CreateMessageInput{
		EpisodeID:   9999,
		Order:       "1",
		MessageType: models.MessageTypeStatus,
		Content:     ContentPayload{StatusContent: strPtr("x")},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMessageUpdateOrder(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)
	first := f.text(t, "1024", "one")
	f.text(t, "2048", "two")

	_, err := f.messages.Update(ctx, f.author, first.ID, UpdateMessageInput{Order: strPtr("2048")})
	assert.ErrorIs(t, err, ErrDuplicateOrder)

	// 設成自己原本的值不算重複
	same, err := f.messages.Update(ctx, f.author, first.ID, UpdateMessageInput{Order: strPtr("1024")})
	require.NoError(t, err)
	assert.Equal(t, 1024.0, same.Order)

	moved, err := f.messages.Update(ctx, f.author, first.ID, UpdateMessageInput{
		Order:   strPtr("4096"),
		Content: ContentPayload{TextContent: strPtr("one, later")},
	})
	require.NoError(t, err)
	assert.Equal(t, 4096.0, moved.Order)
	assert.Equal(t, "one, later", *moved.TextContent)
	assert.Equal(t, []float64{2048, 4096}, f.orders(t))
}

func TestMessageUpdateFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)
	m := f.text(t, "1", "one")

	_, err := f.messages.Update(ctx, f.author, m.ID, UpdateMessageInput{
		Order:   strPtr("5"),
		Content: ContentPayload{TextContent: strPtr("")},
	})
	assert.ErrorIs(t, err, ErrMissingContent)

	stored, err := f.messages.Get(ctx, f.author, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, stored.Order)
	assert.Equal(t, "one", *stored.TextContent)
}

func TestMessageUpdateTypeImmutable(t *testing.T) {
	f := newMessageFixture(t)
	m := f.text(t, "1", "one")

	_, err := f.messages.Update(context.Background(), f.author, m.ID, UpdateMessageInput{
		MessageType: models.MessageTypeStatus,
		Content:     ContentPayload{StatusContent: strPtr("x")},
	})
	assert.ErrorIs(t, err, ErrMessageTypeImmutable)
}

func TestMessageReorderLeavesContent(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)
	f.text(t, "1024", "one")
	second := f.text(t, "2048", "two")

	m, err := f.messages.Reorder(ctx, f.author, second.ID, "512")
	require.NoError(t, err)
	assert.Equal(t, 512.0, m.Order)
	assert.Equal(t, "two", *m.TextContent)
	require.NotNil(t, m.CharacterInfo)
	assert.Equal(t, "Hero", m.CharacterInfo.Name)
	assert.Equal(t, []float64{512, 1024}, f.orders(t))

	_, err = f.messages.Reorder(ctx, f.author, second.ID, "1024")
	assert.ErrorIs(t, err, ErrDuplicateOrder)

	_, err = f.messages.Reorder(ctx, f.reader, second.ID, "10")
	assert.ErrorIs(t, err, ErrForbidden)
}

// staleOrders 模擬兩個請求同時讀到相同的排序鍵快照
type staleOrders struct {
	repository.MessageRepository
}

func (staleOrders) ListOrders(context.Context, uint, uint) ([]float64, error) {
	return nil, nil
}

func TestMessageConstraintViolationIsDuplicateOrder(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)
	f.text(t, "2048", "two")

	racing := NewMessageService(staleOrders{f.repos.Message}, f.repos.Episode, f.repos.Story, f.repos.Character, zap.NewNop())
	_, err := racing.Create(ctx, f.author, CreateMessageInput{
		EpisodeID:   f.episodeID,
		Order:       "2048",
		MessageType: models.MessageTypeStatus,
		Content:     ContentPayload{StatusContent: strPtr("late")},
	})
	assert.ErrorIs(t, err, ErrDuplicateOrder)
	assert.Equal(t, []float64{2048}, f.orders(t))
}

func TestMessageListHidesDrafts(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.user(t, "author")
	reader := env.user(t, "reader")
	draft := env.story(t, author, false)
	episodeID := env.episode(t, draft.ID)

	_, _, err := env.messages.ListByEpisode(ctx, reader, episodeID, repository.Page{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = env.messages.ListByEpisode(ctx, author, episodeID, repository.Page{})
	assert.NoError(t, err)
}

func TestMessageDelete(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)
	m := f.text(t, "1", "one")

	assert.ErrorIs(t, f.messages.Delete(ctx, f.reader, m.ID), ErrForbidden)
	require.NoError(t, f.messages.Delete(ctx, f.author, m.ID))

	_, err := f.messages.Get(ctx, f.author, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// 刪除後排序鍵可以再次使用
	f.text(t, "1", "again")
}

func TestDeletingCharacterKeepsMessages(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)
	m := f.text(t, "1", "one")

	require.NoError(t, f.characters.Delete(ctx, f.author, f.hero))

	got, err := f.messages.Get(ctx, f.author, m.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CharacterID)
	assert.Nil(t, got.CharacterInfo)
}
