package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"story_web/internal/models"
	"story_web/internal/repository"
)

func TestMessageOrderConstraint(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()

	first := &models.Message{EpisodeID: 1, Order: 1}
	require.NoError(t, repos.Message.Create(ctx, first))
	assert.ErrorIs(t, repos.Message.Create(ctx, &models.Message{EpisodeID: 1, Order: 1}), repository.ErrDuplicate)
	assert.NoError(t, repos.Message.Create(ctx, &models.Message{EpisodeID: 2, Order: 1}))

	// 更新成自己的排序鍵不衝突
	assert.NoError(t, repos.Message.Update(ctx, first))

	orders, err := repos.Message.ListOrders(ctx, 1, first.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCharacterDeleteSetsNull(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()

	c := &models.Character{Name: "Hero", StoryID: 1}
	require.NoError(t, repos.Character.Create(ctx, c))
	m := &models.Message{EpisodeID: 1, Order: 1, CharacterID: &c.ID}
	require.NoError(t, repos.Message.Create(ctx, m))

	require.NoError(t, repos.Character.Delete(ctx, c.ID))

	got, err := repos.Message.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CharacterID)
}

func TestCharacterConstraints(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()

	hero := &models.Character{Name: "Hero", Color: "#FF0000", StoryID: 1}
	require.NoError(t, repos.Character.Create(ctx, hero))

	err := repos.Character.Create(ctx, &models.Character{Name: "Hero", StoryID: 1})
	assert.ErrorIs(t, err, repository.ErrDuplicateCharacterName)
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	err = repos.Character.Create(ctx, &models.Character{Name: "Villain", Color: "#FF0000", StoryID: 1})
	assert.ErrorIs(t, err, repository.ErrDuplicateCharacterColor)

	// 沒有顏色不算衝突，其他故事也不受影響
	assert.NoError(t, repos.Character.Create(ctx, &models.Character{Name: "Narrator", StoryID: 1}))
	assert.NoError(t, repos.Character.Create(ctx, &models.Character{Name: "Extra", StoryID: 1}))
	assert.NoError(t, repos.Character.Create(ctx, &models.Character{Name: "Hero", Color: "#FF0000", StoryID: 2}))

	villain := &models.Character{Name: "Villain", Color: "#00FF00", StoryID: 1}
	require.NoError(t, repos.Character.Create(ctx, villain))
	villain.Color = "#FF0000"
	assert.ErrorIs(t, repos.Character.Update(ctx, villain), repository.ErrDuplicateCharacterColor)
	assert.NoError(t, repos.Character.Update(ctx, hero))
}
