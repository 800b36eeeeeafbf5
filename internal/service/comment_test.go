package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"story_web/internal/repository"
)

func TestCommentLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.user(t, "author")
	reader := env.user(t, "reader")
	story := env.story(t, author, true)

	_, err := env.comments.Create(ctx, reader, story.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyComment)

	_, err = env.comments.Create(ctx, reader, story.ID, strings.Repeat("a", 2001))
	assert.ErrorIs(t, err, ErrContentTooLong)

	c, err := env.comments.Create(ctx, reader, story.ID, "Loved it")
	require.NoError(t, err)
	assert.Equal(t, "reader", c.Author.Username)
	assert.Equal(t, 1, env.pusher.count(author))

	liked, err := env.comments.ToggleLike(ctx, author, c.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, env.pusher.count(reader))

	list, total, err := env.comments.List(ctx, author, story.ID, repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsLiked)
	assert.Equal(t, int64(1), list[0].LikesCount)

	assert.ErrorIs(t, env.comments.Delete(ctx, author, c.ID), ErrForbidden)
	require.NoError(t, env.comments.Delete(ctx, reader, c.ID))
	assert.ErrorIs(t, env.comments.Delete(ctx, reader, c.ID), ErrNotFound)
}

func TestCommentOnDraftIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	author := env.user(t, "author")
	reader := env.user(t, "reader")
	draft := env.story(t, author, false)

	_, err := env.comments.Create(context.Background(), reader, draft.ID, "hi")
	assert.ErrorIs(t, err, ErrNotFound)
}
