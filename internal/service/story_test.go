package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"story_web/internal/repository"
)

func seedCategory(t *testing.T, env *testEnv, name string) uint {
	t.Helper()
	require.NoError(t, env.categories.Seed(context.Background(), []string{name}))
	list, err := env.categories.List(context.Background())
	require.NoError(t, err)
	for _, c := range list {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("category %q not seeded", name)
	return 0
}

func TestCategorySeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.NoError(t, env.categories.Seed(ctx, []string{"Horror", " Drama ", "Horror", ""}))
	require.NoError(t, env.categories.Seed(ctx, []string{"Drama", "Comedy"}))

	list, err := env.categories.List(ctx)
	require.NoError(t, err)
	names := []string{}
	for _, c := range list {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Comedy", "Drama", "Horror"}, names)
}

func TestStoryCreateValidates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.user(t, "author")
	horror := seedCategory(t, env, "Horror")

	_, err := env.stories.Create(ctx, author, StoryInput{Title: "  ", CategoryID: horror})
	assert.ErrorIs(t, err, ErrMissingTitle)

	_, err = env.stories.Create(ctx, author, StoryInput{Title: "Night", CategoryID: 404})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = env.stories.Create(ctx, author, StoryInput{Title: "Night", CategoryID: horror, Image: "cover.bmp"})
	assert.ErrorIs(t, err, ErrInvalidMediaExtension)

	v, err := env.stories.Create(ctx, author, StoryInput{Title: " Night ", CategoryID: horror, Image: "/media/images/c.png"})
	require.NoError(t, err)
	assert.Equal(t, "Night", v.Title)
	assert.Equal(t, "author", v.Author.Username)
	require.NotNil(t, v.Category)
	assert.Equal(t, "Horror", v.Category.Name)
	assert.False(t, v.Published)
}

func TestStoryDraftVisibility(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.user(t, "author")
	reader := env.user(t, "reader")
	horror := seedCategory(t, env, "Horror")

	draft, err := env.stories.Create(ctx, author, StoryInput{Title: "Draft", CategoryID: horror})
	require.NoError(t, err)

	_, err = env.stories.Get(ctx, reader, draft.ID, "10.0.0.1")
	assert.ErrorIs(t, err, ErrNotFound)

	list, total, err := env.stories.List(ctx, reader, repository.StoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)

	mine, total, err := env.stories.ListMine(ctx, author, repository.Page{})
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, int64(1), total)

	_, err = env.stories.Publish(ctx, reader, draft.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	published, err := env.stories.Publish(ctx, author, draft.ID)
	require.NoError(t, err)
	assert.True(t, published.Published)
	require.NotNil(t, published.PublishDate)

	again, err := env.stories.Publish(ctx, author, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, published.PublishDate, again.PublishDate)

	_, err = env.stories.Get(ctx, reader, draft.ID, "10.0.0.1")
	assert.NoError(t, err)
}

func TestStoryViewsAreUniquePerIP(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.user(t, "author")
	story := env.story(t, author, true)

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.1"} {
		_, err := env.stories.Get(ctx, 0, story.ID, ip)
		require.NoError(t, err)
	}

	v, err := env.stories.Get(ctx, 0, story.ID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.Views)
}

func TestStoryToggleLikeNotifiesAuthor(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.user(t, "author")
	reader := env.user(t, "reader")
	story := env.story(t, author, true)

	liked, err := env.stories.ToggleLike(ctx, reader, story.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, env.pusher.count(author))

	v, err := env.stories.Get(ctx, reader, story.ID, "")
	require.NoError(t, err)
	assert.True(t, v.IsLiked)
	assert.Equal(t, int64(1), v.LikesCount)

	liked, err = env.stories.ToggleLike(ctx, reader, story.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	// 自己按讚不通知
	_, err = env.stories.ToggleLike(ctx, author, story.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, env.pusher.count(author))
}

func TestStorySaveAndUnsave(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.user(t, "author")
	reader := env.user(t, "reader")
	first := env.story(t, author, true)
	second := env.story(t, author, true)

	require.NoError(t, env.stories.Save(ctx, reader, first.ID))
	require.NoError(t, env.stories.Save(ctx, reader, second.ID))
	require.NoError(t, env.stories.Save(ctx, reader, second.ID))

	saved, total, err := env.stories.ListSaved(ctx, reader, repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, saved, 2)
	assert.Equal(t, second.ID, saved[0].ID)
	assert.True(t, saved[0].IsSaved)

	require.NoError(t, env.stories.Unsave(ctx, reader, second.ID))
	_, total, err = env.stories.ListSaved(ctx, reader, repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestStoryDeleteCascades(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)
	m := f.text(t, "1", "one")

	assert.ErrorIs(t, f.stories.Delete(ctx, f.reader, f.storyID), ErrForbidden)
	require.NoError(t, f.stories.Delete(ctx, f.author, f.storyID))

	_, err := f.episodes.Get(ctx, f.author, f.episodeID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.repos.Message.FindByID(ctx, m.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.repos.Character.FindByID(ctx, f.hero)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStoryListSearch(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.user(t, "author")
	horror := seedCategory(t, env, "Horror")

	for _, title := range []string{"The Lighthouse", "Night Train", "Lights Out"} {
		v, err := env.stories.Create(ctx, author, StoryInput{Title: title, CategoryID: horror})
		require.NoError(t, err)
		_, err = env.stories.Publish(ctx, author, v.ID)
		require.NoError(t, err)
	}

	list, total, err := env.stories.List(ctx, 0, repository.StoryFilter{Search: "light", Ordering: "title"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, "Lights Out", list[0].Title)
	assert.Equal(t, "The Lighthouse", list[1].Title)
}

func TestStoryListOrderedByViews(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.user(t, "author")
	popular := env.story(t, author, true)
	quiet := env.story(t, author, true)
	env.story(t, author, false)

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		_, err := env.stories.Get(ctx, 0, popular.ID, ip)
		require.NoError(t, err)
	}

	list, total, err := env.stories.List(ctx, 0, repository.StoryFilter{Ordering: "-views"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, popular.ID, list[0].ID)
	assert.Equal(t, int64(3), list[0].Views)
	assert.Equal(t, quiet.ID, list[1].ID)
	assert.Equal(t, int64(0), list[1].Views)

	list, _, err = env.stories.List(ctx, 0, repository.StoryFilter{Ordering: "views"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, quiet.ID, list[0].ID)

	list, total, err = env.stories.List(ctx, 0, repository.StoryFilter{
		Ordering: "-views",
		Page:     repository.Page{Page: 2, PageSize: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 1)
	assert.Equal(t, quiet.ID, list[0].ID)
}
