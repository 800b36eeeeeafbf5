package service

import (
	"context"
	"errors"
	"fmt"

	"story_web/internal/models"
	"story_web/internal/repository"
)

// access 集中處理故事與章節的權限檢查
type access struct {
	storyRepo   repository.StoryRepository
	episodeRepo repository.EpisodeRepository
}

// notFound 把 repository.ErrNotFound 轉成 ErrNotFound，其他錯誤加上說明
func notFound(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("failed to find %s: %w", what, err)
}

// readableStory 已發布的故事任何人可讀，草稿只有作者可讀
func (a access) readableStory(ctx context.Context, viewerID, storyID uint) (*models.Story, error) {
	story, err := a.storyRepo.FindByID(ctx, storyID)
	if err != nil {
		return nil, notFound(err, "story")
	}
	if !story.Published && story.AuthorID != viewerID {
		// 不透露草稿是否存在
		return nil, fmt.Errorf("story: %w", ErrNotFound)
	}
	return story, nil
}

// ownedStory 只有作者可以修改故事及其內容
func (a access) ownedStory(ctx context.Context, userID, storyID uint) (*models.Story, error) {
	story, err := a.storyRepo.FindByID(ctx, storyID)
	if err != nil {
		return nil, notFound(err, "story")
	}
	if story.AuthorID != userID {
		return nil, ErrForbidden
	}
	return story, nil
}

func (a access) readableEpisode(ctx context.Context, viewerID, episodeID uint) (*models.Episode, *models.Story, error) {
	episode, err := a.episodeRepo.FindByID(ctx, episodeID)
	if err != nil {
		return nil, nil, notFound(err, "episode")
	}
	story, err := a.readableStory(ctx, viewerID, episode.StoryID)
	if err != nil {
		return nil, nil, err
	}
	return episode, story, nil
}

func (a access) ownedEpisode(ctx context.Context, userID, episodeID uint) (*models.Episode, *models.Story, error) {
	episode, err := a.episodeRepo.FindByID(ctx, episodeID)
	if err != nil {
		return nil, nil, notFound(err, "episode")
	}
	story, err := a.ownedStory(ctx, userID, episode.StoryID)
	if err != nil {
		return nil, nil, err
	}
	return episode, story, nil
}
