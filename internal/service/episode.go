package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"story_web/internal/models"
	"story_web/internal/repository"
)

const maxEpisodeTitle = 255

type EpisodeService struct {
	access
}

func NewEpisodeService(episodeRepo repository.EpisodeRepository, storyRepo repository.StoryRepository) *EpisodeService {
	return &EpisodeService{access: access{storyRepo: storyRepo, episodeRepo: episodeRepo}}
}

func (s *EpisodeService) List(ctx context.Context, viewerID, storyID uint) ([]models.Episode, error) {
	if _, err := s.readableStory(ctx, viewerID, storyID); err != nil {
		return nil, err
	}
	return s.episodeRepo.ListByStory(ctx, storyID)
}

func (s *EpisodeService) Get(ctx context.Context, viewerID, episodeID uint) (*models.Episode, error) {
	episode, _, err := s.readableEpisode(ctx, viewerID, episodeID)
	return episode, err
}

func (s *EpisodeService) Create(ctx context.Context, userID, storyID uint, title string) (*models.Episode, error) {
	if _, err := s.ownedStory(ctx, userID, storyID); err != nil {
		return nil, err
	}
	title, err := cleanTitle(title)
	if err != nil {
		return nil, err
	}

	episode := &models.Episode{Title: title, StoryID: storyID}
	if err := s.episodeRepo.Create(ctx, episode); err != nil {
		return nil, fmt.Errorf("failed to create episode: %w", err)
	}
	return episode, nil
}

func (s *EpisodeService) Update(ctx context.Context, userID, episodeID uint, title string) (*models.Episode, error) {
	episode, _, err := s.ownedEpisode(ctx, userID, episodeID)
	if err != nil {
		return nil, err
	}
	title, err = cleanTitle(title)
	if err != nil {
		return nil, err
	}

	episode.Title = title
	if err := s.episodeRepo.Update(ctx, episode); err != nil {
		return nil, fmt.Errorf("failed to update episode: %w", err)
	}
	return episode, nil
}

// Delete 刪除章節與其所有訊息
func (s *EpisodeService) Delete(ctx context.Context, userID, episodeID uint) error {
	episode, _, err := s.ownedEpisode(ctx, userID, episodeID)
	if err != nil {
		return err
	}
	if err := s.episodeRepo.Delete(ctx, episode.ID); err != nil {
		return fmt.Errorf("failed to delete episode: %w", err)
	}
	return nil
}

func cleanTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrMissingTitle
	}
	if utf8.RuneCountInString(title) > maxEpisodeTitle {
		return "", withDetail(ErrContentTooLong, fmt.Sprintf("title: at most %d characters", maxEpisodeTitle))
	}
	return title, nil
}
