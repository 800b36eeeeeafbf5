package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"story_web/internal/models"
	"story_web/internal/repository"
)

const maxCharacterName = 50

var hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// CharacterInput 建立或更新角色，nil 欄位代表不變更
type CharacterInput struct {
	Name  *string
	Color *string
}

type CharacterService struct {
	access
	characterRepo repository.CharacterRepository
}

func NewCharacterService(characterRepo repository.CharacterRepository, storyRepo repository.StoryRepository, episodeRepo repository.EpisodeRepository) *CharacterService {
	return &CharacterService{
		access:        access{storyRepo: storyRepo, episodeRepo: episodeRepo},
		characterRepo: characterRepo,
	}
}

// List 只有故事作者可以看到角色列表
func (s *CharacterService) List(ctx context.Context, userID, storyID uint) ([]models.Character, error) {
	if _, err := s.ownedStory(ctx, userID, storyID); err != nil {
		return nil, err
	}
	return s.characterRepo.ListByStory(ctx, storyID)
}

func (s *CharacterService) Create(ctx context.Context, userID, storyID uint, in CharacterInput) (*models.Character, error) {
	if _, err := s.ownedStory(ctx, userID, storyID); err != nil {
		return nil, err
	}
	if in.Name == nil {
		return nil, ErrMissingName
	}

	character := &models.Character{StoryID: storyID}
	if err := s.apply(ctx, character, in); err != nil {
		return nil, err
	}
	if err := s.characterRepo.Create(ctx, character); err != nil {
		return nil, writeCharacterError(err, "create")
	}
	return character, nil
}

func (s *CharacterService) Update(ctx context.Context, userID, characterID uint, in CharacterInput) (*models.Character, error) {
	character, err := s.owned(ctx, userID, characterID)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, character, in); err != nil {
		return nil, err
	}
	if err := s.characterRepo.Update(ctx, character); err != nil {
		return nil, writeCharacterError(err, "update")
	}
	return character, nil
}

// Delete 刪除角色，其訊息保留但不再指向角色
func (s *CharacterService) Delete(ctx context.Context, userID, characterID uint) error {
	character, err := s.owned(ctx, userID, characterID)
	if err != nil {
		return err
	}
	if err := s.characterRepo.Delete(ctx, character.ID); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	return nil
}

// writeCharacterError 寫入時才撞到唯一索引，代表與另一個請求同時搶到相同的名稱或顏色
func writeCharacterError(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateCharacterColor):
		return ErrCharacterColorTaken
	case errors.Is(err, repository.ErrDuplicate):
		return ErrCharacterNameTaken
	default:
		return fmt.Errorf("failed to %s character: %w", op, err)
	}
}

func (s *CharacterService) owned(ctx context.Context, userID, characterID uint) (*models.Character, error) {
	character, err := s.characterRepo.FindByID(ctx, characterID)
	if err != nil {
		return nil, notFound(err, "character")
	}
	if _, err := s.ownedStory(ctx, userID, character.StoryID); err != nil {
		return nil, err
	}
	return character, nil
}

// apply 驗證名稱與顏色在同一故事中不重複，顏色統一為大寫
func (s *CharacterService) apply(ctx context.Context, character *models.Character, in CharacterInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return ErrMissingName
		}
		if utf8.RuneCountInString(name) > maxCharacterName {
			return withDetail(ErrContentTooLong, fmt.Sprintf("name: at most %d characters", maxCharacterName))
		}
		taken, err := s.characterRepo.NameTaken(ctx, character.StoryID, name, character.ID)
		if err != nil {
			return fmt.Errorf("failed to check character name: %w", err)
		}
		if taken {
			return ErrCharacterNameTaken
		}
		character.Name = name
	}

	if in.Color != nil {
		color := strings.ToUpper(strings.TrimSpace(*in.Color))
		if color != "" {
			if !hexColorPattern.MatchString(color) {
				return ErrInvalidColor
			}
			taken, err := s.characterRepo.ColorTaken(ctx, character.StoryID, color, character.ID)
			if err != nil {
				return fmt.Errorf("failed to check character color: %w", err)
			}
			if taken {
				return ErrCharacterColorTaken
			}
		}
		character.Color = color
	}
	return nil
}
