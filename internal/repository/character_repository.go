package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm/clause"

	"story_web/internal/models"
	"story_web/internal/storage"
)

// 角色的兩個唯一約束，皆包裝 ErrDuplicate
var (
	ErrDuplicateCharacterName  = fmt.Errorf("%w: character name", ErrDuplicate)
	ErrDuplicateCharacterColor = fmt.Errorf("%w: character color", ErrDuplicate)
)

type CharacterRepository interface {
	Create(ctx context.Context, character *models.Character) error
	FindByID(ctx context.Context, id uint) (*models.Character, error)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]models.Character, error)
	Update(ctx context.Context, character *models.Character) error
	Delete(ctx context.Context, id uint) error
	ListByStory(ctx context.Context, storyID uint) ([]models.Character, error)
	// NameTaken / ColorTaken 檢查同一故事中是否已有相同名稱或顏色，excludeID 為 0 時不排除
	NameTaken(ctx context.Context, storyID uint, name string, excludeID uint) (bool, error)
	ColorTaken(ctx context.Context, storyID uint, color string, excludeID uint) (bool, error)
}

type characterRepository struct {
	db *storage.PostgresDB
}

func NewCharacterRepository(db *storage.PostgresDB) CharacterRepository {
	return &characterRepository{db: db}
}

func (r *characterRepository) Create(ctx context.Context, character *models.Character) error {
	return r.constraint(ctx, character, translate(r.db.WithContext(ctx).Create(character).Error))
}

func (r *characterRepository) FindByID(ctx context.Context, id uint) (*models.Character, error) {
	var character models.Character
	if err := r.db.WithContext(ctx).First(&character, id).Error; err != nil {
		return nil, translate(err)
	}
	return &character, nil
}

func (r *characterRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]models.Character, error) {
	out := make(map[uint]models.Character, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var characters []models.Character
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&characters).Error; err != nil {
		return nil, err
	}
	for _, c := range characters {
		out[c.ID] = c
	}
	return out, nil
}

func (r *characterRepository) Update(ctx context.Context, character *models.Character) error {
	return r.constraint(ctx, character, translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(character).Error))
}

// constraint 找出違反的是名稱還是顏色的唯一索引
func (r *characterRepository) constraint(ctx context.Context, character *models.Character, err error) error {
	if !errors.Is(err, ErrDuplicate) {
		return err
	}
	if taken, lookupErr := r.NameTaken(ctx, character.StoryID, character.Name, character.ID); lookupErr == nil && taken {
		return ErrDuplicateCharacterName
	}
	if character.Color == "" {
		return err
	}
	if taken, lookupErr := r.ColorTaken(ctx, character.StoryID, character.Color, character.ID); lookupErr == nil && taken {
		return ErrDuplicateCharacterColor
	}
	return err
}

// Delete 刪除角色，資料庫的 ON DELETE SET NULL 會清除訊息上的 character_id
func (r *characterRepository) Delete(ctx context.Context, id uint) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Character{}, id).Error)
}

func (r *characterRepository) ListByStory(ctx context.Context, storyID uint) ([]models.Character, error) {
	var characters []models.Character
	err := r.db.WithContext(ctx).Where("story_id = ?", storyID).Order("id asc").Find(&characters).Error
	return characters, err
}

func (r *characterRepository) NameTaken(ctx context.Context, storyID uint, name string, excludeID uint) (bool, error) {
	return r.exists(ctx, storyID, "name", name, excludeID)
}

func (r *characterRepository) ColorTaken(ctx context.Context, storyID uint, color string, excludeID uint) (bool, error) {
	return r.exists(ctx, storyID, "color", color, excludeID)
}

func (r *characterRepository) exists(ctx context.Context, storyID uint, column, value string, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Character{}).
		Where("story_id = ?", storyID).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}
