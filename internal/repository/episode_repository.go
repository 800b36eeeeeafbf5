package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"story_web/internal/models"
	"story_web/internal/storage"
)

type EpisodeRepository interface {
	Create(ctx context.Context, episode *models.Episode) error
	FindByID(ctx context.Context, id uint) (*models.Episode, error)
	Update(ctx context.Context, episode *models.Episode) error
	Delete(ctx context.Context, id uint) error
	ListByStory(ctx context.Context, storyID uint) ([]models.Episode, error)
}

type episodeRepository struct {
	db *storage.PostgresDB
}

func NewEpisodeRepository(db *storage.PostgresDB) EpisodeRepository {
	return &episodeRepository{db: db}
}

func (r *episodeRepository) Create(ctx context.Context, episode *models.Episode) error {
	return translate(r.db.WithContext(ctx).Create(episode).Error)
}

func (r *episodeRepository) FindByID(ctx context.Context, id uint) (*models.Episode, error) {
	var episode models.Episode
	if err := r.db.WithContext(ctx).First(&episode, id).Error; err != nil {
		return nil, translate(err)
	}
	return &episode, nil
}

func (r *episodeRepository) Update(ctx context.Context, episode *models.Episode) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(episode).Error)
}

// Delete 刪除章節，其訊息由外鍵 ON DELETE CASCADE 一併刪除
func (r *episodeRepository) Delete(ctx context.Context, id uint) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Episode{}, id).Error)
}

func (r *episodeRepository) ListByStory(ctx context.Context, storyID uint) ([]models.Episode, error) {
	var episodes []models.Episode
	err := r.db.WithContext(ctx).Where("story_id = ?", storyID).
		Order("created_at asc").Order("id asc").
		Find(&episodes).Error
	return episodes, err
}
