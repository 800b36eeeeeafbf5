package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"story_web/internal/models"
	"story_web/internal/storage"
)

// MessageRepository 章節訊息的存取
//
// (episode_id, sort_order) 上的唯一索引是排序鍵唯一性的最終保證，
// 衝突時 Create/Update 回傳 ErrDuplicate。
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	FindByID(ctx context.Context, id uint) (*models.Message, error)
	Update(ctx context.Context, message *models.Message) error
	Delete(ctx context.Context, id uint) error
	ListByEpisode(ctx context.Context, episodeID uint, page Page) ([]models.Message, int64, error)
	// ListOrders 回傳章節內已使用的排序鍵，excludingID 不為 0 時排除該訊息
	ListOrders(ctx context.Context, episodeID, excludingID uint) ([]float64, error)
}

type messageRepository struct {
	db *storage.PostgresDB
}

func NewMessageRepository(db *storage.PostgresDB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(message).Error)
}

func (r *messageRepository) FindByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		return nil, translate(err)
	}
	return &message, nil
}

// Update 寫回整筆訊息，包含被清空的內容欄位
func (r *messageRepository) Update(ctx context.Context, message *models.Message) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(message).Error)
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Message{}, id).Error)
}

func (r *messageRepository) ListByEpisode(ctx context.Context, episodeID uint, page Page) ([]models.Message, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Message{}).Where("episode_id = ?", episodeID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	err := q.Order("sort_order asc").Scopes(paginate(page)).Find(&messages).Error
	return messages, total, err
}

func (r *messageRepository) ListOrders(ctx context.Context, episodeID, excludingID uint) ([]float64, error) {
	q := r.db.WithContext(ctx).Model(&models.Message{}).Where("episode_id = ?", episodeID)
	if excludingID != 0 {
		q = q.Where("id <> ?", excludingID)
	}
	var orders []float64
	err := q.Order("sort_order asc").Pluck("sort_order", &orders).Error
	return orders, err
}
