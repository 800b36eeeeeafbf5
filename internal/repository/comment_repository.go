package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"story_web/internal/models"
	"story_web/internal/storage"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id uint) (*models.Comment, error)
	Delete(ctx context.Context, id uint) error
	ListByStory(ctx context.Context, storyID uint, page Page) ([]models.Comment, int64, error)
	AddLike(ctx context.Context, commentID, userID uint) error
	RemoveLike(ctx context.Context, commentID, userID uint) error
	IsLiked(ctx context.Context, commentID, userID uint) (bool, error)
	LikedBy(ctx context.Context, userID uint, commentIDs []uint) (map[uint]bool, error)
	CountLikes(ctx context.Context, commentIDs []uint) (map[uint]int64, error)
}

type commentRepository struct {
	db *storage.PostgresDB
}

func NewCommentRepository(db *storage.PostgresDB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error)
}

func (r *commentRepository) FindByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error)
}

func (r *commentRepository) ListByStory(ctx context.Context, storyID uint, page Page) ([]models.Comment, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Comment{}).Where("story_id = ?", storyID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := q.Order("created_at desc").Order("id desc").Scopes(paginate(page)).Find(&comments).Error
	return comments, total, err
}

func (r *commentRepository) AddLike(ctx context.Context, commentID, userID uint) error {
	like := models.CommentLike{CommentID: commentID, UserID: userID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
}

func (r *commentRepository) RemoveLike(ctx context.Context, commentID, userID uint) error {
	return r.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Delete(&models.CommentLike{}).Error
}

func (r *commentRepository) IsLiked(ctx context.Context, commentID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CommentLike{}).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *commentRepository) LikedBy(ctx context.Context, userID uint, commentIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(commentIDs))
	if len(commentIDs) == 0 || userID == 0 {
		return out, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.CommentLike{}).
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Pluck("comment_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (r *commentRepository) CountLikes(ctx context.Context, commentIDs []uint) (map[uint]int64, error) {
	if len(commentIDs) == 0 {
		return map[uint]int64{}, nil
	}
	var rows []countRow
	err := r.db.WithContext(ctx).Model(&models.CommentLike{}).
		Select("comment_id AS id, COUNT(*) AS count").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return countsToMap(rows), nil
}
