package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"story_web/internal/models"
	"story_web/internal/storage"
)

// StoryFilter 故事列表的查詢條件
type StoryFilter struct {
	Search   string
	Ordering string // created_at、-created_at、title、-title；views、-views 由 service 依 Redis 計數排序
	Page     Page
}

var storyOrderings = map[string]string{
	"created_at":  "created_at asc",
	"-created_at": "created_at desc",
	"title":       "title asc",
	"-title":      "title desc",
}

type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	FindByID(ctx context.Context, id uint) (*models.Story, error)
	Update(ctx context.Context, story *models.Story) error
	Delete(ctx context.Context, id uint) error
	FindByIDs(ctx context.Context, ids []uint) (map[uint]models.Story, error)
	ListPublished(ctx context.Context, filter StoryFilter) ([]models.Story, int64, error)
	// PublishedIDs 符合搜尋條件的已發布故事 id，新的在前
	PublishedIDs(ctx context.Context, search string) ([]uint, error)
	ListByAuthor(ctx context.Context, authorID uint, page Page) ([]models.Story, int64, error)

	// 按讚
	AddLike(ctx context.Context, storyID, userID uint) error
	RemoveLike(ctx context.Context, storyID, userID uint) error
	IsLiked(ctx context.Context, storyID, userID uint) (bool, error)
	LikedBy(ctx context.Context, userID uint, storyIDs []uint) (map[uint]bool, error)
	CountLikes(ctx context.Context, storyIDs []uint) (map[uint]int64, error)
	CountComments(ctx context.Context, storyIDs []uint) (map[uint]int64, error)

	// 收藏
	Save(ctx context.Context, userID, storyID uint) error
	Unsave(ctx context.Context, userID, storyID uint) error
	SavedBy(ctx context.Context, userID uint, storyIDs []uint) (map[uint]bool, error)
	ListSaved(ctx context.Context, userID uint, page Page) ([]models.Story, int64, error)
}

type storyRepository struct {
	db *storage.PostgresDB
}

func NewStoryRepository(db *storage.PostgresDB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *models.Story) error {
	return translate(r.db.WithContext(ctx).Create(story).Error)
}

func (r *storyRepository) FindByID(ctx context.Context, id uint) (*models.Story, error) {
	var story models.Story
	if err := r.db.WithContext(ctx).First(&story, id).Error; err != nil {
		return nil, translate(err)
	}
	return &story, nil
}

func (r *storyRepository) Update(ctx context.Context, story *models.Story) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(story).Error)
}

func (r *storyRepository) Delete(ctx context.Context, id uint) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Story{}, id).Error)
}

func (r *storyRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]models.Story, error) {
	out := make(map[uint]models.Story, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var stories []models.Story
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&stories).Error; err != nil {
		return nil, err
	}
	for _, st := range stories {
		out[st.ID] = st
	}
	return out, nil
}

func (r *storyRepository) published(ctx context.Context, search string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Story{}).Where("published = ?", true)
	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("title ILIKE ?", "%"+escapeLike(s)+"%")
	}
	return q
}

func (r *storyRepository) PublishedIDs(ctx context.Context, search string) ([]uint, error) {
	var ids []uint
	err := r.published(ctx, search).Order("created_at desc").Order("id desc").Pluck("id", &ids).Error
	return ids, err
}

func (r *storyRepository) ListPublished(ctx context.Context, filter StoryFilter) ([]models.Story, int64, error) {
	q := r.published(ctx, filter.Search)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := storyOrderings[filter.Ordering]
	if !ok {
		order = storyOrderings["-created_at"]
	}

	var stories []models.Story
	err := q.Order(order).Order("id desc").Scopes(paginate(filter.Page)).Find(&stories).Error
	return stories, total, err
}

func (r *storyRepository) ListByAuthor(ctx context.Context, authorID uint, page Page) ([]models.Story, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Story{}).Where("author_id = ?", authorID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stories []models.Story
	err := q.Order("created_at desc").Order("id desc").Scopes(paginate(page)).Find(&stories).Error
	return stories, total, err
}

func (r *storyRepository) AddLike(ctx context.Context, storyID, userID uint) error {
	like := models.StoryLike{StoryID: storyID, UserID: userID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
}

func (r *storyRepository) RemoveLike(ctx context.Context, storyID, userID uint) error {
	return r.db.WithContext(ctx).
		Where("story_id = ? AND user_id = ?", storyID, userID).
		Delete(&models.StoryLike{}).Error
}

func (r *storyRepository) IsLiked(ctx context.Context, storyID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.StoryLike{}).
		Where("story_id = ? AND user_id = ?", storyID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *storyRepository) LikedBy(ctx context.Context, userID uint, storyIDs []uint) (map[uint]bool, error) {
	return r.flagged(ctx, &models.StoryLike{}, userID, storyIDs)
}

func (r *storyRepository) CountLikes(ctx context.Context, storyIDs []uint) (map[uint]int64, error) {
	return r.countBy(ctx, &models.StoryLike{}, storyIDs)
}

func (r *storyRepository) CountComments(ctx context.Context, storyIDs []uint) (map[uint]int64, error) {
	return r.countBy(ctx, &models.Comment{}, storyIDs)
}

func (r *storyRepository) Save(ctx context.Context, userID, storyID uint) error {
	saved := models.SavedStory{UserID: userID, StoryID: storyID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&saved).Error
}

func (r *storyRepository) Unsave(ctx context.Context, userID, storyID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND story_id = ?", userID, storyID).
		Delete(&models.SavedStory{}).Error
}

func (r *storyRepository) SavedBy(ctx context.Context, userID uint, storyIDs []uint) (map[uint]bool, error) {
	return r.flagged(ctx, &models.SavedStory{}, userID, storyIDs)
}

func (r *storyRepository) ListSaved(ctx context.Context, userID uint, page Page) ([]models.Story, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Story{}).
		Joins("JOIN saved_stories ON saved_stories.story_id = stories.id").
		Where("saved_stories.user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stories []models.Story
	err := q.Order("saved_stories.saved_at desc").Scopes(paginate(page)).Find(&stories).Error
	return stories, total, err
}

// countBy 依 story_id 分組計數
func (r *storyRepository) countBy(ctx context.Context, model interface{}, storyIDs []uint) (map[uint]int64, error) {
	if len(storyIDs) == 0 {
		return map[uint]int64{}, nil
	}
	var rows []countRow
	err := r.db.WithContext(ctx).Model(model).
		Select("story_id AS id, COUNT(*) AS count").
		Where("story_id IN ?", storyIDs).
		Group("story_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return countsToMap(rows), nil
}

// flagged 回傳指定用戶在 storyIDs 中有紀錄的故事
func (r *storyRepository) flagged(ctx context.Context, model interface{}, userID uint, storyIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(storyIDs))
	if len(storyIDs) == 0 || userID == 0 {
		return out, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(model).
		Where("user_id = ? AND story_id IN ?", userID, storyIDs).
		Pluck("story_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
