package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"story_web/internal/models"
	"story_web/internal/repository"
)

const (
	maxStoryTitle       = 255
	maxStoryDescription = 5000
)

// StoryInput 建立或更新故事的欄位
type StoryInput struct {
	Title       string
	Description string
	CategoryID  uint
	Image       string
}

// UserSummary 故事與留言中嵌入的作者資料
type UserSummary struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Photo     string `json:"photo"`
}

func summarize(u models.User) UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Photo:     u.Photo,
	}
}

// StoryView 回傳給前端的故事，附帶統計數字與目前用戶的狀態
type StoryView struct {
	ID            uint             `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Author        UserSummary      `json:"author"`
	Category      *models.Category `json:"category"`
	Image         *string          `json:"image"`
	Published     bool             `json:"published"`
	PublishDate   *time.Time       `json:"publish_date"`
	CreatedAt     time.Time        `json:"created_at"`
	LikesCount    int64            `json:"likes_count"`
	CommentsCount int64            `json:"comments_count"`
	Views         int64            `json:"views"`
	IsLiked       bool             `json:"is_liked"`
	IsSaved       bool             `json:"is_saved"`
}

type StoryService struct {
	access
	userRepo      repository.UserRepository
	categoryRepo  repository.CategoryRepository
	viewRepo      repository.ViewRepository
	notifications *NotificationService
	logger        *zap.Logger
	now           func() time.Time
}

func NewStoryService(
	storyRepo repository.StoryRepository,
	episodeRepo repository.EpisodeRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	viewRepo repository.ViewRepository,
	notifications *NotificationService,
	logger *zap.Logger,
) *StoryService {
	return &StoryService{
		access:        access{storyRepo: storyRepo, episodeRepo: episodeRepo},
		userRepo:      userRepo,
		categoryRepo:  categoryRepo,
		viewRepo:      viewRepo,
		notifications: notifications,
		logger:        logger.Named("StoryService"),
		now:           time.Now,
	}
}

func (s *StoryService) Create(ctx context.Context, userID uint, in StoryInput) (*StoryView, error) {
	story := &models.Story{AuthorID: userID}
	if err := s.apply(ctx, story, in); err != nil {
		return nil, err
	}
	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}
	return s.one(ctx, userID, story)
}

func (s *StoryService) Update(ctx context.Context, userID, storyID uint, in StoryInput) (*StoryView, error) {
	story, err := s.ownedStory(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}
	if in.Image == "" {
		in.Image = story.Image
	}
	if err := s.apply(ctx, story, in); err != nil {
		return nil, err
	}
	if err := s.storyRepo.Update(ctx, story); err != nil {
		return nil, fmt.Errorf("failed to update story: %w", err)
	}
	return s.one(ctx, userID, story)
}

func (s *StoryService) Delete(ctx context.Context, userID, storyID uint) error {
	story, err := s.ownedStory(ctx, userID, storyID)
	if err != nil {
		return err
	}
	if err := s.storyRepo.Delete(ctx, story.ID); err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}
	if err := s.viewRepo.Forget(ctx, story.ID); err != nil {
		s.logger.Warn("failed to drop story views", zap.Uint("storyID", story.ID), zap.Error(err))
	}
	return nil
}

// Publish 發布故事，重複發布不會改變發布時間
func (s *StoryService) Publish(ctx context.Context, userID, storyID uint) (*StoryView, error) {
	story, err := s.ownedStory(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}
	if !story.Published {
		now := s.now()
		story.Published = true
		story.PublishDate = &now
		if err := s.storyRepo.Update(ctx, story); err != nil {
			return nil, fmt.Errorf("failed to publish story: %w", err)
		}
	}
	return s.one(ctx, userID, story)
}

// Get 讀取故事並以 IP 記錄一次瀏覽
func (s *StoryService) Get(ctx context.Context, viewerID, storyID uint, ip string) (*StoryView, error) {
	story, err := s.readableStory(ctx, viewerID, storyID)
	if err != nil {
		return nil, err
	}
	if story.Published && ip != "" {
		if err := s.viewRepo.Record(ctx, story.ID, ip); err != nil {
			// 計數失敗不影響閱讀
			s.logger.Warn("failed to record view", zap.Uint("storyID", story.ID), zap.Error(err))
		}
	}
	return s.one(ctx, viewerID, story)
}

// viewOrderings 瀏覽數存在 Redis，無法交給 SQL 排序；值為是否遞減
var viewOrderings = map[string]bool{
	"views":  false,
	"-views": true,
}

func (s *StoryService) List(ctx context.Context, viewerID uint, filter repository.StoryFilter) ([]StoryView, int64, error) {
	if desc, ok := viewOrderings[filter.Ordering]; ok {
		return s.listByViews(ctx, viewerID, filter, desc)
	}
	stories, total, err := s.storyRepo.ListPublished(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list stories: %w", err)
	}
	views, err := s.decorate(ctx, viewerID, stories)
	return views, total, err
}

// listByViews 取出所有符合條件的 id，依瀏覽數排序後再分頁，同數時新的在前
func (s *StoryService) listByViews(ctx context.Context, viewerID uint, filter repository.StoryFilter, desc bool) ([]StoryView, int64, error) {
	ids, err := s.storyRepo.PublishedIDs(ctx, filter.Search)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list stories: %w", err)
	}
	counts, err := s.viewRepo.Counts(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count views: %w", err)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		if desc {
			return counts[ids[i]] > counts[ids[j]]
		}
		return counts[ids[i]] < counts[ids[j]]
	})

	page := filter.Page.Normalize()
	start := min(page.Offset(), len(ids))
	end := min(start+page.PageSize, len(ids))
	pageIDs := ids[start:end]

	found, err := s.storyRepo.FindByIDs(ctx, pageIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load stories: %w", err)
	}
	stories := make([]models.Story, 0, len(pageIDs))
	for _, id := range pageIDs {
		if st, ok := found[id]; ok {
			stories = append(stories, st)
		}
	}
	views, err := s.decorate(ctx, viewerID, stories)
	return views, int64(len(ids)), err
}

func (s *StoryService) ListMine(ctx context.Context, userID uint, page repository.Page) ([]StoryView, int64, error) {
	stories, total, err := s.storyRepo.ListByAuthor(ctx, userID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list stories: %w", err)
	}
	views, err := s.decorate(ctx, userID, stories)
	return views, total, err
}

func (s *StoryService) ListSaved(ctx context.Context, userID uint, page repository.Page) ([]StoryView, int64, error) {
	stories, total, err := s.storyRepo.ListSaved(ctx, userID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list saved stories: %w", err)
	}
	views, err := s.decorate(ctx, userID, stories)
	return views, total, err
}

// ToggleLike 切換按讚狀態，回傳切換後是否為已讚
func (s *StoryService) ToggleLike(ctx context.Context, userID, storyID uint) (bool, error) {
	story, err := s.readableStory(ctx, userID, storyID)
	if err != nil {
		return false, err
	}

	liked, err := s.storyRepo.IsLiked(ctx, story.ID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	if liked {
		if err := s.storyRepo.RemoveLike(ctx, story.ID, userID); err != nil {
			return false, fmt.Errorf("failed to unlike story: %w", err)
		}
		return false, nil
	}

	if err := s.storyRepo.AddLike(ctx, story.ID, userID); err != nil {
		return false, fmt.Errorf("failed to like story: %w", err)
	}
	s.notifications.Notify(ctx, story.AuthorID, userID,
		fmt.Sprintf("%s liked your story \"%s\"", s.username(ctx, userID), story.Title))
	return true, nil
}

func (s *StoryService) Save(ctx context.Context, userID, storyID uint) error {
	story, err := s.readableStory(ctx, userID, storyID)
	if err != nil {
		return err
	}
	if err := s.storyRepo.Save(ctx, userID, story.ID); err != nil {
		return fmt.Errorf("failed to save story: %w", err)
	}
	return nil
}

func (s *StoryService) Unsave(ctx context.Context, userID, storyID uint) error {
	if err := s.storyRepo.Unsave(ctx, userID, storyID); err != nil {
		return fmt.Errorf("failed to unsave story: %w", err)
	}
	return nil
}

func (s *StoryService) apply(ctx context.Context, story *models.Story, in StoryInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return ErrMissingTitle
	}
	if utf8.RuneCountInString(title) > maxStoryTitle {
		return withDetail(ErrContentTooLong, fmt.Sprintf("title: at most %d characters", maxStoryTitle))
	}
	if utf8.RuneCountInString(in.Description) > maxStoryDescription {
		return withDetail(ErrContentTooLong, fmt.Sprintf("description: at most %d characters", maxStoryDescription))
	}
	if in.Image != "" && !hasExtension(in.Image, imageExtensions) {
		return withDetail(ErrInvalidMediaExtension, "allowed: "+strings.Join(imageExtensions, ", "))
	}

	category, err := s.categoryRepo.FindByID(ctx, in.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to find category: %w", err)
	}

	categoryID := category.ID
	story.Title = title
	story.Description = in.Description
	story.CategoryID = &categoryID
	story.Image = in.Image
	return nil
}

func (s *StoryService) one(ctx context.Context, viewerID uint, story *models.Story) (*StoryView, error) {
	views, err := s.decorate(ctx, viewerID, []models.Story{*story})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// decorate 以批次查詢補上作者、分類、計數與用戶狀態
func (s *StoryService) decorate(ctx context.Context, viewerID uint, stories []models.Story) ([]StoryView, error) {
	ids := make([]uint, 0, len(stories))
	authorIDs := make([]uint, 0, len(stories))
	categoryIDs := make([]uint, 0, len(stories))
	for _, st := range stories {
		ids = append(ids, st.ID)
		authorIDs = append(authorIDs, st.AuthorID)
		if st.CategoryID != nil {
			categoryIDs = append(categoryIDs, *st.CategoryID)
		}
	}

	authors, err := s.userRepo.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load authors: %w", err)
	}
	categories, err := s.categoryRepo.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	likes, err := s.storyRepo.CountLikes(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	comments, err := s.storyRepo.CountComments(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}
	liked, err := s.storyRepo.LikedBy(ctx, viewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load likes: %w", err)
	}
	saved, err := s.storyRepo.SavedBy(ctx, viewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved stories: %w", err)
	}
	views, err := s.viewRepo.Counts(ctx, ids)
	if err != nil {
		// 瀏覽數來自 Redis，無法取得時顯示 0
		s.logger.Warn("failed to count views", zap.Error(err))
		views = map[uint]int64{}
	}

	out := make([]StoryView, 0, len(stories))
	for _, st := range stories {
		v := StoryView{
			ID:            st.ID,
			Title:         st.Title,
			Description:   st.Description,
			Author:        summarize(authors[st.AuthorID]),
			Published:     st.Published,
			PublishDate:   st.PublishDate,
			CreatedAt:     st.CreatedAt,
			LikesCount:    likes[st.ID],
			CommentsCount: comments[st.ID],
			Views:         views[st.ID],
			IsLiked:       liked[st.ID],
			IsSaved:       saved[st.ID],
		}
		if st.CategoryID != nil {
			if c, ok := categories[*st.CategoryID]; ok {
				v.Category = &c
			}
		}
		if st.Image != "" {
			image := st.Image
			v.Image = &image
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *StoryService) username(ctx context.Context, userID uint) string {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Sprintf("user %d", userID)
	}
	return user.Username
}
