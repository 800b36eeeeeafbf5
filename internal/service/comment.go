package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"story_web/internal/models"
	"story_web/internal/repository"
)

const maxCommentText = 2000

// CommentView 回傳給前端的留言
type CommentView struct {
	ID         uint        `json:"id"`
	Author     UserSummary `json:"author"`
	Text       string      `json:"text"`
	CreatedAt  time.Time   `json:"created_at"`
	LikesCount int64       `json:"likes_count"`
	IsLiked    bool        `json:"is_liked"`
}

type CommentService struct {
	access
	commentRepo   repository.CommentRepository
	userRepo      repository.UserRepository
	notifications *NotificationService
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	storyRepo repository.StoryRepository,
	episodeRepo repository.EpisodeRepository,
	userRepo repository.UserRepository,
	notifications *NotificationService,
) *CommentService {
	return &CommentService{
		access:        access{storyRepo: storyRepo, episodeRepo: episodeRepo},
		commentRepo:   commentRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *CommentService) List(ctx context.Context, viewerID, storyID uint, page repository.Page) ([]CommentView, int64, error) {
	if _, err := s.readableStory(ctx, viewerID, storyID); err != nil {
		return nil, 0, err
	}
	comments, total, err := s.commentRepo.ListByStory(ctx, storyID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	views, err := s.decorate(ctx, viewerID, comments)
	return views, total, err
}

// Create 新增留言並通知故事作者
func (s *CommentService) Create(ctx context.Context, userID, storyID uint, text string) (*CommentView, error) {
	story, err := s.readableStory(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	if utf8.RuneCountInString(text) > maxCommentText {
		return nil, withDetail(ErrContentTooLong, fmt.Sprintf("at most %d characters", maxCommentText))
	}

	comment := &models.Comment{AuthorID: userID, StoryID: story.ID, Text: text}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	views, err := s.decorate(ctx, userID, []models.Comment{*comment})
	if err != nil {
		return nil, err
	}
	s.notifications.Notify(ctx, story.AuthorID, userID,
		fmt.Sprintf("%s commented on your story \"%s\"", views[0].Author.Username, story.Title))
	return &views[0], nil
}

// Delete 只有留言者本人可以刪除
func (s *CommentService) Delete(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return notFound(err, "comment")
	}
	if comment.AuthorID != userID {
		return ErrForbidden
	}
	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// ToggleLike 切換留言按讚，回傳切換後是否為已讚
func (s *CommentService) ToggleLike(ctx context.Context, userID, commentID uint) (bool, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return false, notFound(err, "comment")
	}
	if _, err := s.readableStory(ctx, userID, comment.StoryID); err != nil {
		return false, err
	}

	liked, err := s.commentRepo.IsLiked(ctx, comment.ID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	if liked {
		if err := s.commentRepo.RemoveLike(ctx, comment.ID, userID); err != nil {
			return false, fmt.Errorf("failed to unlike comment: %w", err)
		}
		return false, nil
	}

	if err := s.commentRepo.AddLike(ctx, comment.ID, userID); err != nil {
		return false, fmt.Errorf("failed to like comment: %w", err)
	}

	name := fmt.Sprintf("user %d", userID)
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
		name = user.Username
	}
	s.notifications.Notify(ctx, comment.AuthorID, userID, name+" liked your comment")
	return true, nil
}

func (s *CommentService) decorate(ctx context.Context, viewerID uint, comments []models.Comment) ([]CommentView, error) {
	ids := make([]uint, 0, len(comments))
	authorIDs := make([]uint, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
		authorIDs = append(authorIDs, c.AuthorID)
	}

	authors, err := s.userRepo.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load authors: %w", err)
	}
	likes, err := s.commentRepo.CountLikes(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	liked, err := s.commentRepo.LikedBy(ctx, viewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load likes: %w", err)
	}

	out := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentView{
			ID:         c.ID,
			Author:     summarize(authors[c.AuthorID]),
			Text:       c.Text,
			CreatedAt:  c.CreatedAt,
			LikesCount: likes[c.ID],
			IsLiked:    liked[c.ID],
		})
	}
	return out, nil
}
