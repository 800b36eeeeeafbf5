package service

import (
	"context"
	"fmt"
	"strings"

	"story_web/internal/models"
	"story_web/internal/repository"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Seed 建立設定檔中列出但尚不存在的分類
func (s *CategoryService) Seed(ctx context.Context, names []string) error {
	cleaned := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		cleaned = append(cleaned, name)
	}
	if err := s.categoryRepo.EnsureNames(ctx, cleaned); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	return nil
}
