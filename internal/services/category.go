package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"planbook/internal/domain"
)

type categoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a CategoryService backed by the given repository.
func NewCategoryService(categoryRepo domain.CategoryRepository) domain.CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(ctx context.Context, ownerID, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	category := domain.NewCategory(ownerID, name, time.Now())
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) Delete(ctx context.Context, ownerID, categoryID string) error {
	categories, err := s.categoryRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	owned := false
	for _, c := range categories {
		if c.ID == categoryID {
			owned = true
			break
		}
	}
	if !owned {
		return domain.ErrNotFound
	}
	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
