package domain

import (
	"context"
	"time"
)

// Category is a user-owned label for grouping events.
// swagger:model Category
type Category struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCategory returns a new Category. ID is typically set by the repository on create.
func NewCategory(ownerID, name string, createdAt time.Time) *Category {
	return &Category{OwnerID: ownerID, Name: name, CreatedAt: createdAt}
}

// CategoryRepository defines storage for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Category, error)
	Delete(ctx context.Context, id string) error
}

// CategoryService defines the business logic for categories.
type CategoryService interface {
	Create(ctx context.Context, ownerID, name string) (*Category, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Category, error)
	Delete(ctx context.Context, ownerID, categoryID string) error
}
