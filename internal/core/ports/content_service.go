package ports

import (
	"context"

	"github.com/inkpost/blog-system/internal/core/domain"
)

// ContentService is CRUD over the post collection with ownership checks.
// Returned posts are copies; mutating them does not change the store.
type ContentService interface {
	List() []domain.Post
	ListByOwner(identityID string) []domain.Post
	Featured(n int) []domain.Post
	GetByID(id string) (*domain.Post, bool)
	Create(ctx context.Context, title, content string) (*domain.Post, error)
	Update(ctx context.Context, id, title, content string) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}
