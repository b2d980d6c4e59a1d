//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=../mocks/mock_post_repository.go -package=mocks
package repositories

import (
	"context"

	"chirp-lab/domain"
)

// IPostRepository is the persistence contract for posts. All listing
// operations return newest-first, with the post identifier as the stable
// tie-break for equal creation times.
type IPostRepository interface {
	Insert(ctx context.Context, post domain.Post) error
	// FindByID returns errors.ErrPostNotFound when no such post exists.
	FindByID(ctx context.Context, id string) (domain.Post, error)
	FindByAuthor(ctx context.Context, authorID string) ([]domain.Post, error)
	FindPage(ctx context.Context, limit, skip int) ([]domain.Post, error)
}
