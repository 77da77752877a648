package ports

import (
	"context"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
)

// ListPostsFilter carries query parameters for blog listings.
type ListPostsFilter struct {
	AuthorID string // optional
	Tag      string // optional
	Page     int
	Limit    int
}

// PostRepository defines persistence operations for posts, comments and
// likes.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) error
	Update(ctx context.Context, p *domain.Post) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, filter ListPostsFilter) ([]*domain.Post, int64, error)
	AddComment(ctx context.Context, c *domain.Comment) error
	ListComments(ctx context.Context, postID string) ([]*domain.Comment, error)
	// AddLike inserts the (post, user) like and bumps the post's like count.
	// Returns true when the user had already liked the post; the duplicate
	// insert is a no-op.
	AddLike(ctx context.Context, postID, userID string) (bool, error)
}
