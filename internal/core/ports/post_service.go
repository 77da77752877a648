package ports

import (
	"context"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
)

// PostInput carries create/update data for a blog post.
type PostInput struct {
	Title string
	Body  string
	Tags  []string
}

// ListPostsResult is a page of posts.
type ListPostsResult struct {
	Items      []*domain.Post
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// LikeResult reports a like attempt. AlreadyLiked is true when the user had
// liked the post before; the call is then a no-op.
type LikeResult struct {
	AlreadyLiked bool
	LikeCount    int64
}

// PostService defines the blog use cases. Publishing is restricted to
// mentors and admins; edits and deletes to the author (or an admin);
// comments and likes are open to any signed-in user.
type PostService interface {
	Create(ctx context.Context, authorID string, authorRole domain.EffectiveRole, in PostInput) (*domain.Post, error)
	Update(ctx context.Context, postID, callerID string, isAdmin bool, in PostInput) (*domain.Post, error)
	Delete(ctx context.Context, postID, callerID string, isAdmin bool) error
	Get(ctx context.Context, postID string) (*domain.Post, error)
	List(ctx context.Context, filter ListPostsFilter) (*ListPostsResult, error)
	Comment(ctx context.Context, postID, authorID, body string) (*domain.Comment, error)
	Comments(ctx context.Context, postID string) ([]*domain.Comment, error)
	Like(ctx context.Context, postID, userID string) (*LikeResult, error)
}
