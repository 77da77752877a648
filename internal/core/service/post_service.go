package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

// PostService implements the blog use cases.
type PostService struct {
	posts  ports.PostRepository
	logger zerolog.Logger
}

func NewPostService(posts ports.PostRepository, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, logger: logger}
}

// Create publishes a post. Only mentors and admins author posts; everyone
// else gets ErrForbidden regardless of how the request reached us.
func (s *PostService) Create(ctx context.Context, authorID string, authorRole domain.EffectiveRole, in ports.PostInput) (*domain.Post, error) {
	if authorRole != domain.RoleMentor && authorRole != domain.RoleAdmin {
		return nil, fmt.Errorf("create post: %w", domain.ErrForbidden)
	}
	if in.Title == "" || in.Body == "" {
		return nil, fmt.Errorf("create post: %w", domain.ErrValidation)
	}

	now := time.Now().UTC()
	post := &domain.Post{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Title:     in.Title,
		Body:      in.Body,
		Tags:      in.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.logger.Info().Str("post_id", post.ID).Str("author_id", authorID).Msg("post created")
	return post, nil
}

func (s *PostService) Update(ctx context.Context, postID, callerID string, isAdmin bool, in ports.PostInput) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if !isAdmin && post.AuthorID != callerID {
		return nil, fmt.Errorf("update post: %w", domain.ErrForbidden)
	}
	if in.Title == "" || in.Body == "" {
		return nil, fmt.Errorf("update post: %w", domain.ErrValidation)
	}

	post.Title = in.Title
	post.Body = in.Body
	post.Tags = in.Tags
	post.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, postID, callerID string, isAdmin bool) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if !isAdmin && post.AuthorID != callerID {
		return fmt.Errorf("delete post: %w", domain.ErrForbidden)
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *PostService) Get(ctx context.Context, postID string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (s *PostService) List(ctx context.Context, filter ports.ListPostsFilter) (*ports.ListPostsResult, error) {
	filter.Page = normalizePage(filter.Page)
	filter.Limit = normalizeLimit(filter.Limit)

	items, total, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return &ports.ListPostsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *PostService) Comment(ctx context.Context, postID, authorID, body string) (*domain.Comment, error) {
	if body == "" {
		return nil, fmt.Errorf("comment: %w", domain.ErrValidation)
	}
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, fmt.Errorf("comment: %w", err)
	}

	comment := &domain.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.posts.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("comment: %w", err)
	}
	return comment, nil
}

func (s *PostService) Comments(ctx context.Context, postID string) ([]*domain.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, fmt.Errorf("comments: %w", err)
	}
	comments, err := s.posts.ListComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("comments: %w", err)
	}
	return comments, nil
}

// Like records a like. Liking a post twice is a no-op reported as
// AlreadyLiked, never an error.
func (s *PostService) Like(ctx context.Context, postID, userID string) (*ports.LikeResult, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("like: %w", err)
	}

	already, err := s.posts.AddLike(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("like: %w", err)
	}

	count := post.LikeCount
	if !already {
		count++
	}
	return &ports.LikeResult{AlreadyLiked: already, LikeCount: count}, nil
}
