package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

const (
	postCollection    = "posts"
	commentCollection = "comments"
	likeCollection    = "likes"
)

// PostRepository persists posts, comments and likes. Likes use a composite
// _id of post and user, so the unique index makes the duplicate-like check
// a single insert.
type PostRepository struct {
	posts    *mongo.Collection
	comments *mongo.Collection
	likes    *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		posts:    db.Collection(postCollection),
		comments: db.Collection(commentCollection),
		likes:    db.Collection(likeCollection),
	}
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	if _, err := r.posts.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepository) Update(ctx context.Context, p *domain.Post) error {
	res, err := r.posts.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	_, _ = r.comments.DeleteMany(ctx, bson.M{"post_id": id})
	_, _ = r.likes.DeleteMany(ctx, bson.M{"post_id": id})
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	var p domain.Post
	if err := r.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return &p, nil
}

func (r *PostRepository) List(ctx context.Context, filter ports.ListPostsFilter) ([]*domain.Post, int64, error) {
	query := bson.M{}
	if filter.AuthorID != "" {
		query["author_id"] = filter.AuthorID
	}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}

	total, err := r.posts.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.posts.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Post
	for cur.Next(ctx) {
		var p domain.Post
		if err := cur.Decode(&p); err != nil {
			return nil, 0, fmt.Errorf("decode post: %w", err)
		}
		out = append(out, &p)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	return out, total, nil
}

func (r *PostRepository) AddComment(ctx context.Context, c *domain.Comment) error {
	if _, err := r.comments.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *PostRepository) ListComments(ctx context.Context, postID string) ([]*domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.comments.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Comment
	for cur.Next(ctx) {
		var c domain.Comment
		if err := cur.Decode(&c); err != nil {
			return nil, fmt.Errorf("decode comment: %w", err)
		}
		out = append(out, &c)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return out, nil
}

// AddLike inserts the like under a composite key; a duplicate key error
// means the user already liked the post and the call becomes a no-op.
func (r *PostRepository) AddLike(ctx context.Context, postID, userID string) (bool, error) {
	doc := bson.M{
		"_id":        fmt.Sprintf("%s:%s", postID, userID),
		"post_id":    postID,
		"user_id":    userID,
		"created_at": time.Now().UTC(),
	}
	if _, err := r.likes.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return true, nil
		}
		return false, fmt.Errorf("insert like: %w", err)
	}

	if _, err := r.posts.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$inc": bson.M{"like_count": 1}}); err != nil {
		return false, fmt.Errorf("bump like count: %w", err)
	}
	return false, nil
}
