package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

const offeringCollection = "offerings"

type OfferingRepository struct {
	coll *mongo.Collection
}

func NewOfferingRepository(db *mongo.Database) *OfferingRepository {
	return &OfferingRepository{coll: db.Collection(offeringCollection)}
}

func (r *OfferingRepository) Create(ctx context.Context, o *domain.Offering) error {
	if _, err := r.coll.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("insert offering: %w", err)
	}
	return nil
}

func (r *OfferingRepository) Update(ctx context.Context, o *domain.Offering) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		return fmt.Errorf("update offering: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOfferingNotFound
	}
	return nil
}

func (r *OfferingRepository) FindByID(ctx context.Context, id string) (*domain.Offering, error) {
	var o domain.Offering
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrOfferingNotFound
		}
		return nil, fmt.Errorf("find offering: %w", err)
	}
	return &o, nil
}

func (r *OfferingRepository) List(ctx context.Context, filter ports.ListOfferingsFilter) ([]*domain.Offering, int64, error) {
	query := bson.M{}
	if filter.MentorID != "" {
		query["mentor_id"] = filter.MentorID
	}
	if filter.Skill != "" {
		query["skills"] = filter.Skill
	}
	if filter.ActiveOnly {
		query["active"] = true
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count offerings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list offerings: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Offering
	for cur.Next(ctx) {
		var o domain.Offering
		if err := cur.Decode(&o); err != nil {
			return nil, 0, fmt.Errorf("decode offering: %w", err)
		}
		out = append(out, &o)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("list offerings: %w", err)
	}
	return out, total, nil
}
