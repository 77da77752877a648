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

const subscriptionCollection = "subscriptions"

// SubscriptionRepository persists mentor platform subscriptions with the
// same conditional payment writes as bookings.
type SubscriptionRepository struct {
	coll *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) *SubscriptionRepository {
	return &SubscriptionRepository{coll: db.Collection(subscriptionCollection)}
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *domain.Subscription) error {
	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) FindByID(ctx context.Context, id string) (*domain.Subscription, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *SubscriptionRepository) FindByPaymentID(ctx context.Context, orderID string) (*domain.Subscription, error) {
	return r.findOne(ctx, bson.M{"payment_id": orderID})
}

func (r *SubscriptionRepository) findOne(ctx context.Context, filter bson.M) (*domain.Subscription, error) {
	var s domain.Subscription
	if err := r.coll.FindOne(ctx, filter).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return &s, nil
}

func (r *SubscriptionRepository) MarkPaid(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "payment_status": bson.M{"$ne": string(domain.PaymentPaid)}},
		bson.M{"$set": bson.M{
			"payment_status": string(domain.PaymentPaid),
			"status":         string(domain.SubscriptionActive),
			"updated_at":     time.Now().UTC(),
		}},
	)
	if err != nil {
		return false, fmt.Errorf("subscription mark paid: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

func (r *SubscriptionRepository) MarkPaymentFailed(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "payment_status": bson.M{"$ne": string(domain.PaymentPaid)}},
		bson.M{"$set": bson.M{
			"payment_status": string(domain.PaymentFailed),
			"status":         string(domain.SubscriptionPastDue),
			"updated_at":     time.Now().UTC(),
		}},
	)
	if err != nil {
		return false, fmt.Errorf("subscription mark failed: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

func (r *SubscriptionRepository) List(ctx context.Context, filter ports.ListSubscriptionsFilter) ([]*domain.Subscription, int64, error) {
	query := bson.M{}
	if filter.MentorID != "" {
		query["mentor_id"] = filter.MentorID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count subscriptions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscriptions: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Subscription
	for cur.Next(ctx) {
		var s domain.Subscription
		if err := cur.Decode(&s); err != nil {
			return nil, 0, fmt.Errorf("decode subscription: %w", err)
		}
		out = append(out, &s)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("list subscriptions: %w", err)
	}
	return out, total, nil
}
