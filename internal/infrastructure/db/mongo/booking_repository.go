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

const bookingCollection = "bookings"

// BookingRepository persists bookings. The paid/failed/rollback mutations
// put their guard in the update filter, so the check and the write are one
// atomic document operation and the webhook/verify and rollback races stay
// safe without locks.
type BookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{coll: db.Collection(bookingCollection)}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *BookingRepository) FindByPaymentID(ctx context.Context, orderID string) (*domain.Booking, error) {
	return r.findOne(ctx, bson.M{"payment_id": orderID})
}

func (r *BookingRepository) findOne(ctx context.Context, filter bson.M) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.coll.FindOne(ctx, filter).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) AttachPaymentID(ctx context.Context, id, orderID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"payment_id": orderID, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("attach payment id: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// MarkPaid is the conditional paid transition: the filter excludes already
// paid documents, so replays and concurrent observers modify nothing.
func (r *BookingRepository) MarkPaid(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "payment_status": bson.M{"$ne": string(domain.PaymentPaid)}},
		bson.M{"$set": bson.M{
			"payment_status": string(domain.PaymentPaid),
			"status":         string(domain.BookingConfirmed),
			"updated_at":     time.Now().UTC(),
		}},
	)
	if err != nil {
		return false, fmt.Errorf("mark paid: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

// MarkPaymentFailed records a failed payment unless the booking is already
// paid.
func (r *BookingRepository) MarkPaymentFailed(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "payment_status": bson.M{"$ne": string(domain.PaymentPaid)}},
		bson.M{"$set": bson.M{
			"payment_status": string(domain.PaymentFailed),
			"updated_at":     time.Now().UTC(),
		}},
	)
	if err != nil {
		return false, fmt.Errorf("mark payment failed: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

// DeleteIfPaymentPending removes the booking only when its payment is still
// pending at delete time. A webhook landing between the caller's read and
// this delete leaves the document in place.
func (r *BookingRepository) DeleteIfPaymentPending(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{
		"_id":            id,
		"payment_status": string(domain.PaymentPending),
	})
	if err != nil {
		return false, fmt.Errorf("rollback delete: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) CountActiveForSlot(ctx context.Context, offeringID string, slotStart time.Time) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{
		"offering_id": offeringID,
		"slot_start":  slotStart.UTC(),
		"status": bson.M{"$in": bson.A{
			string(domain.BookingPending),
			string(domain.BookingConfirmed),
		}},
	})
	if err != nil {
		return 0, fmt.Errorf("count slot bookings: %w", err)
	}
	return n, nil
}

func (r *BookingRepository) List(ctx context.Context, filter ports.ListBookingsFilter) ([]*domain.Booking, int64, error) {
	query := bson.M{}
	if filter.MenteeID != "" {
		query["mentee_id"] = filter.MenteeID
	}
	if filter.MentorID != "" {
		query["mentor_id"] = filter.MentorID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Booking
	for cur.Next(ctx) {
		var b domain.Booking
		if err := cur.Decode(&b); err != nil {
			return nil, 0, fmt.Errorf("decode booking: %w", err)
		}
		out = append(out, &b)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	return out, total, nil
}
