package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// WebhookDedup provides webhook replay checks backed by Redis.
// Key format: webhook:<order_id>:<outcome>
type WebhookDedup struct {
	client *redis.Client
}

// NewWebhookDedup creates a WebhookDedup wrapping the given Redis client.
func NewWebhookDedup(client *redis.Client) *WebhookDedup {
	return &WebhookDedup{client: client}
}

// IsDuplicate reports whether a webhook with this order id and outcome has
// already been applied.
func (d *WebhookDedup) IsDuplicate(ctx context.Context, orderID, outcome string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(orderID, outcome)).Result()
	if err != nil {
		return false, fmt.Errorf("webhook dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this webhook has been applied (expires after dedupTTL).
func (d *WebhookDedup) Mark(ctx context.Context, orderID, outcome string) error {
	return d.client.Set(ctx, d.key(orderID, outcome), "1", dedupTTL).Err()
}

func (d *WebhookDedup) key(orderID, outcome string) string {
	return fmt.Sprintf("webhook:%s:%s", orderID, outcome)
}
