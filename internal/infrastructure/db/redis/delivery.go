package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// failureTTL bounds how long a delivery failure stays flagged; by then an
// operator has either re-sent the credentials or the guest has expired.
const failureTTL = 7 * 24 * time.Hour

// DeliveryLedger records guests whose credential mail could not be
// delivered, so operators can follow up and re-send.
// Key format: delivery:failed:<guest_id>
type DeliveryLedger struct {
	client *redis.Client
}

// NewDeliveryLedger creates a DeliveryLedger wrapping the given client.
func NewDeliveryLedger(client *redis.Client) *DeliveryLedger {
	return &DeliveryLedger{client: client}
}

// MarkFailed flags a guest's delivery as failed with the transport's error
// message (expires after failureTTL).
func (l *DeliveryLedger) MarkFailed(ctx context.Context, guestID uint, reason string) error {
	return l.client.Set(ctx, l.key(guestID), reason, failureTTL).Err()
}

// Clear removes the failure flag after a successful (re-)delivery or when
// the guest is deleted.
func (l *DeliveryLedger) Clear(ctx context.Context, guestID uint) error {
	return l.client.Del(ctx, l.key(guestID)).Err()
}

func (l *DeliveryLedger) key(guestID uint) string {
	return fmt.Sprintf("delivery:failed:%d", guestID)
}
