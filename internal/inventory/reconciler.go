package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/npc2425/wiprotrainjul2025/internal/orders"
	"github.com/npc2425/wiprotrainjul2025/internal/redisx"
)

// Reconciler consumes order events and keeps the stock ledger in step.
// There is no retry and no compensating path back to the order side: an
// adjustment that cannot be applied is logged and dropped.
type Reconciler struct {
	Ledger StockAdjuster
	Redis  *redis.Client
	Log    *slog.Logger
}

// Delta maps an event type to the signed stock change for one line item.
// Unknown event types are a no-op rather than a failure.
func Delta(eventType string, qty int) int {
	switch eventType {
	case orders.EventOrderPlaced:
		return -qty
	case orders.EventOrderCancelled:
		return qty
	default:
		return 0
	}
}

// HandleEvent is the consumer handler. Items are independent: a failed
// adjustment on one product never blocks the rest of the event, and the
// returned nil keeps the consumer moving regardless.
func (r *Reconciler) HandleEvent(ctx context.Context, m kafkago.Message) error {
	var ev orders.Event
	if err := json.Unmarshal(m.Value, &ev); err != nil {
		r.Log.ErrorContext(ctx, "undecodable order event", "offset", m.Offset, "err", err)
		return nil
	}
	r.Log.InfoContext(ctx, "order event received", "event_type", ev.EventType, "items", len(ev.Items))

	for _, it := range ev.Items {
		delta := Delta(ev.EventType, it.Quantity)
		if delta == 0 {
			continue
		}
		newQty, err := r.Ledger.AdjustStock(ctx, it.ProductID, delta)
		if err != nil {
			r.Log.ErrorContext(ctx, "stock adjustment dropped",
				"product_id", it.ProductID, "delta", delta, "err", err)
			continue
		}
		if r.Redis != nil {
			_ = r.Redis.Del(ctx, fmt.Sprintf(redisx.KeyProduct, it.ProductID)).Err()
		}
		r.Log.InfoContext(ctx, "stock adjusted", "product_id", it.ProductID, "delta", delta, "qty", newQty)
	}
	return nil
}
