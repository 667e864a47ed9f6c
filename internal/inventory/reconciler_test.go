package inventory

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npc2425/wiprotrainjul2025/internal/orders"
)

// memLedger mirrors the production guarantee: the read-modify-write is
// atomic per product and never goes negative.
type memLedger struct {
	mu       sync.Mutex
	qty      map[int64]int
	failures int
	calls    int
}

func newMemLedger(initial map[int64]int) *memLedger {
	return &memLedger{qty: initial}
}

func (l *memLedger) AdjustStock(_ context.Context, productID int64, delta int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	cur, ok := l.qty[productID]
	if !ok {
		l.failures++
		return 0, ErrProductNotFound
	}
	if cur+delta < 0 {
		l.failures++
		return 0, ErrInsufficientStock
	}
	l.qty[productID] = cur + delta
	return cur + delta, nil
}

func (l *memLedger) get(productID int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.qty[productID]
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func message(t *testing.T, ev orders.Event) kafkago.Message {
	t.Helper()
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	return kafkago.Message{Value: b}
}

func TestDelta(t *testing.T) {
	assert.Equal(t, -3, Delta(orders.EventOrderPlaced, 3))
	assert.Equal(t, 3, Delta(orders.EventOrderCancelled, 3))
	assert.Equal(t, 0, Delta("ORDER_SHIPPED", 3))
	assert.Equal(t, 0, Delta("", 3))
}

func TestHandleEventPlacedConsumesStock(t *testing.T) {
	ledger := newMemLedger(map[int64]int{1: 10})
	rec := &Reconciler{Ledger: ledger, Log: discard()}

	err := rec.HandleEvent(context.Background(), message(t, orders.Event{
		EventType: orders.EventOrderPlaced,
		Items:     []orders.EventItem{{ProductID: 1, Quantity: 3}},
	}))
	require.NoError(t, err)
	assert.Equal(t, 7, ledger.get(1))
}

func TestHandleEventCancelledRestoresStock(t *testing.T) {
	ledger := newMemLedger(map[int64]int{1: 7})
	rec := &Reconciler{Ledger: ledger, Log: discard()}

	err := rec.HandleEvent(context.Background(), message(t, orders.Event{
		EventType: orders.EventOrderCancelled,
		Items:     []orders.EventItem{{ProductID: 1, Quantity: 3}},
	}))
	require.NoError(t, err)
	assert.Equal(t, 10, ledger.get(1))
}

func TestHandleEventUnknownTypeIsNoOp(t *testing.T) {
	ledger := newMemLedger(map[int64]int{1: 10})
	rec := &Reconciler{Ledger: ledger, Log: discard()}

	err := rec.HandleEvent(context.Background(), message(t, orders.Event{
		EventType: "ORDER_SHIPPED",
		Items:     []orders.EventItem{{ProductID: 1, Quantity: 3}},
	}))
	require.NoError(t, err)
	assert.Equal(t, 10, ledger.get(1))
	assert.Zero(t, ledger.calls, "zero deltas never reach the ledger")
}

func TestHandleEventItemFailureDoesNotBlockOthers(t *testing.T) {
	ledger := newMemLedger(map[int64]int{1: 2, 2: 10})
	rec := &Reconciler{Ledger: ledger, Log: discard()}

	err := rec.HandleEvent(context.Background(), message(t, orders.Event{
		EventType: orders.EventOrderPlaced,
		Items: []orders.EventItem{
			{ProductID: 1, Quantity: 5}, // underflow, dropped
			{ProductID: 99, Quantity: 1}, // unknown product, dropped
			{ProductID: 2, Quantity: 4}, // still applied
		},
	}))
	require.NoError(t, err, "item failures never fail the event")
	assert.Equal(t, 2, ledger.get(1), "ledger unchanged on rejected adjustment")
	assert.Equal(t, 6, ledger.get(2))
	assert.Equal(t, 2, ledger.failures)
}

func TestHandleEventMalformedPayloadIsDropped(t *testing.T) {
	ledger := newMemLedger(map[int64]int{1: 10})
	rec := &Reconciler{Ledger: ledger, Log: discard()}

	err := rec.HandleEvent(context.Background(), kafkago.Message{Value: []byte("not json")})
	require.NoError(t, err)
	assert.Zero(t, ledger.calls)
}

// At-least-once redelivery double-applies: the event carries no dedup key,
// so the reconciler cannot tell a duplicate from a new order.
func TestHandleEventRedeliveryDoubleApplies(t *testing.T) {
	ledger := newMemLedger(map[int64]int{1: 10})
	rec := &Reconciler{Ledger: ledger, Log: discard()}

	m := message(t, orders.Event{
		EventType: orders.EventOrderPlaced,
		Items:     []orders.EventItem{{ProductID: 1, Quantity: 3}},
	})
	require.NoError(t, rec.HandleEvent(context.Background(), m))
	require.NoError(t, rec.HandleEvent(context.Background(), m))
	assert.Equal(t, 4, ledger.get(1))
}

func TestConcurrentDecrementsNeverGoNegative(t *testing.T) {
	const contenders = 16
	ledger := newMemLedger(map[int64]int{1: 1})
	rec := &Reconciler{Ledger: ledger, Log: discard()}

	m := message(t, orders.Event{
		EventType: orders.EventOrderPlaced,
		Items:     []orders.EventItem{{ProductID: 1, Quantity: 1}},
	})

	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = rec.HandleEvent(context.Background(), m)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, ledger.get(1), "exactly one decrement wins")
	assert.Equal(t, contenders-1, ledger.failures)
}
