package inventory

import (
	"context"
	"encoding/json"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npc2425/wiprotrainjul2025/internal/auth"
	"github.com/npc2425/wiprotrainjul2025/internal/orders"
)

// directSink delivers published events straight into the reconciler, standing
// in for the Kafka topic between the two services.
type directSink struct {
	t   *testing.T
	rec *Reconciler
}

func (s *directSink) Publish(_ int64, ev orders.Event) {
	b, err := json.Marshal(ev)
	require.NoError(s.t, err)
	require.NoError(s.t, s.rec.HandleEvent(context.Background(), kafkago.Message{Value: b}))
}

type flowStore struct {
	nextID int64
	byID   map[int64]orders.Order
}

func (s *flowStore) Insert(_ context.Context, o orders.Order) (orders.Order, error) {
	s.nextID++
	o.ID = s.nextID
	s.byID[o.ID] = o
	return o, nil
}

func (s *flowStore) Get(_ context.Context, id int64) (orders.Order, error) {
	o, ok := s.byID[id]
	if !ok {
		return orders.Order{}, orders.ErrNotFound
	}
	return o, nil
}

func (s *flowStore) MarkCancelled(_ context.Context, id int64) (orders.Order, error) {
	o := s.byID[id]
	if o.Status != orders.StatusPlaced {
		return orders.Order{}, orders.ErrInvalidState
	}
	o.Status = orders.StatusCancelled
	s.byID[id] = o
	return o, nil
}

func (s *flowStore) ListByUser(_ context.Context, _ int64) ([]orders.Order, error) { return nil, nil }
func (s *flowStore) ListAll(_ context.Context) ([]orders.Order, error)            { return nil, nil }

func flowFixture(t *testing.T, stock map[int64]int) (*orders.Service, *flowStore, *memLedger) {
	ledger := newMemLedger(stock)
	rec := &Reconciler{Ledger: ledger, Log: discard()}
	store := &flowStore{byID: map[int64]orders.Order{}}
	svc := &orders.Service{Store: store, Sink: &directSink{t: t, rec: rec}, Log: discard()}
	return svc, store, ledger
}

var buyer = auth.Identity{UserID: 5, Role: auth.RoleCustomer}

func TestPlaceThenCancelRoundTripsStock(t *testing.T) {
	svc, _, ledger := flowFixture(t, map[int64]int{1: 10})

	o, err := svc.PlaceOrder(context.Background(), buyer, []orders.ItemInput{{ProductID: 1, Qty: 3, PriceCents: 100}})
	require.NoError(t, err)
	assert.Equal(t, 7, ledger.get(1), "placement consumes stock")

	_, err = svc.CancelOrder(context.Background(), buyer, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, ledger.get(1), "cancellation restores stock")
}

// Orders are accepted regardless of stock sufficiency: the decrement fails on
// the inventory side, the order stays PLACED, and nothing reconciles the two.
func TestOversellLeavesOrderPlacedAndStockUnchanged(t *testing.T) {
	svc, store, ledger := flowFixture(t, map[int64]int{1: 2})

	o, err := svc.PlaceOrder(context.Background(), buyer, []orders.ItemInput{{ProductID: 1, Qty: 5, PriceCents: 100}})
	require.NoError(t, err, "placement never waits on stock")

	persisted, err := store.Get(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, orders.StatusPlaced, persisted.Status)
	assert.Equal(t, 2, ledger.get(1), "rejected adjustment leaves the ledger unchanged")
	assert.Equal(t, 1, ledger.failures)
}
