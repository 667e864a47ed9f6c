package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/npc2425/wiprotrainjul2025/internal/auth"
)

// Store is the durable order record. MarkCancelled must be atomic against
// concurrent cancellations of the same order id.
type Store interface {
	Insert(ctx context.Context, o Order) (Order, error)
	Get(ctx context.Context, id int64) (Order, error)
	MarkCancelled(ctx context.Context, id int64) (Order, error)
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
}

// Service owns the order state machine and decides when events go out.
type Service struct {
	Store Store
	Sink  EventSink
	Log   *slog.Logger
}

// PlaceOrder binds the order to the authenticated caller, publishes the
// ORDER_PLACED event, then persists the order with status PLACED. The event
// goes out before the write: an order that fails to persist may still have
// consumed stock downstream.
func (s *Service) PlaceOrder(ctx context.Context, caller auth.Identity, items []ItemInput) (Order, error) {
	if len(items) == 0 {
		return Order{}, fmt.Errorf("%w: order has no items", ErrInvalidState)
	}

	o := Order{
		UserID:    caller.UserID,
		Status:    StatusPlaced,
		CreatedAt: time.Now().UTC(),
	}
	for _, it := range items {
		if it.Qty <= 0 {
			return Order{}, fmt.Errorf("%w: invalid qty for product %d", ErrInvalidState, it.ProductID)
		}
		o.Items = append(o.Items, OrderItem{ProductID: it.ProductID, Qty: it.Qty, PriceCents: it.PriceCents})
		o.TotalCents += it.PriceCents * it.Qty
	}

	s.Sink.Publish(0, NewEvent(EventOrderPlaced, o.Items))

	saved, err := s.Store.Insert(ctx, o)
	if err != nil {
		return Order{}, err
	}
	s.Log.InfoContext(ctx, "order placed", "order_id", saved.ID, "user_id", saved.UserID, "total_cents", saved.TotalCents)
	return saved, nil
}

// CancelOrder restores stock by publishing ORDER_CANCELLED with the order's
// original items, then flips the status. Only the owner may cancel, and only
// while the order is still PLACED.
func (s *Service) CancelOrder(ctx context.Context, caller auth.Identity, orderID int64) (Order, error) {
	o, err := s.Store.Get(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if o.UserID != caller.UserID {
		return Order{}, ErrForbidden
	}
	if !CanTransition(o.Status, StatusCancelled) {
		return Order{}, ErrInvalidState
	}

	s.Sink.Publish(o.ID, NewEvent(EventOrderCancelled, o.Items))

	cancelled, err := s.Store.MarkCancelled(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrInvalidState) {
			// lost the race to a concurrent cancel; the extra event is the
			// documented cost of publish-before-persist
			s.Log.WarnContext(ctx, "concurrent cancel", "order_id", orderID)
		}
		return Order{}, err
	}
	s.Log.InfoContext(ctx, "order cancelled", "order_id", orderID, "user_id", caller.UserID)
	return cancelled, nil
}

func (s *Service) ListOrdersForUser(ctx context.Context, userID int64) ([]Order, error) {
	return s.Store.ListByUser(ctx, userID)
}

func (s *Service) ListAllOrders(ctx context.Context) ([]Order, error) {
	return s.Store.ListAll(ctx)
}
