package orders

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The wire shape is a cross-service contract; the consumer group on the
// inventory side decodes exactly these keys.
func TestEventWireShape(t *testing.T) {
	ev := NewEvent(EventOrderPlaced, []OrderItem{
		{ProductID: 42, Qty: 3, PriceCents: 999},
	})

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t, `{"eventType":"ORDER_PLACED","items":[{"productId":42,"quantity":3}]}`, string(b),
		"no order id, user id, or price on the wire")
}

func TestEventDecode(t *testing.T) {
	var ev Event
	err := json.Unmarshal([]byte(`{"eventType":"ORDER_CANCELLED","items":[{"productId":7,"quantity":2},{"productId":8,"quantity":1}]}`), &ev)
	require.NoError(t, err)
	assert.Equal(t, EventOrderCancelled, ev.EventType)
	assert.Equal(t, []EventItem{{ProductID: 7, Quantity: 2}, {ProductID: 8, Quantity: 1}}, ev.Items)
}
