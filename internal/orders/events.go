package orders

const (
	EventOrderPlaced    = "ORDER_PLACED"
	EventOrderCancelled = "ORDER_CANCELLED"
)

// Event is the cross-service message consumed by the inventory side.
// It deliberately carries only what is needed to compute stock deltas:
// no order id, no user id, no prices.
type Event struct {
	EventType string      `json:"eventType"`
	Items     []EventItem `json:"items"`
}

type EventItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

func NewEvent(eventType string, items []OrderItem) Event {
	ev := Event{EventType: eventType, Items: make([]EventItem, 0, len(items))}
	for _, it := range items {
		ev.Items = append(ev.Items, EventItem{ProductID: it.ProductID, Quantity: it.Qty})
	}
	return ev
}
