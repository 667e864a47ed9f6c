package orders

import (
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/npc2425/wiprotrainjul2025/internal/kafka"
)

// EventSink is the one-way channel to the inventory side. Publishing is
// asynchronous: there is no confirmation path back, so a saga/compensation
// layer can be slotted in here without touching the lifecycle service.
type EventSink interface {
	Publish(orderID int64, ev Event)
}

type KafkaSink struct {
	Producer *kafkax.Producer
}

func (s *KafkaSink) Publish(orderID int64, ev Event) {
	// placement publishes before an id exists; an empty key lets the
	// balancer spread those across partitions
	var key []byte
	if orderID != 0 {
		key = PartitionKey(orderID)
	}
	s.Producer.Publish(key, kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-id", Value: []byte(uuid.NewString())},
		kafkago.Header{Key: "x-event-type", Value: []byte(ev.EventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
