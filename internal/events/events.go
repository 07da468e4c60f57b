package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TopicOrderEvents   = "order_events"
	TopicProductEvents = "product_events"
	TopicUserEvents    = "user_events"
)

// Topics lists everything the producer may write to, for bootstrap scripts
// and tests.
var Topics = []string{TopicOrderEvents, TopicProductEvents, TopicUserEvents}

type Envelope struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	Producer   string    `json:"producer"`
	Payload    any       `json:"payload"`
}

func NewEnvelope(eventType string, payload any) Envelope {
	return Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Producer:   "storefront",
		Payload:    payload,
	}
}
