package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-hotelvisit/internal/tour"
)

// Publisher sends raw data to a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// VisitorSubject is the subject a visitor's navigation events travel on.
func VisitorSubject(visitorId string) string {
	return fmt.Sprintf("visitor-%s", visitorId)
}

// EventPublisher publishes one visitor's navigation events as JSON.
type EventPublisher struct {
	pub     Publisher
	subject string
}

// NewEventPublisher returns a tour.Publisher for the given visitor.
func NewEventPublisher(pub Publisher, visitorId string) *EventPublisher {
	return &EventPublisher{pub: pub, subject: VisitorSubject(visitorId)}
}

func (p *EventPublisher) PublishEvent(ev tour.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}
	return p.pub.Publish(p.subject, data)
}

// DecodeEvent parses an event published by EventPublisher.
func DecodeEvent(data []byte) (tour.Event, error) {
	var ev tour.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return tour.Event{}, fmt.Errorf("unmarshalling event: %w", err)
	}
	return ev, nil
}
