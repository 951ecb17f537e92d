package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Topic carries session events.
const Topic = "portal.session"

type EventType string

const (
	SignedIn    EventType = "session.signed_in"
	SignedOut   EventType = "session.signed_out"
	Invalidated EventType = "session.invalidated"
)

// Event is a session transition.
type Event struct {
	Type   EventType `json:"type"`
	UserID string    `json:"userId,omitempty"`
	Reason string    `json:"reason,omitempty"`
	At     time.Time `json:"at"`
}

func (s *Session) publish(event Event) {
	if s.publisher == nil {
		return
	}
	event.At = time.Now().UTC()
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to marshal session event")
		return
	}
	if err = s.publisher.Publish(Topic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		s.logger.Error().Err(err).Str("event", string(event.Type)).Msg("failed to publish session event")
	}
}

// Subscribe streams session events until ctx is done.
func (s *Session) Subscribe(ctx context.Context) (<-chan Event, error) {
	if s.subscriber == nil {
		return nil, fmt.Errorf("session events are not enabled")
	}
	messages, err := s.subscriber.Subscribe(ctx, Topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", Topic, err)
	}
	events := make(chan Event)
	go func() {
		defer close(events)
		for msg := range messages {
			var event Event
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				s.logger.Warn().Err(err).Str("message_id", msg.UUID).Msg("dropping malformed session event")
				msg.Ack()
				continue
			}
			select {
			case events <- event:
				msg.Ack()
			case <-ctx.Done():
				msg.Nack()
				return
			}
		}
	}()
	return events, nil
}
