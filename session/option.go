package session

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"
)

type Option func(*Session)

// WithLogger sets logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithPubSub replaces the in-process pub/sub carrying session events
func WithPubSub(publisher message.Publisher, subscriber message.Subscriber) Option {
	return func(s *Session) {
		s.publisher = publisher
		s.subscriber = subscriber
	}
}
