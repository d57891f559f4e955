package client

import (
	"time"

	"go.uber.org/zap"
)

type settings struct {
	logger *zap.Logger
	now    func() time.Time
}

// Option configures the client.
type Option func(*settings)

// WithLogger sets a custom logger for the client and its components.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithClock replaces time.Now when validating request expiry.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

func applyOptions(opts []Option) settings {
	s := settings{logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
