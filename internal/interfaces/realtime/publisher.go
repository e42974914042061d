package realtime

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
)

// Sink receives encoded frames. The hub and the broker bridges are sinks.
type Sink interface {
	Deliver(ctx context.Context, topic string, frame []byte) error
}

// Publisher encodes a payload once and hands the frame to every sink.
type Publisher struct {
	sinks  []Sink
	now    func() time.Time
	logger *logging.Logger
}

func NewPublisher(logger *logging.Logger, sinks ...Sink) *Publisher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Publisher{
		sinks:  sinks,
		now:    time.Now,
		logger: logger.With("component", "realtime-publisher"),
	}
}

// Publish returns the combined error of every sink that failed.
func (p *Publisher) Publish(ctx context.Context, topic string, payload any) error {
	frame, err := EncodeEnvelope(topic, payload, p.now())
	if err != nil {
		return crerr.Wrapf(err, "encode %s frame", topic)
	}

	var combined error
	for _, sink := range p.sinks {
		if err := sink.Deliver(ctx, topic, frame); err != nil {
			combined = crerr.CombineErrors(combined, err)
		}
	}
	if combined == nil {
		p.logger.DebugContext(ctx, "published", "topic", topic, "bytes", len(frame))
	}
	return combined
}
