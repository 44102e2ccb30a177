package ports

//go:generate mockgen -source=ports.go -destination=mocks/mock_ports.go -package=mocks

import (
	"context"
	"time"

	contractsv1 "doodle/contracts/gen/events/v1"
)

// BlobStore holds one opaque blob per key. Put replaces the whole value;
// there is no locking, the last writer wins.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, blob []byte) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// EventEnvelope reuses the canonical cross-runtime envelope contract.
type EventEnvelope = contractsv1.Envelope

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
