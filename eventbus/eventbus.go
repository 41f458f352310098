// Package eventbus publishes blog mutation events to Kafka. The backend is
// producer-only: downstream consumers (search indexing, cache invalidation)
// live in other services.
package eventbus

import (
	"context"
	"encoding/json"
)

// Bus is the publishing abstraction handed to the service layer.
type Bus interface {
	Publish(ctx context.Context, topic string, key string, payload interface{}) error
	Close()
}

// NoopBus discards every event. Used when Kafka is disabled and in tests.
type NoopBus struct{}

func (NoopBus) Publish(ctx context.Context, topic string, key string, payload interface{}) error {
	// still marshal so a broken payload surfaces in development
	_, err := json.Marshal(payload)
	return err
}

func (NoopBus) Close() {}
