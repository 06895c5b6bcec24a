package interfaces

import "context"

// EventPublisher sends one keyed event to a broker
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
	Close() error
}
