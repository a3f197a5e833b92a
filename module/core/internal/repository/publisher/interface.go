package publisher

import "context"

// EventPublisher is the broadcast sink for pipeline events. Publish is
// fire-and-forget: implementations must not block the caller and no
// delivery guarantee is made.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}
