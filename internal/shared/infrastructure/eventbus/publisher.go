package eventbus

import "context"

// Publisher delivers serialized event envelopes to a bus. The outbox
// processor is the only producer; consumers never publish directly.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
	Close() error
}
