package broker

import "context"

// Producer publishes keyed messages to a topic.
type Producer interface {
	Send(ctx context.Context, key, value []byte) error
	Close() error
}
