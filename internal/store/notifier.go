package store

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Notifier publishes collection change events to the change feed. It is
// the single write side of the feed; entity services call Changed after
// every successful write.
type Notifier struct {
	client *redis.Client
	logger *slog.Logger
}

// NewNotifier constructs a Notifier over the shared Redis client.
func NewNotifier(client *redis.Client, logger *slog.Logger) *Notifier {
	return &Notifier{client: client, logger: logger}
}

// Changed publishes the collection name on the change channel. Publish
// failures are logged and swallowed; the write itself already succeeded
// and must not be reported as failed.
func (n *Notifier) Changed(ctx context.Context, collection string) {
	if n == nil || n.client == nil {
		return
	}
	if err := n.client.Publish(ctx, Channel, collection).Err(); err != nil {
		n.logger.Error("change feed: publish failed",
			slog.String("collection", collection), slog.Any("error", err))
	}
}
