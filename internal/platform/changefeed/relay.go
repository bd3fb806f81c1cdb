package changefeed

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DefaultChannel is the pub/sub channel used for company changes.
const DefaultChannel = "companies_changed"

// origin tags the messages of one process so it can ignore its own echoes.
type origin struct {
	id     string
	broker *Broker
}

func newOrigin(broker *Broker) origin {
	return origin{id: uuid.NewString(), broker: broker}
}

// deliver notifies the local broker unless the payload came from this process.
func (o origin) deliver(payload string) bool {
	if payload == o.id {
		return false
	}
	o.broker.Notify()
	return true
}

// RunRelay keeps the relay running until ctx ends, restarting it after
// retry whenever it fails.
func RunRelay(ctx context.Context, relay Relay, retry time.Duration) {
	for {
		err := relay.Run(ctx)
		if ctx.Err() != nil {
			return
		}
		slog.Warn("change relay stopped, restarting", "error", err, "retry_in", retry)
		select {
		case <-ctx.Done():
			return
		case <-time.After(retry):
		}
	}
}
