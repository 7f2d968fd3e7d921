package outbox

import (
	"context"
	"time"

	"github.com/rafaelleal24/inventory/internal/adapters/config"
	"github.com/rafaelleal24/inventory/internal/core/logger"
	"github.com/rafaelleal24/inventory/internal/core/port"
)

// Relay publishes pending outbox entries and removes them once the broker
// accepted them. Delivery is at least once.
type Relay struct {
	outbox   Repository
	broker   port.BrokerPort
	interval time.Duration
	batch    int
}

func NewRelay(outbox Repository, broker port.BrokerPort, config config.OutboxConfig) *Relay {
	return &Relay{
		outbox:   outbox,
		broker:   broker,
		interval: config.Interval,
		batch:    config.BatchSize,
	}
}

// Start flushes on every tick until ctx is cancelled.
func (r *Relay) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Flush(ctx)
		}
	}
}

// Flush relays one batch and returns how many entries were published.
func (r *Relay) Flush(ctx context.Context) int {
	entries, err := r.outbox.FetchPending(ctx, r.batch)
	if err != nil {
		logger.Error(ctx, "outbox: failed to fetch pending events", err, map[string]any{
			"batch": r.batch,
		})
		return 0
	}

	published := 0
	for _, entry := range entries {
		attrs := map[string]any{
			"event_id":    entry.ID,
			"event_name":  entry.EventName,
			"entity_name": entry.EntityName,
		}
		if err := r.broker.PublishRaw(ctx, entry.EventName, entry.EntityName, entry.EventData); err != nil {
			logger.Error(ctx, "outbox: failed to publish event", err, attrs)
			continue
		}
		published++

		if err := r.outbox.Delete(ctx, entry.ID); err != nil {
			logger.Error(ctx, "outbox: failed to delete event after publish", err, attrs)
		}
	}

	if published > 0 {
		logger.Debug(ctx, "outbox: batch relayed", map[string]any{
			"published": published,
			"pending":   len(entries) - published,
		})
	}
	return published
}
