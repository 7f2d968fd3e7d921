package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rafaelleal24/inventory/internal/core/domain"
	"github.com/rafaelleal24/inventory/internal/core/port"
)

// Recorder implements port.EventPort on top of the outbox repository. When
// ctx carries a transaction the entry commits or rolls back with it.
type Recorder struct {
	outbox Repository
}

func NewRecorder(outbox Repository) port.EventPort {
	return &Recorder{outbox: outbox}
}

func (r *Recorder) Record(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.GetName(), err)
	}
	return r.outbox.Insert(ctx, Entry{
		EventName:  event.GetName(),
		EntityName: event.GetEntityName(),
		EventData:  data,
	})
}
