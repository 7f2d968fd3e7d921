package port

import (
	"context"

	"github.com/rafaelleal24/inventory/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// EventPort records domain events for later publication. Recording inside a
// transaction makes the event visible only if the transaction commits.
type EventPort interface {
	Record(ctx context.Context, event domain.Event) error
}
