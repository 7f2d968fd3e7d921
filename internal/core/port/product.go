package port

import (
	"context"

	"github.com/rafaelleal24/inventory/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type ProductPort interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id domain.ID) (*domain.Product, error)
	// GetAll returns every product in insertion order.
	GetAll(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id domain.ID) error
	// AdjustStock adds delta to the stock of one product in a single atomic
	// step and returns the updated product. A negative delta larger than
	// the current stock fails with an insufficient stock error.
	AdjustStock(ctx context.Context, id domain.ID, delta int) (*domain.Product, error)
}
