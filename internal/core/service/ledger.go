package service

import (
	"context"

	"github.com/rafaelleal24/inventory/internal/core/auth"
	"github.com/rafaelleal24/inventory/internal/core/domain"
	"github.com/rafaelleal24/inventory/internal/core/logger"
	"github.com/rafaelleal24/inventory/internal/core/port"
	"github.com/rafaelleal24/inventory/internal/core/serviceerrors"
)

// LedgerService is the only path for incremental stock changes.
type LedgerService struct {
	productRepository port.ProductPort
	events            port.EventPort
	txManager         port.TransactionManager
	productCache      port.VersionedCachePort[domain.Product]
	idempotency       *IdempotencyService[domain.Product]
}

type stockPayload struct {
	ProductID domain.ID           `json:"product_id"`
	Kind      domain.MovementKind `json:"kind"`
	Quantity  int                 `json:"quantity"`
}

func NewLedgerService(
	productRepository port.ProductPort,
	events port.EventPort,
	txManager port.TransactionManager,
	productCache port.VersionedCachePort[domain.Product],
	idempotency *IdempotencyService[domain.Product],
) *LedgerService {
	return &LedgerService{
		productRepository: productRepository,
		events:            events,
		txManager:         txManager,
		productCache:      productCache,
		idempotency:       idempotency,
	}
}

func (s *LedgerService) StockIn(ctx context.Context, idempotencyKey string, id domain.ID, quantity int) (*domain.Product, error) {
	return s.move(ctx, idempotencyKey, id, domain.MovementIn, quantity)
}

func (s *LedgerService) StockOut(ctx context.Context, idempotencyKey string, id domain.ID, quantity int) (*domain.Product, error) {
	return s.move(ctx, idempotencyKey, id, domain.MovementOut, quantity)
}

func (s *LedgerService) move(ctx context.Context, idempotencyKey string, id domain.ID, kind domain.MovementKind, quantity int) (*domain.Product, error) {
	if _, err := auth.Require(ctx); err != nil {
		return nil, err
	}
	if err := domain.ValidateQuantity(quantity); err != nil {
		return nil, serviceerrors.NewInvalidRequestError(err.Error())
	}

	payload := stockPayload{ProductID: id, Kind: kind, Quantity: quantity}
	return s.idempotency.Run(ctx, idempotencyKey, payload, func(ctx context.Context) (*domain.Product, error) {
		return s.apply(ctx, id, kind, quantity)
	})
}

func (s *LedgerService) apply(ctx context.Context, id domain.ID, kind domain.MovementKind, quantity int) (*domain.Product, error) {
	var (
		product  *domain.Product
		movement *domain.StockMovement
	)
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		updated, err := s.productRepository.AdjustStock(txCtx, id, domain.SignedDelta(kind, quantity))
		if err != nil {
			return err
		}
		product = updated
		movement = domain.NewStockMovement(kind, quantity, updated)
		return s.events.Record(txCtx, movement)
	})
	if err != nil {
		attrs := map[string]any{
			"product_id": id,
			"kind":       string(kind),
			"quantity":   quantity,
		}
		if serviceerrors.IsOfKind(err, serviceerrors.KindInsufficientStock) {
			logger.Warn(ctx, "ledger: stock out rejected", attrs)
		} else {
			logger.Error(ctx, "ledger: stock movement failed", err, attrs)
		}
		return nil, err
	}

	rememberProduct(ctx, s.productCache, product)

	logger.Info(ctx, "Stock moved", map[string]any{
		"product_id":      product.ID,
		"kind":            string(movement.Kind),
		"delta":           movement.Delta,
		"resulting_stock": movement.ResultingStock,
	})
	return product, nil
}
