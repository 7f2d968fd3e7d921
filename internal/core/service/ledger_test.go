package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/rafaelleal24/inventory/internal/core/domain"
	"github.com/rafaelleal24/inventory/internal/core/dto"
	"github.com/rafaelleal24/inventory/internal/core/port/mock"
	"github.com/rafaelleal24/inventory/internal/core/serviceerrors"
)

type ledgerMocks struct {
	products *mock.MockProductPort
	events   *mock.MockEventPort
	tx       *mock.MockTransactionManager
	cache    *mock.MockVersionedCachePort[domain.Product]
	idem     *mock.MockCachePort[IdempotencyEntry[domain.Product]]
}

func setupLedgerService(t *testing.T) (*LedgerService, ledgerMocks) {
	ctrl := gomock.NewController(t)
	m := ledgerMocks{
		products: mock.NewMockProductPort(ctrl),
		events:   mock.NewMockEventPort(ctrl),
		tx:       mock.NewMockTransactionManager(ctrl),
		cache:    mock.NewMockVersionedCachePort[domain.Product](ctrl),
		idem:     mock.NewMockCachePort[IdempotencyEntry[domain.Product]](ctrl),
	}
	m.tx.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()
	idempotency := NewIdempotencyService[domain.Product](m.idem, 15*time.Minute, 10*time.Millisecond, 100*time.Millisecond)
	return NewLedgerService(m.products, m.events, m.tx, m.cache, idempotency), m
}

func TestLedgerService_StockIn(t *testing.T) {
	id := domain.ID("aabbccddee112233aabbccdd")

	t.Run("success records movement and refreshes cache", func(t *testing.T) {
		svc, m := setupLedgerService(t)
		updated := &domain.Product{ID: id, Stock: 15, Version: 2, UpdatedAt: time.Now()}

		m.products.EXPECT().AdjustStock(gomock.Any(), id, 10).Return(updated, nil)
		m.events.EXPECT().
			Record(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event domain.Event) error {
				movement, ok := event.(*domain.StockMovement)
				if !ok {
					t.Fatalf("expected stock movement, got %T", event)
				}
				if movement.Delta != 10 || movement.ResultingStock != 15 || movement.Kind != domain.MovementIn {
					t.Fatalf("unexpected movement: %+v", movement)
				}
				return nil
			})
		m.cache.EXPECT().SetIfNewer(gomock.Any(), "product:"+string(id), updated, int64(2), productCacheTTL).Return(true, nil)

		product, err := svc.StockIn(adminContext(), "", id, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if product.Stock != 15 {
			t.Fatalf("expected stock 15, got %d", product.Stock)
		}
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		for _, quantity := range []int{0, -3} {
			svc, _ := setupLedgerService(t)
			_, err := svc.StockIn(adminContext(), "", id, quantity)
			if !serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest) {
				t.Fatalf("quantity %d: expected KindInvalidRequest, got %v", quantity, err)
			}
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc, _ := setupLedgerService(t)
		_, err := svc.StockIn(context.Background(), "", id, 1)
		if !serviceerrors.IsOfKind(err, serviceerrors.KindUnauthorized) {
			t.Fatalf("expected KindUnauthorized, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := setupLedgerService(t)
		m.products.EXPECT().AdjustStock(gomock.Any(), id, 1).Return(nil, serviceerrors.NewNotFoundError("product not found"))

		_, err := svc.StockIn(adminContext(), "", id, 1)
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected KindNotFound, got %v", err)
		}
	})
}

func TestLedgerService_StockOut(t *testing.T) {
	id := domain.ID("aabbccddee112233aabbccdd")

	t.Run("insufficient stock", func(t *testing.T) {
		svc, m := setupLedgerService(t)
		m.products.EXPECT().
			AdjustStock(gomock.Any(), id, -6).
			Return(nil, serviceerrors.NewInsufficientStockError(string(id), 5, 6))

		_, err := svc.StockOut(adminContext(), "", id, 6)
		if !serviceerrors.IsOfKind(err, serviceerrors.KindInsufficientStock) {
			t.Fatalf("expected KindInsufficientStock, got %v", err)
		}
	})

	t.Run("idempotent replay skips the store", func(t *testing.T) {
		svc, m := setupLedgerService(t)
		stored := &domain.Product{ID: id, Stock: 2}
		hash := ""

		m.idem.EXPECT().
			SetNX(gomock.Any(), "key-1", gomock.Any(), 15*time.Minute).
			DoAndReturn(func(_ context.Context, _ string, entry *IdempotencyEntry[domain.Product], _ time.Duration) (bool, error) {
				hash = entry.PayloadHash
				return false, nil
			})
		m.idem.EXPECT().
			Get(gomock.Any(), "key-1").
			DoAndReturn(func(context.Context, string) (*IdempotencyEntry[domain.Product], error) {
				return &IdempotencyEntry[domain.Product]{Status: IdempotencyCompleted, PayloadHash: hash, Result: stored}, nil
			})

		product, err := svc.StockOut(adminContext(), "key-1", id, 3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if product != stored {
			t.Fatal("expected stored result")
		}
	})
}

func TestLedgerService_InverseMovements(t *testing.T) {
	inv := newInventory()
	ctx := adminContext()
	product, err := inv.catalog.CreateProduct(ctx, &dto.ProductRequest{
		Name: "Bolt", Category: "Hardware", Price: floatPtr(0.25), Stock: intPtr(7),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, quantity := range []int{1, 7, 40} {
		if _, err := inv.ledger.StockIn(ctx, "", product.ID, quantity); err != nil {
			t.Fatalf("stock in %d: %v", quantity, err)
		}
		after, err := inv.ledger.StockOut(ctx, "", product.ID, quantity)
		if err != nil {
			t.Fatalf("stock out %d: %v", quantity, err)
		}
		if after.Stock != 7 {
			t.Fatalf("expected stock back at 7 after +/-%d, got %d", quantity, after.Stock)
		}
	}
}

func TestLedgerService_ConcurrentStockOut(t *testing.T) {
	inv := newInventory()
	ctx := adminContext()
	product, err := inv.catalog.CreateProduct(ctx, &dto.ProductRequest{
		Name: "Nut", Category: "Hardware", Price: floatPtr(0.1), Stock: intPtr(10),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		rejected  atomic.Int32
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := inv.ledger.StockOut(ctx, "", product.ID, 1)
			switch {
			case err == nil:
				succeeded.Add(1)
			case serviceerrors.IsOfKind(err, serviceerrors.KindInsufficientStock):
				rejected.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded.Load() != 10 || rejected.Load() != 15 {
		t.Fatalf("expected 10 successes and 15 rejections, got %d and %d", succeeded.Load(), rejected.Load())
	}
	final, _ := inv.store.GetByID(ctx, product.ID)
	if final.Stock != 0 {
		t.Fatalf("expected stock 0, got %d", final.Stock)
	}
}

func TestLedgerService_IdempotentStockIn(t *testing.T) {
	inv := newInventory()
	ctx := adminContext()
	product, err := inv.catalog.CreateProduct(ctx, &dto.ProductRequest{
		Name: "Washer", Category: "Hardware", Price: floatPtr(0.05), Stock: intPtr(0),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 3; i++ {
		after, err := inv.ledger.StockIn(ctx, "restock-1", product.ID, 4)
		if err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
		if after.Stock != 4 {
			t.Fatalf("attempt %d: expected stock 4, got %d", i, after.Stock)
		}
	}

	_, err = inv.ledger.StockIn(ctx, "restock-1", product.ID, 5)
	if !serviceerrors.IsOfKind(err, serviceerrors.KindUnprocessableEntity) {
		t.Fatalf("expected KindUnprocessableEntity for reused key, got %v", err)
	}
}
