package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rafaelleal24/inventory/internal/core/auth"
	"github.com/rafaelleal24/inventory/internal/core/domain"
	"github.com/rafaelleal24/inventory/internal/core/serviceerrors"
)

func adminContext() context.Context {
	return auth.WithPrincipal(context.Background(), &domain.Principal{
		UserID:   "000000000000000000000001",
		Username: "admin",
		Role:     domain.RoleAdmin,
	})
}

// memoryProductStore mirrors the repository contract for scenario tests.
type memoryProductStore struct {
	mu       sync.Mutex
	nextID   int
	order    []domain.ID
	products map[domain.ID]domain.Product
}

func newMemoryProductStore() *memoryProductStore {
	return &memoryProductStore{products: make(map[domain.ID]domain.Product)}
}

func (s *memoryProductStore) Create(_ context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	product.ID = domain.ID(fmt.Sprintf("%024x", s.nextID))
	product.Version = 1
	s.products[product.ID] = *product
	s.order = append(s.order, product.ID)
	return nil
}

func (s *memoryProductStore) GetByID(_ context.Context, id domain.ID) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return nil, serviceerrors.NewNotFoundError("product not found")
	}
	return &product, nil
}

func (s *memoryProductStore) GetAll(_ context.Context) ([]*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make([]*domain.Product, 0, len(s.order))
	for _, id := range s.order {
		product := s.products[id]
		products = append(products, &product)
	}
	return products, nil
}

func (s *memoryProductStore) Update(_ context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.products[product.ID]
	if !ok {
		return serviceerrors.NewNotFoundError("product not found")
	}
	product.CreatedAt = current.CreatedAt
	product.Version = current.Version + 1
	s.products[product.ID] = *product
	return nil
}

func (s *memoryProductStore) Delete(_ context.Context, id domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return serviceerrors.NewNotFoundError("product not found")
	}
	delete(s.products, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *memoryProductStore) AdjustStock(_ context.Context, id domain.ID, delta int) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return nil, serviceerrors.NewNotFoundError("product not found")
	}
	if product.Stock+delta < 0 {
		return nil, serviceerrors.NewInsufficientStockError(string(id), product.Stock, -delta)
	}
	product.Stock += delta
	product.Version++
	product.UpdatedAt = time.Now()
	s.products[id] = product
	return &product, nil
}

type inlineTransactions struct{}

func (inlineTransactions) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordedEvents struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recordedEvents) Record(_ context.Context, event domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordedEvents) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.events))
	for i, event := range r.events {
		names[i] = event.GetName()
	}
	return names
}

type memoryCache[T any] struct {
	mu      sync.Mutex
	entries map[string]T
}

func newMemoryCache[T any]() *memoryCache[T] {
	return &memoryCache[T]{entries: make(map[string]T)}
}

func (c *memoryCache[T]) Get(_ context.Context, key string) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	return &value, nil
}

func (c *memoryCache[T]) Set(_ context.Context, key string, value *T, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = *value
	return nil
}

func (c *memoryCache[T]) SetNX(_ context.Context, key string, value *T, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return false, nil
	}
	c.entries[key] = *value
	return true, nil
}

func (c *memoryCache[T]) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

type versionedEntry[T any] struct {
	version int64
	value   *T
}

// memoryVersionedCache follows the Redis versioned cache: writes at or below
// the stored version are dropped and invalidation keeps the version.
type memoryVersionedCache[T any] struct {
	mu      sync.Mutex
	entries map[string]versionedEntry[T]
}

func newMemoryVersionedCache[T any]() *memoryVersionedCache[T] {
	return &memoryVersionedCache[T]{entries: make(map[string]versionedEntry[T])}
}

func (c *memoryVersionedCache[T]) Get(_ context.Context, key string) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok || entry.value == nil {
		return nil, nil
	}
	value := *entry.value
	return &value, nil
}

func (c *memoryVersionedCache[T]) SetIfNewer(_ context.Context, key string, value *T, version int64, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[key]; ok && entry.version >= version {
		return false, nil
	}
	copied := *value
	c.entries[key] = versionedEntry[T]{version: version, value: &copied}
	return true, nil
}

func (c *memoryVersionedCache[T]) Invalidate(_ context.Context, key string, version int64, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := c.entries[key]
	entry.value = nil
	if entry.version < version {
		entry.version = version
	}
	c.entries[key] = entry
	return nil
}

type inventory struct {
	store    *memoryProductStore
	events   *recordedEvents
	catalog  *CatalogService
	ledger   *LedgerService
	transfer *TransferService
}

func newInventory() *inventory {
	store := newMemoryProductStore()
	events := &recordedEvents{}
	productCache := newMemoryVersionedCache[domain.Product]()
	idempotency := NewIdempotencyService[domain.Product](
		newMemoryCache[IdempotencyEntry[domain.Product]](),
		time.Minute, 5*time.Millisecond, 100*time.Millisecond,
	)
	catalog := NewCatalogService(store, events, inlineTransactions{}, productCache)
	return &inventory{
		store:    store,
		events:   events,
		catalog:  catalog,
		ledger:   NewLedgerService(store, events, inlineTransactions{}, productCache, idempotency),
		transfer: NewTransferService(catalog),
	}
}
