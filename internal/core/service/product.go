package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rafaelleal24/inventory/internal/core/auth"
	"github.com/rafaelleal24/inventory/internal/core/domain"
	"github.com/rafaelleal24/inventory/internal/core/dto"
	"github.com/rafaelleal24/inventory/internal/core/logger"
	"github.com/rafaelleal24/inventory/internal/core/port"
	"github.com/rafaelleal24/inventory/internal/core/serviceerrors"
)

const productCacheTTL = 15 * time.Minute

// CatalogService owns product identity and the wholesale edit path. Stock
// deltas go through LedgerService instead.
type CatalogService struct {
	productRepository port.ProductPort
	events            port.EventPort
	txManager         port.TransactionManager
	productCache      port.VersionedCachePort[domain.Product]
}

func NewCatalogService(
	productRepository port.ProductPort,
	events port.EventPort,
	txManager port.TransactionManager,
	productCache port.VersionedCachePort[domain.Product],
) *CatalogService {
	return &CatalogService{
		productRepository: productRepository,
		events:            events,
		txManager:         txManager,
		productCache:      productCache,
	}
}

func productCacheKey(id domain.ID) string {
	return fmt.Sprintf("product:%s", id)
}

func productInputFromRequest(request *dto.ProductRequest, requireStock bool) (domain.ProductInput, error) {
	if request.Price == nil {
		return domain.ProductInput{}, serviceerrors.NewInvalidRequestError("price is required")
	}
	stock := 0
	if request.Stock != nil {
		stock = *request.Stock
	} else if requireStock {
		return domain.ProductInput{}, serviceerrors.NewInvalidRequestError("stock is required")
	}

	price, err := domain.NewAmountFromFloat(*request.Price)
	if errors.Is(err, domain.ErrNegativePrice) {
		return domain.ProductInput{}, serviceerrors.NewInvalidRequestError(err.Error())
	}
	if err != nil {
		return domain.ProductInput{}, serviceerrors.NewInvalidRequestError(fmt.Sprintf("price: %s", err))
	}

	input := domain.ProductInput{
		Name:     request.Name,
		Category: request.Category,
		Price:    price,
		Stock:    stock,
	}
	if err := input.Validate(); err != nil {
		return domain.ProductInput{}, serviceerrors.NewInvalidRequestError(err.Error())
	}
	return input, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, request *dto.ProductRequest) (*domain.Product, error) {
	input, err := productInputFromRequest(request, false)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, input)
}

func (s *CatalogService) Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	if _, err := auth.Require(ctx); err != nil {
		return nil, err
	}

	product, err := domain.NewProduct(input)
	if err != nil {
		return nil, serviceerrors.NewInvalidRequestError(err.Error())
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.productRepository.Create(txCtx, product); err != nil {
			return err
		}
		return s.events.Record(txCtx, domain.NewProductEvent(domain.ProductCreated, product))
	})
	if err != nil {
		logger.Error(ctx, "product: create failed", err, map[string]any{
			"name":     input.Name,
			"category": input.Category,
		})
		return nil, err
	}

	logger.Info(ctx, "Product created", map[string]any{"product_id": product.ID})
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id domain.ID, request *dto.ProductRequest) (*domain.Product, error) {
	if _, err := auth.Require(ctx); err != nil {
		return nil, err
	}

	input, err := productInputFromRequest(request, true)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{ID: id}
	if err := product.Apply(input); err != nil {
		return nil, serviceerrors.NewInvalidRequestError(err.Error())
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.productRepository.Update(txCtx, product); err != nil {
			return err
		}
		return s.events.Record(txCtx, domain.NewProductEvent(domain.ProductUpdated, product))
	})
	if err != nil {
		return nil, err
	}

	s.remember(ctx, product)
	logger.Info(ctx, "Product updated", map[string]any{"product_id": id})
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id domain.ID) error {
	if _, err := auth.Require(ctx); err != nil {
		return err
	}

	var deleted *domain.Product
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		product, err := s.productRepository.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.productRepository.Delete(txCtx, id); err != nil {
			return err
		}
		deleted = product
		return s.events.Record(txCtx, domain.NewProductEvent(domain.ProductDeleted, product))
	})
	if err != nil {
		return err
	}

	s.evict(ctx, deleted)
	logger.Info(ctx, "Product deleted", map[string]any{"product_id": id})
	return nil
}

func (s *CatalogService) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	cached, err := s.productCache.Get(ctx, productCacheKey(id))
	if err != nil {
		logger.Error(ctx, "cache: get product failed", err, map[string]any{
			"product_id": id,
		})
	}
	if cached != nil {
		return cached, nil
	}

	product, err := s.productRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.remember(ctx, product)
	return product, nil
}

func (s *CatalogService) List(ctx context.Context, query *dto.ListProductsQuery) ([]*domain.Product, error) {
	products, err := s.productRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	products = domain.FilterProducts(products, domain.ProductFilter{
		Search:   query.Search,
		Category: query.Category,
	})
	return paginate(products, query.Skip, query.Limit), nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	products, err := s.productRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.DistinctCategories(products), nil
}

func (s *CatalogService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	products, err := s.productRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.BuildDashboard(products, domain.DefaultRecentProducts), nil
}

func (s *CatalogService) remember(ctx context.Context, product *domain.Product) {
	rememberProduct(ctx, s.productCache, product)
}

// evict runs after a delete. The marker sits one version above the deleted
// row so a read taken before the delete cannot bring it back.
func (s *CatalogService) evict(ctx context.Context, product *domain.Product) {
	if err := s.productCache.Invalidate(ctx, productCacheKey(product.ID), product.Version+1, productCacheTTL); err != nil {
		logger.Error(ctx, "cache: evict product failed", err, map[string]any{
			"product_id": product.ID,
		})
	}
}

// rememberProduct caches a snapshot under its stored version; an older
// snapshot arriving after a newer one is dropped by the cache.
func rememberProduct(ctx context.Context, cache port.VersionedCachePort[domain.Product], product *domain.Product) {
	if _, err := cache.SetIfNewer(ctx, productCacheKey(product.ID), product, product.Version, productCacheTTL); err != nil {
		logger.Error(ctx, "cache: set product failed", err, map[string]any{
			"product_id": product.ID,
		})
	}
}

// paginate applies skip and limit; a zero or negative limit means no limit
// and a negative skip is treated as zero.
func paginate(products []*domain.Product, skip, limit int) []*domain.Product {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(products) {
		return []*domain.Product{}
	}
	products = products[skip:]
	if limit > 0 && limit < len(products) {
		products = products[:limit]
	}
	return products
}
