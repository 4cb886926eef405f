package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pgclosets-api/internal/catalog"
	"pgclosets-api/internal/domain"
	"pgclosets-api/internal/repository"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// productsCacheKey holds the serialized full product collection.
const productsCacheKey = "catalog:products"

// CatalogService defines the interface for catalog browsing
type CatalogService interface {
	SearchProducts(ctx context.Context, criteria catalog.Criteria, sortBy catalog.Sort, pg catalog.Pagination) (catalog.Page, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        *redis.Client
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewCatalogService creates a new instance of CatalogService. The Redis
// client is optional: with a nil client every search loads straight from
// the repository.
func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger *zap.Logger,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// SearchProducts loads the full product collection and runs the in-memory
// filter/sort engine over it.
func (s *catalogService) SearchProducts(ctx context.Context, criteria catalog.Criteria, sortBy catalog.Sort, pg catalog.Pagination) (catalog.Page, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return catalog.Page{}, fmt.Errorf("failed to load products: %w", err)
	}

	return catalog.Search(products, criteria, sortBy, pg), nil
}

// GetProductBySlug retrieves a single product for a detail page
func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// ListCategories retrieves the fixed category taxonomy
func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// loadProducts serves the collection from Redis when possible, falling
// through to Postgres and repopulating the cache on a miss. Cache failures
// are logged and ignored; the catalog must stay up when Redis is down.
func (s *catalogService) loadProducts(ctx context.Context) ([]*domain.Product, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, productsCacheKey).Bytes()
		if err == nil {
			var products []*domain.Product
			if err := json.Unmarshal(cached, &products); err != nil {
				s.logger.Warn("Discarding undecodable product cache entry", zap.Error(err))
			} else {
				return products, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("Product cache read failed", zap.Error(err))
		}
	}

	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(products); err == nil {
			if err := s.cache.Set(ctx, productsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("Product cache write failed", zap.Error(err))
			}
		}
	}

	return products, nil
}
