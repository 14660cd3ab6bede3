package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/mluvul69-gif/linea-store/internal/entity"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const productCacheTTL = 1 * time.Minute

// ProductRepo is the slice of the product repository the catalog needs.
type ProductRepo interface {
	GetProductByID(ctx context.Context, id int) (*entity.Product, error)
	GetProducts(ctx context.Context) ([]*entity.Product, error)
	GetFeaturedProducts(ctx context.Context, limit int) ([]*entity.Product, error)
	CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	IncrementPopularity(ctx context.Context, id int) error
}

type CatalogService struct {
	productRepo ProductRepo
	rdb         *redis.Client
}

// NewCatalogService creates a new instance of CatalogService. rdb may be nil,
// in which case product reads skip the cache.
func NewCatalogService(productRepo ProductRepo, rdb *redis.Client) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		rdb:         rdb,
	}
}

// GetProduct returns one product, read through a short-lived Redis cache.
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*entity.Product, error) {
	key := fmt.Sprintf("product:%d", id)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msgf("Error getting product %d from cache", id)
		}
		if len(cached) > 0 {
			var product entity.Product
			if err := json.Unmarshal(cached, &product); err == nil {
				return &product, nil
			}
			logger.Warn().Msgf("Discarding unreadable cache entry for product %d", id)
		}
	}

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		data, _ := json.Marshal(product)
		if err := s.rdb.Set(ctx, key, data, productCacheTTL).Err(); err != nil {
			logger.Error().Err(err).Msgf("Error setting product %d in cache", id)
		}
	}

	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing products")
		return nil, err
	}
	return products, nil
}

// FeaturedProducts returns the most popular products for the landing page.
func (s *CatalogService) FeaturedProducts(ctx context.Context, limit int) ([]*entity.Product, error) {
	products, err := s.productRepo.GetFeaturedProducts(ctx, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing featured products")
		return nil, err
	}
	return products, nil
}

// AddProduct inserts a catalog row. Only reachable through the authenticated
// admin surface.
func (s *CatalogService) AddProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	created, err := s.productRepo.CreateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating product")
		return nil, err
	}
	return created, nil
}

// BumpPopularity increments a product's popularity counter.
func (s *CatalogService) BumpPopularity(ctx context.Context, id int) error {
	return s.productRepo.IncrementPopularity(ctx, id)
}
