package service

import (
	"context"
	"errors"

	"github.com/mluvul69-gif/linea-store/internal/entity"
	"github.com/mluvul69-gif/linea-store/internal/repository"
)

// CartStore is the slice of the session store the cart needs.
type CartStore interface {
	Cart(ctx context.Context, sid string) ([]entity.CartEntry, error)
	SaveCart(ctx context.Context, sid string, entries []entity.CartEntry) error
	ClearCart(ctx context.Context, sid string) error
}

// Catalog is what the cart needs from the catalog service.
type Catalog interface {
	GetProduct(ctx context.Context, id int) (*entity.Product, error)
	BumpPopularity(ctx context.Context, id int) error
}

type CartService struct {
	store   CartStore
	catalog Catalog
}

func NewCartService(store CartStore, catalog Catalog) *CartService {
	return &CartService{
		store:   store,
		catalog: catalog,
	}
}

// AddToCart puts quantity units of a product into the session's cart. A
// product already present has its quantity incremented; the cart never holds
// two entries for the same product.
func (s *CartService) AddToCart(ctx context.Context, sid string, productID, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		return err
	}

	entries, err := s.store.Cart(ctx, sid)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading cart")
		return err
	}

	merged := false
	for i := range entries {
		if entries[i].ProductID == productID {
			entries[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		entries = append(entries, entity.CartEntry{ProductID: productID, Quantity: quantity})
	}

	if err := s.store.SaveCart(ctx, sid, entries); err != nil {
		logger.Error().Err(err).Msg("Error saving cart")
		return err
	}

	if err := s.catalog.BumpPopularity(ctx, productID); err != nil {
		logger.Warn().Err(err).Msgf("Error bumping popularity for product %d", productID)
	}

	return nil
}

// ViewCart resolves the session's cart against the current catalog. Entries
// whose product has disappeared are dropped without error. Prices are always
// the catalog's current ones, not the price at add time.
func (s *CartService) ViewCart(ctx context.Context, sid string) (*entity.CartView, error) {
	entries, err := s.store.Cart(ctx, sid)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading cart")
		return nil, err
	}

	view := &entity.CartView{Items: []entity.CartItem{}}
	for _, entry := range entries {
		product, err := s.catalog.GetProduct(ctx, entry.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				continue
			}
			return nil, err
		}

		subtotal := product.Price * float64(entry.Quantity)
		view.Items = append(view.Items, entity.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			ImagePath: product.ImagePath,
			Quantity:  entry.Quantity,
			Subtotal:  subtotal,
		})
		view.Total += subtotal
	}

	return view, nil
}

// ClearCart drops the session's cart, e.g. after a completed purchase.
func (s *CartService) ClearCart(ctx context.Context, sid string) error {
	return s.store.ClearCart(ctx, sid)
}
