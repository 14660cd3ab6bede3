package service

import (
	"context"

	"github.com/mluvul69-gif/linea-store/internal/entity"
	"github.com/mluvul69-gif/linea-store/internal/payment"
)

// PendingStore stashes shipping details between checkout creation and the
// payment webhook, keyed by the processor's checkout session id.
type PendingStore interface {
	SavePendingShipping(ctx context.Context, checkoutID string, info *entity.ShippingInfo) error
	PendingShipping(ctx context.Context, checkoutID string) (*entity.ShippingInfo, error)
	ClearPendingShipping(ctx context.Context, checkoutID string) error
}

type CheckoutService struct {
	carts   *CartService
	pending PendingStore
	gateway payment.Gateway
}

func NewCheckoutService(carts *CartService, pending PendingStore, gateway payment.Gateway) *CheckoutService {
	return &CheckoutService{
		carts:   carts,
		pending: pending,
		gateway: gateway,
	}
}

// CheckoutSummary returns the cart totals shown on the checkout form.
// An empty cart is a checkout-level error so the handler can bounce the
// browser back to the cart page.
func (s *CheckoutService) CheckoutSummary(ctx context.Context, sid string) (*entity.CartView, error) {
	view, err := s.carts.ViewCart(ctx, sid)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, ErrEmptyCart
	}
	return view, nil
}

// CreateCheckoutSession turns the session's cart plus the shipping form into a
// hosted payment page. Line items are priced at submission time from the
// current catalog. The shipping details are stashed until the webhook
// confirms payment.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, sid string, shipping *entity.ShippingInfo) (string, error) {
	view, err := s.carts.ViewCart(ctx, sid)
	if err != nil {
		return "", err
	}
	if len(view.Items) == 0 {
		return "", ErrEmptyCart
	}

	items := make([]payment.LineItem, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, payment.LineItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}

	sess, err := s.gateway.CreateCheckoutSession(ctx, items, shipping.Email)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating checkout session")
		return "", err
	}

	if err := s.pending.SavePendingShipping(ctx, sess.ID, shipping); err != nil {
		logger.Error().Err(err).Msgf("Error stashing shipping for checkout %s", sess.ID)
		return "", err
	}

	return sess.URL, nil
}
