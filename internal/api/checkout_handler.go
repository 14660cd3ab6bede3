package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mluvul69-gif/linea-store/internal/entity"
	"github.com/mluvul69-gif/linea-store/internal/service"
)

type CheckoutHandler struct {
	checkout *service.CheckoutService
	carts    *service.CartService
	sessions SessionIdentifier
}

func NewCheckoutHandler(checkout *service.CheckoutService, carts *service.CartService, sessions SessionIdentifier) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		carts:    carts,
		sessions: sessions,
	}
}

// Checkout serves the totals for the checkout form --> /checkout
// A session with an empty cart is bounced back to the cart page.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	sid, err := h.sessions.SessionID(c.Request(), c.Response())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	view, err := h.checkout.CheckoutSummary(c.Request().Context(), sid)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			return c.Redirect(http.StatusSeeOther, "/cart")
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, view)
}

// CreateCheckoutSession accepts the shipping form and redirects the browser
// to the hosted payment page --> /create-checkout-session
func (h *CheckoutHandler) CreateCheckoutSession(c echo.Context) error {
	shipping := entity.ShippingInfo{}
	if err := c.Bind(&shipping); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if shipping.FullName == "" || shipping.Email == "" {
		return c.JSON(400, map[string]string{"error": "Name and email are required"})
	}

	sid, err := h.sessions.SessionID(c.Request(), c.Response())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	url, err := h.checkout.CreateCheckoutSession(c.Request().Context(), sid, &shipping)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			return c.Redirect(http.StatusSeeOther, "/cart")
		}
		return c.JSON(502, map[string]string{"error": err.Error()})
	}

	return c.Redirect(http.StatusSeeOther, url)
}

// PaymentSuccess is where Stripe sends the browser after payment; the order
// itself is created by the webhook, this only clears the session cart
// --> /payment-success
func (h *CheckoutHandler) PaymentSuccess(c echo.Context) error {
	sid, err := h.sessions.SessionID(c.Request(), c.Response())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	if err := h.carts.ClearCart(c.Request().Context(), sid); err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]string{"message": "Payment received, thank you for your order"})
}
