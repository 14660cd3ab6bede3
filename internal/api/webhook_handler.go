package api

import (
	"errors"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/mluvul69-gif/linea-store/internal/payment"
	"github.com/mluvul69-gif/linea-store/internal/repository"
	"github.com/mluvul69-gif/linea-store/internal/service"
)

// Stripe caps event payloads well below this.
const maxWebhookBody = 1 << 16

// EventVerifier authenticates a raw webhook payload against the signing
// secret and extracts the completed checkout, if the event carries one.
type EventVerifier interface {
	VerifyEvent(payload []byte, signature string) (*payment.CompletedCheckout, error)
}

type WebhookHandler struct {
	verifier EventVerifier
	orders   *service.OrderService
}

func NewWebhookHandler(verifier EventVerifier, orders *service.OrderService) *WebhookHandler {
	return &WebhookHandler{
		verifier: verifier,
		orders:   orders,
	}
}

// HandleWebhook processes payment-completion notifications --> /stripe-webhook
// Verification fails closed: a payload that does not authenticate is rejected
// with no side effects.
func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Unreadable payload"})
	}

	completed, err := h.verifier.VerifyEvent(payload, c.Request().Header.Get("Stripe-Signature"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid webhook payload"})
	}
	if completed == nil {
		// Event type we do not act on; acknowledge so Stripe stops retrying.
		return c.JSON(200, map[string]string{"message": "Event ignored"})
	}

	order, err := h.orders.CompleteCheckout(c.Request().Context(), completed)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateOrder) {
			return c.JSON(200, map[string]string{"message": "Order already processed"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]interface{}{"message": "Order created", "order_id": order.ID})
}
