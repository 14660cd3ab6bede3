package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	stripe "github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/webhook"
)

// ErrInvalidSignature is returned when a webhook payload fails verification
// against the signing secret.
var ErrInvalidSignature = errors.New("invalid webhook signature")

const currency = "usd"

// StripeGateway drives Stripe-hosted checkout. Success and cancel URLs are
// built from the configured public domain.
type StripeGateway struct {
	webhookSecret string
	domain        string
}

func NewStripeGateway(secretKey, webhookSecret, domain string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{
		webhookSecret: webhookSecret,
		domain:        domain,
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, items []LineItem, customerEmail string) (*CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(toCents(item.UnitPrice)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:     lineItems,
		CustomerEmail: stripe.String(customerEmail),
		SuccessURL:    stripe.String(fmt.Sprintf("%s/payment-success?session_id={CHECKOUT_SESSION_ID}", g.domain)),
		CancelURL:     stripe.String(fmt.Sprintf("%s/cart", g.domain)),
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("create stripe checkout session failed: %w", err)
	}

	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// SessionLineItems retrieves what Stripe actually charged for a checkout
// session. This, not the local cart, is authoritative at settlement time.
func (g *StripeGateway) SessionLineItems(ctx context.Context, sessionID string) ([]LineItem, error) {
	params := &stripe.CheckoutSessionListLineItemsParams{
		Session: stripe.String(sessionID),
	}
	params.Context = ctx

	var items []LineItem
	iter := session.ListLineItems(params)
	for iter.Next() {
		li := iter.LineItem()
		item := LineItem{
			Name:     li.Description,
			Quantity: int(li.Quantity),
		}
		if li.Price != nil {
			item.UnitPrice = fromCents(li.Price.UnitAmount)
		}
		items = append(items, item)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list stripe line items failed: %w", err)
	}

	return items, nil
}

// VerifyEvent authenticates a webhook payload and extracts the completed
// checkout, if any. Event types other than checkout completion yield
// (nil, nil) and should be acknowledged without processing.
func (g *StripeGateway) VerifyEvent(payload []byte, signature string) (*CompletedCheckout, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if event.Type != "checkout.session.completed" {
		return nil, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal checkout session failed: %w", err)
	}

	email := sess.CustomerEmail
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		email = sess.CustomerDetails.Email
	}

	return &CompletedCheckout{
		SessionID: sess.ID,
		Email:     email,
		Total:     fromCents(sess.AmountTotal),
	}, nil
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}
