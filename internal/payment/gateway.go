package payment

import "context"

// LineItem is one charged line, prices in major currency units.
type LineItem struct {
	Name      string
	Quantity  int
	UnitPrice float64
}

type CheckoutSession struct {
	ID  string
	URL string
}

// CompletedCheckout is the settled state of a checkout as reported by the
// payment processor's webhook.
type CompletedCheckout struct {
	SessionID string
	Email     string
	Total     float64
}

// Gateway abstracts the payment processor: hosted checkout creation and the
// settlement-time view of what was actually charged.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, items []LineItem, customerEmail string) (*CheckoutSession, error)
	SessionLineItems(ctx context.Context, sessionID string) ([]LineItem, error)
}
