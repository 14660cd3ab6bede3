package mailer

import (
	"testing"

	"github.com/mluvul69-gif/linea-store/internal/entity"
	"github.com/stretchr/testify/assert"
)

func sampleOrder() *entity.Order {
	return &entity.Order{
		ID:            7,
		CustomerEmail: "buyer@example.com",
		Total:         304,
		Items: []entity.OrderItem{
			{ProductName: "Series II-Black Hoodie", Quantity: 2, UnitPrice: 128},
			{ProductName: "Classic White Cap", Quantity: 1, UnitPrice: 48},
		},
	}
}

func sampleShipping() *entity.ShippingInfo {
	return &entity.ShippingInfo{
		FullName:   "Thandi M",
		Email:      "buyer@example.com",
		Phone:      "555-0101",
		Line1:      "12 Long Street",
		City:       "Cape Town",
		PostalCode: "8001",
		Country:    "ZA",
	}
}

func TestReceiptBody(t *testing.T) {
	body := ReceiptBody(sampleOrder(), sampleShipping())

	assert.Contains(t, body, "Hi Thandi M,")
	assert.Contains(t, body, "Series II-Black Hoodie x2 @ 128.00")
	assert.Contains(t, body, "Classic White Cap x1 @ 48.00")
	assert.Contains(t, body, "Total: 304.00")
	assert.Contains(t, body, "12 Long Street")
	assert.Contains(t, body, "Cape Town 8001")
}

func TestReceiptBody_WithoutShipping(t *testing.T) {
	body := ReceiptBody(sampleOrder(), nil)

	assert.Contains(t, body, "Hi customer,")
	assert.NotContains(t, body, "Shipping to:")
}

func TestAlertBody(t *testing.T) {
	body := AlertBody(sampleOrder(), sampleShipping())

	assert.Contains(t, body, "New order #7 from buyer@example.com")
	assert.Contains(t, body, "Total: 304.00")
	assert.Contains(t, body, "Phone: 555-0101")
}

func TestAlertBody_SkipsEmptyAddressLine(t *testing.T) {
	shipping := sampleShipping()
	shipping.Line2 = "Apt 4"

	body := AlertBody(sampleOrder(), shipping)

	assert.Contains(t, body, "Apt 4")
}
