package mailer

import (
	"fmt"
	"strings"

	"github.com/mluvul69-gif/linea-store/internal/entity"
	gomail "gopkg.in/gomail.v2"
)

// Sender dispatches the two per-order notifications: the customer receipt and
// the shop-owner alert.
type Sender interface {
	SendOrderReceipt(order *entity.Order, shipping *entity.ShippingInfo) error
	SendAdminAlert(order *entity.Order, shipping *entity.ShippingInfo) error
}

type SMTPMailer struct {
	dialer     *gomail.Dialer
	from       string
	adminEmail string
}

func NewSMTPMailer(host string, port int, user, pass, adminEmail string) *SMTPMailer {
	return &SMTPMailer{
		dialer:     gomail.NewDialer(host, port, user, pass),
		from:       user,
		adminEmail: adminEmail,
	}
}

func (m *SMTPMailer) SendOrderReceipt(order *entity.Order, shipping *entity.ShippingInfo) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", order.CustomerEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Your Linea order #%d", order.ID))
	msg.SetBody("text/plain", ReceiptBody(order, shipping))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send receipt failed: %w", err)
	}
	return nil
}

func (m *SMTPMailer) SendAdminAlert(order *entity.Order, shipping *entity.ShippingInfo) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.adminEmail)
	msg.SetHeader("Subject", fmt.Sprintf("New order #%d", order.ID))
	msg.SetBody("text/plain", AlertBody(order, shipping))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send admin alert failed: %w", err)
	}
	return nil
}

// ReceiptBody renders the customer receipt as plain text.
func ReceiptBody(order *entity.Order, shipping *entity.ShippingInfo) string {
	var b strings.Builder
	name := "customer"
	if shipping != nil && shipping.FullName != "" {
		name = shipping.FullName
	}
	fmt.Fprintf(&b, "Hi %s,\n\nThank you for your order!\n\n", name)
	writeItems(&b, order)
	fmt.Fprintf(&b, "\nTotal: %.2f\n", order.Total)
	if shipping != nil {
		fmt.Fprintf(&b, "\nShipping to:\n%s\n", formatAddress(shipping))
	}
	b.WriteString("\nWe will be in touch once your order ships.\n")
	return b.String()
}

// AlertBody renders the shop-owner notification as plain text.
func AlertBody(order *entity.Order, shipping *entity.ShippingInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order #%d from %s\n\n", order.ID, order.CustomerEmail)
	writeItems(&b, order)
	fmt.Fprintf(&b, "\nTotal: %.2f\n", order.Total)
	if shipping != nil {
		fmt.Fprintf(&b, "\nShip to:\n%s\nPhone: %s\n", formatAddress(shipping), shipping.Phone)
	}
	return b.String()
}

func writeItems(b *strings.Builder, order *entity.Order) {
	for _, item := range order.Items {
		fmt.Fprintf(b, "  %s x%d @ %.2f\n", item.ProductName, item.Quantity, item.UnitPrice)
	}
}

func formatAddress(s *entity.ShippingInfo) string {
	lines := []string{s.FullName, s.Line1}
	if s.Line2 != "" {
		lines = append(lines, s.Line2)
	}
	lines = append(lines, fmt.Sprintf("%s %s", s.City, s.PostalCode), s.Country)
	return strings.Join(lines, "\n")
}
