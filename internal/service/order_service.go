package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mluvul69-gif/linea-store/internal/entity"
	"github.com/mluvul69-gif/linea-store/internal/mailer"
	"github.com/mluvul69-gif/linea-store/internal/payment"
	"github.com/mluvul69-gif/linea-store/internal/repository"
	"github.com/mluvul69-gif/linea-store/internal/session"
	"github.com/segmentio/kafka-go"
)

// OrderRepo is the slice of the order repository the service needs.
type OrderRepo interface {
	CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error)
	GetOrders(ctx context.Context) ([]*entity.Order, error)
}

// EventWriter is satisfied by *kafka.Writer.
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type OrderService struct {
	orderRepo   OrderRepo
	gateway     payment.Gateway
	pending     PendingStore
	sender      mailer.Sender
	eventWriter EventWriter
}

func NewOrderService(orderRepo OrderRepo, gateway payment.Gateway, pending PendingStore, sender mailer.Sender, eventWriter EventWriter) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		gateway:     gateway,
		pending:     pending,
		sender:      sender,
		eventWriter: eventWriter,
	}
}

// CompleteCheckout persists the order for a paid checkout session. The line
// items reported by the processor are authoritative, not the local cart. A
// replayed webhook surfaces as repository.ErrDuplicateOrder and must be
// acknowledged without side effects.
//
// Notifications and the order event are dispatched after the commit and never
// fail the order: a mail or broker outage must not make a persisted order
// look unprocessed.
func (s *OrderService) CompleteCheckout(ctx context.Context, completed *payment.CompletedCheckout) (*entity.Order, error) {
	items, err := s.gateway.SessionLineItems(ctx, completed.SessionID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error fetching line items for checkout %s", completed.SessionID)
		return nil, err
	}

	shipping, err := s.pending.PendingShipping(ctx, completed.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrNoPendingShipping) {
			logger.Warn().Msgf("No shipping details stashed for checkout %s", completed.SessionID)
		} else {
			logger.Error().Err(err).Msgf("Error loading shipping for checkout %s", completed.SessionID)
		}
		shipping = nil
	}

	order := &entity.Order{
		StripeSessionID: completed.SessionID,
		CustomerEmail:   completed.Email,
		Total:           completed.Total,
	}
	for _, item := range items {
		order.Items = append(order.Items, entity.OrderItem{
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	created, err := s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateOrder) {
			logger.Info().Msgf("Checkout %s already processed, skipping", completed.SessionID)
			return nil, err
		}
		logger.Error().Err(err).Msg("Error creating order")
		return nil, err
	}

	if err := s.publishOrderEvent(ctx, created); err != nil {
		logger.Error().Err(err).Msgf("Error publishing event for order %d", created.ID)
	}

	if err := s.sender.SendOrderReceipt(created, shipping); err != nil {
		logger.Error().Err(err).Msgf("Error sending receipt for order %d", created.ID)
	}
	if err := s.sender.SendAdminAlert(created, shipping); err != nil {
		logger.Error().Err(err).Msgf("Error sending admin alert for order %d", created.ID)
	}

	if err := s.pending.ClearPendingShipping(ctx, completed.SessionID); err != nil {
		logger.Warn().Err(err).Msgf("Error clearing shipping for checkout %s", completed.SessionID)
	}

	return created, nil
}

// ListOrders returns all orders for the admin dashboard.
func (s *OrderService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := s.orderRepo.GetOrders(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing orders")
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) publishOrderEvent(ctx context.Context, order *entity.Order) error {
	if s.eventWriter == nil {
		return nil
	}

	orderJSON, err := json.Marshal(order)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-created-%d", order.ID)),
		Value: orderJSON,
	}
	return s.eventWriter.WriteMessages(ctx, msg)
}
