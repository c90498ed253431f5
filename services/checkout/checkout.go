package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/SanketJawali/tinker-store-api/models"
	"github.com/SanketJawali/tinker-store-api/services/identity"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidInput = errors.New("invalid checkout data")
)

// CartReader exposes the buyer's cart joined with product prices.
type CartReader interface {
	ListForUser(ctx context.Context, userID uint) ([]models.CartLine, error)
}

// OrderStore persists a placed order and clears the buyer's cart in the same
// transaction.
type OrderStore interface {
	Place(ctx context.Context, order *models.Order) error
}

type UserResolver interface {
	Resolve(ctx context.Context, claim identity.Claim) (uint, error)
}

type Input struct {
	Name          string
	Address       string
	Phone         string
	PaymentMethod string
}

// Service turns a cart into a pending order: snapshots customer info and
// per-item prices, totals in minor units, persists, then sends the
// confirmation email best-effort.
type Service struct {
	carts    CartReader
	orders   OrderStore
	resolver UserResolver
	mail     ConfirmationSender
	log      *logrus.Logger
}

// ConfirmationSender is the sliver of the mailer this service needs.
type ConfirmationSender interface {
	SendOrderConfirmation(ctx context.Context, to, customerName string, order *models.Order) error
}

func NewService(carts CartReader, orders OrderStore, resolver UserResolver, mail ConfirmationSender, log *logrus.Logger) *Service {
	return &Service{carts: carts, orders: orders, resolver: resolver, mail: mail, log: log}
}

func (s *Service) PlaceOrder(ctx context.Context, claim identity.Claim, input Input) (*models.Order, error) {
	if input.Name == "" || input.Address == "" || input.PaymentMethod == "" {
		return nil, ErrInvalidInput
	}

	userID, err := s.resolver.Resolve(ctx, claim)
	if err != nil {
		return nil, err
	}

	lines, err := s.carts.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		UserID:          userID,
		CustomerName:    input.Name,
		CustomerAddress: input.Address,
		CustomerPhone:   input.Phone,
		PaymentMethod:   input.PaymentMethod,
		Status:          models.OrderStatusPending,
		Reference:       newReference(),
	}
	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.Price,
		})
		order.TotalAmount += line.Price * line.Quantity
	}

	if err := s.orders.Place(ctx, order); err != nil {
		return nil, err
	}

	// Delivery failure is logged, never surfaced: the order already exists.
	if err := s.mail.SendOrderConfirmation(ctx, claim.Email, input.Name, order); err != nil {
		s.log.WithError(err).WithField("order_id", order.ID).Error("failed to send order confirmation email")
	}

	return order, nil
}

func newReference() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}
