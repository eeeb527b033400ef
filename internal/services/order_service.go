package services

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lrkr/internal/cart"
	"lrkr/internal/domain"
	"lrkr/internal/events"
	applog "lrkr/internal/log"
	"lrkr/internal/repos"
	"lrkr/internal/validate"
)

type OrderService struct {
	Orders *repos.OrderRepo
	Events events.Publisher
	Now    func() time.Time
}

func NewOrderService(orders *repos.OrderRepo, pub events.Publisher) *OrderService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &OrderService{Orders: orders, Events: pub, Now: time.Now}
}

// OrderInput is the body of an order submission.
type OrderInput struct {
	UserID          string                  `json:"userId"`
	Items           []cart.Line             `json:"items"`
	TotalAmount     float64                 `json:"totalAmount"`
	ShippingAddress *domain.ShippingAddress `json:"shippingAddress"`
}

// Validate applies the submission rules: a user id, at least one item, an
// address and a positive total.
func (in OrderInput) Validate() error {
	switch {
	case strings.TrimSpace(in.UserID) == "":
		return invalid(ErrInvalidOrder, "Missing userId.")
	case len(in.Items) == 0:
		return invalid(ErrInvalidOrder, "Order must contain at least one item.")
	case in.ShippingAddress == nil:
		return invalid(ErrInvalidOrder, "Missing shippingAddress.")
	case in.TotalAmount <= 0:
		return invalid(ErrInvalidOrder, "totalAmount must be greater than 0.")
	}
	return nil
}

// Place stores a Pending order. The client total is kept as submitted; a
// mismatch with the server-side sum of the items is audit-logged.
func (s *OrderService) Place(ctx context.Context, in OrderInput) (domain.Order, error) {
	if err := in.Validate(); err != nil {
		return domain.Order{}, err
	}

	now := s.Now().UTC()
	o := domain.Order{
		ID:              uuid.NewString(),
		UserID:          strings.TrimSpace(in.UserID),
		TotalAmount:     in.TotalAmount,
		Status:          domain.OrderPending,
		TransactionID:   transactionID(now),
		CreatedAt:       now.Format(stampLayout),
		ShippingAddress: *in.ShippingAddress,
		Items:           make([]domain.OrderItem, 0, len(in.Items)),
	}
	for _, l := range in.Items {
		o.Items = append(o.Items, domain.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			ImageURL:  l.ImageURL,
			Quantity:  l.Quantity,
		})
	}

	server := cart.ExactTotal(in.Items)
	if client := decimal.NewFromFloat(in.TotalAmount); !server.Round(2).Equal(client.Round(2)) {
		applog.Audit(nil, "order.total_mismatch", map[string]any{
			"order_id": o.ID,
			"client":   client.StringFixed(2),
			"server":   server.StringFixed(2),
		})
	}

	if err := s.Orders.Create(ctx, o); err != nil {
		return domain.Order{}, err
	}
	events.Emit(ctx, s.Events, events.SubjectOrderCreated, o)
	return o, nil
}

const txnAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// transactionID is the payment stand-in: sim_<unix ms>_<13 base36 chars>.
func transactionID(now time.Time) string {
	b := make([]byte, 13)
	for i := range b {
		b[i] = txnAlphabet[rand.Intn(len(txnAlphabet))]
	}
	return "sim_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + string(b)
}

func (s *OrderService) Get(ctx context.Context, id string) (domain.Order, error) {
	return s.Orders.Get(ctx, id)
}

// List returns orders for userID, or the latest orders when userID is empty.
func (s *OrderService) List(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID != "" {
		return s.Orders.ListByUser(ctx, userID)
	}
	return s.Orders.ListLatest(ctx, 100)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) error {
	if !validate.OneOf(status, domain.OrderStatuses) {
		return invalid(ErrInvalidStatus, "Unknown order status.")
	}
	return s.Orders.UpdateStatus(ctx, id, status)
}
