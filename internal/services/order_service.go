package services

import (
	"errors"

	"dukaan/internal/domain"
	"dukaan/internal/repos"

	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cart is empty")

type OrderService struct {
	Orders *repos.OrderRepo
}

func NewOrderService(orders *repos.OrderRepo) *OrderService {
	return &OrderService{Orders: orders}
}

// Place records an order. A nil buyer records an anonymous order with null
// user fields.
func (s *OrderService) Place(items []domain.OrderItem, subtotal, deliveryFee, total float64, buyer *domain.User) (domain.Order, error) {
	if len(items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}
	o := domain.Order{
		ID:          uuid.NewString(),
		Items:       items,
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Total:       total,
		Status:      "Pending",
	}
	if buyer != nil {
		o.UserID = &buyer.ID
		o.UserName = &buyer.Name
		o.UserEmail = &buyer.Email
	}
	if err := s.Orders.Create(&o); err != nil {
		return domain.Order{}, err
	}
	return s.Orders.Get(o.ID)
}

// History lists the caller's orders, newest first.
func (s *OrderService) History(userID string) ([]domain.Order, error) {
	return s.Orders.ListByUser(userID)
}
