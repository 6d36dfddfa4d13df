package service

import (
	"context"
	"errors"
	"time"

	"localmarket/internal/domain"
	"localmarket/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrInvalidOrderStatus = errors.New("unknown order status")
)

// OrderItemInput is one product line of a new order.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Price     float64
}

// NewOrderInput carries the fields needed to place an order.
type NewOrderInput struct {
	SellerID        uuid.UUID
	ShippingAddress string
	ContactPhone    string
	Items           []OrderItemInput
}

// OrderService defines order placement and tracking
type OrderService interface {
	Place(ctx context.Context, buyerID uuid.UUID, input NewOrderInput) (*domain.Order, error)
	ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]*domain.Order, error)
	ListForSeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error
}

type orderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

// Place creates a pending order. The total is computed server-side from the
// item lines, and the order with its items is written atomically.
func (s *orderService) Place(ctx context.Context, buyerID uuid.UUID, input NewOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	total := 0.0
	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		total += float64(item.Quantity) * item.Price
		items = append(items, domain.OrderItem{
			ID:        uuid.New(),
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	now := time.Now()
	order := &domain.Order{
		ID:              uuid.New(),
		BuyerID:         buyerID,
		SellerID:        input.SellerID,
		TotalAmount:     total,
		Status:          domain.OrderStatusPending,
		ShippingAddress: input.ShippingAddress,
		ContactPhone:    input.ContactPhone,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// ListForBuyer retrieves a buyer's orders, newest first
func (s *orderService) ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]*domain.Order, error) {
	return s.orderRepo.ListByBuyer(ctx, buyerID)
}

// ListForSeller retrieves a seller's incoming orders, newest first
func (s *orderService) ListForSeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Order, error) {
	return s.orderRepo.ListBySeller(ctx, sellerID)
}

// UpdateStatus moves an order through its lifecycle
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error {
	if !domain.ValidOrderStatus(status) {
		return ErrInvalidOrderStatus
	}
	return s.orderRepo.UpdateStatus(ctx, orderID, status)
}
