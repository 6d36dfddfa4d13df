package service

import (
	"context"
	"errors"
	"testing"

	"localmarket/internal/domain"

	"github.com/google/uuid"
)

func TestPlaceComputesTotalServerSide(t *testing.T) {
	orderRepo := newMockOrderRepository()
	service := NewOrderService(orderRepo)

	order, err := service.Place(context.Background(), uuid.New(), NewOrderInput{
		SellerID: uuid.New(),
		Items: []OrderItemInput{
			{ProductID: uuid.New(), Quantity: 2, Price: 10.50},
			{ProductID: uuid.New(), Quantity: 1, Price: 4},
		},
	})
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	if order.TotalAmount != 25 {
		t.Errorf("total = %v, want 25", order.TotalAmount)
	}
	if order.Status != domain.OrderStatusPending {
		t.Errorf("status = %v, want pending", order.Status)
	}
	if len(order.Items) != 2 {
		t.Errorf("items = %d, want 2", len(order.Items))
	}
}

func TestPlaceRejectsEmptyOrders(t *testing.T) {
	service := NewOrderService(newMockOrderRepository())

	_, err := service.Place(context.Background(), uuid.New(), NewOrderInput{SellerID: uuid.New()})
	if !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	orderRepo := newMockOrderRepository()
	service := NewOrderService(orderRepo)
	ctx := context.Background()

	order, err := service.Place(ctx, uuid.New(), NewOrderInput{
		SellerID: uuid.New(),
		Items:    []OrderItemInput{{ProductID: uuid.New(), Quantity: 1, Price: 5}},
	})
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	if err := service.UpdateStatus(ctx, order.ID, "cancelled"); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
	}

	if err := service.UpdateStatus(ctx, order.ID, domain.OrderStatusShipped); err != nil {
		t.Fatalf("valid status update failed: %v", err)
	}
	stored, _ := orderRepo.FindByID(ctx, order.ID)
	if stored.Status != domain.OrderStatusShipped {
		t.Errorf("status = %v, want shipped", stored.Status)
	}
}

func TestOrdersAreListedPerParty(t *testing.T) {
	service := NewOrderService(newMockOrderRepository())
	buyerID, sellerID := uuid.New(), uuid.New()
	ctx := context.Background()

	if _, err := service.Place(ctx, buyerID, NewOrderInput{
		SellerID: sellerID,
		Items:    []OrderItemInput{{ProductID: uuid.New(), Quantity: 1, Price: 9}},
	}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	buyerOrders, err := service.ListForBuyer(ctx, buyerID)
	if err != nil || len(buyerOrders) != 1 {
		t.Errorf("ListForBuyer = %d orders, %v", len(buyerOrders), err)
	}

	sellerOrders, err := service.ListForSeller(ctx, sellerID)
	if err != nil || len(sellerOrders) != 1 {
		t.Errorf("ListForSeller = %d orders, %v", len(sellerOrders), err)
	}

	otherOrders, _ := service.ListForBuyer(ctx, uuid.New())
	if len(otherOrders) != 0 {
		t.Errorf("unrelated buyer sees %d orders", len(otherOrders))
	}
}
