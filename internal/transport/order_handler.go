package transport

import (
	"errors"
	"net/http"

	"localmarket/internal/domain"
	"localmarket/internal/middleware"
	"localmarket/internal/repository"
	"localmarket/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderItemRequest is one product line of an order payload
type OrderItemRequest struct {
	ProductID string  `json:"product_id" validate:"required,uuid"`
	Quantity  int     `json:"quantity" validate:"required,gte=1"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// PlaceOrderRequest represents the order placement payload
type PlaceOrderRequest struct {
	SellerID        string             `json:"seller_id" validate:"required,uuid"`
	ShippingAddress string             `json:"shipping_address"`
	ContactPhone    string             `json:"contact_phone"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest represents the status transition payload
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed shipped delivered"`
}

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	orders service.OrderService
	logger *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router, authMiddleware, requireSeller func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/api/orders", h.Place)
		r.Get("/api/orders", h.ListOwn)
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(requireSeller)
		r.Get("/api/seller/orders", h.ListIncoming)
		r.Patch("/api/orders/{id}/status", h.UpdateStatus)
	})
}

// Place handles order placement by a buyer
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := userIDFromContext(w, r, h.logger)
	if !ok {
		return
	}

	var req PlaceOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sellerID, err := uuid.Parse(req.SellerID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid seller ID")
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID in items")
			return
		}
		items = append(items, service.OrderItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order, err := h.orders.Place(r.Context(), buyerID, service.NewOrderInput{
		SellerID:        sellerID,
		ShippingAddress: req.ShippingAddress,
		ContactPhone:    req.ContactPhone,
		Items:           items,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyOrder) {
			middleware.RespondWithError(w, http.StatusBadRequest, "order must contain at least one item")
			return
		}
		h.logger.Error("Failed to place order", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	h.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("buyer_id", buyerID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// ListOwn handles fetching the signed-in buyer's orders
func (h *OrderHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := userIDFromContext(w, r, h.logger)
	if !ok {
		return
	}

	orders, err := h.orders.ListForBuyer(r.Context(), buyerID)
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// ListIncoming handles fetching the seller's incoming orders
func (h *OrderHandler) ListIncoming(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sellerIDFromContext(w, r, h.logger)
	if !ok {
		return
	}

	orders, err := h.orders.ListForSeller(r.Context(), sellerID)
	if err != nil {
		h.logger.Error("Failed to list incoming orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list incoming orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles an order status transition by the selling party
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sellerIDFromContext(w, r, h.logger)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	var req UpdateOrderStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Only the seller side of the order may move it through its lifecycle
	orders, err := h.orders.ListForSeller(r.Context(), sellerID)
	if err != nil {
		h.logger.Error("Failed to verify order ownership", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update order")
		return
	}
	owned := false
	for _, order := range orders {
		if order.ID == orderID {
			owned = true
			break
		}
	}
	if !owned {
		middleware.RespondWithError(w, http.StatusForbidden, "not your order")
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), orderID, domain.OrderStatus(req.Status)); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		if errors.Is(err, service.ErrInvalidOrderStatus) {
			middleware.RespondWithError(w, http.StatusBadRequest, "unknown order status")
			return
		}
		h.logger.Error("Failed to update order status", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}
