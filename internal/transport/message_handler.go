package transport

import (
	"errors"
	"net/http"

	"localmarket/internal/middleware"
	"localmarket/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SendMessageRequest represents the message payload
type SendMessageRequest struct {
	RecipientID string  `json:"recipient_id" validate:"required,uuid"`
	ProductID   *string `json:"product_id" validate:"omitempty,uuid"`
	Body        string  `json:"body" validate:"required,max=4000"`
}

// MessageHandler handles HTTP requests for messaging
type MessageHandler struct {
	messages service.MessageService
	logger   *zap.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messages service.MessageService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, logger: logger}
}

// RegisterRoutes registers all messaging routes
func (h *MessageHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/api/messages", h.Send)
		r.Get("/api/messages", h.List)
	})
}

// Send handles sending a direct message
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	senderID, ok := userIDFromContext(w, r, h.logger)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Message validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid recipient ID")
		return
	}

	var productID *uuid.UUID
	if req.ProductID != nil {
		parsed, err := uuid.Parse(*req.ProductID)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
			return
		}
		productID = &parsed
	}

	message, err := h.messages.Send(r.Context(), senderID, recipientID, productID, req.Body)
	if err != nil {
		if errors.Is(err, service.ErrSelfMessage) || errors.Is(err, service.ErrEmptyMessage) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to send message", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to send message")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, message)
}

// List handles fetching the user's messages, sent and received
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r, h.logger)
	if !ok {
		return
	}

	messages, err := h.messages.ListForUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list messages", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, messages)
}
