package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"localmarket/internal/domain"
	"localmarket/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrEmptyMessage = errors.New("message body must not be empty")
	ErrSelfMessage  = errors.New("cannot message yourself")
)

// MessageService defines direct messaging between users
type MessageService interface {
	Send(ctx context.Context, senderID, recipientID uuid.UUID, productID *uuid.UUID, body string) (*domain.Message, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Message, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
}

// NewMessageService creates a new instance of MessageService
func NewMessageService(messageRepo repository.MessageRepository) MessageService {
	return &messageService{messageRepo: messageRepo}
}

// Send stores a message from sender to recipient, optionally referencing the
// product it is about
func (s *messageService) Send(ctx context.Context, senderID, recipientID uuid.UUID, productID *uuid.UUID, body string) (*domain.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyMessage
	}
	if senderID == recipientID {
		return nil, ErrSelfMessage
	}

	message := &domain.Message{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: recipientID,
		ProductID:   productID,
		Body:        body,
		CreatedAt:   time.Now(),
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

// ListForUser retrieves messages the user sent or received, newest first
func (s *messageService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Message, error) {
	return s.messageRepo.ListByUser(ctx, userID)
}
