//go:generate go run go.uber.org/mock/mockgen -source=message_service.go -destination=../mocks/mock_message_service.go -package=mocks
package services

import (
	"chat-accounts/contract"
	"chat-accounts/domain"
	"chat-accounts/errors"
	"chat-accounts/repositories"
	"context"
	"fmt"
)

type IMessageService interface {
	Create(ctx context.Context, cmd domain.PostMessageCommand) (domain.Message, error)
	FindAllByUserID(ctx context.Context, userID string) ([]domain.Message, error)
}

type MessageService struct {
	accounts      IAccountFinder
	notifications INotificationService
	repository    repositories.IMessageRepository
	ids           contract.IDGenerator
	clock         contract.Clock
}

func NewMessageService(
	accounts IAccountFinder,
	notifications INotificationService,
	repository repositories.IMessageRepository,
	ids contract.IDGenerator,
	clock contract.Clock,
) *MessageService {
	return &MessageService{
		accounts:      accounts,
		notifications: notifications,
		repository:    repository,
		ids:           ids,
		clock:         clock,
	}
}

// Create posts a message for an active account and records its notification
// before returning. Nothing is written when the account is missing or inactive.
// If the notification cannot be stored the message stays persisted and the
// error is returned to the caller.
func (s *MessageService) Create(ctx context.Context, cmd domain.PostMessageCommand) (domain.Message, error) {
	account, err := s.accounts.FindBy(ctx, domain.ByID(cmd.UserID))
	if err != nil {
		return domain.Message{}, err
	}
	if !account.IsActive {
		return domain.Message{}, errors.ErrAccountInactive
	}

	message := domain.Message{
		ID:        s.ids.NewID(),
		UserID:    cmd.UserID,
		Content:   cmd.Content,
		Timestamp: s.clock.Now(),
	}
	if err = s.repository.Save(ctx, message); err != nil {
		return domain.Message{}, err
	}

	text := domain.NewMessageNotificationText(cmd.UserID, cmd.Content)
	if _, err = s.notifications.CreateNotification(ctx, cmd.UserID, message.ID, text); err != nil {
		return domain.Message{}, fmt.Errorf("notify message %s: %w", message.ID, err)
	}
	return message, nil
}

// FindAllByUserID lists the messages of an existing account in insertion order.
func (s *MessageService) FindAllByUserID(ctx context.Context, userID string) ([]domain.Message, error) {
	if _, err := s.accounts.FindBy(ctx, domain.ByID(userID)); err != nil {
		return nil, err
	}
	return s.repository.Find(ctx, repositories.MessageFilter{UserID: &userID})
}
