//go:generate go run go.uber.org/mock/mockgen -source=notification_service.go -destination=../mocks/mock_notification_service.go -package=mocks
package services

import (
	"chat-accounts/contract"
	"chat-accounts/domain"
	"chat-accounts/repositories"
	"context"
)

type INotificationService interface {
	CreateNotification(ctx context.Context, userID, messageID, content string) (domain.Notification, error)
	GetNotificationsByUserID(ctx context.Context, userID string) ([]domain.Notification, error)
}

type NotificationService struct {
	accounts   IAccountFinder
	repository repositories.INotificationRepository
	ids        contract.IDGenerator
	clock      contract.Clock
}

func NewNotificationService(
	accounts IAccountFinder,
	repository repositories.INotificationRepository,
	ids contract.IDGenerator,
	clock contract.Clock,
) *NotificationService {
	return &NotificationService{accounts: accounts, repository: repository, ids: ids, clock: clock}
}

// CreateNotification does not check that userID exists: the caller already did.
func (s *NotificationService) CreateNotification(ctx context.Context, userID, messageID, content string) (domain.Notification, error) {
	notification := domain.Notification{
		ID:        s.ids.NewID(),
		UserID:    userID,
		MessageID: messageID,
		Content:   content,
		Timestamp: s.clock.Now(),
	}
	if err := s.repository.Save(ctx, notification); err != nil {
		return domain.Notification{}, err
	}
	return notification, nil
}

func (s *NotificationService) GetNotificationsByUserID(ctx context.Context, userID string) ([]domain.Notification, error) {
	if _, err := s.accounts.FindBy(ctx, domain.ByID(userID)); err != nil {
		return nil, err
	}
	return s.repository.Find(ctx, repositories.NotificationFilter{UserID: &userID})
}
