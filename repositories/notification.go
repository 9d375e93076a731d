//go:generate go run go.uber.org/mock/mockgen -source=notification.go -destination=../mocks/mock_notification_repository.go -package=mocks
package repositories

import (
	"chat-accounts/domain"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

const (
	notificationUserPrefix = "notif:user:"
	notificationIDPrefix   = "notif:id:"
	notificationSequence   = "seq:notif"
)

type NotificationFilter struct {
	ID        *string
	UserID    *string
	MessageID *string
}

func (f NotificationFilter) Matches(n domain.Notification) bool {
	return (f.ID == nil || *f.ID == n.ID) &&
		(f.UserID == nil || *f.UserID == n.UserID) &&
		(f.MessageID == nil || *f.MessageID == n.MessageID)
}

type INotificationRepository interface {
	// FindOne returns nil when nothing matches.
	FindOne(ctx context.Context, filter NotificationFilter) (*domain.Notification, error)
	// Find returns matches in insertion order.
	Find(ctx context.Context, filter NotificationFilter) ([]domain.Notification, error)
	Save(ctx context.Context, notification domain.Notification) error
}

type NotificationRepository struct {
	db  *badger.DB
	log *slog.Logger
	seq *badger.Sequence
}

func NewNotificationRepository(db *badger.DB, log *slog.Logger) (*NotificationRepository, error) {
	seq, err := db.GetSequence([]byte(notificationSequence), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("notification sequence: %w", err)
	}
	return &NotificationRepository{db: db, log: log, seq: seq}, nil
}

func (r *NotificationRepository) Close() error {
	return r.seq.Release()
}

func (r *NotificationRepository) Save(ctx context.Context, notification domain.Notification) error {
	seq, err := r.seq.Next()
	if err != nil {
		return fmt.Errorf("next notification sequence: %w", err)
	}
	key := sequencedKey(notificationUserPrefix, notification.UserID, seq, notification.ID)
	err = update(ctx, r.db, func(txn *badger.Txn) error {
		if err := txn.Set(key, marshalNotification(notification)); err != nil {
			return err
		}
		return txn.Set([]byte(notificationIDPrefix+notification.ID), key)
	})
	if err != nil {
		return err
	}
	r.log.Debug("Notification stored", "key", string(key), "message_id", notification.MessageID)
	return nil
}

func (r *NotificationRepository) FindOne(ctx context.Context, filter NotificationFilter) (*domain.Notification, error) {
	if filter.ID == nil {
		notifications, err := r.Find(ctx, filter)
		if err != nil || len(notifications) == 0 {
			return nil, err
		}
		return &notifications[0], nil
	}

	var result *domain.Notification
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		key, found, err := getValue(txn, []byte(notificationIDPrefix+*filter.ID))
		if err != nil || !found {
			return err
		}
		val, found, err := getValue(txn, key)
		if err != nil || !found {
			return err
		}
		notification, err := unmarshalNotification(val)
		if err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		if filter.Matches(notification) {
			result = &notification
		}
		return nil
	})
	return result, err
}

func (r *NotificationRepository) Find(ctx context.Context, filter NotificationFilter) ([]domain.Notification, error) {
	prefix := notificationUserPrefix
	if filter.UserID != nil {
		prefix += *filter.UserID + ":"
	}

	notifications := []domain.Notification{}
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		return scanPrefix(txn, []byte(prefix), func(val []byte) error {
			notification, err := unmarshalNotification(val)
			if err != nil {
				return err
			}
			if filter.Matches(notification) {
				notifications = append(notifications, notification)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return notifications, nil
}
