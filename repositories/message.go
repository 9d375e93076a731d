//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"chat-accounts/domain"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

const (
	messageUserPrefix = "msg:user:"
	messageIDPrefix   = "msg:id:"
	messageSequence   = "seq:msg"
)

// MessageFilter is the predicate handed to the message repository.
// Nil fields match everything.
type MessageFilter struct {
	ID     *string
	UserID *string
}

func (f MessageFilter) Matches(m domain.Message) bool {
	return (f.ID == nil || *f.ID == m.ID) &&
		(f.UserID == nil || *f.UserID == m.UserID)
}

type IMessageRepository interface {
	// FindOne returns nil when nothing matches.
	FindOne(ctx context.Context, filter MessageFilter) (*domain.Message, error)
	// Find returns matches in insertion order.
	Find(ctx context.Context, filter MessageFilter) ([]domain.Message, error)
	Save(ctx context.Context, message domain.Message) error
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
	seq *badger.Sequence
}

// NewMessageRepository leases an insertion sequence from Badger.
// Close must be called to give back the unused part of the lease.
func NewMessageRepository(db *badger.DB, log *slog.Logger) (*MessageRepository, error) {
	seq, err := db.GetSequence([]byte(messageSequence), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("message sequence: %w", err)
	}
	return &MessageRepository{db: db, log: log, seq: seq}, nil
}

func (r *MessageRepository) Close() error {
	return r.seq.Release()
}

// Save persists a message under "msg:user:{user_id}:{seq}:{id}" so a prefix
// scan per user yields messages in insertion order. "msg:id:{id}" points back
// to the record key.
func (r *MessageRepository) Save(ctx context.Context, message domain.Message) error {
	seq, err := r.seq.Next()
	if err != nil {
		return fmt.Errorf("next message sequence: %w", err)
	}
	key := sequencedKey(messageUserPrefix, message.UserID, seq, message.ID)
	err = update(ctx, r.db, func(txn *badger.Txn) error {
		if err := txn.Set(key, marshalMessage(message)); err != nil {
			return err
		}
		return txn.Set([]byte(messageIDPrefix+message.ID), key)
	})
	if err != nil {
		return err
	}
	r.log.Debug("Message stored", "key", string(key))
	return nil
}

func (r *MessageRepository) FindOne(ctx context.Context, filter MessageFilter) (*domain.Message, error) {
	if filter.ID == nil {
		messages, err := r.Find(ctx, filter)
		if err != nil || len(messages) == 0 {
			return nil, err
		}
		return &messages[0], nil
	}

	var result *domain.Message
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		key, found, err := getValue(txn, []byte(messageIDPrefix+*filter.ID))
		if err != nil || !found {
			return err
		}
		val, found, err := getValue(txn, key)
		if err != nil || !found {
			return err
		}
		message, err := unmarshalMessage(val)
		if err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		if filter.Matches(message) {
			result = &message
		}
		return nil
	})
	return result, err
}

func (r *MessageRepository) Find(ctx context.Context, filter MessageFilter) ([]domain.Message, error) {
	prefix := messageUserPrefix
	if filter.UserID != nil {
		prefix += *filter.UserID + ":"
	}

	messages := []domain.Message{}
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		return scanPrefix(txn, []byte(prefix), func(val []byte) error {
			message, err := unmarshalMessage(val)
			if err != nil {
				return err
			}
			if filter.Matches(message) {
				messages = append(messages, message)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}
