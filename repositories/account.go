//go:generate go run go.uber.org/mock/mockgen -source=account.go -destination=../mocks/mock_account_repository.go -package=mocks
package repositories

import (
	"chat-accounts/domain"
	"chat-accounts/errors"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

const (
	accountIDPrefix    = "account:id:"
	accountEmailPrefix = "account:email:"
)

// AccountFilter is the predicate handed to the account repository.
// Nil fields match everything.
type AccountFilter struct {
	ID       *string
	Email    *string
	IsActive *bool
}

func (f AccountFilter) Matches(a domain.Account) bool {
	return (f.ID == nil || *f.ID == a.ID) &&
		(f.Email == nil || *f.Email == a.Email) &&
		(f.IsActive == nil || *f.IsActive == a.IsActive)
}

type IAccountRepository interface {
	// FindOne returns nil when nothing matches.
	FindOne(ctx context.Context, filter AccountFilter) (*domain.Account, error)
	Find(ctx context.Context, filter AccountFilter) ([]domain.Account, error)
	// Save inserts or replaces the account with the same ID.
	// It fails with errors.ErrEmailAlreadyExists when another account owns the email.
	Save(ctx context.Context, account domain.Account) error
}

type AccountRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewAccountRepository(db *badger.DB, log *slog.Logger) *AccountRepository {
	return &AccountRepository{db: db, log: log}
}

func accountKey(id string) []byte {
	return []byte(accountIDPrefix + id)
}

func emailKey(email string) []byte {
	return []byte(accountEmailPrefix + email)
}

// Save writes the record and its email index in one transaction.
// The index is the storage-level unique constraint on email: two concurrent
// saves claiming the same email cannot both commit.
func (r *AccountRepository) Save(ctx context.Context, account domain.Account) error {
	return update(ctx, r.db, func(txn *badger.Txn) error {
		ownerID, found, err := getValue(txn, emailKey(account.Email))
		if err != nil {
			return err
		}
		if found && string(ownerID) != account.ID {
			return errors.ErrEmailAlreadyExists
		}

		previous, found, err := getValue(txn, accountKey(account.ID))
		if err != nil {
			return err
		}
		if found {
			old, err := unmarshalAccount(previous)
			if err != nil {
				return fmt.Errorf("decode account %s: %w", account.ID, err)
			}
			if old.Email != account.Email {
				if err = txn.Delete(emailKey(old.Email)); err != nil {
					return err
				}
			}
		}

		if err = txn.Set(accountKey(account.ID), marshalAccount(account)); err != nil {
			return err
		}
		return txn.Set(emailKey(account.Email), []byte(account.ID))
	})
}

// FindOne resolves ID and Email through direct key reads and falls back to a scan otherwise.
func (r *AccountRepository) FindOne(ctx context.Context, filter AccountFilter) (*domain.Account, error) {
	var result *domain.Account
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		id, found, err := r.resolveID(txn, filter)
		if err != nil || !found {
			return err
		}
		if id == "" {
			return scanAccounts(txn, func(a domain.Account) bool {
				if filter.Matches(a) {
					result = &a
					return false
				}
				return true
			})
		}

		val, found, err := getValue(txn, accountKey(id))
		if err != nil || !found {
			return err
		}
		account, err := unmarshalAccount(val)
		if err != nil {
			return fmt.Errorf("decode account %s: %w", id, err)
		}
		if filter.Matches(account) {
			result = &account
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		r.log.Debug("No account matched", "id", lo.FromPtr(filter.ID), "email", lo.FromPtr(filter.Email))
	}
	return result, nil
}

func (r *AccountRepository) Find(ctx context.Context, filter AccountFilter) ([]domain.Account, error) {
	if filter.ID != nil || filter.Email != nil {
		account, err := r.FindOne(ctx, filter)
		if err != nil || account == nil {
			return []domain.Account{}, err
		}
		return []domain.Account{*account}, nil
	}

	accounts := []domain.Account{}
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		return scanAccounts(txn, func(a domain.Account) bool {
			if filter.Matches(a) {
				accounts = append(accounts, a)
			}
			return true
		})
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// resolveID narrows the filter to a single account ID when possible.
// found is false when the filter can match nothing; an empty id means a scan is needed.
func (r *AccountRepository) resolveID(txn *badger.Txn, filter AccountFilter) (id string, found bool, err error) {
	switch {
	case filter.ID != nil:
		return *filter.ID, true, nil
	case filter.Email != nil:
		val, found, err := getValue(txn, emailKey(*filter.Email))
		return string(val), found, err
	default:
		return "", true, nil
	}
}

// scanAccounts decodes every account record until next returns false.
func scanAccounts(txn *badger.Txn, next func(domain.Account) bool) error {
	prefix := []byte(accountIDPrefix)
	options := badger.DefaultIteratorOptions
	options.Prefix = prefix
	it := txn.NewIterator(options)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		val, err := it.Item().ValueCopy(nil)
		if err != nil {
			return err
		}
		account, err := unmarshalAccount(val)
		if err != nil {
			return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
		}
		if !next(account) {
			return nil
		}
	}
	return nil
}
