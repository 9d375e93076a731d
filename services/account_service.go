//go:generate go run go.uber.org/mock/mockgen -source=account_service.go -destination=../mocks/mock_account_service.go -package=mocks
package services

import (
	"chat-accounts/contract"
	"chat-accounts/domain"
	"chat-accounts/errors"
	"chat-accounts/repositories"
	"context"
	"fmt"

	"github.com/samber/lo"
)

// IAccountFinder is the lookup the other services need from the account registry.
type IAccountFinder interface {
	FindBy(ctx context.Context, lookup domain.AccountLookup) (domain.Account, error)
}

type IAccountService interface {
	IAccountFinder
	Create(ctx context.Context, cmd domain.CreateAccountCommand) (domain.PublicAccount, error)
	Update(ctx context.Context, id string, cmd domain.UpdateAccountCommand) (domain.PublicAccount, error)
	UpdateStatus(ctx context.Context, id string, isActive bool) (domain.PublicAccount, error)
	Get(ctx context.Context, id string) (domain.PublicAccount, error)
	FindAllActive(ctx context.Context) ([]domain.PublicAccount, error)
}

// AccountService owns account records: creation, updates and the active flag.
type AccountService struct {
	repository repositories.IAccountRepository
	ids        contract.IDGenerator
}

func NewAccountService(repository repositories.IAccountRepository, ids contract.IDGenerator) *AccountService {
	return &AccountService{repository: repository, ids: ids}
}

// Create registers a new active account.
// The email lookup only rejects obvious duplicates early; the repository's
// unique index is what makes two concurrent creations with one email impossible.
func (s *AccountService) Create(ctx context.Context, cmd domain.CreateAccountCommand) (domain.PublicAccount, error) {
	existing, err := s.repository.FindOne(ctx, repositories.AccountFilter{Email: &cmd.Email})
	if err != nil {
		return domain.PublicAccount{}, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return domain.PublicAccount{}, errors.ErrEmailAlreadyExists
	}

	account := domain.Account{
		ID:       s.ids.NewID(),
		Email:    cmd.Email,
		Password: cmd.Password,
		Name:     cmd.Name,
		IsActive: true,
	}
	if err = s.repository.Save(ctx, account); err != nil {
		return domain.PublicAccount{}, err
	}
	return account.Public(), nil
}

// Update overwrites the provided fields. ID and IsActive are never touched here.
func (s *AccountService) Update(ctx context.Context, id string, cmd domain.UpdateAccountCommand) (domain.PublicAccount, error) {
	account, err := s.FindBy(ctx, domain.ByID(id))
	if err != nil {
		return domain.PublicAccount{}, err
	}

	if cmd.Email != nil {
		account.Email = *cmd.Email
	}
	if cmd.Password != nil {
		account.Password = *cmd.Password
	}
	if cmd.Name != nil {
		account.Name = *cmd.Name
	}

	if err = s.repository.Save(ctx, account); err != nil {
		return domain.PublicAccount{}, err
	}
	return account.Public(), nil
}

func (s *AccountService) UpdateStatus(ctx context.Context, id string, isActive bool) (domain.PublicAccount, error) {
	account, err := s.FindBy(ctx, domain.ByID(id))
	if err != nil {
		return domain.PublicAccount{}, err
	}

	account.IsActive = isActive
	if err = s.repository.Save(ctx, account); err != nil {
		return domain.PublicAccount{}, err
	}
	return account.Public(), nil
}

// FindBy returns the full record, password included. Only services use it;
// anything leaving the domain layer goes through Public().
func (s *AccountService) FindBy(ctx context.Context, lookup domain.AccountLookup) (domain.Account, error) {
	if lookup.ID == nil && lookup.Email == nil {
		return domain.Account{}, fmt.Errorf("empty lookup: %w", errors.ErrAccountNotFound)
	}

	account, err := s.repository.FindOne(ctx, repositories.AccountFilter{ID: lookup.ID, Email: lookup.Email})
	if err != nil {
		return domain.Account{}, err
	}
	if account == nil {
		return domain.Account{}, errors.ErrAccountNotFound
	}
	return *account, nil
}

func (s *AccountService) Get(ctx context.Context, id string) (domain.PublicAccount, error) {
	account, err := s.FindBy(ctx, domain.ByID(id))
	if err != nil {
		return domain.PublicAccount{}, err
	}
	return account.Public(), nil
}

// FindAllActive returns active accounts in no guaranteed order.
func (s *AccountService) FindAllActive(ctx context.Context) ([]domain.PublicAccount, error) {
	accounts, err := s.repository.Find(ctx, repositories.AccountFilter{IsActive: lo.ToPtr(true)})
	if err != nil {
		return nil, err
	}
	return lo.Map(accounts, func(item domain.Account, _ int) domain.PublicAccount {
		return item.Public()
	}), nil
}
