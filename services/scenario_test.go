package services

import (
	"chat-accounts/domain"
	"chat-accounts/errors"
	"chat-accounts/internal"
	"chat-accounts/repositories"
	"context"
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

type stack struct {
	accounts      *AccountService
	auth          *AuthService
	messages      *MessageService
	notifications *NotificationService
}

type staticSigner struct{}

func (staticSigner) Sign(claims domain.TokenClaims) (string, error) {
	return "token-for-" + claims.Sub, nil
}

// newStack wires the four services on a Badger database in a temp dir.
func newStack(t *testing.T) stack {
	t.Helper()
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	messageRepository, err := repositories.NewMessageRepository(db, log)
	req.NoError(err)
	t.Cleanup(func() { _ = messageRepository.Close() })
	notificationRepository, err := repositories.NewNotificationRepository(db, log)
	req.NoError(err)
	t.Cleanup(func() { _ = notificationRepository.Close() })

	ids, clock := internal.UUIDGenerator{}, internal.SystemClock{}
	accounts := NewAccountService(repositories.NewAccountRepository(db, log), ids)
	notifications := NewNotificationService(accounts, notificationRepository, ids, clock)
	return stack{
		accounts:      accounts,
		auth:          NewAuthService(accounts, staticSigner{}),
		messages:      NewMessageService(accounts, notifications, messageRepository, ids, clock),
		notifications: notifications,
	}
}

func TestScenario_CreateAccountThenDuplicateEmail(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	s := newStack(t)

	account, err := s.accounts.Create(ctx, domain.CreateAccountCommand{Email: "a@x.com", Password: "p", Name: "A"})
	req.NoError(err)
	req.NotEmpty(account.ID)
	req.Equal("a@x.com", account.Email)
	req.Equal("A", account.Name)
	req.True(account.IsActive)

	_, err = s.accounts.Create(ctx, domain.CreateAccountCommand{Email: "a@x.com", Password: "other", Name: "B"})
	req.ErrorIs(err, errors.ErrConflict)

	// The failed creation left the first account untouched.
	stored, err := s.accounts.FindBy(ctx, domain.ByEmail("a@x.com"))
	req.NoError(err)
	req.Equal(account.ID, stored.ID)
	req.Equal("p", stored.Password)
	req.Equal("A", stored.Name)
}

func TestScenario_MessageFansOutToNotification(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	s := newStack(t)

	u, err := s.accounts.Create(ctx, domain.CreateAccountCommand{Email: "u@x.com", Password: "p", Name: "U"})
	req.NoError(err)

	message, err := s.messages.Create(ctx, domain.PostMessageCommand{UserID: u.ID, Content: "hi"})
	req.NoError(err)
	req.Equal(u.ID, message.UserID)
	req.Equal("hi", message.Content)
	req.False(message.Timestamp.IsZero())

	notifications, err := s.notifications.GetNotificationsByUserID(ctx, u.ID)
	req.NoError(err)
	req.Len(notifications, 1)
	req.Equal("New message from user "+u.ID+": hi", notifications[0].Content)
	req.Equal(message.ID, notifications[0].MessageID)
	req.Equal(u.ID, notifications[0].UserID)

	messages, err := s.messages.FindAllByUserID(ctx, u.ID)
	req.NoError(err)
	req.Equal([]domain.Message{message}, messages)
}

func TestScenario_InactiveAccountCannotPost(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	s := newStack(t)

	u, err := s.accounts.Create(ctx, domain.CreateAccountCommand{Email: "u@x.com", Password: "p", Name: "U"})
	req.NoError(err)
	_, err = s.accounts.UpdateStatus(ctx, u.ID, false)
	req.NoError(err)

	_, err = s.messages.Create(ctx, domain.PostMessageCommand{UserID: u.ID, Content: "hi"})
	req.ErrorIs(err, errors.ErrConflict)

	messages, err := s.messages.FindAllByUserID(ctx, u.ID)
	req.NoError(err)
	req.Empty(messages)
	notifications, err := s.notifications.GetNotificationsByUserID(ctx, u.ID)
	req.NoError(err)
	req.Empty(notifications)

	// Reactivation reopens posting.
	_, err = s.accounts.UpdateStatus(ctx, u.ID, true)
	req.NoError(err)
	_, err = s.messages.Create(ctx, domain.PostMessageCommand{UserID: u.ID, Content: "back"})
	req.NoError(err)
}

func TestScenario_FindAllActiveSkipsDeactivated(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	s := newStack(t)

	first, err := s.accounts.Create(ctx, domain.CreateAccountCommand{Email: "1@x.com", Password: "p", Name: "One"})
	req.NoError(err)
	second, err := s.accounts.Create(ctx, domain.CreateAccountCommand{Email: "2@x.com", Password: "p", Name: "Two"})
	req.NoError(err)
	_, err = s.accounts.UpdateStatus(ctx, second.ID, false)
	req.NoError(err)

	active, err := s.accounts.FindAllActive(ctx)
	req.NoError(err)
	req.Equal([]domain.PublicAccount{first}, active)
}

func TestScenario_UpdateKeepsIdentityAndStatus(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	s := newStack(t)

	u, err := s.accounts.Create(ctx, domain.CreateAccountCommand{Email: "u@x.com", Password: "p", Name: "U"})
	req.NoError(err)
	_, err = s.accounts.UpdateStatus(ctx, u.ID, false)
	req.NoError(err)

	updated, err := s.accounts.Update(ctx, u.ID, domain.UpdateAccountCommand{
		Email:    lo.ToPtr("new@x.com"),
		Password: lo.ToPtr("q"),
		Name:     lo.ToPtr("New"),
	})
	req.NoError(err)
	req.Equal(domain.PublicAccount{ID: u.ID, Email: "new@x.com", Name: "New", IsActive: false}, updated)

	// The old email is free again and the new one is taken.
	_, err = s.accounts.Create(ctx, domain.CreateAccountCommand{Email: "u@x.com", Password: "p", Name: "Other"})
	req.NoError(err)
	_, err = s.accounts.Update(ctx, u.ID, domain.UpdateAccountCommand{Email: lo.ToPtr("u@x.com")})
	req.ErrorIs(err, errors.ErrConflict)
}

func TestScenario_CredentialsAgainstStoredAccount(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	s := newStack(t)

	u, err := s.accounts.Create(ctx, domain.CreateAccountCommand{Email: "u@x.com", Password: "p", Name: "U"})
	req.NoError(err)

	token, err := s.auth.Login(ctx, domain.Credentials{Email: "u@x.com", Password: "p"})
	req.NoError(err)
	req.Equal(domain.AccessToken("token-for-"+u.ID), token)

	_, err = s.auth.Login(ctx, domain.Credentials{Email: "u@x.com", Password: "P"})
	req.ErrorIs(err, errors.ErrUnauthorized)

	// Known weakness kept as is: an id is enough, the password is ignored.
	account, err := s.auth.ValidateAndLogin(ctx, domain.Credentials{Email: "u@x.com", Password: "wrong", ID: &u.ID})
	req.NoError(err)
	req.Equal(u.ID, account.ID)
}
