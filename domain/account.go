// Package domain contains core concepts of the account and messaging system.
// This file defines Account records and their public projection.
// No storage, transport, or logging logic should be added here.
package domain

// Account is a user identity with credentials and an active/inactive status.
// Password is stored as given.
type Account struct {
	ID       string
	Email    string
	Password string
	Name     string
	IsActive bool
}

// PublicAccount is the subset of an Account safe to return to callers.
type PublicAccount struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

func (a Account) Public() PublicAccount {
	return PublicAccount{
		ID:       a.ID,
		Email:    a.Email,
		Name:     a.Name,
		IsActive: a.IsActive,
	}
}

// AccountLookup selects a single account. Callers set exactly one field.
type AccountLookup struct {
	ID    *string
	Email *string
}

func ByID(id string) AccountLookup {
	return AccountLookup{ID: &id}
}

func ByEmail(email string) AccountLookup {
	return AccountLookup{Email: &email}
}

// Credentials carries what a caller presents to be authenticated.
// When ID is set the password is not checked, see services.AuthService.Validate.
type Credentials struct {
	Email    string
	Password string
	ID       *string
}

// TokenClaims is the payload handed to the token signer.
type TokenClaims struct {
	Email string
	Sub   string
}

type AccessToken string

func (t AccessToken) String() string {
	return string(t)
}
