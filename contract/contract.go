//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-accounts/domain"
	"time"
)

// Clock abstracts the wall clock so tests can pin timestamps.
type Clock interface {
	Now() time.Time
}

// IDGenerator hands out unique record identifiers.
type IDGenerator interface {
	NewID() string
}

// TokenSigner turns claims into an opaque access token.
// Verification belongs to the transport layer.
type TokenSigner interface {
	Sign(claims domain.TokenClaims) (string, error)
}
