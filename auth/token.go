package auth

import (
	"chat-accounts/contract"
	"chat-accounts/domain"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "chat-accounts"

// Claims is the structure of the data stored inside the JWT.
// The account id travels as the registered "sub" claim.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTSigner signs and verifies HS256 access tokens.
type JWTSigner struct {
	key   []byte
	ttl   time.Duration
	clock contract.Clock
}

func NewJWTSigner(secret string, ttl time.Duration, clock contract.Clock) *JWTSigner {
	return &JWTSigner{key: []byte(secret), ttl: ttl, clock: clock}
}

// Sign creates a token for claims expiring after the configured duration.
func (s *JWTSigner) Sign(claims domain.TokenClaims) (string, error) {
	now := s.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email: claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Sub,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return token.SignedString(s.key)
}

// Verify parses tokenString and checks its signature, issuer and expiration.
func (s *JWTSigner) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: empty subject", jwt.ErrTokenInvalidClaims)
	}
	return claims, nil
}
