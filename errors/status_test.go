package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"account not found", ErrAccountNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", ErrAccountNotFound), http.StatusNotFound},
		{"duplicate email", ErrEmailAlreadyExists, http.StatusConflict},
		{"inactive account", ErrAccountInactive, http.StatusConflict},
		{"concurrent write", ErrConcurrentWrite, http.StatusConflict},
		{"bad credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"token generation", ErrTokenGeneration, http.StatusInternalServerError},
		{"unknown", fmt.Errorf("disk on fire"), http.StatusInternalServerError},
		{"nil", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestMessage_HidesInternalErrors(t *testing.T) {
	req := require.New(t)
	req.Equal("User not found", Message(ErrAccountNotFound))
	req.Equal("User is not active", Message(fmt.Errorf("post: %w", ErrAccountInactive)))
	req.Equal("Email already exists", Message(ErrEmailAlreadyExists))
	req.Equal("Invalid credentials", Message(ErrInvalidCredentials))
	req.Equal("Internal server error", Message(fmt.Errorf("badger: value log corrupted")))
}
