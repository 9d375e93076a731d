package errors

import (
	stderrors "errors"
	"net/http"
)

// HTTPStatus translates a service error into the status code the API replies with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case stderrors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, ErrConflict):
		return http.StatusConflict
	case stderrors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for err.
// Unknown errors are hidden behind a generic text.
func Message(err error) string {
	switch {
	case stderrors.Is(err, ErrAccountNotFound):
		return "User not found"
	case stderrors.Is(err, ErrEmailAlreadyExists):
		return "Email already exists"
	case stderrors.Is(err, ErrAccountInactive):
		return "User is not active"
	case stderrors.Is(err, ErrInvalidCredentials):
		return "Invalid credentials"
	case HTTPStatus(err) != http.StatusInternalServerError:
		return err.Error()
	default:
		return "Internal server error"
	}
}
