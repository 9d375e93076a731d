package api

import (
	"net/http"
	"testing"

	"chat-accounts/auth"
	"chat-accounts/domain"
	"chat-accounts/errors"
	"chat-accounts/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stubVerifier map[string]*auth.Claims

func (v stubVerifier) Verify(token string) (*auth.Claims, error) {
	claims, ok := v[token]
	if !ok {
		return nil, jwt.ErrTokenMalformed
	}
	return claims, nil
}

func TestAuthAPI_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockIAuthService(ctrl)
	router := newTestRouter(NewAuthAPI(mockAuth, stubVerifier{}, testLogger()))

	t.Run("should return the access token", func(t *testing.T) {
		mockAuth.EXPECT().
			Login(gomock.Any(), domain.Credentials{Email: "a@x.io", Password: "p1"}).
			Return(domain.AccessToken("signed"), nil)

		w := doRequest(t, router, http.MethodPost, "/api/auth/login", map[string]string{"email": "a@x.io", "password": "p1"})

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"access_token":"signed"}`, w.Body.String())
	})

	t.Run("should answer 401 on bad credentials", func(t *testing.T) {
		req := require.New(t)
		mockAuth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(domain.AccessToken(""), errors.ErrInvalidCredentials)

		w := doRequest(t, router, http.MethodPost, "/api/auth/login", map[string]string{"email": "a@x.io", "password": "bad"})

		req.Equal(http.StatusUnauthorized, w.Code)
		resp := decodeError(t, w)
		req.Equal("Invalid credentials", resp.Message)
		req.Equal("Unauthorized", resp.Error)
	})

	t.Run("should answer 500 when signing fails", func(t *testing.T) {
		mockAuth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(domain.AccessToken(""), errors.ErrTokenGeneration)

		w := doRequest(t, router, http.MethodPost, "/api/auth/login", map[string]string{"email": "a@x.io", "password": "p1"})

		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAuthAPI_Profile(t *testing.T) {
	ctrl := gomock.NewController(t)
	verifier := stubVerifier{
		"good": {Email: "a@x.io", RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}},
	}
	router := newTestRouter(NewAuthAPI(mocks.NewMockIAuthService(ctrl), verifier, testLogger()))

	t.Run("should echo the token claims", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/auth/profile", nil, "Authorization", "Bearer good")

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"userId":"u1","email":"a@x.io"}`, w.Body.String())
	})

	t.Run("should reject an unknown token", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/auth/profile", nil, "Authorization", "Bearer forged")

		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, "Unauthorized", decodeError(t, w).Error)
	})

	t.Run("should reject a missing header", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/auth/profile", nil)

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
