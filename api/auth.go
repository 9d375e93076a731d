package api

import (
	"log/slog"
	"net/http"

	"chat-accounts/auth"
	"chat-accounts/domain"
	"chat-accounts/services"

	"github.com/go-chi/chi/v5"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type profileResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type AuthAPI struct {
	auth     services.IAuthService
	verifier auth.Verifier
	log      *slog.Logger
}

func NewAuthAPI(authService services.IAuthService, verifier auth.Verifier, log *slog.Logger) *AuthAPI {
	return &AuthAPI{auth: authService, verifier: verifier, log: log}
}

func (api *AuthAPI) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", api.HandleLogin)
		r.With(auth.RequireBearer(api.verifier, unauthorized)).Get("/profile", api.HandleProfile)
	})
}

// HandleLogin exchanges email and password for a signed access token.
// POST /auth/login
func (api *AuthAPI) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	token, err := api.auth.Login(r.Context(), domain.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(w, r, api.log, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token.String()})
}

// HandleProfile echoes the claims of the bearer token.
// GET /auth/profile
func (api *AuthAPI) HandleProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		unauthorized(w, r)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{UserID: claims.Subject, Email: claims.Email})
}
