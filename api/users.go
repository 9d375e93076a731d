package api

import (
	"log/slog"
	"net/http"

	"chat-accounts/domain"
	"chat-accounts/services"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

type createUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

type updateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

type updateStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserResponse(id, name, email string) userResponse {
	return userResponse{ID: id, Name: name, Email: email}
}

type UsersAPI struct {
	accounts services.IAccountService
	auth     services.IAuthService
	log      *slog.Logger
}

func NewUsersAPI(accounts services.IAccountService, auth services.IAuthService, log *slog.Logger) *UsersAPI {
	return &UsersAPI{accounts: accounts, auth: auth, log: log}
}

func (api *UsersAPI) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", api.HandleCreate)
		r.Get("/", api.HandleListActive)
		r.Get("/{id}", api.HandleGet)
		r.Put("/{id}", api.HandleUpdate)
		r.Put("/{id}/status", api.HandleUpdateStatus)
	})
}

// HandleCreate registers a new account.
// POST /users
func (api *UsersAPI) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	account, err := api.accounts.Create(r.Context(), domain.CreateAccountCommand{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		writeError(w, r, api.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

// HandleUpdate authenticates the caller against the path id, then applies the body.
// The path id selects ID mode, so the body password is not compared with the stored one.
// PUT /users/{id}
func (api *UsersAPI) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if _, err := api.auth.ValidateAndLogin(r.Context(), domain.Credentials{
		ID:       &id,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		writeError(w, r, api.log, err)
		return
	}

	updated, err := api.accounts.Update(r.Context(), id, domain.UpdateAccountCommand{
		Email:    lo.ToPtr(req.Email),
		Password: lo.ToPtr(req.Password),
		Name:     lo.ToPtr(req.Name),
	})
	if err != nil {
		writeError(w, r, api.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(updated.ID, updated.Name, updated.Email))
}

// HandleGet returns a single account.
// GET /users/{id}
func (api *UsersAPI) HandleGet(w http.ResponseWriter, r *http.Request) {
	account, err := api.accounts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, api.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(account.ID, account.Name, account.Email))
}

// HandleUpdateStatus activates or deactivates an account.
// PUT /users/{id}/status
func (api *UsersAPI) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	account, err := api.accounts.UpdateStatus(r.Context(), chi.URLParam(r, "id"), *req.IsActive)
	if err != nil {
		writeError(w, r, api.log, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// HandleListActive returns every active account.
// GET /users
func (api *UsersAPI) HandleListActive(w http.ResponseWriter, r *http.Request) {
	accounts, err := api.accounts.FindAllActive(r.Context())
	if err != nil {
		writeError(w, r, api.log, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(accounts))
}
