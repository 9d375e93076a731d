package api

import (
	"log/slog"
	"net/http"

	"chat-accounts/domain"
	"chat-accounts/services"

	"github.com/go-chi/chi/v5"
)

type createMessageRequest struct {
	UserID  string `json:"userId" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type MessagesAPI struct {
	messages services.IMessageService
	log      *slog.Logger
}

func NewMessagesAPI(messages services.IMessageService, log *slog.Logger) *MessagesAPI {
	return &MessagesAPI{messages: messages, log: log}
}

func (api *MessagesAPI) RegisterRoutes(r chi.Router) {
	r.Route("/messages", func(r chi.Router) {
		r.Post("/", api.HandleCreate)
		r.Get("/{userId}", api.HandleListByUser)
	})
}

// HandleCreate posts a message on behalf of an active account.
// POST /messages
func (api *MessagesAPI) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	message, err := api.messages.Create(r.Context(), domain.PostMessageCommand{
		UserID:  req.UserID,
		Content: req.Content,
	})
	if err != nil {
		writeError(w, r, api.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

// GET /messages/{userId}
func (api *MessagesAPI) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	messages, err := api.messages.FindAllByUserID(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, r, api.log, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(messages))
}
