package api

import (
	"log/slog"
	"net/http"

	"chat-accounts/services"

	"github.com/go-chi/chi/v5"
)

type NotificationsAPI struct {
	notifications services.INotificationService
	log           *slog.Logger
}

func NewNotificationsAPI(notifications services.INotificationService, log *slog.Logger) *NotificationsAPI {
	return &NotificationsAPI{notifications: notifications, log: log}
}

func (api *NotificationsAPI) RegisterRoutes(r chi.Router) {
	r.Get("/notifications/{userId}", api.HandleListByUser)
}

// GET /notifications/{userId}
func (api *NotificationsAPI) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	notifications, err := api.notifications.GetNotificationsByUserID(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, r, api.log, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(notifications))
}
