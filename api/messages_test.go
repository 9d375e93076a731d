package api

import (
	"net/http"
	"testing"
	"time"

	"chat-accounts/domain"
	"chat-accounts/errors"
	"chat-accounts/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMessagesAPI(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockMessages := mocks.NewMockIMessageService(ctrl)
	mockNotifications := mocks.NewMockINotificationService(ctrl)
	router := newTestRouter(
		NewMessagesAPI(mockMessages, testLogger()),
		NewNotificationsAPI(mockNotifications, testLogger()),
	)
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	t.Run("should post a message and answer 201", func(t *testing.T) {
		mockMessages.EXPECT().
			Create(gomock.Any(), domain.PostMessageCommand{UserID: "u1", Content: "hi"}).
			Return(domain.Message{ID: "m1", UserID: "u1", Content: "hi", Timestamp: at}, nil)

		w := doRequest(t, router, http.MethodPost, "/api/messages", map[string]string{"userId": "u1", "content": "hi"})

		require.Equal(t, http.StatusCreated, w.Code)
		require.JSONEq(t, `{"id":"m1","userId":"u1","content":"hi","timestamp":"2026-03-01T09:30:00Z"}`, w.Body.String())
	})

	t.Run("should require content", func(t *testing.T) {
		mockMessages.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		w := doRequest(t, router, http.MethodPost, "/api/messages", map[string]string{"userId": "u1"})

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, []any{"content is a required field"}, decodeError(t, w).Message)
	})

	t.Run("should answer 409 for an inactive author", func(t *testing.T) {
		req := require.New(t)
		mockMessages.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.Message{}, errors.ErrAccountInactive)

		w := doRequest(t, router, http.MethodPost, "/api/messages", map[string]string{"userId": "u1", "content": "hi"})

		req.Equal(http.StatusConflict, w.Code)
		req.Equal("User is not active", decodeError(t, w).Message)
	})

	t.Run("should list messages of a user", func(t *testing.T) {
		mockMessages.EXPECT().FindAllByUserID(gomock.Any(), "u1").
			Return([]domain.Message{{ID: "m1", UserID: "u1", Content: "hi", Timestamp: at}}, nil)

		w := doRequest(t, router, http.MethodGet, "/api/messages/u1", nil)

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `[{"id":"m1","userId":"u1","content":"hi","timestamp":"2026-03-01T09:30:00Z"}]`, w.Body.String())
	})

	t.Run("should answer 404 listing messages of an unknown user", func(t *testing.T) {
		mockMessages.EXPECT().FindAllByUserID(gomock.Any(), "ghost").Return(nil, errors.ErrAccountNotFound)

		w := doRequest(t, router, http.MethodGet, "/api/messages/ghost", nil)

		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should list notifications of a user", func(t *testing.T) {
		mockNotifications.EXPECT().GetNotificationsByUserID(gomock.Any(), "u1").
			Return([]domain.Notification{{ID: "n1", UserID: "u1", MessageID: "m1", Content: "New message from user u1: hi", Timestamp: at}}, nil)

		w := doRequest(t, router, http.MethodGet, "/api/notifications/u1", nil)

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t,
			`[{"id":"n1","userId":"u1","messageId":"m1","content":"New message from user u1: hi","timestamp":"2026-03-01T09:30:00Z"}]`,
			w.Body.String())
	})

	t.Run("should answer an empty list for a user without notifications", func(t *testing.T) {
		mockNotifications.EXPECT().GetNotificationsByUserID(gomock.Any(), "u2").Return(nil, nil)

		w := doRequest(t, router, http.MethodGet, "/api/notifications/u2", nil)

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestRouter_Health(t *testing.T) {
	w := doRequest(t, newTestRouter(), http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_UnknownRoute(t *testing.T) {
	w := doRequest(t, newTestRouter(), http.MethodGet, "/api/nowhere", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Cannot GET /api/nowhere", decodeError(t, w).Message)
}
