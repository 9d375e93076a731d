package repositories

import (
	"chat-accounts/domain"
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func Test_Record_Multiple_Messages_In_Insertion_Order(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository, err := NewMessageRepository(openTestDB(t), testLogger())
	req.NoError(err)
	defer repository.Close()

	at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	// Identical timestamps and unordered IDs: only the sequence decides the order.
	messages := []domain.Message{
		{ID: "z", UserID: "alice", Content: "first", Timestamp: at},
		{ID: "a", UserID: "alice", Content: "second", Timestamp: at},
		{ID: "m", UserID: "alice", Content: "third", Timestamp: at},
	}
	for _, m := range messages {
		req.NoError(repository.Save(ctx, m))
	}
	req.NoError(repository.Save(ctx, domain.Message{ID: "b1", UserID: "bob", Content: "hi", Timestamp: at}))

	fetched, err := repository.Find(ctx, MessageFilter{UserID: lo.ToPtr("alice")})
	req.NoError(err)
	req.Equal(messages, fetched)

	all, err := repository.Find(ctx, MessageFilter{})
	req.NoError(err)
	req.Len(all, 4)
}

func Test_Find_Messages_Of_Unknown_User_Is_Empty(t *testing.T) {
	req := require.New(t)
	repository, err := NewMessageRepository(openTestDB(t), testLogger())
	req.NoError(err)
	defer repository.Close()

	fetched, err := repository.Find(context.Background(), MessageFilter{UserID: lo.ToPtr("ghost")})
	req.NoError(err)
	req.NotNil(fetched)
	req.Empty(fetched)
}

func Test_FindOne_Message_By_ID(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository, err := NewMessageRepository(openTestDB(t), testLogger())
	req.NoError(err)
	defer repository.Close()

	message := domain.Message{ID: "m1", UserID: "alice", Content: "hello", Timestamp: time.Now().UTC()}
	req.NoError(repository.Save(ctx, message))

	found, err := repository.FindOne(ctx, MessageFilter{ID: lo.ToPtr("m1")})
	req.NoError(err)
	req.Equal(&message, found)

	missing, err := repository.FindOne(ctx, MessageFilter{ID: lo.ToPtr("m2")})
	req.NoError(err)
	req.Nil(missing)
}

func Test_Message_Order_Survives_Reopening_The_Database(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	db := openTestDB(t)

	first, err := NewMessageRepository(db, testLogger())
	req.NoError(err)
	req.NoError(first.Save(ctx, domain.Message{ID: "1", UserID: "alice", Content: "before"}))
	req.NoError(first.Close())

	second, err := NewMessageRepository(db, testLogger())
	req.NoError(err)
	defer second.Close()
	req.NoError(second.Save(ctx, domain.Message{ID: "0", UserID: "alice", Content: "after"}))

	fetched, err := second.Find(ctx, MessageFilter{UserID: lo.ToPtr("alice")})
	req.NoError(err)
	req.Equal([]string{"before", "after"}, lo.Map(fetched, func(m domain.Message, _ int) string { return m.Content }))
}
