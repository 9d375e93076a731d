package repositories

import (
	"chat-accounts/domain"
	"context"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func Test_DecodeRecord_Covers_Every_Record_Kind_And_Skips_Indexes(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	db := openTestDB(t)
	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

	accounts := NewAccountRepository(db, testLogger())
	messages, err := NewMessageRepository(db, testLogger())
	req.NoError(err)
	defer messages.Close()
	notifications, err := NewNotificationRepository(db, testLogger())
	req.NoError(err)
	defer notifications.Close()

	req.NoError(accounts.Save(ctx, domain.Account{ID: "u1", Email: "a@x.io", Password: "p", Name: "Ann", IsActive: true}))
	req.NoError(messages.Save(ctx, domain.Message{ID: "m1", UserID: "u1", Content: "hi", Timestamp: at}))
	req.NoError(notifications.Save(ctx, domain.Notification{ID: "n1", UserID: "u1", MessageID: "m1", Content: "New message from user u1: hi", Timestamp: at}))

	kinds := map[string]Record{}
	skipped := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			record, ok, err := DecodeRecord(it.Item().KeyCopy(nil), val)
			if err != nil {
				return err
			}
			if !ok {
				skipped++
				continue
			}
			kinds[record.Kind] = record
		}
		return nil
	})
	req.NoError(err)

	req.Len(kinds, 3)
	req.Equal("a@x.io", kinds["ACCOUNT"].Owner)
	req.Equal(`name="Ann" active=true`, kinds["ACCOUNT"].Detail)
	req.Equal("hi", kinds["MESSAGE"].Detail)
	req.Equal(at, kinds["MESSAGE"].At)
	req.Equal("n1", kinds["NOTIFICATION"].ID)
	// email index, two id indexes and the leased sequences
	req.GreaterOrEqual(skipped, 3)
}

func Test_DecodeRecord_Reports_Corrupted_Values(t *testing.T) {
	_, ok, err := DecodeRecord([]byte(messageUserPrefix+"u1:00000000000000000001:m1"), []byte{0xff, 0xff})

	require.Error(t, err)
	require.False(t, ok)
}
