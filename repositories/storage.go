package repositories

import (
	"chat-accounts/errors"
	"context"
	stderrors "errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// sequenceBandwidth is how many sequence numbers Badger leases at once.
const sequenceBandwidth = 100

// scanPrefix calls fn with the value of every key starting with prefix, in key order.
func scanPrefix(txn *badger.Txn, prefix []byte, fn func(val []byte) error) error {
	options := badger.DefaultIteratorOptions
	options.Prefix = prefix
	it := txn.NewIterator(options)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if err := it.Item().Value(fn); err != nil {
			return err
		}
	}
	return nil
}

// getValue copies the value stored at key. ok is false when the key is absent.
func getValue(txn *badger.Txn, key []byte) (val []byte, ok bool, err error) {
	item, err := txn.Get(key)
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	val, err = item.ValueCopy(nil)
	return val, err == nil, err
}

// update runs fn in a read-write transaction. A commit rejected because a
// concurrent transaction touched the same keys surfaces as a conflict.
func update(ctx context.Context, db *badger.DB, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := db.Update(fn)
	if stderrors.Is(err, badger.ErrConflict) {
		return errors.ErrConcurrentWrite
	}
	return err
}

func view(ctx context.Context, db *badger.DB, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return db.View(fn)
}

// sequencedKey builds "{prefix}{userID}:{seq}:{id}". The 20-digit zero
// padding keeps lexicographic order equal to insertion order.
func sequencedKey(prefix, userID string, seq uint64, id string) []byte {
	return []byte(fmt.Sprintf("%s%s:%020d:%s", prefix, userID, seq, id))
}
