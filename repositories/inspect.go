package repositories

import (
	"fmt"
	"strings"
	"time"
)

// Record is a decoded storage entry as displayed by the inspection tool.
type Record struct {
	Key    string
	Kind   string
	ID     string
	Owner  string
	At     time.Time
	Detail string
}

// DecodeRecord interprets a raw key/value pair. ok is false for index and
// sequence keys, which carry no record.
func DecodeRecord(key, val []byte) (record Record, ok bool, err error) {
	k := string(key)
	switch {
	case strings.HasPrefix(k, accountIDPrefix):
		a, err := unmarshalAccount(val)
		if err != nil {
			return Record{}, false, fmt.Errorf("decode %s: %w", k, err)
		}
		return Record{
			Key:    k,
			Kind:   "ACCOUNT",
			ID:     a.ID,
			Owner:  a.Email,
			Detail: fmt.Sprintf("name=%q active=%t", a.Name, a.IsActive),
		}, true, nil
	case strings.HasPrefix(k, messageUserPrefix):
		m, err := unmarshalMessage(val)
		if err != nil {
			return Record{}, false, fmt.Errorf("decode %s: %w", k, err)
		}
		return Record{Key: k, Kind: "MESSAGE", ID: m.ID, Owner: m.UserID, At: m.Timestamp, Detail: m.Content}, true, nil
	case strings.HasPrefix(k, notificationUserPrefix):
		n, err := unmarshalNotification(val)
		if err != nil {
			return Record{}, false, fmt.Errorf("decode %s: %w", k, err)
		}
		return Record{
			Key:    k,
			Kind:   "NOTIFICATION",
			ID:     n.ID,
			Owner:  n.UserID,
			At:     n.Timestamp,
			Detail: fmt.Sprintf("message=%s %s", n.MessageID, n.Content),
		}, true, nil
	default:
		return Record{}, false, nil
	}
}
