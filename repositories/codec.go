package repositories

import (
	"chat-accounts/domain"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// Records are stored in protobuf wire format so they stay readable by any
// protobuf tooling and tolerate added fields. Layout:
//
//	message Account      { string id = 1; string email = 2; string password = 3; string name = 4; bool is_active = 5; }
//	message Message      { string id = 1; string user_id = 2; string content = 3; int64 timestamp = 4; }
//	message Notification { string id = 1; string user_id = 2; string message_id = 3; string content = 4; int64 timestamp = 5; }
//
// Timestamps are Unix nanoseconds.

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendTime(b []byte, num protowire.Number, t time.Time) []byte {
	if t.IsZero() {
		return b
	}
	return appendVarint(b, num, uint64(t.UnixNano()))
}

type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) int

// consumeFields walks every field of b. fn returns the number of bytes it
// consumed, or a negative protowire error code.
func consumeFields(b []byte, fn fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		n = fn(num, typ, b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

func consumeString(typ protowire.Type, b []byte, dst *string) int {
	if typ != protowire.BytesType {
		return -1
	}
	v, n := protowire.ConsumeString(b)
	if n >= 0 {
		*dst = v
	}
	return n
}

func consumeVarint(typ protowire.Type, b []byte, dst *uint64) int {
	if typ != protowire.VarintType {
		return -1
	}
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = v
	}
	return n
}

func consumeTime(typ protowire.Type, b []byte, dst *time.Time) int {
	var v uint64
	n := consumeVarint(typ, b, &v)
	if n >= 0 {
		*dst = time.Unix(0, int64(v)).UTC()
	}
	return n
}

func marshalAccount(a domain.Account) []byte {
	var b []byte
	b = appendString(b, 1, a.ID)
	b = appendString(b, 2, a.Email)
	b = appendString(b, 3, a.Password)
	b = appendString(b, 4, a.Name)
	b = appendVarint(b, 5, protowire.EncodeBool(a.IsActive))
	return b
}

func unmarshalAccount(b []byte) (domain.Account, error) {
	var a domain.Account
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &a.ID)
		case 2:
			return consumeString(typ, b, &a.Email)
		case 3:
			return consumeString(typ, b, &a.Password)
		case 4:
			return consumeString(typ, b, &a.Name)
		case 5:
			var v uint64
			n := consumeVarint(typ, b, &v)
			a.IsActive = protowire.DecodeBool(v)
			return n
		default:
			return protowire.ConsumeFieldValue(num, typ, b)
		}
	})
	return a, err
}

func marshalMessage(m domain.Message) []byte {
	var b []byte
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.UserID)
	b = appendString(b, 3, m.Content)
	b = appendTime(b, 4, m.Timestamp)
	return b
}

func unmarshalMessage(b []byte) (domain.Message, error) {
	var m domain.Message
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.ID)
		case 2:
			return consumeString(typ, b, &m.UserID)
		case 3:
			return consumeString(typ, b, &m.Content)
		case 4:
			return consumeTime(typ, b, &m.Timestamp)
		default:
			return protowire.ConsumeFieldValue(num, typ, b)
		}
	})
	return m, err
}

func marshalNotification(n domain.Notification) []byte {
	var b []byte
	b = appendString(b, 1, n.ID)
	b = appendString(b, 2, n.UserID)
	b = appendString(b, 3, n.MessageID)
	b = appendString(b, 4, n.Content)
	b = appendTime(b, 5, n.Timestamp)
	return b
}

func unmarshalNotification(b []byte) (domain.Notification, error) {
	var n domain.Notification
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &n.ID)
		case 2:
			return consumeString(typ, b, &n.UserID)
		case 3:
			return consumeString(typ, b, &n.MessageID)
		case 4:
			return consumeString(typ, b, &n.Content)
		case 5:
			return consumeTime(typ, b, &n.Timestamp)
		default:
			return protowire.ConsumeFieldValue(num, typ, b)
		}
	})
	return n, err
}
