// Package record defines the value type stored in the forest service's
// trie: a logical key/value pair carrying its own durability identity.
package record

import (
	"time"

	"github.com/segmentio/ksuid"
)

// Record is the unit of storage held by the trie and persisted by the
// durable log. ID is independent of Key: the log appends records in
// arrival order keyed by ID, while the trie orders them by Key.
type Record struct {
	ID        ksuid.KSUID
	Key       []byte
	Value     []byte
	Timestamp time.Time
}

// New creates a Record with a freshly generated identity and the current
// time, mirroring the teacher's ksuid.New()-on-create pattern.
func New(key, value []byte) *Record {
	return &Record{
		ID:        ksuid.New(),
		Key:       key,
		Value:     value,
		Timestamp: time.Now(),
	}
}

// FromID reconstructs a Record around an identity recovered from durable
// storage (e.g. a Pebble key), mirroring ksuid.FromBytes at the replay
// boundary rather than minting a new identity for recovered data.
func FromID(id ksuid.KSUID, key, value []byte, timestamp time.Time) *Record {
	return &Record{ID: id, Key: key, Value: value, Timestamp: timestamp}
}

// ProjectKey is the trie's key projection for *Record values:
// trie.New[*record.Record](record.ProjectKey).
func ProjectKey(r *Record) []byte { return r.Key }
