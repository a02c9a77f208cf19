// Package storage is the forest service's durability boundary: it appends
// encoded records to a Pebble instance keyed by KSUID and replays them on
// startup to rebuild the in-memory trie. The trie itself never touches
// disk; persistence lives entirely at this layer.
package storage

import (
	"fmt"
	"sort"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/bforest/pkg/codec"
	"github.com/ssargent/bforest/pkg/record"
)

// DurableLog is a Pebble-backed append log of records, adapted from the
// teacher's DefaultStorage: writes go through Append and Tombstone, reads
// through Loader, keyed by the record's own KSUID rather than a freshly
// minted one, and storing the codec's wire format instead of raw bytes.
type DurableLog struct {
	db    *pebble.DB
	codec *codec.RecordCodec
}

// Open opens (creating if necessary) a durable log rooted at path.
func Open(path string) (*DurableLog, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}
	return &DurableLog{db: db, codec: codec.NewRecordCodec()}, nil
}

// Append writes r to the log under its own ID, so replay can recover the
// same identity rather than minting a new one.
func (l *DurableLog) Append(r *record.Record) error {
	data, err := l.codec.Encode(r.Key, r.Value)
	if err != nil {
		return fmt.Errorf("storage: append: %w", err)
	}
	if err := l.db.Set(r.ID.Bytes(), data, pebble.Sync); err != nil {
		return fmt.Errorf("storage: append: %w", err)
	}
	return nil
}

// Tombstone appends a zero-value record for key's ID, marking it deleted
// without erasing its place in the log (mirrors the teacher's
// empty-value tombstone convention in pkg/store).
func (l *DurableLog) Tombstone(id ksuid.KSUID, key []byte) error {
	data, err := l.codec.Encode(key, nil)
	if err != nil {
		return fmt.Errorf("storage: tombstone: %w", err)
	}
	if err := l.db.Set(id.Bytes(), data, pebble.Sync); err != nil {
		return fmt.Errorf("storage: tombstone: %w", err)
	}
	return nil
}

// Close shuts down the underlying Pebble instance.
func (l *DurableLog) Close() error {
	if err := l.db.Close(); err != nil {
		return fmt.Errorf("storage: close: %w", err)
	}
	return nil
}

// Loader replays a DurableLog's contents into records, ready for
// trie.NewFromSorted to rebuild the in-memory index.
type Loader struct {
	log *DurableLog
}

// NewLoader wraps a DurableLog for recovery.
func NewLoader(log *DurableLog) *Loader {
	return &Loader{log: log}
}

// LoadAll scans every entry in the log, keeps only the most recent record
// per logical key (a later PUT or Tombstone supersedes an earlier one
// regardless of replay order), drops keys whose latest entry is a
// tombstone, and returns the survivors sorted by key — ready to hand
// straight to trie.NewFromSorted.
func (ld *Loader) LoadAll() ([]*record.Record, error) {
	iter, err := ld.log.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, fmt.Errorf("storage: load all: %w", err)
	}
	defer iter.Close()

	latest := make(map[string]*record.Record)
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			return nil, fmt.Errorf("storage: load all: malformed log key: %w", err)
		}
		rec, err := ld.log.codec.Decode(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("storage: load all: %w", err)
		}

		r := record.FromID(id, rec.Key, rec.Value, time.Unix(0, int64(rec.Timestamp)))
		if existing, ok := latest[string(rec.Key)]; !ok || r.Timestamp.After(existing.Timestamp) {
			latest[string(rec.Key)] = r
		}
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("storage: load all: %w", err)
	}

	out := make([]*record.Record, 0, len(latest))
	for _, r := range latest {
		if len(r.Value) == 0 {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return string(out[i].Key) < string(out[j].Key) })
	return out, nil
}
