package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// BadgerAttemptStore keeps attempt timestamps in an embedded Badger
// database. Single-node only: use the Postgres store when multiple
// instances must share the limit.
type BadgerAttemptStore struct {
	db *badger.DB
}

func NewBadgerAttemptStore(db *badger.DB) BadgerAttemptStore {
	return BadgerAttemptStore{db: db}
}

// badgerTxnMaxRetries bounds the retry loop for transaction conflicts.
const badgerTxnMaxRetries = 3

// TakeAttempt runs the check-and-record step inside one Update transaction.
// Badger serializes conflicting transactions on the key, which makes the
// count-then-append safe against concurrent callers; a conflicted
// transaction is retried from scratch.
func (s BadgerAttemptStore) TakeAttempt(ctx context.Context, key string, now time.Time, window time.Duration, max int) (bool, error) {
	storageKey := []byte("ratelimit:" + key)
	cutoff := now.Add(-window).UnixNano()

	var allowed bool
	for attempt := 0; attempt < badgerTxnMaxRetries; attempt++ {
		allowed = false
		err := s.db.Update(func(txn *badger.Txn) error {
			var stamps []int64
			item, err := txn.Get(storageKey)
			switch {
			case err == nil:
				err = item.Value(func(val []byte) error {
					return json.Unmarshal(val, &stamps)
				})
				if err != nil {
					return err
				}
			case errors.Is(err, badger.ErrKeyNotFound):
				// First attempt for this key.
			default:
				return err
			}

			kept := stamps[:0]
			for _, ts := range stamps {
				if ts >= cutoff {
					kept = append(kept, ts)
				}
			}

			if len(kept) < max {
				kept = append(kept, now.UnixNano())
				allowed = true
			} else if len(kept) == len(stamps) {
				// Denied and nothing expired: leave the state untouched.
				return nil
			}

			value, err := json.Marshal(kept)
			if err != nil {
				return err
			}
			return txn.Set(storageKey, value)
		})
		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("badger attempt store: %w", err)
		}
		return allowed, nil
	}
	return false, fmt.Errorf("badger attempt store: %w", badger.ErrConflict)
}
