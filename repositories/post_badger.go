package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"chirp-lab/domain"
	errs "chirp-lab/errors"
)

// BadgerPostRepository is the embedded implementation of IPostRepository,
// suitable for single-node deployments and tests.
type BadgerPostRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewBadgerPostRepository(db *badger.DB, log *slog.Logger) BadgerPostRepository {
	return BadgerPostRepository{db: db, log: log}
}

// maxTimestamp sorts after any real 19-digit padded UnixNano value, so a
// reverse seek lands on the newest entry under a prefix.
const maxTimestamp = "9999999999999999999"

// Insert persists a post under three keys in a single transaction:
//
//	post:{timestamp_padded}:{id}          the global feed, newest-first on reverse scan
//	author:{author_id}:{timestamp_padded}:{id}  the per-author feed
//	id:{id}                               direct lookup
//
// The 19-digit zero padding keeps lexicographical order equal to
// chronological order; the post id disambiguates same-nanosecond inserts.
func (r BadgerPostRepository) Insert(ctx context.Context, post domain.Post) error {
	value, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	feedKey := fmt.Sprintf("post:%019d:%s", post.CreatedAt.UnixNano(), post.ID)
	authorKey := fmt.Sprintf("author:%s:%019d:%s", post.AuthorID, post.CreatedAt.UnixNano(), post.ID)
	idKey := "id:" + post.ID

	err = r.db.Update(func(txn *badger.Txn) error {
		for _, key := range []string{feedKey, authorKey, idKey} {
			if err := txn.Set([]byte(key), value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return nil
}

// FindByID retrieves a single post through its direct lookup key.
func (r BadgerPostRepository) FindByID(ctx context.Context, id string) (domain.Post, error) {
	var post domain.Post
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("id:" + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &post)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Post{}, errs.ErrPostNotFound
	}
	if err != nil {
		return domain.Post{}, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return post, nil
}

// FindByAuthor returns every post by one author, newest first.
func (r BadgerPostRepository) FindByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	prefix := fmt.Sprintf("author:%s:", authorID)
	posts, err := r.scanReverse(prefix, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return posts, nil
}

// FindPage returns one page of the global feed, newest first.
func (r BadgerPostRepository) FindPage(ctx context.Context, limit, skip int) ([]domain.Post, error) {
	posts, err := r.scanReverse("post:", limit, skip)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return posts, nil
}

// scanReverse walks a prefix from the newest key backwards. limit == 0 means
// no limit; skip entries are consumed before collection starts.
func (r BadgerPostRepository) scanReverse(prefixStr string, limit, skip int) ([]domain.Post, error) {
	var raw [][]byte
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		seekKey := append([]byte(prefixStr), []byte(maxTimestamp)...)
		it.Seek(seekKey)

		skipped := 0
		for ; it.ValidForPrefix(prefix); it.Next() {
			if skipped < skip {
				skipped++
				continue
			}
			if limit > 0 && len(raw) == limit {
				break
			}
			err := it.Item().Value(func(value []byte) error {
				raw = append(raw, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	posts := make([]domain.Post, 0, len(raw))
	for _, b := range raw {
		var post domain.Post
		if err := json.Unmarshal(b, &post); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}
