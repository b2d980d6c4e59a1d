// Package projection assembles display-ready views from stored posts.
// It joins author identity onto raw rows; it does not persist or cache
// anything of its own.
package projection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"chirp-lab/directory"
	"chirp-lab/domain"
	errs "chirp-lab/errors"
)

// Assembler enriches posts with their authors' identity records.
type Assembler struct {
	directory directory.IIdentityDirectory
	log       *slog.Logger
}

func NewAssembler(dir directory.IIdentityDirectory, log *slog.Logger) *Assembler {
	return &Assembler{directory: dir, log: log}
}

// Assemble joins each post with its author's identity using one batched
// directory lookup, preserving the input order. Enrichment is all or
// nothing: a post whose author cannot be resolved fails the whole call
// rather than being silently dropped.
func (a *Assembler) Assemble(ctx context.Context, posts []domain.Post) ([]domain.EnrichedPost, error) {
	if len(posts) == 0 {
		return []domain.EnrichedPost{}, nil
	}

	authorIDs := lo.Uniq(lo.Map(posts, func(p domain.Post, _ int) string { return p.AuthorID }))
	records, err := a.directory.LookupByIDs(ctx, authorIDs, len(posts))
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(records, func(r domain.IdentityRecord) string { return r.ID })

	enriched := make([]domain.EnrichedPost, 0, len(posts))
	for _, post := range posts {
		record, found := byID[post.AuthorID]
		if !found {
			a.log.Error("post references an unresolvable author",
				"post_id", post.ID, "author_id", post.AuthorID)
			return nil, fmt.Errorf("%w: author %s", errs.ErrIdentityNotFound, post.AuthorID)
		}
		enriched = append(enriched, domain.EnrichedPost{
			Post:                  post,
			AuthorName:            record.Username,
			AuthorProfileImageURL: record.ProfileImageURL,
		})
	}
	return enriched, nil
}
