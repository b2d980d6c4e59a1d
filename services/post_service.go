package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"chirp-lab/domain"
	errs "chirp-lab/errors"
	"chirp-lab/projection"
	"chirp-lab/ratelimit"
	"chirp-lab/repositories"
	"chirp-lab/validation"
)

// IPostService exposes the caller-facing operations: create a post, read the
// global feed, read one post, read one author's posts.
type IPostService interface {
	CreatePost(ctx context.Context, authorID, content string) (domain.Post, error)
	GetFeed(ctx context.Context) ([]domain.EnrichedPost, error)
	GetPostByID(ctx context.Context, id string) (domain.EnrichedPost, error)
	GetPostsByAuthor(ctx context.Context, authorID string) ([]domain.Post, error)
}

// Every post keeps this placeholder title; the product has no titled posts.
const placeholderTitle = "Untitled"

// Rate-limit scopes. ScopeAuthor throttles each author independently.
// ScopeGlobal throttles every caller under one shared key, which reproduces
// the historical behavior of the first deployment.
const (
	ScopeAuthor = "author"
	ScopeGlobal = "global"

	globalLimitKey = "authorId"
)

// Config carries the service tunables fixed at construction.
type Config struct {
	RateLimitScope string
	FeedPageSize   int
	// CallTimeout bounds each call to the post store, the attempt store and
	// the identity directory. Timeouts surface as unavailable errors and are
	// not retried here.
	CallTimeout time.Duration
}

type PostService struct {
	posts     repositories.IPostRepository
	assembler *projection.Assembler
	limiter   ratelimit.ILimiter
	config    Config
	log       *slog.Logger
	now       func() time.Time
}

func NewPostService(
	posts repositories.IPostRepository,
	assembler *projection.Assembler,
	limiter ratelimit.ILimiter,
	config Config,
	log *slog.Logger,
) *PostService {
	return &PostService{
		posts:     posts,
		assembler: assembler,
		limiter:   limiter,
		config:    config,
		log:       log,
		now:       time.Now,
	}
}

// CreatePost validates, admits and persists a new post. The returned post is
// not enriched; the caller already knows who wrote it.
func (s *PostService) CreatePost(ctx context.Context, authorID, content string) (domain.Post, error) {
	// 1. The write path requires an authenticated caller.
	if authorID == "" {
		return domain.Post{}, errs.ErrUnauthenticated
	}

	// 2. Validate before any side effect.
	if err := validation.ValidateContent(content); err != nil {
		return domain.Post{}, err
	}

	// 3. Consult admission control. Denied attempts never reach the store.
	limitCtx, cancel := context.WithTimeout(ctx, s.config.CallTimeout)
	defer cancel()
	allowed, err := s.limiter.Allow(limitCtx, s.limitKey(authorID))
	if err != nil {
		return domain.Post{}, err
	}
	if !allowed {
		return domain.Post{}, errs.ErrRateLimited
	}

	// 4. Persist with a server-assigned id and creation time.
	post := domain.Post{
		ID:        uuid.NewString(),
		Title:     placeholderTitle,
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: s.now().UTC(),
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.config.CallTimeout)
	defer cancel()
	if err := s.posts.Insert(storeCtx, post); err != nil {
		return domain.Post{}, err
	}

	s.log.Info("post created", "post_id", post.ID, "author_id", post.AuthorID)
	return post, nil
}

// GetFeed returns the first page of the global feed, newest first, with
// author identity joined on.
func (s *PostService) GetFeed(ctx context.Context) ([]domain.EnrichedPost, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.config.CallTimeout)
	defer cancel()
	posts, err := s.posts.FindPage(storeCtx, s.config.FeedPageSize, 0)
	if err != nil {
		return nil, err
	}

	dirCtx, cancel := context.WithTimeout(ctx, s.config.CallTimeout)
	defer cancel()
	return s.assembler.Assemble(dirCtx, posts)
}

// GetPostByID returns one enriched post.
func (s *PostService) GetPostByID(ctx context.Context, id string) (domain.EnrichedPost, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.config.CallTimeout)
	defer cancel()
	post, err := s.posts.FindByID(storeCtx, id)
	if err != nil {
		return domain.EnrichedPost{}, err
	}

	dirCtx, cancel := context.WithTimeout(ctx, s.config.CallTimeout)
	defer cancel()
	enriched, err := s.assembler.Assemble(dirCtx, []domain.Post{post})
	if err != nil {
		return domain.EnrichedPost{}, err
	}
	return enriched[0], nil
}

// GetPostsByAuthor returns every post by one author, newest first, without
// identity enrichment.
func (s *PostService) GetPostsByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.config.CallTimeout)
	defer cancel()
	return s.posts.FindByAuthor(storeCtx, authorID)
}

func (s *PostService) limitKey(authorID string) string {
	if s.config.RateLimitScope == ScopeGlobal {
		return globalLimitKey
	}
	return authorID
}
