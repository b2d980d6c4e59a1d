package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chirp-lab/domain"
	errs "chirp-lab/errors"
)

// NewPgxPool creates a connection pool to the Postgres instance holding the
// posts table and the shared rate-limit state.
func NewPgxPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	// Reduce planning overhead by caching prepared statements per connection.
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// EnsurePostSchema creates the posts table when it does not exist yet.
// Statements run one by one: the cached-statement exec mode cannot prepare
// multi-command strings.
func EnsurePostSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS posts (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			content    TEXT NOT NULL,
			author_id  TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS posts_created_at_idx ON posts (created_at DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS posts_author_idx ON posts (author_id, created_at DESC, id DESC)`,
	}
	for _, statement := range statements {
		if _, err := pool.Exec(ctx, statement); err != nil {
			return err
		}
	}
	return nil
}

// PostgresPostRepository is the relational implementation of IPostRepository,
// shared across process instances.
type PostgresPostRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPostRepository(pool *pgxpool.Pool) PostgresPostRepository {
	return PostgresPostRepository{pool: pool}
}

func (r PostgresPostRepository) Insert(ctx context.Context, post domain.Post) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO posts (id, title, content, author_id, created_at) VALUES ($1, $2, $3, $4, $5)`,
		post.ID, post.Title, post.Content, post.AuthorID, post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return nil
}

func (r PostgresPostRepository) FindByID(ctx context.Context, id string) (domain.Post, error) {
	var post domain.Post
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, content, author_id, created_at FROM posts WHERE id = $1`, id,
	).Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Post{}, errs.ErrPostNotFound
	}
	if err != nil {
		return domain.Post{}, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return post, nil
}

func (r PostgresPostRepository) FindByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, content, author_id, created_at
		 FROM posts WHERE author_id = $1
		 ORDER BY created_at DESC, id DESC`, authorID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return collectPosts(rows)
}

func (r PostgresPostRepository) FindPage(ctx context.Context, limit, skip int) ([]domain.Post, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, content, author_id, created_at
		 FROM posts
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`, limit, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return collectPosts(rows)
}

func collectPosts(rows pgx.Rows) ([]domain.Post, error) {
	defer rows.Close()
	posts := make([]domain.Post, 0)
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return posts, nil
}
