package services

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chirp-lab/domain"
	errs "chirp-lab/errors"
	"chirp-lab/mocks"
	"chirp-lab/projection"
)

func newService(t *testing.T, scope string) (*PostService, *mocks.MockIPostRepository, *mocks.MockILimiter, *mocks.MockIIdentityDirectory) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockIPostRepository(ctrl)
	mockLimiter := mocks.NewMockILimiter(ctrl)
	mockDirectory := mocks.NewMockIIdentityDirectory(ctrl)

	svc := NewPostService(
		mockRepo,
		projection.NewAssembler(mockDirectory, slog.Default()),
		mockLimiter,
		Config{RateLimitScope: scope, FeedPageSize: 10, CallTimeout: time.Second},
		slog.Default(),
	)
	return svc, mockRepo, mockLimiter, mockDirectory
}

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("should persist a valid post with server-assigned fields", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, mockLimiter, _ := newService(t, ScopeAuthor)

		mockLimiter.EXPECT().Allow(gomock.Any(), "alice").Return(true, nil).Times(1)
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, post domain.Post) error {
				req.NotEmpty(post.ID)
				req.Equal("Untitled", post.Title)
				req.Equal("🎉🎉", post.Content)
				req.Equal("alice", post.AuthorID)
				req.False(post.CreatedAt.IsZero())
				return nil
			}).
			Times(1)

		post, err := svc.CreatePost(ctx, "alice", "🎉🎉")

		req.NoError(err)
		req.Equal("alice", post.AuthorID)
	})

	t.Run("should reject anonymous callers before anything else", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, mockLimiter, _ := newService(t, ScopeAuthor)

		mockLimiter.EXPECT().Allow(gomock.Any(), gomock.Any()).Times(0)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.CreatePost(ctx, "", "🎉")

		req.ErrorIs(err, errs.ErrUnauthenticated)
	})

	t.Run("should reject invalid content without consuming the limit", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, mockLimiter, _ := newService(t, ScopeAuthor)

		mockLimiter.EXPECT().Allow(gomock.Any(), gomock.Any()).Times(0)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

		for _, content := range []string{"", "plain text", strings.Repeat("🎉", 281)} {
			_, err := svc.CreatePost(ctx, "alice", content)
			req.ErrorIs(err, errs.ErrInvalidContent)
		}
	})

	t.Run("should not persist when admission is denied", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, mockLimiter, _ := newService(t, ScopeAuthor)

		mockLimiter.EXPECT().Allow(gomock.Any(), "alice").Return(false, nil).Times(1)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.CreatePost(ctx, "alice", "🎉")

		req.ErrorIs(err, errs.ErrRateLimited)
	})

	t.Run("should use the shared key in global scope", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, mockLimiter, _ := newService(t, ScopeGlobal)

		mockLimiter.EXPECT().Allow(gomock.Any(), "authorId").Return(true, nil).Times(1)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		_, err := svc.CreatePost(ctx, "alice", "🎉")

		req.NoError(err)
	})

	t.Run("should surface store failures", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, mockLimiter, _ := newService(t, ScopeAuthor)

		mockLimiter.EXPECT().Allow(gomock.Any(), "alice").Return(true, nil).Times(1)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errs.ErrStoreUnavailable).Times(1)

		_, err := svc.CreatePost(ctx, "alice", "🎉")

		req.ErrorIs(err, errs.ErrStoreUnavailable)
	})
}

func TestPostService_GetFeed(t *testing.T) {
	ctx := context.Background()
	at := time.Now().UTC()

	t.Run("should return the first page enriched, order preserved", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, _, mockDirectory := newService(t, ScopeAuthor)

		posts := []domain.Post{
			{ID: "p2", Title: "Untitled", Content: "🌮", AuthorID: "bob", CreatedAt: at.Add(time.Minute)},
			{ID: "p1", Title: "Untitled", Content: "🎉🎉", AuthorID: "alice", CreatedAt: at},
		}
		mockRepo.EXPECT().FindPage(gomock.Any(), 10, 0).Return(posts, nil).Times(1)
		mockDirectory.EXPECT().
			LookupByIDs(gomock.Any(), gomock.InAnyOrder([]string{"alice", "bob"}), 2).
			Return([]domain.IdentityRecord{
				{ID: "alice", Username: lo.ToPtr("alice_posts")},
				{ID: "bob", Username: lo.ToPtr("bob_posts")},
			}, nil).
			Times(1)

		feed, err := svc.GetFeed(ctx)

		req.NoError(err)
		req.Len(feed, 2)
		req.Equal("p2", feed[0].ID)
		req.Equal("bob_posts", *feed[0].AuthorName)
		req.Equal("alice_posts", *feed[1].AuthorName)
	})

	t.Run("should fail entirely when enrichment fails", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, _, mockDirectory := newService(t, ScopeAuthor)

		mockRepo.EXPECT().FindPage(gomock.Any(), 10, 0).
			Return([]domain.Post{{ID: "p1", AuthorID: "ghost", CreatedAt: at}}, nil).Times(1)
		mockDirectory.EXPECT().LookupByIDs(gomock.Any(), gomock.Any(), 1).
			Return([]domain.IdentityRecord{}, nil).Times(1)

		feed, err := svc.GetFeed(ctx)

		req.ErrorIs(err, errs.ErrIdentityNotFound)
		req.Nil(feed)
	})
}

func TestPostService_GetPostByID(t *testing.T) {
	ctx := context.Background()

	t.Run("should enrich a found post", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, _, mockDirectory := newService(t, ScopeAuthor)

		post := domain.Post{ID: "p1", Title: "Untitled", Content: "🎉", AuthorID: "alice", CreatedAt: time.Now().UTC()}
		mockRepo.EXPECT().FindByID(gomock.Any(), "p1").Return(post, nil).Times(1)
		mockDirectory.EXPECT().LookupByIDs(gomock.Any(), []string{"alice"}, 1).
			Return([]domain.IdentityRecord{{ID: "alice", Username: lo.ToPtr("alice_posts")}}, nil).Times(1)

		enriched, err := svc.GetPostByID(ctx, "p1")

		req.NoError(err)
		req.Equal("alice_posts", *enriched.AuthorName)
	})

	t.Run("should report a missing post as not found", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, _, mockDirectory := newService(t, ScopeAuthor)

		mockRepo.EXPECT().FindByID(gomock.Any(), "nope").Return(domain.Post{}, errs.ErrPostNotFound).Times(1)
		mockDirectory.EXPECT().LookupByIDs(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.GetPostByID(ctx, "nope")

		req.ErrorIs(err, errs.ErrPostNotFound)
	})
}

func TestPostService_GetPostsByAuthor(t *testing.T) {
	req := require.New(t)
	svc, mockRepo, _, mockDirectory := newService(t, ScopeAuthor)

	posts := []domain.Post{{ID: "p1", AuthorID: "alice", CreatedAt: time.Now().UTC()}}
	mockRepo.EXPECT().FindByAuthor(gomock.Any(), "alice").Return(posts, nil).Times(1)
	// No enrichment on the per-author path: the caller already knows the author.
	mockDirectory.EXPECT().LookupByIDs(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	result, err := svc.GetPostsByAuthor(context.Background(), "alice")

	req.NoError(err)
	req.Equal(posts, result)
}
