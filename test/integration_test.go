package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"chirp-lab/api"
	"chirp-lab/auth"
	"chirp-lab/directory"
	"chirp-lab/domain"
	"chirp-lab/projection"
	"chirp-lab/ratelimit"
	"chirp-lab/repositories"
	"chirp-lab/services"
)

var jwtSecret = []byte("integration_test_secret_key")

// stubDirectory serves a fixed user directory over the same REST surface the
// real identity provider exposes.
func stubDirectory(t *testing.T, users map[string]domain.IdentityRecord) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var records []domain.IdentityRecord
		for _, id := range r.URL.Query()["user_id"] {
			if record, found := users[id]; found {
				records = append(records, record)
			}
		}
		_ = json.NewEncoder(w).Encode(records)
	}))
	t.Cleanup(server.Close)
	return server
}

type stack struct {
	app   *fiber.App
	posts repositories.BadgerPostRepository
}

func newStack(t *testing.T, users map[string]domain.IdentityRecord, limitMax int) stack {
	t.Helper()
	req := require.New(t)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.Default()
	posts := repositories.NewBadgerPostRepository(db, logger)
	limiter := ratelimit.NewLimiter(ratelimit.NewBadgerAttemptStore(db), time.Minute, limitMax, logger)
	dir := directory.NewClient(stubDirectory(t, users).URL, "", time.Second, logger)
	service := services.NewPostService(posts, projection.NewAssembler(dir, logger), limiter, services.Config{
		RateLimitScope: services.ScopeAuthor,
		FeedPageSize:   10,
		CallTimeout:    time.Second,
	}, logger)

	app := fiber.New()
	api.Register(app, service, jwtSecret, logger)
	return stack{app: app, posts: posts}
}

func (s stack) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	response, err := s.app.Test(request, -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	_ = response.Body.Close()
	return response, payload
}

func mintToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(jwtSecret, userID, time.Hour)
	require.NoError(t, err)
	return token
}

func strPtr(s string) *string { return &s }

func Test_Create_And_Read_Round_Trip(t *testing.T) {
	req := require.New(t)
	s := newStack(t, map[string]domain.IdentityRecord{
		"alice": {ID: "alice", Username: strPtr("alice_posts"), ProfileImageURL: strPtr("https://img.example/a.png")},
		"bob":   {ID: "bob", Username: strPtr("bob_posts"), ProfileImageURL: strPtr("https://img.example/b.png")},
	}, 10)

	aliceToken := mintToken(t, "alice")
	bobToken := mintToken(t, "bob")

	response, payload := s.do(t, http.MethodPost, "/posts", aliceToken, map[string]string{"content": "🎉🎉"})
	req.Equal(http.StatusCreated, response.StatusCode, string(payload))

	var created domain.Post
	req.NoError(json.Unmarshal(payload, &created))
	req.NotEmpty(created.ID)
	req.Equal("Untitled", created.Title)
	req.Equal("🎉🎉", created.Content)
	req.Equal("alice", created.AuthorID)

	time.Sleep(5 * time.Millisecond) // distinct creation timestamps
	response, payload = s.do(t, http.MethodPost, "/posts", bobToken, map[string]string{"content": "🌮"})
	req.Equal(http.StatusCreated, response.StatusCode, string(payload))

	// The feed comes back newest first, enriched with directory identities.
	response, payload = s.do(t, http.MethodGet, "/posts", "", nil)
	req.Equal(http.StatusOK, response.StatusCode)

	var feed []domain.EnrichedPost
	req.NoError(json.Unmarshal(payload, &feed))
	req.Len(feed, 2)
	req.Equal("🌮", feed[0].Content)
	req.Equal("bob_posts", *feed[0].AuthorName)
	req.Equal("🎉🎉", feed[1].Content)
	req.Equal("alice_posts", *feed[1].AuthorName)
	req.Equal("https://img.example/a.png", *feed[1].AuthorProfileImageURL)

	// Single-post read.
	response, payload = s.do(t, http.MethodGet, "/posts/"+created.ID, "", nil)
	req.Equal(http.StatusOK, response.StatusCode)
	var single domain.EnrichedPost
	req.NoError(json.Unmarshal(payload, &single))
	req.Equal("alice_posts", *single.AuthorName)

	// Per-author read is not enriched and excludes other authors.
	response, payload = s.do(t, http.MethodGet, "/users/alice/posts", "", nil)
	req.Equal(http.StatusOK, response.StatusCode)
	var alicePosts []domain.Post
	req.NoError(json.Unmarshal(payload, &alicePosts))
	req.Len(alicePosts, 1)
	req.Equal(created.ID, alicePosts[0].ID)
}

func Test_Write_Path_Failures(t *testing.T) {
	users := map[string]domain.IdentityRecord{
		"alice": {ID: "alice", Username: strPtr("alice_posts")},
		"bob":   {ID: "bob", Username: strPtr("bob_posts")},
	}

	t.Run("should reject anonymous writes", func(t *testing.T) {
		req := require.New(t)
		s := newStack(t, users, 10)

		response, _ := s.do(t, http.MethodPost, "/posts", "", map[string]string{"content": "🎉"})
		req.Equal(http.StatusUnauthorized, response.StatusCode)
	})

	t.Run("should reject non-emoji content", func(t *testing.T) {
		req := require.New(t)
		s := newStack(t, users, 10)
		token := mintToken(t, "alice")

		response, _ := s.do(t, http.MethodPost, "/posts", token, map[string]string{"content": "plain text"})
		req.Equal(http.StatusBadRequest, response.StatusCode)

		// Nothing was persisted.
		response, payload := s.do(t, http.MethodGet, "/posts", "", nil)
		req.Equal(http.StatusOK, response.StatusCode)
		var feed []domain.EnrichedPost
		req.NoError(json.Unmarshal(payload, &feed))
		req.Empty(feed)
	})

	t.Run("should throttle per author after the limit", func(t *testing.T) {
		req := require.New(t)
		s := newStack(t, users, 3)
		aliceToken := mintToken(t, "alice")
		bobToken := mintToken(t, "bob")

		for i := 0; i < 3; i++ {
			response, payload := s.do(t, http.MethodPost, "/posts", aliceToken, map[string]string{"content": "🎈"})
			req.Equal(http.StatusCreated, response.StatusCode, string(payload))
		}

		response, _ := s.do(t, http.MethodPost, "/posts", aliceToken, map[string]string{"content": "🎈"})
		req.Equal(http.StatusTooManyRequests, response.StatusCode)

		// A different author is unaffected.
		response, _ = s.do(t, http.MethodPost, "/posts", bobToken, map[string]string{"content": "🌮"})
		req.Equal(http.StatusCreated, response.StatusCode)

		// The denied attempt left no row behind.
		_, payload := s.do(t, http.MethodGet, "/users/alice/posts", "", nil)
		var alicePosts []domain.Post
		req.NoError(json.Unmarshal(payload, &alicePosts))
		req.Len(alicePosts, 3)
	})
}

func Test_Read_Path_Failures(t *testing.T) {
	users := map[string]domain.IdentityRecord{
		"alice": {ID: "alice", Username: strPtr("alice_posts")},
	}

	t.Run("should answer 404 for an unknown post id", func(t *testing.T) {
		req := require.New(t)
		s := newStack(t, users, 10)

		response, _ := s.do(t, http.MethodGet, "/posts/"+uuid.NewString(), "", nil)
		req.Equal(http.StatusNotFound, response.StatusCode)
	})

	t.Run("should fail the feed when an author identity is unresolvable", func(t *testing.T) {
		req := require.New(t)
		s := newStack(t, users, 10)

		// A row referencing an author the directory does not know.
		orphan := domain.Post{
			ID:        uuid.NewString(),
			Title:     "Untitled",
			Content:   "👻",
			AuthorID:  "ghost",
			CreatedAt: time.Now().UTC(),
		}
		req.NoError(s.posts.Insert(context.Background(), orphan))

		response, _ := s.do(t, http.MethodGet, "/posts", "", nil)
		req.Equal(http.StatusInternalServerError, response.StatusCode)

		response, _ = s.do(t, http.MethodGet, "/posts/"+orphan.ID, "", nil)
		req.Equal(http.StatusInternalServerError, response.StatusCode)
	})
}

func Test_Feed_Is_Capped_At_Page_Size(t *testing.T) {
	req := require.New(t)
	s := newStack(t, map[string]domain.IdentityRecord{
		"alice": {ID: "alice", Username: strPtr("alice_posts")},
	}, 100)

	// Seed through the repository to sidestep the limiter.
	at := time.Now().UTC()
	for i := 0; i < 12; i++ {
		post := domain.Post{
			ID:        uuid.NewString(),
			Title:     "Untitled",
			Content:   "🎈",
			AuthorID:  "alice",
			CreatedAt: at.Add(time.Duration(i) * time.Second),
		}
		req.NoError(s.posts.Insert(context.Background(), post))
	}

	_, payload := s.do(t, http.MethodGet, "/posts", "", nil)
	var feed []domain.EnrichedPost
	req.NoError(json.Unmarshal(payload, &feed))
	req.Len(feed, 10)
	for i := 1; i < len(feed); i++ {
		req.True(feed[i].CreatedAt.Before(feed[i-1].CreatedAt), "feed must be newest first")
	}
}
