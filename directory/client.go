//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=../mocks/mock_identity_directory.go -package=mocks

// Package directory is the read-only client for the external identity
// provider's user directory.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"chirp-lab/domain"
	errs "chirp-lab/errors"
)

// IIdentityDirectory resolves author identifiers to identity records in one
// batched call. The result order is not guaranteed to match the input, and
// unknown identifiers are simply absent from the result.
type IIdentityDirectory interface {
	LookupByIDs(ctx context.Context, ids []string, limit int) ([]domain.IdentityRecord, error)
}

// Client talks to the directory's REST surface. Every call carries a bounded
// timeout; the directory is treated as eventually consistent and is never
// retried here.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *slog.Logger
}

func NewClient(baseURL, token string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type identityPayload struct {
	ID              string  `json:"id"`
	Username        *string `json:"username"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// LookupByIDs fetches identity records for a set of author identifiers.
func (c *Client) LookupByIDs(ctx context.Context, ids []string, limit int) ([]domain.IdentityRecord, error) {
	query := url.Values{}
	for _, id := range ids {
		query.Add("user_id", id)
	}
	query.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/users?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDirectoryUnavailable, err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("identity directory unreachable", "error", err)
		return nil, fmt.Errorf("%w: %v", errs.ErrDirectoryUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("identity directory returned an error", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", errs.ErrDirectoryUnavailable, resp.StatusCode)
	}

	var payload []identityPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDirectoryUnavailable, err)
	}

	records := make([]domain.IdentityRecord, 0, len(payload))
	for _, p := range payload {
		records = append(records, domain.IdentityRecord{
			ID:              p.ID,
			Username:        p.Username,
			ProfileImageURL: p.ProfileImageURL,
		})
	}
	return records, nil
}
