// Package placeholder is the client for the remote JSONPlaceholder-style
// ingestion source. It fetches the users, posts and comments resources
// and decodes them into store records; retry and backoff are left to the
// operator re-issuing /load.
package placeholder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/placedex/placedex/store"
)

// Client fetches records from the remote source.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Snapshot is one full ingestion of the remote source.
type Snapshot struct {
	Users    []*store.User
	Posts    []*store.Post
	Comments []*store.Comment
}

// NewClient creates a client for the source rooted at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch retrieves the three resources concurrently and returns the full
// snapshot, or the first error.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	snapshot := &Snapshot{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.getJSON(ctx, "/users", &snapshot.Users)
	})
	g.Go(func() error {
		return c.getJSON(ctx, "/posts", &snapshot.Posts)
	})
	g.Go(func() error {
		return c.getJSON(ctx, "/comments", &snapshot.Comments)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to build request for %s", url)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &HTTPError{URL: url, StatusCode: resp.StatusCode, Body: body}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "failed to decode %s", url)
	}
	return nil
}

// HTTPError captures an unexpected status code and response body.
type HTTPError struct {
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s: %s", e.StatusCode, e.URL, string(e.Body))
}
