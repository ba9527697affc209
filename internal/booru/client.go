// Package booru provides a client for e621-compatible image-board JSON APIs.
package booru

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNoResults is returned when a search matches no posts.
var ErrNoResults = errors.New("no posts found")

// Client is an image-board API client.
type Client struct {
	baseURL   string
	userAgent string

	// api serves the JSON endpoints under a total deadline. stream
	// serves image bodies, which can take arbitrarily long to arrive,
	// so only the response headers get a deadline there.
	api    *http.Client
	stream *http.Client
}

// New creates a new client for the given board. Boards require a
// descriptive User-Agent and will reject generic ones.
func New(baseURL, userAgent string) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		api: &http.Client{
			Timeout: 10 * time.Second,
		},
		stream: &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: 10 * time.Second,
			},
		},
	}
}

// SearchPosts returns posts matching the tag expression, newest first.
func (c *Client) SearchPosts(ctx context.Context, tags string, limit int) ([]Post, error) {
	params := url.Values{}
	params.Set("tags", tags)
	params.Set("limit", fmt.Sprintf("%d", limit))

	reqURL := fmt.Sprintf("%s/posts.json?%s", c.baseURL, params.Encode())

	var result postsResponse
	if err := c.getJSON(ctx, reqURL, &result); err != nil {
		return nil, err
	}
	if len(result.Posts) == 0 {
		return nil, ErrNoResults
	}
	return result.Posts, nil
}

// GetPost fetches a single post by ID.
func (c *Client) GetPost(ctx context.Context, id int64) (*Post, error) {
	reqURL := fmt.Sprintf("%s/posts/%d.json", c.baseURL, id)

	var result postResponse
	if err := c.getJSON(ctx, reqURL, &result); err != nil {
		return nil, err
	}
	return &result.Post, nil
}

// FetchBytes downloads a URL into memory. Used for image bytes; the
// board's image hosts don't need the JSON accept header, only our UA.
// Cancellation is the caller's context, not a wall-clock deadline.
func (c *Client) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.api.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
