// Package youtube resolves video and channel metadata through the YouTube
// Data API v3.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Data API endpoint.
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

var (
	ErrMissingAPIKey     = errors.New("youtube api key is not configured")
	ErrInvalidVideoURL   = errors.New("invalid video url")
	ErrInvalidChannelURL = errors.New("invalid channel url")
	ErrVideoNotFound     = errors.New("video not found")
	ErrChannelNotFound   = errors.New("channel not found")
	ErrFetch             = errors.New("youtube api request failed")
)

// APIError is a non-2xx answer from the Data API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("youtube api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("youtube api error: status %d", e.StatusCode)
}

// Thumbnail is one rendition of an image.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Thumbnails lists the renditions the API may return.
type Thumbnails struct {
	Default  *Thumbnail `json:"default"`
	Medium   *Thumbnail `json:"medium"`
	High     *Thumbnail `json:"high"`
	Standard *Thumbnail `json:"standard"`
	Maxres   *Thumbnail `json:"maxres"`
}

// Best returns the URL of the largest rendition present.
func (t Thumbnails) Best() string {
	for _, thumb := range []*Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if thumb != nil && thumb.URL != "" {
			return thumb.URL
		}
	}
	return ""
}

// Snippet is the descriptive part shared by videos and channels.
type Snippet struct {
	Title        string     `json:"title"`
	ChannelTitle string     `json:"channelTitle"`
	PublishedAt  string     `json:"publishedAt"`
	Thumbnails   Thumbnails `json:"thumbnails"`
}

// Statistics holds counters, which the API encodes as decimal strings.
type Statistics struct {
	ViewCount string `json:"viewCount"`
	LikeCount string `json:"likeCount"`
}

// VideoItem is an entry of a videos.list response.
type VideoItem struct {
	ID         string     `json:"id"`
	Snippet    Snippet    `json:"snippet"`
	Statistics Statistics `json:"statistics"`
}

// ChannelItem is an entry of a channels.list response.
type ChannelItem struct {
	ID      string  `json:"id"`
	Snippet Snippet `json:"snippet"`
}

type searchItem struct {
	ID struct {
		ChannelID string `json:"channelId"`
	} `json:"id"`
}

// Client calls the Data API with an API key.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero or less disables it.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		} else {
			c.limiter = nil
		}
	}
}

// NewClient creates a Data API client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasAPIKey reports whether requests can be made at all.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// Video fetches snippet and statistics of one video.
func (c *Client) Video(ctx context.Context, id string) ([]VideoItem, error) {
	var resp struct {
		Items []VideoItem `json:"items"`
	}
	params := url.Values{"id": {id}, "part": {"snippet,statistics"}}
	if err := c.doRequest(ctx, "/videos", params, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// ChannelByID fetches the snippet of a channel by id.
func (c *Client) ChannelByID(ctx context.Context, id string) ([]ChannelItem, error) {
	return c.channels(ctx, url.Values{"id": {id}, "part": {"snippet"}})
}

// ChannelByHandle fetches the snippet of a channel by its "@" handle.
func (c *Client) ChannelByHandle(ctx context.Context, handle string) ([]ChannelItem, error) {
	return c.channels(ctx, url.Values{"forHandle": {handle}, "part": {"snippet"}})
}

func (c *Client) channels(ctx context.Context, params url.Values) ([]ChannelItem, error) {
	var resp struct {
		Items []ChannelItem `json:"items"`
	}
	if err := c.doRequest(ctx, "/channels", params, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// SearchChannel returns the id of the first channel matching query, or ""
// when the search has no hits.
func (c *Client) SearchChannel(ctx context.Context, query string) (string, error) {
	var resp struct {
		Items []searchItem `json:"items"`
	}
	params := url.Values{
		"q":          {query},
		"type":       {"channel"},
		"part":       {"snippet"},
		"maxResults": {"1"},
	}
	if err := c.doRequest(ctx, "/search", params, &resp); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", nil
	}
	return resp.Items[0].ID.ChannelID, nil
}

func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: wait for quota: %w", ErrFetch, err)
		}
	}

	params.Set("key", c.apiKey)
	apiURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetch, redactKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			apiErr.Message = errResp.Error.Message
		}
		return fmt.Errorf("%w: %w", ErrFetch, apiErr)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrFetch, err)
	}
	return nil
}

// redactKey keeps the API key out of transport errors, which embed the URL.
func redactKey(err error, key string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return errors.New(strings.ReplaceAll(urlErr.Error(), key, "REDACTED"))
	}
	return err
}
