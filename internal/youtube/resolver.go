package youtube

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Video is the metadata used to prefill a song.
type Video struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
	Thumbnail    string `json:"thumbnail"`
	ViewCount    int64  `json:"viewCount"`
	LikeCount    int64  `json:"likeCount"`
	PublishedAt  string `json:"publishedAt"`
}

// Channel is the metadata used to set an artist thumbnail.
type Channel struct {
	ChannelID       string `json:"channelId"`
	ChannelName     string `json:"channelName"`
	ChannelImage    string `json:"channelImage"`
	ChannelImageURL string `json:"channelImageUrl"`
}

// Resolver turns pasted URLs into metadata. Each call issues its requests
// sequentially and never retries.
type Resolver struct {
	client *Client
}

// NewResolver wraps a Data API client.
func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client}
}

// VideoFromURL extracts the id from a pasted URL and resolves it.
func (r *Resolver) VideoFromURL(ctx context.Context, rawURL string) (Video, error) {
	id := ExtractVideoID(rawURL)
	if id == "" {
		return Video{}, ErrInvalidVideoURL
	}
	return r.Video(ctx, id)
}

// Video resolves one video id.
func (r *Resolver) Video(ctx context.Context, videoID string) (Video, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return Video{}, ErrInvalidVideoURL
	}
	if !r.client.HasAPIKey() {
		return Video{}, ErrMissingAPIKey
	}

	items, err := r.client.Video(ctx, videoID)
	if err != nil {
		return Video{}, err
	}
	if len(items) == 0 {
		return Video{}, fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
	}

	item := items[0]
	return Video{
		VideoID:      videoID,
		Title:        item.Snippet.Title,
		ChannelTitle: item.Snippet.ChannelTitle,
		Thumbnail:    item.Snippet.Thumbnails.Best(),
		ViewCount:    parseCount(item.Statistics.ViewCount),
		LikeCount:    parseCount(item.Statistics.LikeCount),
		PublishedAt:  item.Snippet.PublishedAt,
	}, nil
}

// Channel resolves a channel URL. Legacy /c/ and /user/ names go through
// search first. A handle lookup the API rejects falls back to searching for
// the handle.
func (r *Resolver) Channel(ctx context.Context, rawURL string) (Channel, error) {
	if strings.TrimSpace(rawURL) == "" {
		return Channel{}, ErrInvalidChannelURL
	}
	if !r.client.HasAPIKey() {
		return Channel{}, ErrMissingAPIKey
	}

	ref, ok := ParseChannelURL(rawURL)
	if !ok {
		return Channel{}, ErrInvalidChannelURL
	}

	var (
		items []ChannelItem
		err   error
	)
	switch ref.Kind {
	case ChannelByID:
		items, err = r.client.ChannelByID(ctx, ref.Value)
	case ChannelByHandle:
		items, err = r.channelByHandle(ctx, ref.Value)
	case ChannelByLegacyName:
		var id string
		id, err = r.client.SearchChannel(ctx, ref.Value)
		if err != nil || id == "" {
			return Channel{}, ErrInvalidChannelURL
		}
		items, err = r.client.ChannelByID(ctx, id)
	}
	if err != nil {
		return Channel{}, err
	}
	if len(items) == 0 {
		return Channel{}, fmt.Errorf("%w: %s", ErrChannelNotFound, ref.Value)
	}

	image := items[0].Snippet.Thumbnails.Best()
	return Channel{
		ChannelID:       items[0].ID,
		ChannelName:     items[0].Snippet.Title,
		ChannelImage:    image,
		ChannelImageURL: image,
	}, nil
}

func (r *Resolver) channelByHandle(ctx context.Context, handle string) ([]ChannelItem, error) {
	items, err := r.client.ChannelByHandle(ctx, handle)
	var apiErr *APIError
	if err == nil || !errors.As(err, &apiErr) {
		return items, err
	}

	id, searchErr := r.client.SearchChannel(ctx, handle)
	if searchErr != nil || id == "" {
		return nil, err
	}
	return r.client.ChannelByID(ctx, id)
}

func parseCount(raw string) int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
