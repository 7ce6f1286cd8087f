package artists

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"vtubemusic/internal/app/envelope"
	"vtubemusic/internal/logging"
	"vtubemusic/internal/store"
)

// Store is the persistence surface used by the artist service.
type Store interface {
	CountArtists(ctx context.Context) (int64, error)
	GetArtistByName(ctx context.Context, name string) (store.Artist, error)
	ListSongsByArtist(ctx context.Context, artistID int64) ([]store.Song, error)
	GetGroup(ctx context.Context, id int64) (store.Group, error)
	CreateArtist(ctx context.Context, artist store.Artist) (store.Artist, error)
	UpdateArtistThumbnail(ctx context.Context, id int64, thumbnail string) error
}

// AddInput carries the fields of a new artist. GroupID arrives as text and
// is resolved before anything is written.
type AddInput struct {
	Name         string
	GroupID      string
	PlatformLink *string
	PlatformID   *string
	YoutubeLink  *string
}

// Result is the envelope for a single artist.
type Result struct {
	envelope.Envelope
	Artist *store.Artist `json:"artist,omitempty"`
}

// Service exposes artist operations.
type Service interface {
	CheckConnection(ctx context.Context) envelope.Connection
	Get(ctx context.Context, name string) Result
	Add(ctx context.Context, in AddInput) Result
	UpdateThumbnail(ctx context.Context, name, thumbnail string) Result
}

type service struct {
	store Store
}

// New constructs an artist Service backed by the provided store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) CheckConnection(ctx context.Context) envelope.Connection {
	if err := ctx.Err(); err != nil {
		return envelope.Disconnected(err)
	}

	count, err := s.store.CountArtists(ctx)
	if err != nil {
		logging.WithContext(ctx).Error().Err(err).Msg("artist connection check failed")
		return envelope.Disconnected(err)
	}
	return envelope.Connected("Artist", count)
}

// Get returns the artist with its group and songs.
func (s *service) Get(ctx context.Context, name string) Result {
	if err := ctx.Err(); err != nil {
		return fail(ctx, err, "get artist failed: %v", err)
	}

	artist, err := s.store.GetArtistByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(ctx, err, "artist not found: name=%s", name)
		}
		return fail(ctx, err, "get artist failed: %v", err)
	}

	songs, err := s.store.ListSongsByArtist(ctx, artist.ID)
	if err != nil {
		return fail(ctx, err, "get artist failed: %v", err)
	}
	artist.Songs = songs

	return Result{Envelope: envelope.Success(""), Artist: &artist}
}

// Add resolves the group first; a missing group leaves the table untouched.
func (s *service) Add(ctx context.Context, in AddInput) Result {
	if err := ctx.Err(); err != nil {
		return fail(ctx, err, "add artist failed: %v", err)
	}

	// Strict parse: "12abc" or "1.0" are rejected as a missing group rather
	// than truncated to a leading number.
	groupID, err := strconv.ParseInt(strings.TrimSpace(in.GroupID), 10, 64)
	if err != nil {
		return fail(ctx, err, "group not found: group_id=%s", in.GroupID)
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(ctx, err, "group not found: group_id=%s", in.GroupID)
		}
		return fail(ctx, err, "add artist failed: %v", err)
	}

	artist, err := s.store.CreateArtist(ctx, store.Artist{
		Name:         in.Name,
		PlatformID:   in.PlatformID,
		PlatformLink: in.PlatformLink,
		YoutubeLink:  in.YoutubeLink,
		Group:        &group,
	})
	if err != nil {
		return fail(ctx, err, "add artist failed: %v", err)
	}

	logging.WithContext(ctx).Info().Int64("artist_id", artist.ID).Int64("group_id", group.ID).Msg("artist added")
	return Result{Envelope: envelope.Success("artist added"), Artist: &artist}
}

// UpdateThumbnail stores a new image for the named artist.
func (s *service) UpdateThumbnail(ctx context.Context, name, thumbnail string) Result {
	if err := ctx.Err(); err != nil {
		return fail(ctx, err, "update thumbnail failed: %v", err)
	}

	artist, err := s.store.GetArtistByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(ctx, err, "artist not found: name=%s", name)
		}
		return fail(ctx, err, "update thumbnail failed: %v", err)
	}

	if err := s.store.UpdateArtistThumbnail(ctx, artist.ID, thumbnail); err != nil {
		return fail(ctx, err, "update thumbnail failed: %v", err)
	}
	artist.Thumbnail = &thumbnail

	return Result{Envelope: envelope.Success("thumbnail updated"), Artist: &artist}
}

func fail(ctx context.Context, err error, format string, args ...any) Result {
	env := envelope.Errorf(format, args...)
	logging.WithContext(ctx).Error().Err(err).Msg(env.Message)
	return Result{Envelope: env}
}
