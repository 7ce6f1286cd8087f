package songs

import (
	"context"
	"errors"

	"vtubemusic/internal/app/envelope"
	"vtubemusic/internal/logging"
	"vtubemusic/internal/store"
)

// Store is the persistence surface used by the song service.
type Store interface {
	CountSongs(ctx context.Context) (int64, error)
	GetArtistByName(ctx context.Context, name string) (store.Artist, error)
	CreateSong(ctx context.Context, song store.Song) (store.Song, error)
}

// AddInput carries the fields of a new song. The owning artist is named,
// not referenced by id.
type AddInput struct {
	VID        string
	ArtistName string
	UploadedAt *string
	Type       *string
	Image      *string
	Link       *string
	Title      string
	Name       string
}

// Result is the envelope for a created song.
type Result struct {
	envelope.Envelope
	Song *store.Song `json:"song,omitempty"`
}

// Service exposes song operations.
type Service interface {
	CheckConnection(ctx context.Context) envelope.Connection
	Add(ctx context.Context, in AddInput) Result
}

type service struct {
	store Store
}

// New constructs a song Service backed by the provided store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) CheckConnection(ctx context.Context) envelope.Connection {
	if err := ctx.Err(); err != nil {
		return envelope.Disconnected(err)
	}

	count, err := s.store.CountSongs(ctx)
	if err != nil {
		logging.WithContext(ctx).Error().Err(err).Msg("song connection check failed")
		return envelope.Disconnected(err)
	}
	return envelope.Connected("Song", count)
}

func (s *service) Add(ctx context.Context, in AddInput) Result {
	if err := ctx.Err(); err != nil {
		return Result{Envelope: envelope.Errorf("add song failed: %v", err)}
	}

	log := logging.WithContext(ctx)

	artist, err := s.store.GetArtistByName(ctx, in.ArtistName)
	if err != nil {
		log.Error().Err(err).Str("artist_name", in.ArtistName).Msg("add song: artist lookup failed")
		if errors.Is(err, store.ErrNotFound) {
			return Result{Envelope: envelope.Errorf("artist not found: artist_name=%s", in.ArtistName)}
		}
		return Result{Envelope: envelope.Errorf("add song failed: %v", err)}
	}

	song, err := s.store.CreateSong(ctx, store.Song{
		VID:        in.VID,
		Title:      in.Title,
		Name:       in.Name,
		Link:       in.Link,
		Image:      in.Image,
		Type:       in.Type,
		UploadedAt: in.UploadedAt,
		Artist:     &artist,
	})
	if err != nil {
		log.Error().Err(err).Str("vId", in.VID).Msg("add song failed")
		return Result{Envelope: envelope.Errorf("add song failed: %v", err)}
	}

	log.Info().Int64("song_id", song.ID).Int64("artist_id", artist.ID).Msg("song added")
	return Result{Envelope: envelope.Success("song added"), Song: &song}
}
