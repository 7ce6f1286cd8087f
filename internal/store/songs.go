package store

import (
	"context"
	"fmt"
)

// Song is one uploaded video attributed to an artist.
type Song struct {
	ID         int64   `json:"id"`
	VID        string  `json:"vId"`
	Title      string  `json:"title"`
	Name       string  `json:"name"`
	Link       *string `json:"link"`
	Image      *string `json:"image"`
	Type       *string `json:"type"`
	UploadedAt *string `json:"uploaded_at"`
	Artist     *Artist `json:"artist,omitempty"`
}

// ListSongsByArtist returns every song of the artist in insertion order.
func (s *Store) ListSongsByArtist(ctx context.Context, artistID int64) ([]Song, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, "vId", title, name, link, image, type, uploaded_at
		FROM "Song"
		WHERE artist_id = $1
		ORDER BY id
	`, artistID)
	if err != nil {
		return nil, fmt.Errorf("query songs: %w", err)
	}
	defer rows.Close()

	songs := []Song{}
	for rows.Next() {
		var song Song
		if err := rows.Scan(&song.ID, &song.VID, &song.Title, &song.Name, &song.Link, &song.Image, &song.Type, &song.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}

	return songs, nil
}

// CreateSong inserts a song linked to song.Artist.
func (s *Store) CreateSong(ctx context.Context, song Song) (Song, error) {
	if song.Artist == nil {
		return Song{}, fmt.Errorf("create song: artist: %w", ErrMissingRelation)
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO "Song" ("vId", title, name, link, image, type, uploaded_at, artist_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, song.VID, song.Title, song.Name, song.Link, song.Image, song.Type, song.UploadedAt, song.Artist.ID).Scan(&song.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return Song{}, fmt.Errorf("insert song: artist %d: %w", song.Artist.ID, ErrMissingRelation)
		}
		return Song{}, fmt.Errorf("insert song: %w", err)
	}

	return song, nil
}
