package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Artist is a performer, optionally belonging to a group.
type Artist struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	PlatformID   *string `json:"platform_id"`
	PlatformLink *string `json:"platform_link"`
	YoutubeLink  *string `json:"youtube_link"`
	Thumbnail    *string `json:"thumbnail"`
	Group        *Group  `json:"group,omitempty"`
	// Songs keeps the "song" key the artist page reads.
	Songs []Song `json:"song,omitempty"`
}

// GetArtistByName returns the first artist with exactly this name, with its
// group attached. Songs are not loaded.
func (s *Store) GetArtistByName(ctx context.Context, name string) (Artist, error) {
	var (
		artist         Artist
		groupID        sql.NullInt64
		groupName      sql.NullString
		groupLink      *string
		groupPlatform  *string
		groupCreatedAt sql.NullTime
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.name, a.platform_id, a.platform_link, a.youtube_link, a.thumbnail,
		       g.id, g.name, g.link, g.platform_id, g.created_at
		FROM "Artist" a
		LEFT JOIN "Group" g ON g.id = a.group_id
		WHERE a.name = $1
		ORDER BY a.id
		LIMIT 1
	`, name).Scan(
		&artist.ID, &artist.Name, &artist.PlatformID, &artist.PlatformLink, &artist.YoutubeLink, &artist.Thumbnail,
		&groupID, &groupName, &groupLink, &groupPlatform, &groupCreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Artist{}, fmt.Errorf("artist %q: %w", name, ErrNotFound)
		}
		return Artist{}, fmt.Errorf("get artist: %w", err)
	}

	if groupID.Valid {
		artist.Group = &Group{
			ID:         groupID.Int64,
			Name:       groupName.String,
			Link:       groupLink,
			PlatformID: groupPlatform,
			CreatedAt:  groupCreatedAt.Time,
		}
	}

	return artist, nil
}

// CreateArtist inserts an artist linked to artist.Group.
func (s *Store) CreateArtist(ctx context.Context, artist Artist) (Artist, error) {
	if artist.Group == nil {
		return Artist{}, fmt.Errorf("create artist: group: %w", ErrMissingRelation)
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO "Artist" (name, platform_id, platform_link, youtube_link, thumbnail, group_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, artist.Name, artist.PlatformID, artist.PlatformLink, artist.YoutubeLink, artist.Thumbnail, artist.Group.ID).Scan(&artist.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return Artist{}, fmt.Errorf("insert artist: group %d: %w", artist.Group.ID, ErrMissingRelation)
		}
		return Artist{}, fmt.Errorf("insert artist: %w", err)
	}

	return artist, nil
}

// UpdateArtistThumbnail replaces the thumbnail of one artist.
func (s *Store) UpdateArtistThumbnail(ctx context.Context, id int64, thumbnail string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE "Artist"
		SET thumbnail = $1
		WHERE id = $2
	`, thumbnail, id)
	if err != nil {
		return fmt.Errorf("update thumbnail: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("artist %d: %w", id, ErrNotFound)
	}
	return nil
}
