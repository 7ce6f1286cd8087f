package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Group is a collective of artists tied to one streaming platform.
type Group struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Link       *string   `json:"link"`
	PlatformID *string   `json:"platform_id"`
	CreatedAt  time.Time `json:"created_at"`
	Artists    []Artist  `json:"artists,omitempty"`
}

// GroupFilter narrows ListGroups. An empty PlatformID matches every group.
type GroupFilter struct {
	PlatformID string
}

// ListGroups returns groups with their artists attached.
func (s *Store) ListGroups(ctx context.Context, filter GroupFilter) ([]Group, error) {
	query := `
		SELECT g.id, g.name, g.link, g.platform_id, g.created_at,
		       a.id, a.name, a.platform_id, a.platform_link, a.youtube_link, a.thumbnail
		FROM "Group" g
		LEFT JOIN "Artist" a ON a.group_id = g.id`
	var args []any
	if filter.PlatformID != "" {
		query += ` WHERE g.platform_id = $1`
		args = append(args, filter.PlatformID)
	}
	query += ` ORDER BY g.id, a.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	groups := []Group{}
	index := make(map[int64]int)
	for rows.Next() {
		var (
			group      Group
			artistID   sql.NullInt64
			artistName sql.NullString
			artist     Artist
		)
		if err := rows.Scan(
			&group.ID, &group.Name, &group.Link, &group.PlatformID, &group.CreatedAt,
			&artistID, &artistName, &artist.PlatformID, &artist.PlatformLink, &artist.YoutubeLink, &artist.Thumbnail,
		); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}

		pos, ok := index[group.ID]
		if !ok {
			pos = len(groups)
			index[group.ID] = pos
			groups = append(groups, group)
		}

		if artistID.Valid {
			artist.ID = artistID.Int64
			artist.Name = artistName.String
			groups[pos].Artists = append(groups[pos].Artists, artist)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}

	return groups, nil
}

// GetGroup returns a single group without its artists.
func (s *Store) GetGroup(ctx context.Context, id int64) (Group, error) {
	var group Group
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, link, platform_id, created_at
		FROM "Group"
		WHERE id = $1
	`, id).Scan(&group.ID, &group.Name, &group.Link, &group.PlatformID, &group.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Group{}, fmt.Errorf("group %d: %w", id, ErrNotFound)
		}
		return Group{}, fmt.Errorf("get group: %w", err)
	}
	return group, nil
}

// CreateGroup inserts a group and returns it with its generated fields.
func (s *Store) CreateGroup(ctx context.Context, group Group) (Group, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO "Group" (name, link, platform_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, group.Name, group.Link, group.PlatformID).Scan(&group.ID, &group.CreatedAt)
	if err != nil {
		return Group{}, fmt.Errorf("insert group: %w", err)
	}
	return group, nil
}

// SeedGroups inserts all groups in one transaction.
func (s *Store) SeedGroups(ctx context.Context, groups []Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	for _, group := range groups {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO "Group" (name, link, platform_id)
			VALUES ($1, $2, $3)
		`, group.Name, group.Link, group.PlatformID); err != nil {
			return fmt.Errorf("insert demo group %q: %w", group.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	tx = nil

	return nil
}
