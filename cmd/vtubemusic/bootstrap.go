package main

import (
	"context"
	"fmt"

	"vtubemusic/internal/logging"
	"vtubemusic/internal/store"
)

type bootstrapStore interface {
	CountUsers(ctx context.Context) (int64, error)
	CountGroups(ctx context.Context) (int64, error)
	SeedGroups(ctx context.Context, groups []store.Group) error
}

// bootstrap reports the user count on start and, when seeding is enabled,
// fills an empty group table with the demo groups. Only seeding errors are
// returned.
func bootstrap(ctx context.Context, dataStore bootstrapStore, seed bool) error {
	logger := logging.WithContext(ctx)

	// An unreachable user table is reported but does not stop the server.
	if userCount, err := dataStore.CountUsers(ctx); err != nil {
		logger.Error().Err(err).Msg("count users failed, database may be unreachable")
	} else {
		logger.Info().Int64("users", userCount).Msg("database ready")
	}

	if !seed {
		return nil
	}

	groupCount, err := dataStore.CountGroups(ctx)
	if err != nil {
		return fmt.Errorf("count groups: %w", err)
	}
	if groupCount > 0 {
		logger.Debug().Int64("groups", groupCount).Msg("groups present, skipping demo seed")
		return nil
	}

	groups := demoGroups()
	if err := dataStore.SeedGroups(ctx, groups); err != nil {
		return fmt.Errorf("seed demo groups: %w", err)
	}
	logger.Info().Int("groups", len(groups)).Msg("seeded demo groups")
	return nil
}

func demoGroups() []store.Group {
	seeds := []struct {
		name     string
		platform string
	}{
		{"아카시아", "1"},
		{"에스더", "2"},
		{"블루점프", "3"},
		{"허니즈", "1"},
		{"이세돌", "2"},
		{"미츄", "3"},
		{"PJX", "1"},
		{"VLYZ", "2"},
		{"스텔라이브", "3"},
	}

	groups := make([]store.Group, 0, len(seeds))
	for _, s := range seeds {
		platform := s.platform
		groups = append(groups, store.Group{Name: s.name, PlatformID: &platform})
	}
	return groups
}
