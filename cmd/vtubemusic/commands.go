package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"vtubemusic/internal/config"
	"vtubemusic/internal/logging"
	"vtubemusic/internal/store"
	"vtubemusic/internal/youtube"
)

func runMigrate(ctx context.Context, cmd *cli.Command) error {
	direction, err := store.ParseDirection(cmd.Args().First())
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := openMigrationDatabase(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Migrate(db, direction); err != nil {
		return err
	}
	log.Info().Str("direction", string(direction)).Msg("migrations applied")
	return nil
}

// checkReport collects one result per connection check.
type checkReport struct {
	Health any `json:"health"`
	User   any `json:"user"`
	Group  any `json:"group"`
	Artist any `json:"artist"`
	Song   any `json:"song"`
}

func runCheck(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	report, ok := collectChecks(ctx, newServices(cfg.Database, store.New(db)))
	if err := printJSON(cmd.Root().Writer, report); err != nil {
		return err
	}
	if !ok {
		return cli.Exit("one or more checks failed", 1)
	}
	return nil
}

func collectChecks(ctx context.Context, svc services) (checkReport, bool) {
	healthResult := svc.health.Check(ctx)
	userResult := svc.users.CheckConnection(ctx)
	groupResult := svc.groups.CheckConnection(ctx)
	artistResult := svc.artists.CheckConnection(ctx)
	songResult := svc.songs.CheckConnection(ctx)

	ok := healthResult.Connected && userResult.Connected && groupResult.Connected &&
		artistResult.Connected && songResult.Connected

	return checkReport{
		Health: healthResult,
		User:   userResult,
		Group:  groupResult,
		Artist: artistResult,
		Song:   songResult,
	}, ok
}

func resolveVideo(ctx context.Context, cmd *cli.Command) error {
	rawURL := cmd.Args().First()
	if rawURL == "" {
		return errors.New("a video URL is required")
	}

	resolver, err := resolverFromEnv(cmd)
	if err != nil {
		return err
	}

	video, err := resolver.VideoFromURL(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("resolve video: %w", err)
	}
	return printJSON(cmd.Root().Writer, video)
}

func resolveChannel(ctx context.Context, cmd *cli.Command) error {
	rawURL := cmd.Args().First()
	if rawURL == "" {
		return errors.New("a channel URL is required")
	}

	resolver, err := resolverFromEnv(cmd)
	if err != nil {
		return err
	}

	channel, err := resolver.Channel(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("resolve channel: %w", err)
	}
	return printJSON(cmd.Root().Writer, channel)
}

func resolverFromEnv(cmd *cli.Command) (*youtube.Resolver, error) {
	cfg, err := config.LoadYouTube(cmd.String("env-file"))
	if err != nil {
		return nil, fmt.Errorf("load youtube config: %w", err)
	}
	logging.SetGlobalLogger(logging.New(logging.Config{Output: cmd.Root().ErrWriter}))
	return newResolver(cfg), nil
}

func printJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(payload)
}
