package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"vtubemusic/internal/app/artists"
	"vtubemusic/internal/app/groups"
	"vtubemusic/internal/app/health"
	"vtubemusic/internal/app/songs"
	"vtubemusic/internal/app/users"
	"vtubemusic/internal/config"
	"vtubemusic/internal/http/middleware"
	"vtubemusic/internal/httpapi"
	"vtubemusic/internal/store"
	"vtubemusic/internal/web"
	"vtubemusic/internal/youtube"
)

type services struct {
	users   users.Service
	groups  groups.Service
	artists artists.Service
	songs   songs.Service
	health  health.Service
}

func newServices(cfg config.DatabaseConfig, dataStore *store.Store) services {
	name, host, port := cfg.Endpoint()
	return services{
		users:   users.New(dataStore),
		groups:  groups.New(dataStore),
		artists: artists.New(dataStore),
		songs:   songs.New(dataStore),
		health:  health.New(dataStore, health.Target{Database: name, Host: host, Port: port}),
	}
}

func newResolver(cfg config.YouTubeConfig) *youtube.Resolver {
	opts := []youtube.Option{youtube.WithRateLimit(cfg.RequestsPerSecond)}
	if cfg.BaseURL != "" {
		opts = append(opts, youtube.WithBaseURL(cfg.BaseURL))
	}

	client := youtube.NewClient(cfg.APIKey, opts...)
	if !client.HasAPIKey() {
		log.Warn().Msg("YOUTUBE_API_KEY not set, metadata lookups will fail")
	}
	return youtube.NewResolver(client)
}

func newHTTPHandler(cfg *config.Config, svc services, resolver *youtube.Resolver) (http.Handler, error) {
	router := mux.NewRouter()
	httpapi.New(svc.users, svc.groups, svc.artists, svc.songs, svc.health, resolver).Register(router)

	pages, err := web.New(svc.groups, svc.artists, svc.songs, resolver)
	if err != nil {
		return nil, err
	}
	pages.Register(router)

	// Wrapped outside the router so preflight requests never reach method matching.
	var handler http.Handler = router
	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.Recovery()(handler)
	return handler, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	dataStore := store.New(db)
	if err := bootstrap(ctx, dataStore, cfg.SeedDemo); err != nil {
		return err
	}

	handler, err := newHTTPHandler(cfg, newServices(cfg.Database, dataStore), newResolver(cfg.YouTube))
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
