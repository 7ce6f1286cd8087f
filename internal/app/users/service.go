package users

import (
	"context"

	"vtubemusic/internal/app/envelope"
	"vtubemusic/internal/logging"
)

// Counter exposes the only user query this service needs.
type Counter interface {
	CountUsers(ctx context.Context) (int64, error)
}

// Service exposes user table operations. Users are created elsewhere.
type Service interface {
	CheckConnection(ctx context.Context) envelope.Connection
}

type service struct {
	store Counter
}

// New constructs a user Service backed by the provided counter.
func New(store Counter) Service {
	return &service{store: store}
}

func (s *service) CheckConnection(ctx context.Context) envelope.Connection {
	if err := ctx.Err(); err != nil {
		return envelope.Disconnected(err)
	}

	count, err := s.store.CountUsers(ctx)
	if err != nil {
		logging.WithContext(ctx).Error().Err(err).Msg("user connection check failed")
		return envelope.Disconnected(err)
	}
	return envelope.Connected("User", count)
}
