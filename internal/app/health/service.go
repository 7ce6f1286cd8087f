package health

import (
	"context"

	"vtubemusic/internal/app/envelope"
	"vtubemusic/internal/logging"
)

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Target names the database being checked. It carries no credentials.
type Target struct {
	Database string
	Host     string
	Port     int
}

// Result is the application-level database check.
type Result struct {
	envelope.Connection
	Database string `json:"database"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
}

// Service exposes the application health check.
type Service interface {
	Check(ctx context.Context) Result
}

type service struct {
	db     Pinger
	target Target
}

// New constructs a health Service.
func New(db Pinger, target Target) Service {
	return &service{db: db, target: target}
}

func (s *service) Check(ctx context.Context) Result {
	result := Result{
		Database: s.target.Database,
		Host:     s.target.Host,
		Port:     s.target.Port,
	}

	err := ctx.Err()
	if err == nil {
		err = s.db.Ping(ctx)
	}
	if err != nil {
		logging.WithContext(ctx).Error().Err(err).Str("host", s.target.Host).Msg("database health check failed")
		result.Connection = envelope.Disconnected(err)
		return result
	}

	result.Connection = envelope.Connection{
		Envelope:  envelope.Success("database connection succeeded"),
		Connected: true,
	}
	return result
}
