package groups

import (
	"context"
	"encoding/json"

	"vtubemusic/internal/app/envelope"
	"vtubemusic/internal/logging"
	"vtubemusic/internal/store"
)

// Store is the persistence surface used by the group service.
type Store interface {
	CountGroups(ctx context.Context) (int64, error)
	ListGroups(ctx context.Context, filter store.GroupFilter) ([]store.Group, error)
	CreateGroup(ctx context.Context, group store.Group) (store.Group, error)
}

// AddInput carries the fields of a new group. Nil pointers become NULL.
type AddInput struct {
	Name       string
	Link       *string
	PlatformID *string
}

// ListResult is the envelope for a group listing.
type ListResult struct {
	envelope.Envelope
	Groups []store.Group `json:"groups"`
}

// MarshalJSON drops the groups key from error envelopes.
func (r ListResult) MarshalJSON() ([]byte, error) {
	if !r.OK() {
		return json.Marshal(r.Envelope)
	}
	type plain ListResult
	return json.Marshal(plain(r))
}

// AddResult is the envelope for a created group.
type AddResult struct {
	envelope.Envelope
	Group *store.Group `json:"group,omitempty"`
}

// Service exposes group operations.
type Service interface {
	CheckConnection(ctx context.Context) envelope.Connection
	List(ctx context.Context, platformID string) ListResult
	Add(ctx context.Context, in AddInput) AddResult
}

type service struct {
	store Store
}

// New constructs a group Service backed by the provided store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) CheckConnection(ctx context.Context) envelope.Connection {
	if err := ctx.Err(); err != nil {
		return envelope.Disconnected(err)
	}

	count, err := s.store.CountGroups(ctx)
	if err != nil {
		logging.WithContext(ctx).Error().Err(err).Msg("group connection check failed")
		return envelope.Disconnected(err)
	}
	return envelope.Connected("Group", count)
}

// List returns every group, or only those of one platform when platformID is
// non-empty, each with its artists.
func (s *service) List(ctx context.Context, platformID string) ListResult {
	if err := ctx.Err(); err != nil {
		return ListResult{Envelope: envelope.Errorf("list groups failed: %v", err)}
	}

	groups, err := s.store.ListGroups(ctx, store.GroupFilter{PlatformID: platformID})
	if err != nil {
		logging.WithContext(ctx).Error().Err(err).Str("platform_id", platformID).Msg("list groups failed")
		return ListResult{Envelope: envelope.Errorf("list groups failed: %v", err)}
	}
	if groups == nil {
		groups = []store.Group{}
	}
	return ListResult{Envelope: envelope.Success(""), Groups: groups}
}

func (s *service) Add(ctx context.Context, in AddInput) AddResult {
	if err := ctx.Err(); err != nil {
		return AddResult{Envelope: envelope.Errorf("add group failed: %v", err)}
	}

	group, err := s.store.CreateGroup(ctx, store.Group{
		Name:       in.Name,
		Link:       in.Link,
		PlatformID: in.PlatformID,
	})
	if err != nil {
		logging.WithContext(ctx).Error().Err(err).Str("name", in.Name).Msg("add group failed")
		return AddResult{Envelope: envelope.Errorf("add group failed: %v", err)}
	}

	logging.WithContext(ctx).Info().Int64("group_id", group.ID).Msg("group added")
	return AddResult{Envelope: envelope.Success("group added"), Group: &group}
}
