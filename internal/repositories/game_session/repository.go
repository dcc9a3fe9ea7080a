// Package gamesession stores session snapshots in an external cache
package gamesession

import (
	"context"
	"time"

	"github.com/KirkDiggler/dm-api/internal/entities"
	"github.com/KirkDiggler/dm-api/internal/errors"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=gamesessionmock github.com/KirkDiggler/dm-api/internal/repositories/game_session Repository

// DefaultTTL is how long a snapshot lives without being saved again
const DefaultTTL = 24 * time.Hour

// SaveInput contains the snapshot to store
type SaveInput struct {
	Session *entities.Session
	TTL     time.Duration // zero means DefaultTTL
}

// SaveOutput contains the result of a save
type SaveOutput struct {
	ExpiresAt time.Time
}

// LoadInput identifies the snapshot to read
type LoadInput struct {
	SessionID string
}

// LoadOutput contains the loaded snapshot
type LoadOutput struct {
	Session *entities.Session
}

// DeleteInput identifies the snapshot to remove
type DeleteInput struct {
	SessionID string
}

// DeleteOutput reports whether anything was removed
type DeleteOutput struct {
	Deleted bool
}

// Repository persists session snapshots
type Repository interface {
	// Save writes the snapshot, replacing any previous one and resetting its TTL
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Load returns NotFound when no live snapshot exists
	Load(ctx context.Context, input *LoadInput) (*LoadOutput, error)

	// Delete is silent when the snapshot does not exist
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

func validateSave(input *SaveInput) error {
	if input == nil || input.Session == nil {
		return errors.InvalidArgument("session is required")
	}
	if input.Session.ID == "" {
		return errors.InvalidArgument("session ID is required")
	}
	if input.TTL < 0 {
		return errors.InvalidArgument("ttl must not be negative")
	}
	return nil
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return DefaultTTL
	}
	return ttl
}
