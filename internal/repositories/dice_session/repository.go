// Package dicesession stores dice roll logs grouped by entity and context
package dicesession

import (
	"context"
	"time"

	"github.com/KirkDiggler/dm-api/internal/errors"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=dicesessionmock github.com/KirkDiggler/dm-api/internal/repositories/dice_session Repository

// DefaultTTL applies when a create request carries no TTL
const DefaultTTL = 15 * time.Minute

// DiceSession is the roll log for one entity in one context,
// e.g. combatant "goblin-1" in context "initiative:combat_7".
type DiceSession struct {
	EntityID  string     `json:"entity_id"`
	Context   string     `json:"context"`
	Rolls     []DiceRoll `json:"rolls"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// DiceRoll is a single roll result
type DiceRoll struct {
	RollID      string `json:"roll_id"`
	Notation    string `json:"notation"`
	Dice        []int  `json:"dice"`
	DiceTotal   int    `json:"dice_total"`
	Modifier    int    `json:"modifier"`
	Total       int    `json:"total"`
	Description string `json:"description,omitempty"`
}

// CreateInput contains parameters for creating a dice session
type CreateInput struct {
	EntityID string
	Context  string
	Rolls    []DiceRoll
	TTL      time.Duration
}

// CreateOutput contains the result of creating a dice session
type CreateOutput struct {
	Session *DiceSession
}

// GetInput contains parameters for retrieving a dice session
type GetInput struct {
	EntityID string
	Context  string
}

// GetOutput contains the result of retrieving a dice session
type GetOutput struct {
	Session *DiceSession
}

// DeleteInput contains parameters for deleting a dice session
type DeleteInput struct {
	EntityID string
	Context  string
}

// DeleteOutput contains the result of deleting a dice session
type DeleteOutput struct {
	RollsDeleted int
}

// Repository defines the interface for dice session storage operations
type Repository interface {
	// Create stores a new dice session, replacing any existing one
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get returns NotFound for missing or expired sessions
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a dice session; missing sessions delete zero rolls
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// Update replaces an existing session, keeping its original expiry
	Update(ctx context.Context, session *DiceSession) error
}

func validateKey(entityID, ctxName string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("EntityID", entityID, vb)
	errors.ValidateRequired("Context", ctxName, vb)
	return vb.Build()
}

func newSession(input CreateInput, now time.Time) *DiceSession {
	ttl := input.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	rolls := input.Rolls
	if rolls == nil {
		rolls = []DiceRoll{}
	}
	return &DiceSession{
		EntityID:  input.EntityID,
		Context:   input.Context,
		Rolls:     rolls,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func validateUpdate(session *DiceSession, now time.Time) error {
	if session == nil {
		return errors.InvalidArgument("session is required")
	}
	if err := validateKey(session.EntityID, session.Context); err != nil {
		return err
	}
	if !now.Before(session.ExpiresAt) {
		return errors.FailedPrecondition("dice session has already expired").
			WithMeta("entity_id", session.EntityID).
			WithMeta("context", session.Context)
	}
	return nil
}

func notFound(entityID, ctxName string) error {
	return errors.NotFound("dice session not found").
		WithMeta("entity_id", entityID).
		WithMeta("context", ctxName)
}
