package session

import (
	engine "github.com/KirkDiggler/dm-api/internal/engine/combat"
	"github.com/KirkDiggler/dm-api/internal/entities"
)

// CreateSessionInput defines the request for creating a session
type CreateSessionInput struct {
	CampaignID string
	Name       string
}

// CreateSessionOutput defines the response for creating a session
type CreateSessionOutput struct {
	Session *entities.Session
}

// GetSessionInput defines the request for reading a session
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput defines the response for reading a session
type GetSessionOutput struct {
	Session *entities.Session
}

// DeleteSessionInput defines the request for deleting a session
type DeleteSessionInput struct {
	SessionID string
}

// DeleteSessionOutput defines the response for deleting a session
type DeleteSessionOutput struct {
	Deleted bool
}

// AddChatMessageInput defines the request for posting to table chat
type AddChatMessageInput struct {
	SessionID string
	Sender    string
	Content   string
	IsDM      bool
}

// AddChatMessageOutput defines the response for posting to table chat
type AddChatMessageOutput struct {
	Message *entities.ChatMessage
}

// RecordActionInput defines the request for appending to the timeline.
// CombatID and Round default to the session's active combat when empty.
type RecordActionInput struct {
	SessionID   string
	Kind        entities.ActionKind
	Actor       string
	Description string
	CombatID    string
	Round       int
}

// RecordActionOutput defines the response for appending to the timeline
type RecordActionOutput struct {
	Entry *entities.ActionEntry
}

// SetPhaseInput defines the request for changing the session phase
type SetPhaseInput struct {
	SessionID string
	Phase     entities.Phase
}

// SetPhaseOutput defines the response for changing the session phase
type SetPhaseOutput struct {
	Session *entities.Session
}

// StartCombatInput defines the request for starting a session combat
type StartCombatInput struct {
	SessionID          string
	Description        string
	EnvironmentEffects []string
}

// StartCombatOutput returns a copy of the new combat
type StartCombatOutput struct {
	Combat *engine.Combat
}

// EndCombatInput defines the request for closing a session combat
type EndCombatInput struct {
	SessionID string
}

// EndCombatOutput returns a copy of the combat that was closed. It is nil when
// the combat was already gone or the session had none.
type EndCombatOutput struct {
	Combat *engine.Combat
}

// GetSessionCombatInput defines the request for the session's active combat
type GetSessionCombatInput struct {
	SessionID string
}

// GetSessionCombatOutput holds a copy of the active combat or nil
type GetSessionCombatOutput struct {
	Combat *engine.Combat
}

// ApplyDamageInput defines a damage application inside the session combat
type ApplyDamageInput struct {
	SessionID   string
	CombatantID string
	Amount      int
	Source      string
}

// ApplyDamageOutput defines the response for a damage application
type ApplyDamageOutput struct {
	Result *engine.DamageResult
}

// ApplyHealingInput defines a healing application inside the session combat
type ApplyHealingInput struct {
	SessionID   string
	CombatantID string
	Amount      int
	Source      string
}

// ApplyHealingOutput defines the response for a healing application
type ApplyHealingOutput struct {
	Result *engine.HealResult
}

// NextTurnInput defines the request for advancing the session combat
type NextTurnInput struct {
	SessionID string
}

// NextTurnOutput defines the response for advancing the session combat
type NextTurnOutput struct {
	Result *engine.NextTurnResult
}

// ConditionInput adds or removes a condition inside the session combat
type ConditionInput struct {
	SessionID   string
	CombatantID string
	Condition   engine.Condition
}

// ConditionOutput returns the active conditions after the change
type ConditionOutput struct {
	Conditions []engine.Condition
}
