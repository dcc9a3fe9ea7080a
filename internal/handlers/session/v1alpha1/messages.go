package v1alpha1

import (
	engine "github.com/KirkDiggler/dm-api/internal/engine/combat"
	"github.com/KirkDiggler/dm-api/internal/entities"
)

// CreateSessionRequest opens a new session in the exploration phase
type CreateSessionRequest struct {
	CampaignID string `json:"campaign_id,omitempty"`
	Name       string `json:"name"`
}

// SessionRequest addresses a session by id
type SessionRequest struct {
	SessionID string `json:"session_id"`
}

// SessionResponse carries a copy of a session
type SessionResponse struct {
	Session *entities.Session `json:"session"`
}

// DeleteSessionResponse reports whether a session was removed
type DeleteSessionResponse struct {
	Deleted bool `json:"deleted"`
}

// AddChatMessageRequest posts to the table chat
type AddChatMessageRequest struct {
	SessionID string `json:"session_id"`
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	IsDM      bool   `json:"is_dm,omitempty"`
}

// ChatMessageResponse returns the stored message
type ChatMessageResponse struct {
	Message *entities.ChatMessage `json:"message"`
}

// RecordActionRequest appends an entry to the session timeline
type RecordActionRequest struct {
	SessionID   string              `json:"session_id"`
	Kind        entities.ActionKind `json:"kind,omitempty"`
	Actor       string              `json:"actor,omitempty"`
	Description string              `json:"description"`
	CombatID    string              `json:"combat_id,omitempty"`
	Round       int                 `json:"round,omitempty"`
}

// ActionEntryResponse returns the stored timeline entry
type ActionEntryResponse struct {
	Entry *entities.ActionEntry `json:"entry"`
}

// SetPhaseRequest changes the session phase
type SetPhaseRequest struct {
	SessionID string         `json:"session_id"`
	Phase     entities.Phase `json:"phase"`
}

// StartCombatRequest opens the session's combat
type StartCombatRequest struct {
	SessionID          string   `json:"session_id"`
	Description        string   `json:"description,omitempty"`
	EnvironmentEffects []string `json:"environment_effects,omitempty"`
}

// CombatResponse carries a copy of the session combat. Combat is nil when
// the session has none.
type CombatResponse struct {
	Combat *engine.Combat `json:"combat,omitempty"`
}

// SessionAmountRequest applies damage or healing inside the session combat
type SessionAmountRequest struct {
	SessionID   string `json:"session_id"`
	CombatantID string `json:"combatant_id"`
	Amount      int    `json:"amount"`
	Source      string `json:"source,omitempty"`
}

// DamageResponse reports the outcome of a hit
type DamageResponse struct {
	Result *engine.DamageResult `json:"result"`
}

// HealResponse reports the outcome of healing
type HealResponse struct {
	Result *engine.HealResult `json:"result"`
}

// NextTurnResponse reports the new turn
type NextTurnResponse struct {
	Result *engine.NextTurnResult `json:"result"`
}

// SessionConditionRequest adds or removes a condition inside the session combat
type SessionConditionRequest struct {
	SessionID   string `json:"session_id"`
	CombatantID string `json:"combatant_id"`
	Condition   string `json:"condition"`
}

// ConditionsResponse lists a combatant's conditions after a change
type ConditionsResponse struct {
	Conditions []engine.Condition `json:"conditions"`
}
