// Package entities provides core data structures for dm-api.
package entities

import (
	"time"
)

// Phase is what the table is currently doing
type Phase string

const (
	PhaseExploration Phase = "exploration"
	PhaseCombat      Phase = "combat"
	PhaseSocial      Phase = "social"
	PhaseRest        Phase = "rest"
)

// IsValid reports whether p is a known phase
func (p Phase) IsValid() bool {
	switch p {
	case PhaseExploration, PhaseCombat, PhaseSocial, PhaseRest:
		return true
	}
	return false
}

// ActionKind classifies an entry in the session timeline
type ActionKind string

const (
	ActionCombatStarted    ActionKind = "combat_started"
	ActionCombatEnded      ActionKind = "combat_ended"
	ActionTurnAdvanced     ActionKind = "turn_advanced"
	ActionDamage           ActionKind = "damage"
	ActionHealing          ActionKind = "healing"
	ActionConditionAdded   ActionKind = "condition_added"
	ActionConditionRemoved ActionKind = "condition_removed"
	ActionCustom           ActionKind = "custom"
)

// Session is one game session at the table
type Session struct {
	ID             string        `json:"id"`
	CampaignID     string        `json:"campaign_id,omitempty"`
	Name           string        `json:"name"`
	Phase          Phase         `json:"phase"`
	ActiveCombatID string        `json:"active_combat_id,omitempty"`
	ChatHistory    []ChatMessage `json:"chat_history"`
	ActionHistory  []ActionEntry `json:"action_history"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// ChatMessage is one line of table chat
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	IsDM      bool      `json:"is_dm"`
	Timestamp time.Time `json:"timestamp"`
}

// ActionEntry is one event in the session's narrative timeline.
// CombatID and Round are empty outside of combat.
type ActionEntry struct {
	ID          string     `json:"id"`
	Kind        ActionKind `json:"kind"`
	Actor       string     `json:"actor,omitempty"`
	Description string     `json:"description"`
	CombatID    string     `json:"combat_id,omitempty"`
	Round       int        `json:"round,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
}

// Clone returns a deep copy so callers can hand sessions across goroutines
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.ChatHistory = append([]ChatMessage(nil), s.ChatHistory...)
	out.ActionHistory = append([]ActionEntry(nil), s.ActionHistory...)
	if out.ChatHistory == nil {
		out.ChatHistory = []ChatMessage{}
	}
	if out.ActionHistory == nil {
		out.ActionHistory = []ActionEntry{}
	}
	return &out
}
