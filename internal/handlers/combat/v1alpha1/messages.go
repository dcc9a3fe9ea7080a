package v1alpha1

import (
	engine "github.com/KirkDiggler/dm-api/internal/engine/combat"
	dicesession "github.com/KirkDiggler/dm-api/internal/repositories/dice_session"
)

// CombatRequest addresses a combat by id
type CombatRequest struct {
	CombatID string `json:"combat_id"`
}

// CombatResponse carries a point-in-time copy of a combat
type CombatResponse struct {
	Combat *engine.Combat `json:"combat"`
}

// CreateCombatRequest opens a new combat
type CreateCombatRequest struct {
	SessionID          string   `json:"session_id,omitempty"`
	Description        string   `json:"description,omitempty"`
	EnvironmentEffects []string `json:"environment_effects,omitempty"`
}

// ListSessionCombatsRequest lists the combats of one session
type ListSessionCombatsRequest struct {
	SessionID string `json:"session_id"`
}

// ListSessionCombatsResponse holds combats in creation order
type ListSessionCombatsResponse struct {
	Combats []*engine.Combat `json:"combats"`
}

// DeleteCombatResponse is empty
type DeleteCombatResponse struct{}

// CombatantSpec describes a combatant to add. Nil optionals take the
// engine defaults.
type CombatantSpec struct {
	ID              string `json:"id,omitempty"`
	CharacterID     string `json:"character_id,omitempty"`
	Name            string `json:"name"`
	Initiative      int    `json:"initiative"`
	InitiativeBonus int    `json:"initiative_bonus"`
	MaxHP           int    `json:"max_hp"`
	CurrentHP       *int   `json:"current_hp,omitempty"`
	TempHP          int    `json:"temp_hp,omitempty"`
	ArmorClass      *int   `json:"armor_class,omitempty"`
	IsNPC           *bool  `json:"is_npc,omitempty"`
	IsPlayer        *bool  `json:"is_player,omitempty"`
}

// AddCombatantRequest adds a combatant. When RollInitiative is set the
// initiative is rolled as 1d20 + initiative_bonus and Initiative is ignored.
type AddCombatantRequest struct {
	CombatID       string        `json:"combat_id"`
	Combatant      CombatantSpec `json:"combatant"`
	RollInitiative bool          `json:"roll_initiative,omitempty"`
}

// AddCombatantResponse returns the added combatant and its roll, if any
type AddCombatantResponse struct {
	Combatant      *engine.Combatant     `json:"combatant"`
	InitiativeRoll *dicesession.DiceRoll `json:"initiative_roll,omitempty"`
	TurnOrder      []string              `json:"turn_order"`
}

// CombatantRequest addresses one combatant in a combat
type CombatantRequest struct {
	CombatID    string `json:"combat_id"`
	CombatantID string `json:"combatant_id"`
}

// CombatantResponse returns a copy of one combatant
type CombatantResponse struct {
	Combatant *engine.Combatant `json:"combatant"`
}

// AmountRequest applies damage or healing
type AmountRequest struct {
	CombatID    string `json:"combat_id"`
	CombatantID string `json:"combatant_id"`
	Amount      int    `json:"amount"`
}

// ConditionRequest adds or removes a condition by name
type ConditionRequest struct {
	CombatID    string `json:"combat_id"`
	CombatantID string `json:"combatant_id"`
	Condition   string `json:"condition"`
}

// DeathSaveRequest records one death saving throw
type DeathSaveRequest struct {
	CombatID    string `json:"combat_id"`
	CombatantID string `json:"combatant_id"`
	Success     bool   `json:"success"`
}

// SetDeadRequest sets the manual dead flag
type SetDeadRequest struct {
	CombatID    string `json:"combat_id"`
	CombatantID string `json:"combatant_id"`
	Dead        bool   `json:"dead"`
}

// SummaryResponse is the lightweight polling view
type SummaryResponse struct {
	Summary *engine.Summary `json:"summary"`
}

// NextTurnResponse reports the new turn
type NextTurnResponse struct {
	Result *engine.NextTurnResult `json:"result"`
}

// DamageResponse reports the outcome of a hit
type DamageResponse struct {
	Result *engine.DamageResult `json:"result"`
}

// HealResponse reports the outcome of healing
type HealResponse struct {
	Result *engine.HealResult `json:"result"`
}
