package combat

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/dm-api/internal/errors"
	"github.com/KirkDiggler/dm-api/internal/pkg/idgen"
)

const (
	defaultArmorClass = 10
	deathSaveLimit    = 3

	// Entity types reported to the rpg-toolkit
	EntityTypePlayer    = "player"
	EntityTypeNPC       = "npc"
	EntityTypeCombatant = "combatant"
)

var combatantIDs idgen.Generator = idgen.NewUUID("combatant")

// DeathSaves tracks death saving throw outcomes recorded by the table
type DeathSaves struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
}

// Combatant is one participant in an encounter.
// IsDead is a manual flag and is independent of HP; a combatant at 0 HP is
// unconscious, not dead, until someone marks it.
type Combatant struct {
	ID          string `json:"id"`
	CharacterID string `json:"character_id,omitempty"`
	Name        string `json:"name"`

	Initiative      int `json:"initiative"`
	InitiativeBonus int `json:"initiative_bonus"`

	MaxHP     int `json:"max_hp"`
	CurrentHP int `json:"current_hp"`
	TempHP    int `json:"temp_hp"`

	IsNPC    bool `json:"is_npc"`
	IsPlayer bool `json:"is_player"`

	IsDead     bool        `json:"is_dead"`
	IsStable   bool        `json:"is_stable"`
	DeathSaves DeathSaves  `json:"death_saves"`
	Conditions []Condition `json:"conditions"`
	ArmorClass int         `json:"armor_class"`

	ReactionsUsed    int `json:"reactions_used"`
	BonusActionsUsed int `json:"bonus_actions_used"`
}

// Ensure Combatant can be handed to rpg-toolkit systems
var _ core.Entity = (*Combatant)(nil)

// CombatantConfig holds the values a caller supplies to build a combatant.
// Nil pointers take the defaults: CurrentHP = MaxHP, ArmorClass = 10,
// IsPlayer = true, IsNPC = false.
type CombatantConfig struct {
	ID              string
	CharacterID     string
	Name            string
	Initiative      int
	InitiativeBonus int
	MaxHP           int
	CurrentHP       *int
	TempHP          int
	ArmorClass      *int
	IsNPC           *bool
	IsPlayer        *bool
}

// Validate ensures the config describes a legal combatant
func (c *CombatantConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("Name", c.Name, vb)
	if c.MaxHP <= 0 {
		vb.Field("MaxHP", "must be greater than 0")
	}
	if c.CurrentHP != nil && (*c.CurrentHP < 0 || *c.CurrentHP > c.MaxHP) {
		vb.Fieldf("CurrentHP", "must be between 0 and %d", c.MaxHP)
	}
	if c.TempHP < 0 {
		vb.Field("TempHP", "must not be negative")
	}
	if c.ArmorClass != nil && *c.ArmorClass < 0 {
		vb.Field("ArmorClass", "must not be negative")
	}

	return vb.Build()
}

// NewCombatant builds a combatant from the config, generating an ID when none is given
func NewCombatant(cfg *CombatantConfig) (*Combatant, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("combatant config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid combatant config")
	}

	c := &Combatant{
		ID:              cfg.ID,
		CharacterID:     cfg.CharacterID,
		Name:            cfg.Name,
		Initiative:      cfg.Initiative,
		InitiativeBonus: cfg.InitiativeBonus,
		MaxHP:           cfg.MaxHP,
		CurrentHP:       cfg.MaxHP,
		TempHP:          cfg.TempHP,
		ArmorClass:      defaultArmorClass,
		IsPlayer:        true,
		Conditions:      []Condition{},
	}
	if c.ID == "" {
		c.ID = combatantIDs.Generate()
	}
	if cfg.CurrentHP != nil {
		c.CurrentHP = *cfg.CurrentHP
	}
	if cfg.ArmorClass != nil {
		c.ArmorClass = *cfg.ArmorClass
	}
	if cfg.IsNPC != nil {
		c.IsNPC = *cfg.IsNPC
	}
	if cfg.IsPlayer != nil {
		c.IsPlayer = *cfg.IsPlayer
	}

	return c, nil
}

// GetID returns the combatant's ID
func (c *Combatant) GetID() string {
	return c.ID
}

// GetType returns the entity type for rpg-toolkit
func (c *Combatant) GetType() string {
	switch {
	case c.IsPlayer:
		return EntityTypePlayer
	case c.IsNPC:
		return EntityTypeNPC
	default:
		return EntityTypeCombatant
	}
}

// IsAlive reports whether the combatant has not been marked dead
func (c *Combatant) IsAlive() bool {
	return !c.IsDead
}

// IsBloodied reports whether current HP is at or below half of max HP
func (c *Combatant) IsBloodied() bool {
	return c.CurrentHP <= c.MaxHP/2
}

// IsUnconscious reports whether the combatant is unconscious by condition or by HP
func (c *Combatant) IsUnconscious() bool {
	return c.HasCondition(ConditionUnconscious) || c.CurrentHP <= 0
}

// canFight is the test used by the end-of-combat check
func (c *Combatant) canFight() bool {
	return c.IsAlive() && !c.IsUnconscious()
}

// TakeDamage applies damage, draining temp HP before current HP.
// Amounts <= 0 change nothing. Dropping to exactly 0 HP knocks the
// combatant unconscious and prone.
func (c *Combatant) TakeDamage(amount int) *DamageResult {
	result := &DamageResult{CombatantID: c.ID}

	if amount > 0 {
		remaining := amount
		if c.TempHP > 0 {
			absorbed := min(c.TempHP, remaining)
			c.TempHP -= absorbed
			remaining -= absorbed
			result.TempHPAbsorbed = absorbed
		}

		if remaining > 0 {
			applied := min(c.CurrentHP, remaining)
			c.CurrentHP -= applied
			result.HPDamage = applied

			if c.CurrentHP == 0 {
				c.AddCondition(ConditionUnconscious)
				c.AddCondition(ConditionProne)
			}
		}
	}

	result.CurrentHP = c.CurrentHP
	result.TempHP = c.TempHP
	result.IsUnconscious = c.IsUnconscious()
	result.IsBloodied = c.IsBloodied()
	return result
}

// Heal restores HP up to max HP; excess healing is lost.
// Healing up from exactly 0 clears unconscious and resets death saves.
func (c *Combatant) Heal(amount int) *HealResult {
	result := &HealResult{CombatantID: c.ID}

	if amount > 0 {
		before := c.CurrentHP
		c.CurrentHP = min(c.MaxHP, c.CurrentHP+amount)
		result.Healed = c.CurrentHP - before

		if before == 0 && c.CurrentHP > 0 {
			c.RemoveCondition(ConditionUnconscious)
			c.DeathSaves = DeathSaves{}
		}
	}

	result.CurrentHP = c.CurrentHP
	result.IsConscious = !c.IsUnconscious()
	return result
}

// GrantTempHP sets temp HP to amount when it is larger than the current pool.
// Temporary hit points do not stack.
func (c *Combatant) GrantTempHP(amount int) {
	if amount > c.TempHP {
		c.TempHP = amount
	}
}

// HasCondition reports whether the condition is active
func (c *Combatant) HasCondition(condition Condition) bool {
	for _, active := range c.Conditions {
		if active == condition {
			return true
		}
	}
	return false
}

// AddCondition appends the condition unless it is already active
func (c *Combatant) AddCondition(condition Condition) {
	if c.HasCondition(condition) {
		return
	}
	c.Conditions = append(c.Conditions, condition)
}

// RemoveCondition drops the condition if present, keeping the order of the rest
func (c *Combatant) RemoveCondition(condition Condition) {
	for i, active := range c.Conditions {
		if active == condition {
			c.Conditions = append(c.Conditions[:i], c.Conditions[i+1:]...)
			return
		}
	}
}

// ResetTurn clears the per-turn resource counters
func (c *Combatant) ResetTurn() {
	c.ReactionsUsed = 0
	c.BonusActionsUsed = 0
}

// UseReaction records a reaction spent this turn
func (c *Combatant) UseReaction() {
	c.ReactionsUsed++
}

// UseBonusAction records a bonus action spent this turn
func (c *Combatant) UseBonusAction() {
	c.BonusActionsUsed++
}

// SetDead sets the manual dead flag
func (c *Combatant) SetDead(dead bool) {
	c.IsDead = dead
}

// RecordDeathSave records the outcome of a death saving throw rolled by the table.
// It only counts while the combatant is at 0 HP, alive and not yet stable.
func (c *Combatant) RecordDeathSave(success bool) {
	if c.CurrentHP > 0 || c.IsDead || c.IsStable {
		return
	}

	if success {
		c.DeathSaves.Success++
		if c.DeathSaves.Success >= deathSaveLimit {
			c.IsStable = true
		}
		return
	}

	c.DeathSaves.Failure++
	if c.DeathSaves.Failure >= deathSaveLimit {
		c.IsDead = true
	}
}

// Clone returns a deep copy of the combatant
func (c *Combatant) Clone() *Combatant {
	out := *c
	out.Conditions = append([]Condition{}, c.Conditions...)
	return &out
}

// conditionNames returns the active conditions as plain strings
func (c *Combatant) conditionNames() []string {
	names := make([]string, len(c.Conditions))
	for i, condition := range c.Conditions {
		names[i] = condition.String()
	}
	return names
}
