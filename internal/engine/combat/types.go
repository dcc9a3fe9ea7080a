package combat

// Status is the lifecycle state of a combat
type Status string

// Combat states. Paused is only entered and left through Pause and Resume.
const (
	StatusReady  Status = "ready"
	StatusActive Status = "active"
	StatusPaused Status = "paused"
	StatusEnded  Status = "ended"
)

// TurnPointer selects how the current turn survives a roster change
type TurnPointer string

const (
	// TurnPointerPositional keeps the numeric index when the turn order is
	// rebuilt, so the combatant whose turn it is can change under it.
	TurnPointerPositional TurnPointer = "positional"

	// TurnPointerTrackCurrent re-points the index at whoever was current
	// before the rebuild.
	TurnPointerTrackCurrent TurnPointer = "track_current"
)

// IsValid reports whether p is a known policy
func (p TurnPointer) IsValid() bool {
	return p == TurnPointerPositional || p == TurnPointerTrackCurrent
}

// Side names the group left standing when a combat ends on its own
type Side string

const (
	SideNone    Side = "none"
	SidePlayers Side = "players"
	SideNPCs    Side = "npcs"
)

// DamageResult describes the effect of one damage application
type DamageResult struct {
	CombatantID    string `json:"combatant_id"`
	TempHPAbsorbed int    `json:"temp_hp_absorbed"`
	HPDamage       int    `json:"hp_damage"`
	CurrentHP      int    `json:"current_hp"`
	TempHP         int    `json:"temp_hp"`
	IsUnconscious  bool   `json:"is_unconscious"`
	IsBloodied     bool   `json:"is_bloodied"`

	// Set by Combat.ApplyDamage when this hit ended the combat
	CombatEnded bool `json:"combat_ended"`
	Winner      Side `json:"winner,omitempty"`
}

// HealResult describes the effect of one healing application
type HealResult struct {
	CombatantID string `json:"combatant_id"`
	Healed      int    `json:"healed"`
	CurrentHP   int    `json:"current_hp"`
	IsConscious bool   `json:"is_conscious"`
}

// NextTurnResult is returned when the turn advances
type NextTurnResult struct {
	Round   int        `json:"round"`
	Turn    int        `json:"turn"`
	Current *Combatant `json:"current,omitempty"`
}

// CombatantSummary is the polling view of a single combatant
type CombatantSummary struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	HP         string   `json:"hp"`
	IsAlive    bool     `json:"is_alive"`
	Conditions []string `json:"conditions"`
}

// Summary is a read-only projection of a combat for lightweight polling
type Summary struct {
	ID               string             `json:"id"`
	Status           Status             `json:"status"`
	Round            int                `json:"round"`
	Turn             int                `json:"turn"`
	CurrentCombatant string             `json:"current_combatant,omitempty"`
	Combatants       []CombatantSummary `json:"combatants"`
}
