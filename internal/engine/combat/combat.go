// Package combat implements the turn-based combat state machine: initiative
// ordering, hit point and condition bookkeeping, round and turn progression,
// and end-of-combat detection.
//
// The engine is synchronous and does no locking. Callers that share a Combat
// between goroutines must serialize access themselves (see the combat
// orchestrator's Update and View).
package combat

import (
	"fmt"
	"sort"
	"time"

	"github.com/KirkDiggler/dm-api/internal/errors"
	"github.com/KirkDiggler/dm-api/internal/pkg/clock"
	"github.com/KirkDiggler/dm-api/internal/pkg/idgen"
)

var combatIDs idgen.Generator = idgen.NewUUID("combat")

// Config holds the values used to create a combat
type Config struct {
	ID                 string
	SessionID          string
	Description        string
	EnvironmentEffects []string
	TurnPointer        TurnPointer
	Clock              clock.Clock
}

// Combat is one encounter.
// TurnOrder is always a permutation of the combatant IDs and CurrentTurn is a
// valid index into it, or 0 when it is empty.
type Combat struct {
	ID                 string   `json:"id"`
	SessionID          string   `json:"session_id,omitempty"`
	Description        string   `json:"description,omitempty"`
	EnvironmentEffects []string `json:"environment_effects"`

	Status      Status       `json:"status"`
	Combatants  []*Combatant `json:"combatants"`
	TurnOrder   []string     `json:"turn_order"`
	CurrentTurn int          `json:"current_turn"`
	RoundNumber int          `json:"round_number"`
	TurnPointer TurnPointer  `json:"turn_pointer"`

	CreatedAt time.Time  `json:"created_at"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`

	clock clock.Clock
}

// NewCombat creates an empty combat in the ready state
func NewCombat(cfg Config) *Combat {
	if cfg.ID == "" {
		cfg.ID = combatIDs.Generate()
	}
	if !cfg.TurnPointer.IsValid() {
		cfg.TurnPointer = TurnPointerPositional
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	effects := make([]string, len(cfg.EnvironmentEffects))
	copy(effects, cfg.EnvironmentEffects)

	return &Combat{
		ID:                 cfg.ID,
		SessionID:          cfg.SessionID,
		Description:        cfg.Description,
		EnvironmentEffects: effects,
		Status:             StatusReady,
		Combatants:         []*Combatant{},
		TurnOrder:          []string{},
		TurnPointer:        cfg.TurnPointer,
		CreatedAt:          cfg.Clock.Now(),
		clock:              cfg.Clock,
	}
}

// AddCombatant adds c to the roster and rebuilds the turn order
func (cb *Combat) AddCombatant(c *Combatant) error {
	if c == nil {
		return errors.InvalidArgument("combatant is required")
	}
	if _, err := cb.Combatant(c.ID); err == nil {
		return errors.AlreadyExists(fmt.Sprintf("combatant %s is already in combat %s", c.ID, cb.ID))
	}

	cb.Combatants = append(cb.Combatants, c)
	cb.rebuildTurnOrder()
	return nil
}

// RemoveCombatant drops the combatant from the roster and rebuilds the turn order
func (cb *Combat) RemoveCombatant(id string) error {
	for i, c := range cb.Combatants {
		if c.ID == id {
			cb.Combatants = append(cb.Combatants[:i], cb.Combatants[i+1:]...)
			cb.rebuildTurnOrder()
			return nil
		}
	}
	return cb.combatantNotFound(id)
}

// Combatant looks up a combatant by ID
func (cb *Combat) Combatant(id string) (*Combatant, error) {
	for _, c := range cb.Combatants {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, cb.combatantNotFound(id)
}

// Start begins the first round
func (cb *Combat) Start() error {
	if cb.Status == StatusEnded {
		return errors.FailedPrecondition("combat has already ended")
	}
	if len(cb.Combatants) == 0 {
		return errors.FailedPrecondition("cannot start combat with no combatants")
	}

	cb.rebuildTurnOrder()
	cb.Status = StatusActive
	cb.RoundNumber = 1
	cb.CurrentTurn = 0

	now := cb.now()
	cb.StartedAt = &now
	return nil
}

// NextTurn ends the current combatant's turn and moves to the next one,
// starting a new round after the last combatant in the order.
func (cb *Combat) NextTurn() (*NextTurnResult, error) {
	if cb.Status != StatusActive {
		return nil, errors.FailedPreconditionf("combat is not active (status: %s)", cb.Status)
	}

	if departing := cb.CurrentCombatant(); departing != nil {
		departing.ResetTurn()
	}

	cb.CurrentTurn++
	if cb.CurrentTurn >= len(cb.TurnOrder) {
		cb.CurrentTurn = 0
		cb.RoundNumber++
	}

	return &NextTurnResult{
		Round:   cb.RoundNumber,
		Turn:    cb.CurrentTurn,
		Current: cb.CurrentCombatant(),
	}, nil
}

// CurrentCombatant returns the combatant whose turn it is, or nil
func (cb *Combat) CurrentCombatant() *Combatant {
	if cb.CurrentTurn < 0 || cb.CurrentTurn >= len(cb.TurnOrder) {
		return nil
	}
	c, err := cb.Combatant(cb.TurnOrder[cb.CurrentTurn])
	if err != nil {
		return nil
	}
	return c
}

// ApplyDamage damages a combatant and ends the combat if one side is down
func (cb *Combat) ApplyDamage(id string, amount int) (*DamageResult, error) {
	c, err := cb.Combatant(id)
	if err != nil {
		return nil, err
	}

	result := c.TakeDamage(amount)

	if cb.Status != StatusEnded {
		if ended, winner := cb.checkCombatEnd(); ended {
			cb.End()
			result.CombatEnded = true
			result.Winner = winner
		}
	}

	return result, nil
}

// ApplyHealing heals a combatant
func (cb *Combat) ApplyHealing(id string, amount int) (*HealResult, error) {
	c, err := cb.Combatant(id)
	if err != nil {
		return nil, err
	}
	return c.Heal(amount), nil
}

// AddCondition adds a condition to a combatant
func (cb *Combat) AddCondition(id string, condition Condition) error {
	c, err := cb.Combatant(id)
	if err != nil {
		return err
	}
	c.AddCondition(condition)
	return nil
}

// RemoveCondition removes a condition from a combatant
func (cb *Combat) RemoveCondition(id string, condition Condition) error {
	c, err := cb.Combatant(id)
	if err != nil {
		return err
	}
	c.RemoveCondition(condition)
	return nil
}

// Pause suspends an active combat
func (cb *Combat) Pause() error {
	if cb.Status != StatusActive {
		return errors.FailedPreconditionf("only an active combat can be paused (status: %s)", cb.Status)
	}
	cb.Status = StatusPaused
	return nil
}

// Resume continues a paused combat
func (cb *Combat) Resume() error {
	if cb.Status != StatusPaused {
		return errors.FailedPreconditionf("only a paused combat can be resumed (status: %s)", cb.Status)
	}
	cb.Status = StatusActive
	return nil
}

// End moves the combat to its terminal state. Ending twice is a no-op.
func (cb *Combat) End() {
	if cb.Status == StatusEnded {
		return
	}
	cb.Status = StatusEnded
	now := cb.now()
	cb.EndedAt = &now
}

// Summary returns a read-only projection for polling clients
func (cb *Combat) Summary() *Summary {
	summary := &Summary{
		ID:         cb.ID,
		Status:     cb.Status,
		Round:      cb.RoundNumber,
		Turn:       cb.CurrentTurn,
		Combatants: make([]CombatantSummary, 0, len(cb.Combatants)),
	}

	if current := cb.CurrentCombatant(); current != nil {
		summary.CurrentCombatant = current.Name
	}

	for _, c := range cb.Combatants {
		summary.Combatants = append(summary.Combatants, CombatantSummary{
			ID:         c.ID,
			Name:       c.Name,
			HP:         fmt.Sprintf("%d/%d", c.CurrentHP, c.MaxHP),
			IsAlive:    c.IsAlive(),
			Conditions: c.conditionNames(),
		})
	}

	return summary
}

// Clone returns a deep copy that is safe to read after the caller's lock is released
func (cb *Combat) Clone() *Combat {
	out := *cb
	out.EnvironmentEffects = append([]string{}, cb.EnvironmentEffects...)
	out.TurnOrder = append([]string{}, cb.TurnOrder...)
	out.Combatants = make([]*Combatant, len(cb.Combatants))
	for i, c := range cb.Combatants {
		out.Combatants[i] = c.Clone()
	}
	if cb.StartedAt != nil {
		started := *cb.StartedAt
		out.StartedAt = &started
	}
	if cb.EndedAt != nil {
		ended := *cb.EndedAt
		out.EndedAt = &ended
	}
	return &out
}

// checkCombatEnd reports whether either players or NPCs have nobody left standing.
// Combatants flagged as neither are ignored.
func (cb *Combat) checkCombatEnd() (bool, Side) {
	var players, npcs int
	for _, c := range cb.Combatants {
		if !c.canFight() {
			continue
		}
		if c.IsPlayer {
			players++
		}
		if c.IsNPC {
			npcs++
		}
	}

	switch {
	case players == 0 && npcs == 0:
		return true, SideNone
	case npcs == 0:
		return true, SidePlayers
	case players == 0:
		return true, SideNPCs
	default:
		return false, SideNone
	}
}

// rebuildTurnOrder stable-sorts the roster by initiative then bonus, both descending
func (cb *Combat) rebuildTurnOrder() {
	var currentID string
	if cb.TurnPointer == TurnPointerTrackCurrent && cb.CurrentTurn < len(cb.TurnOrder) {
		currentID = cb.TurnOrder[cb.CurrentTurn]
	}

	ordered := make([]*Combatant, len(cb.Combatants))
	copy(ordered, cb.Combatants)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Initiative != ordered[j].Initiative {
			return ordered[i].Initiative > ordered[j].Initiative
		}
		return ordered[i].InitiativeBonus > ordered[j].InitiativeBonus
	})

	cb.TurnOrder = make([]string, len(ordered))
	for i, c := range ordered {
		cb.TurnOrder[i] = c.ID
		if currentID != "" && c.ID == currentID {
			cb.CurrentTurn = i
		}
	}

	if cb.CurrentTurn >= len(cb.TurnOrder) {
		cb.CurrentTurn = 0
	}
}

func (cb *Combat) combatantNotFound(id string) error {
	return errors.NotFoundf("combatant %s not found in combat %s", id, cb.ID).
		WithMeta("combat_id", cb.ID).
		WithMeta("combatant_id", id)
}

// now tolerates combats decoded from JSON, which carry no clock
func (cb *Combat) now() time.Time {
	if cb.clock == nil {
		cb.clock = clock.New()
	}
	return cb.clock.Now()
}
