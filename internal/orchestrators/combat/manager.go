// Package combat implements the combat registry: it owns live combats,
// indexes them by session and serializes mutations per combat.
package combat

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"

	engine "github.com/KirkDiggler/dm-api/internal/engine/combat"
	"github.com/KirkDiggler/dm-api/internal/errors"
	"github.com/KirkDiggler/dm-api/internal/pkg/clock"
	"github.com/KirkDiggler/dm-api/internal/pkg/idgen"
)

// Config holds the dependencies for the combat manager
type Config struct {
	IDGenerator idgen.Generator
	Clock       clock.Clock

	// TurnPointer is applied to every combat the manager creates.
	// Empty means engine.TurnPointerPositional.
	TurnPointer engine.TurnPointer
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.TurnPointer != "" && !c.TurnPointer.IsValid() {
		vb.InvalidField("TurnPointer", string(c.TurnPointer))
	}

	return vb.Build()
}

// CreateCombatInput defines the request for creating a combat
type CreateCombatInput struct {
	SessionID          string
	Description        string
	EnvironmentEffects []string
}

// entry pairs a combat with the lock that serializes access to it
type entry struct {
	seq    uint64
	sem    *semaphore.Weighted
	combat *engine.Combat
}

// Manager is the registry of live combats.
// The map is guarded by mu; each combat is guarded by its own semaphore,
// which Update and View hold while running the caller's function.
type Manager struct {
	idGen       idgen.Generator
	clock       clock.Clock
	turnPointer engine.TurnPointer

	mu      sync.RWMutex
	seq     uint64
	combats map[string]*entry
}

// NewManager creates a combat manager with the provided dependencies
func NewManager(cfg *Config) (*Manager, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Manager{
		idGen:       cfg.IDGenerator,
		clock:       cfg.Clock,
		turnPointer: cfg.TurnPointer,
		combats:     make(map[string]*entry),
	}, nil
}

// CreateCombat allocates a new combat in the ready state
func (m *Manager) CreateCombat(input *CreateCombatInput) *engine.Combat {
	if input == nil {
		input = &CreateCombatInput{}
	}

	c := engine.NewCombat(engine.Config{
		ID:                 m.idGen.Generate(),
		SessionID:          input.SessionID,
		Description:        input.Description,
		EnvironmentEffects: input.EnvironmentEffects,
		TurnPointer:        m.turnPointer,
		Clock:              m.clock,
	})

	m.mu.Lock()
	m.seq++
	m.combats[c.ID] = &entry{
		seq:    m.seq,
		sem:    semaphore.NewWeighted(1),
		combat: c,
	}
	m.mu.Unlock()

	slog.Info("Combat created",
		"combat_id", c.ID,
		"session_id", c.SessionID,
	)

	return c
}

// GetCombat returns the combat or nil when the id is unknown.
// The returned pointer is shared; use Update or View to touch it from
// concurrent callers.
func (m *Manager) GetCombat(id string) *engine.Combat {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if e, ok := m.combats[id]; ok {
		return e.combat
	}
	return nil
}

// GetSessionCombats returns every live combat for the session in creation order
func (m *Manager) GetSessionCombats(sessionID string) []*engine.Combat {
	m.mu.RLock()
	matches := make([]*entry, 0)
	for _, e := range m.combats {
		if e.combat.SessionID == sessionID {
			matches = append(matches, e)
		}
	}
	m.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].seq < matches[j].seq
	})

	out := make([]*engine.Combat, len(matches))
	for i, e := range matches {
		out[i] = e.combat
	}
	return out
}

// DeleteCombat removes the combat; unknown ids are ignored
func (m *Manager) DeleteCombat(id string) {
	m.mu.Lock()
	_, existed := m.combats[id]
	delete(m.combats, id)
	m.mu.Unlock()

	if existed {
		slog.Info("Combat deleted", "combat_id", id)
	}
}

// Count returns the number of live combats
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.combats)
}

// Update runs fn with exclusive access to the combat
func (m *Manager) Update(ctx context.Context, id string, fn func(c *engine.Combat) error) error {
	return m.withCombat(ctx, id, fn)
}

// View runs fn with exclusive access to the combat for reading.
// fn must not mutate the combat.
func (m *Manager) View(ctx context.Context, id string, fn func(c *engine.Combat) error) error {
	return m.withCombat(ctx, id, fn)
}

func (m *Manager) withCombat(ctx context.Context, id string, fn func(c *engine.Combat) error) error {
	m.mu.RLock()
	e, ok := m.combats[id]
	m.mu.RUnlock()

	if !ok {
		return errors.NotFoundf("combat %s not found", id).WithMeta("combat_id", id)
	}

	if err := e.sem.Acquire(ctx, 1); err != nil {
		return errors.WrapWithCode(err, errors.CodeCanceled, "gave up waiting for combat")
	}
	defer e.sem.Release(1)

	return fn(e.combat)
}
