// Package session implements the session orchestrator: the table-level facade
// that owns sessions, threads combat events into each session's timeline and
// persists snapshots after every change.
package session

//go:generate mockgen -destination=mock/mock_service.go -package=sessionmock github.com/KirkDiggler/dm-api/internal/orchestrators/session Service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	engine "github.com/KirkDiggler/dm-api/internal/engine/combat"
	"github.com/KirkDiggler/dm-api/internal/entities"
	"github.com/KirkDiggler/dm-api/internal/errors"
	combatorch "github.com/KirkDiggler/dm-api/internal/orchestrators/combat"
	"github.com/KirkDiggler/dm-api/internal/pkg/clock"
	"github.com/KirkDiggler/dm-api/internal/pkg/idgen"
	gamesession "github.com/KirkDiggler/dm-api/internal/repositories/game_session"
)

// Service defines the interface for session operations
type Service interface {
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)
	DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error)

	AddChatMessage(ctx context.Context, input *AddChatMessageInput) (*AddChatMessageOutput, error)
	RecordAction(ctx context.Context, input *RecordActionInput) (*RecordActionOutput, error)
	SetPhase(ctx context.Context, input *SetPhaseInput) (*SetPhaseOutput, error)

	// StartCombat opens a combat for the session and switches it to the combat
	// phase. A combat still active on the session is ended first.
	StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error)

	// EndCombat closes the session's combat and returns to exploration. With no
	// active combat it only leaves the combat phase, so retries succeed.
	EndCombat(ctx context.Context, input *EndCombatInput) (*EndCombatOutput, error)

	// GetSessionCombat returns the active combat, or a nil Combat when there is none
	GetSessionCombat(ctx context.Context, input *GetSessionCombatInput) (*GetSessionCombatOutput, error)

	ApplyDamage(ctx context.Context, input *ApplyDamageInput) (*ApplyDamageOutput, error)
	ApplyHealing(ctx context.Context, input *ApplyHealingInput) (*ApplyHealingOutput, error)
	NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error)
	AddCondition(ctx context.Context, input *ConditionInput) (*ConditionOutput, error)
	RemoveCondition(ctx context.Context, input *ConditionInput) (*ConditionOutput, error)
}

// Config holds the dependencies for the session orchestrator
type Config struct {
	CombatManager *combatorch.Manager
	IDGenerator   idgen.Generator
	Clock         clock.Clock

	// Repository stores snapshots. Nil uses an in-memory repository.
	Repository gamesession.Repository

	// SnapshotTTL is passed to every save; zero uses the repository default
	SnapshotTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CombatManager == nil {
		vb.RequiredField("CombatManager")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.SnapshotTTL < 0 {
		vb.Field("SnapshotTTL", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	combats     *combatorch.Manager
	repo        gamesession.Repository
	idGen       idgen.Generator
	clock       clock.Clock
	snapshotTTL time.Duration

	// The map is authoritative; the repository only backs it up.
	mu       sync.RWMutex
	sessions map[string]*entities.Session
	versions map[string]uint64
	slots    map[string]*snapshotSlot
}

// snapshotSlot serializes saves for one session. written is the newest version
// handed to the repository; older snapshots arriving later are dropped.
type snapshotSlot struct {
	mu      sync.Mutex
	written uint64
}

// NewOrchestrator creates a new session orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	repo := cfg.Repository
	if repo == nil {
		repo = gamesession.NewInMemory(cfg.Clock)
	}

	return &orchestrator{
		combats:     cfg.CombatManager,
		repo:        repo,
		idGen:       cfg.IDGenerator,
		clock:       cfg.Clock,
		snapshotTTL: cfg.SnapshotTTL,
		sessions:    make(map[string]*entities.Session),
		versions:    make(map[string]uint64),
		slots:       make(map[string]*snapshotSlot),
	}, nil
}

func (o *orchestrator) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Name", strings.TrimSpace(input.Name), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	now := o.clock.Now()
	s := &entities.Session{
		ID:            o.idGen.Generate(),
		CampaignID:    input.CampaignID,
		Name:          input.Name,
		Phase:         entities.PhaseExploration,
		ChatHistory:   []entities.ChatMessage{},
		ActionHistory: []entities.ActionEntry{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	o.mu.Lock()
	o.sessions[s.ID] = s
	snapshot := s.Clone()
	version := o.nextVersion(s.ID)
	o.mu.Unlock()

	slog.Info("Session created",
		"session_id", s.ID,
		"campaign_id", s.CampaignID,
	)

	o.persist(ctx, snapshot, version)
	return &CreateSessionOutput{Session: snapshot}, nil
}

func (o *orchestrator) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	if err := o.load(ctx, input.SessionID); err != nil {
		return nil, err
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	s, ok := o.sessions[input.SessionID]
	if !ok {
		return nil, sessionNotFound(input.SessionID)
	}
	return &GetSessionOutput{Session: s.Clone()}, nil
}

func (o *orchestrator) DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	// Holding the slot lets a save already in flight finish first and keeps
	// ensureLoaded from restoring the snapshot while it is being deleted.
	slot := o.slot(input.SessionID)
	slot.mu.Lock()
	defer slot.mu.Unlock()

	o.mu.Lock()
	_, existed := o.sessions[input.SessionID]
	delete(o.sessions, input.SessionID)
	delete(o.versions, input.SessionID)
	o.mu.Unlock()

	for _, c := range o.combats.GetSessionCombats(input.SessionID) {
		o.combats.DeleteCombat(c.ID)
	}

	out, err := o.repo.Delete(ctx, &gamesession.DeleteInput{SessionID: input.SessionID})

	o.mu.Lock()
	delete(o.slots, input.SessionID)
	o.mu.Unlock()

	if err != nil {
		slog.Warn("Failed to delete session snapshot",
			"session_id", input.SessionID,
			"error", err,
		)
	} else if out.Deleted {
		existed = true
	}

	if existed {
		slog.Info("Session deleted", "session_id", input.SessionID)
	}
	return &DeleteSessionOutput{Deleted: existed}, nil
}

func (o *orchestrator) AddChatMessage(ctx context.Context, input *AddChatMessageInput) (*AddChatMessageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("SessionID", input.SessionID, vb)
	errors.ValidateRequired("Sender", input.Sender, vb)
	errors.ValidateRequired("Content", strings.TrimSpace(input.Content), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	msg := entities.ChatMessage{
		ID:        o.idGen.Generate(),
		Sender:    input.Sender,
		Content:   input.Content,
		IsDM:      input.IsDM,
		Timestamp: o.clock.Now(),
	}

	err := o.mutate(ctx, input.SessionID, func(s *entities.Session) error {
		s.ChatHistory = append(s.ChatHistory, msg)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AddChatMessageOutput{Message: &msg}, nil
}

func (o *orchestrator) RecordAction(ctx context.Context, input *RecordActionInput) (*RecordActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("SessionID", input.SessionID, vb)
	errors.ValidateRequired("Description", strings.TrimSpace(input.Description), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	kind := input.Kind
	if kind == "" {
		kind = entities.ActionCustom
	}

	var entry entities.ActionEntry
	err := o.mutate(ctx, input.SessionID, func(s *entities.Session) error {
		combatID, round := input.CombatID, input.Round
		if combatID == "" && s.ActiveCombatID != "" {
			combatID = s.ActiveCombatID
			round = o.currentRound(ctx, combatID)
		}
		entry = o.appendAction(s, kind, input.Actor, input.Description, combatID, round)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RecordActionOutput{Entry: &entry}, nil
}

func (o *orchestrator) SetPhase(ctx context.Context, input *SetPhaseInput) (*SetPhaseOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	if !input.Phase.IsValid() {
		return nil, errors.InvalidArgumentf("unknown phase %q", input.Phase)
	}

	var snapshot *entities.Session
	err := o.mutate(ctx, input.SessionID, func(s *entities.Session) error {
		s.Phase = input.Phase
		snapshot = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.mu.RLock()
	out := snapshot.Clone()
	o.mu.RUnlock()
	return &SetPhaseOutput{Session: out}, nil
}

func (o *orchestrator) StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	var (
		c        *engine.Combat
		replaced string
	)
	err := o.mutate(ctx, input.SessionID, func(s *entities.Session) error {
		o.reconcile(ctx, s)
		if s.ActiveCombatID != "" {
			replaced = s.ActiveCombatID
			if _, err := o.endActiveCombat(ctx, s, "Combat ended: replaced by a new combat"); err != nil {
				return err
			}
		}

		created := o.combats.CreateCombat(&combatorch.CreateCombatInput{
			SessionID:          s.ID,
			Description:        input.Description,
			EnvironmentEffects: input.EnvironmentEffects,
		})
		if err := o.combats.View(ctx, created.ID, func(live *engine.Combat) error {
			c = live.Clone()
			return nil
		}); err != nil {
			o.combats.DeleteCombat(created.ID)
			return err
		}

		s.ActiveCombatID = c.ID
		s.Phase = entities.PhaseCombat

		description := "Combat started"
		if input.Description != "" {
			description = fmt.Sprintf("Combat started: %s", input.Description)
		}
		o.appendAction(s, entities.ActionCombatStarted, "", description, c.ID, 0)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Session combat started",
		"session_id", input.SessionID,
		"combat_id", c.ID,
		"replaced_combat_id", replaced,
	)

	return &StartCombatOutput{Combat: c}, nil
}

func (o *orchestrator) EndCombat(ctx context.Context, input *EndCombatInput) (*EndCombatOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	var (
		ended    *engine.Combat
		combatID string
	)
	err := o.mutate(ctx, input.SessionID, func(s *entities.Session) error {
		if s.ActiveCombatID == "" {
			if s.Phase == entities.PhaseCombat {
				s.Phase = entities.PhaseExploration
			}
			return nil
		}

		combatID = s.ActiveCombatID
		var err error
		ended, err = o.endActiveCombat(ctx, s, "Combat ended")
		return err
	})
	if err != nil {
		return nil, err
	}

	if combatID != "" {
		slog.Info("Session combat ended",
			"session_id", input.SessionID,
			"combat_id", combatID,
		)
	}
	return &EndCombatOutput{Combat: ended}, nil
}

func (o *orchestrator) GetSessionCombat(ctx context.Context, input *GetSessionCombatInput) (*GetSessionCombatOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	combatID, err := o.activeCombatID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if combatID == "" {
		return &GetSessionCombatOutput{}, nil
	}

	out := &GetSessionCombatOutput{}
	err = o.combats.View(ctx, combatID, func(c *engine.Combat) error {
		out.Combat = c.Clone()
		return nil
	})
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}
	return out, nil
}

func (o *orchestrator) ApplyDamage(ctx context.Context, input *ApplyDamageInput) (*ApplyDamageOutput, error) {
	if input == nil || input.SessionID == "" || input.CombatantID == "" {
		return nil, errors.InvalidArgument("session ID and combatant ID are required")
	}

	var (
		result *engine.DamageResult
		name   string
		round  int
	)
	combatID, err := o.updateActiveCombat(ctx, input.SessionID, func(c *engine.Combat) error {
		var err error
		result, err = c.ApplyDamage(input.CombatantID, input.Amount)
		if err != nil {
			return err
		}
		name = combatantName(c, input.CombatantID)
		round = c.RoundNumber
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = o.mutate(ctx, input.SessionID, func(s *entities.Session) error {
		description := fmt.Sprintf("%s takes %d damage (%d HP left)", name, result.TempHPAbsorbed+result.HPDamage, result.CurrentHP)
		if result.IsUnconscious {
			description += " and falls unconscious"
		}
		o.appendAction(s, entities.ActionDamage, input.Source, description, combatID, round)

		if result.CombatEnded && s.ActiveCombatID == combatID {
			o.closeCombat(s, combatID, round, fmt.Sprintf("Combat ended, winner: %s", result.Winner))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.CombatEnded {
		slog.Info("Session combat ended automatically",
			"session_id", input.SessionID,
			"combat_id", combatID,
			"winner", result.Winner,
		)
	}

	return &ApplyDamageOutput{Result: result}, nil
}

func (o *orchestrator) ApplyHealing(ctx context.Context, input *ApplyHealingInput) (*ApplyHealingOutput, error) {
	if input == nil || input.SessionID == "" || input.CombatantID == "" {
		return nil, errors.InvalidArgument("session ID and combatant ID are required")
	}

	var (
		result *engine.HealResult
		name   string
		round  int
	)
	combatID, err := o.updateActiveCombat(ctx, input.SessionID, func(c *engine.Combat) error {
		var err error
		result, err = c.ApplyHealing(input.CombatantID, input.Amount)
		if err != nil {
			return err
		}
		name = combatantName(c, input.CombatantID)
		round = c.RoundNumber
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = o.mutate(ctx, input.SessionID, func(s *entities.Session) error {
		description := fmt.Sprintf("%s heals %d (%d HP)", name, result.Healed, result.CurrentHP)
		o.appendAction(s, entities.ActionHealing, input.Source, description, combatID, round)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ApplyHealingOutput{Result: result}, nil
}

func (o *orchestrator) NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	var (
		result  *engine.NextTurnResult
		current string
	)
	combatID, err := o.updateActiveCombat(ctx, input.SessionID, func(c *engine.Combat) error {
		var err error
		result, err = c.NextTurn()
		if err != nil {
			return err
		}
		if result.Current != nil {
			current = result.Current.Name
			result.Current = result.Current.Clone()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = o.mutate(ctx, input.SessionID, func(s *entities.Session) error {
		description := fmt.Sprintf("Round %d: %s's turn", result.Round, current)
		o.appendAction(s, entities.ActionTurnAdvanced, current, description, combatID, result.Round)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &NextTurnOutput{Result: result}, nil
}

func (o *orchestrator) AddCondition(ctx context.Context, input *ConditionInput) (*ConditionOutput, error) {
	return o.changeCondition(ctx, input, true)
}

func (o *orchestrator) RemoveCondition(ctx context.Context, input *ConditionInput) (*ConditionOutput, error) {
	return o.changeCondition(ctx, input, false)
}

func (o *orchestrator) changeCondition(ctx context.Context, input *ConditionInput, add bool) (*ConditionOutput, error) {
	if input == nil || input.SessionID == "" || input.CombatantID == "" {
		return nil, errors.InvalidArgument("session ID and combatant ID are required")
	}
	if !input.Condition.IsValid() {
		return nil, errors.InvalidArgumentf("unknown condition %q", input.Condition)
	}

	var (
		conditions []engine.Condition
		name       string
		round      int
	)
	combatID, err := o.updateActiveCombat(ctx, input.SessionID, func(c *engine.Combat) error {
		var err error
		if add {
			err = c.AddCondition(input.CombatantID, input.Condition)
		} else {
			err = c.RemoveCondition(input.CombatantID, input.Condition)
		}
		if err != nil {
			return err
		}

		target, _ := c.Combatant(input.CombatantID)
		conditions = append([]engine.Condition{}, target.Conditions...)
		name = target.Name
		round = c.RoundNumber
		return nil
	})
	if err != nil {
		return nil, err
	}

	kind, verb := entities.ActionConditionAdded, "is now"
	if !add {
		kind, verb = entities.ActionConditionRemoved, "is no longer"
	}

	err = o.mutate(ctx, input.SessionID, func(s *entities.Session) error {
		o.appendAction(s, kind, "", fmt.Sprintf("%s %s %s", name, verb, input.Condition), combatID, round)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ConditionOutput{Conditions: conditions}, nil
}

// ensureLoaded pulls a snapshot into the map on a read miss
func (o *orchestrator) ensureLoaded(ctx context.Context, sessionID string) error {
	o.mu.RLock()
	_, ok := o.sessions[sessionID]
	o.mu.RUnlock()
	if ok {
		return nil
	}

	slot := o.slot(sessionID)
	slot.mu.Lock()
	defer slot.mu.Unlock()

	o.mu.RLock()
	_, ok = o.sessions[sessionID]
	o.mu.RUnlock()
	if ok {
		return nil
	}

	out, err := o.repo.Load(ctx, &gamesession.LoadInput{SessionID: sessionID})
	if err != nil {
		if errors.IsNotFound(err) {
			return sessionNotFound(sessionID)
		}
		return errors.Wrapf(err, "failed to load session %s", sessionID)
	}

	o.mu.Lock()
	o.sessions[sessionID] = out.Session
	o.mu.Unlock()

	slog.Info("Session restored from snapshot", "session_id", sessionID)
	return nil
}

// load makes sure the session is in the map and closes its active combat if
// that combat was ended or deleted outside the session.
func (o *orchestrator) load(ctx context.Context, sessionID string) error {
	if err := o.ensureLoaded(ctx, sessionID); err != nil {
		return err
	}

	o.mu.RLock()
	var combatID string
	if s, ok := o.sessions[sessionID]; ok {
		combatID = s.ActiveCombatID
	}
	o.mu.RUnlock()

	if combatID == "" || o.combatLive(ctx, combatID) {
		return nil
	}
	return o.mutate(ctx, sessionID, func(*entities.Session) error { return nil })
}

// mutate runs fn on the live session under the write lock, bumps UpdatedAt and
// saves a snapshot. An error from fn leaves the session unsaved.
func (o *orchestrator) mutate(ctx context.Context, sessionID string, fn func(s *entities.Session) error) error {
	if err := o.ensureLoaded(ctx, sessionID); err != nil {
		return err
	}

	o.mu.Lock()
	s, ok := o.sessions[sessionID]
	if !ok {
		o.mu.Unlock()
		return sessionNotFound(sessionID)
	}
	if err := fn(s); err != nil {
		o.mu.Unlock()
		return err
	}
	o.reconcile(ctx, s)
	s.UpdatedAt = o.clock.Now()
	snapshot := s.Clone()
	version := o.nextVersion(sessionID)
	o.mu.Unlock()

	o.persist(ctx, snapshot, version)
	return nil
}

// nextVersion numbers snapshots per session. Callers hold o.mu.
func (o *orchestrator) nextVersion(sessionID string) uint64 {
	o.versions[sessionID]++
	return o.versions[sessionID]
}

func (o *orchestrator) slot(sessionID string) *snapshotSlot {
	o.mu.Lock()
	defer o.mu.Unlock()

	slot, ok := o.slots[sessionID]
	if !ok {
		slot = &snapshotSlot{}
		o.slots[sessionID] = slot
	}
	return slot
}

// persist saves a snapshot unless a newer one was already written or the
// session was deleted. Failures are logged and never surface to callers.
func (o *orchestrator) persist(ctx context.Context, snapshot *entities.Session, version uint64) {
	slot := o.slot(snapshot.ID)
	slot.mu.Lock()
	defer slot.mu.Unlock()

	if version <= slot.written {
		slog.Debug("Skipping stale session snapshot",
			"session_id", snapshot.ID,
			"version", version,
			"written", slot.written,
		)
		return
	}

	o.mu.RLock()
	_, live := o.sessions[snapshot.ID]
	o.mu.RUnlock()
	if !live {
		return
	}

	slot.written = version
	_, err := o.repo.Save(ctx, &gamesession.SaveInput{
		Session: snapshot,
		TTL:     o.snapshotTTL,
	})
	if err != nil {
		slog.Warn("Failed to save session snapshot",
			"session_id", snapshot.ID,
			"error", err,
		)
	}
}

func (o *orchestrator) activeCombatID(ctx context.Context, sessionID string) (string, error) {
	if err := o.load(ctx, sessionID); err != nil {
		return "", err
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	s, ok := o.sessions[sessionID]
	if !ok {
		return "", sessionNotFound(sessionID)
	}
	return s.ActiveCombatID, nil
}

// updateActiveCombat runs fn against the session's active combat and returns its id
func (o *orchestrator) updateActiveCombat(ctx context.Context, sessionID string, fn func(c *engine.Combat) error) (string, error) {
	combatID, err := o.activeCombatID(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if combatID == "" {
		return "", errors.FailedPrecondition("session has no active combat").
			WithMeta("session_id", sessionID)
	}

	if err := o.combats.Update(ctx, combatID, fn); err != nil {
		return "", err
	}
	return combatID, nil
}

// combatLive reports whether the combat is still registered and not ended.
// The combat lock is always taken after the session lock, never before.
func (o *orchestrator) combatLive(ctx context.Context, combatID string) bool {
	live := false
	_ = o.combats.View(ctx, combatID, func(c *engine.Combat) error {
		live = c.Status != engine.StatusEnded
		return nil
	})
	return live
}

func (o *orchestrator) currentRound(ctx context.Context, combatID string) int {
	round := 0
	_ = o.combats.View(ctx, combatID, func(c *engine.Combat) error {
		round = c.RoundNumber
		return nil
	})
	return round
}

// endActiveCombat ends the session's combat if it is still registered and
// closes it in the timeline. It returns a copy of the ended combat, or nil when
// the combat was already deleted. Callers hold o.mu.
func (o *orchestrator) endActiveCombat(ctx context.Context, s *entities.Session, description string) (*engine.Combat, error) {
	combatID := s.ActiveCombatID
	var (
		ended *engine.Combat
		round int
	)
	err := o.combats.Update(ctx, combatID, func(c *engine.Combat) error {
		c.End()
		round = c.RoundNumber
		ended = c.Clone()
		return nil
	})
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	o.closeCombat(s, combatID, round, description)
	return ended, nil
}

// reconcile closes an active combat that was ended or deleted through the
// combat service. Callers hold o.mu.
func (o *orchestrator) reconcile(ctx context.Context, s *entities.Session) {
	if s.ActiveCombatID == "" {
		return
	}

	var (
		ended bool
		round int
	)
	err := o.combats.View(ctx, s.ActiveCombatID, func(c *engine.Combat) error {
		ended = c.Status == engine.StatusEnded
		round = c.RoundNumber
		return nil
	})
	switch {
	case errors.IsNotFound(err):
		o.closeCombat(s, s.ActiveCombatID, 0, "Combat removed")
	case err == nil && ended:
		o.closeCombat(s, s.ActiveCombatID, round, "Combat ended")
	}
}

func (o *orchestrator) closeCombat(s *entities.Session, combatID string, round int, description string) {
	s.ActiveCombatID = ""
	s.Phase = entities.PhaseExploration
	o.appendAction(s, entities.ActionCombatEnded, "", description, combatID, round)
}

func (o *orchestrator) appendAction(s *entities.Session, kind entities.ActionKind, actor, description, combatID string, round int) entities.ActionEntry {
	entry := entities.ActionEntry{
		ID:          o.idGen.Generate(),
		Kind:        kind,
		Actor:       actor,
		Description: description,
		CombatID:    combatID,
		Round:       round,
		Timestamp:   o.clock.Now(),
	}
	s.ActionHistory = append(s.ActionHistory, entry)
	return entry
}

func combatantName(c *engine.Combat, id string) string {
	if target, err := c.Combatant(id); err == nil {
		return target.Name
	}
	return id
}

func sessionNotFound(id string) error {
	return errors.NotFoundf("session %s not found", id).WithMeta("session_id", id)
}
