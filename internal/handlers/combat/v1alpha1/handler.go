// Package v1alpha1 handles the combat grpc service interface
package v1alpha1

import (
	"context"

	engine "github.com/KirkDiggler/dm-api/internal/engine/combat"
	"github.com/KirkDiggler/dm-api/internal/errors"
	combatorch "github.com/KirkDiggler/dm-api/internal/orchestrators/combat"
	"github.com/KirkDiggler/dm-api/internal/orchestrators/dice"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	CombatManager *combatorch.Manager
	DiceService   dice.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("handler config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.CombatManager == nil {
		vb.RequiredField("CombatManager")
	}
	if c.DiceService == nil {
		vb.RequiredField("DiceService")
	}
	return vb.Build()
}

// Handler implements CombatServiceServer on top of the combat manager
type Handler struct {
	combats     *combatorch.Manager
	diceService dice.Service
}

var _ CombatServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{
		combats:     cfg.CombatManager,
		diceService: cfg.DiceService,
	}, nil
}

// CreateCombat opens an empty combat in the ready state
func (h *Handler) CreateCombat(_ context.Context, req *CreateCombatRequest) (*CombatResponse, error) {
	created := h.combats.CreateCombat(&combatorch.CreateCombatInput{
		SessionID:          req.SessionID,
		Description:        req.Description,
		EnvironmentEffects: req.EnvironmentEffects,
	})

	return &CombatResponse{Combat: created.Clone()}, nil
}

// GetCombat returns a snapshot of one combat
func (h *Handler) GetCombat(ctx context.Context, req *CombatRequest) (*CombatResponse, error) {
	if req.CombatID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("combat_id is required"))
	}

	snapshot, err := h.snapshot(ctx, req.CombatID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &CombatResponse{Combat: snapshot}, nil
}

// ListSessionCombats returns snapshots of a session's combats in creation order
func (h *Handler) ListSessionCombats(ctx context.Context, req *ListSessionCombatsRequest) (*ListSessionCombatsResponse, error) {
	if req.SessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	resp := &ListSessionCombatsResponse{Combats: []*engine.Combat{}}
	for _, c := range h.combats.GetSessionCombats(req.SessionID) {
		snapshot, err := h.snapshot(ctx, c.ID)
		if errors.IsNotFound(err) {
			// deleted since the listing
			continue
		}
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		resp.Combats = append(resp.Combats, snapshot)
	}
	return resp, nil
}

// DeleteCombat removes a combat. Deleting an unknown id succeeds.
func (h *Handler) DeleteCombat(_ context.Context, req *CombatRequest) (*DeleteCombatResponse, error) {
	if req.CombatID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("combat_id is required"))
	}

	h.combats.DeleteCombat(req.CombatID)
	return &DeleteCombatResponse{}, nil
}

// AddCombatant builds a combatant, optionally rolls its initiative, and adds
// it to the combat.
func (h *Handler) AddCombatant(ctx context.Context, req *AddCombatantRequest) (*AddCombatantResponse, error) {
	if req.CombatID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("combat_id is required"))
	}

	def := req.Combatant
	combatant, err := engine.NewCombatant(&engine.CombatantConfig{
		ID:              def.ID,
		CharacterID:     def.CharacterID,
		Name:            def.Name,
		Initiative:      def.Initiative,
		InitiativeBonus: def.InitiativeBonus,
		MaxHP:           def.MaxHP,
		CurrentHP:       def.CurrentHP,
		TempHP:          def.TempHP,
		ArmorClass:      def.ArmorClass,
		IsNPC:           def.IsNPC,
		IsPlayer:        def.IsPlayer,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp := &AddCombatantResponse{}

	// The roll happens outside the combat lock since the roll log may live in redis
	if req.RollInitiative {
		if _, err := h.snapshot(ctx, req.CombatID); err != nil {
			return nil, errors.ToGRPCError(err)
		}

		rolled, err := h.diceService.RollInitiative(ctx, &dice.RollInitiativeInput{
			EntityID: combatant.ID,
			CombatID: req.CombatID,
			Bonus:    def.InitiativeBonus,
		})
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		combatant.Initiative = rolled.Total
		resp.InitiativeRoll = rolled.Roll
	}

	err = h.combats.Update(ctx, req.CombatID, func(c *engine.Combat) error {
		if err := c.AddCombatant(combatant); err != nil {
			return err
		}
		resp.Combatant = combatant.Clone()
		resp.TurnOrder = append([]string{}, c.TurnOrder...)
		return nil
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return resp, nil
}

// RemoveCombatant drops a combatant from the roster
func (h *Handler) RemoveCombatant(ctx context.Context, req *CombatantRequest) (*CombatResponse, error) {
	if err := validateCombatant(req.CombatID, req.CombatantID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return h.updateCombat(ctx, req.CombatID, func(c *engine.Combat) error {
		return c.RemoveCombatant(req.CombatantID)
	})
}

// StartCombat begins round one
func (h *Handler) StartCombat(ctx context.Context, req *CombatRequest) (*CombatResponse, error) {
	return h.updateCombat(ctx, req.CombatID, (*engine.Combat).Start)
}

// NextTurn advances to the next combatant
func (h *Handler) NextTurn(ctx context.Context, req *CombatRequest) (*NextTurnResponse, error) {
	if req.CombatID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("combat_id is required"))
	}

	var result *engine.NextTurnResult
	err := h.combats.Update(ctx, req.CombatID, func(c *engine.Combat) error {
		r, err := c.NextTurn()
		if err != nil {
			return err
		}
		result = r
		if r.Current != nil {
			result.Current = r.Current.Clone()
		}
		return nil
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &NextTurnResponse{Result: result}, nil
}

// ApplyDamage damages a combatant, ending the combat when a side falls
func (h *Handler) ApplyDamage(ctx context.Context, req *AmountRequest) (*DamageResponse, error) {
	if err := validateCombatant(req.CombatID, req.CombatantID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	var result *engine.DamageResult
	err := h.combats.Update(ctx, req.CombatID, func(c *engine.Combat) error {
		r, err := c.ApplyDamage(req.CombatantID, req.Amount)
		result = r
		return err
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &DamageResponse{Result: result}, nil
}

// ApplyHealing heals a combatant
func (h *Handler) ApplyHealing(ctx context.Context, req *AmountRequest) (*HealResponse, error) {
	if err := validateCombatant(req.CombatID, req.CombatantID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	var result *engine.HealResult
	err := h.combats.Update(ctx, req.CombatID, func(c *engine.Combat) error {
		r, err := c.ApplyHealing(req.CombatantID, req.Amount)
		result = r
		return err
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &HealResponse{Result: result}, nil
}

// AddCondition adds a named condition
func (h *Handler) AddCondition(ctx context.Context, req *ConditionRequest) (*CombatantResponse, error) {
	return h.changeCondition(ctx, req, (*engine.Combat).AddCondition)
}

// RemoveCondition removes a named condition
func (h *Handler) RemoveCondition(ctx context.Context, req *ConditionRequest) (*CombatantResponse, error) {
	return h.changeCondition(ctx, req, (*engine.Combat).RemoveCondition)
}

// RecordDeathSave records one death saving throw
func (h *Handler) RecordDeathSave(ctx context.Context, req *DeathSaveRequest) (*CombatantResponse, error) {
	return h.updateCombatant(ctx, req.CombatID, req.CombatantID, func(c *engine.Combatant) {
		c.RecordDeathSave(req.Success)
	})
}

// SetDead sets or clears the manual dead flag
func (h *Handler) SetDead(ctx context.Context, req *SetDeadRequest) (*CombatantResponse, error) {
	return h.updateCombatant(ctx, req.CombatID, req.CombatantID, func(c *engine.Combatant) {
		c.SetDead(req.Dead)
	})
}

// PauseCombat suspends an active combat
func (h *Handler) PauseCombat(ctx context.Context, req *CombatRequest) (*CombatResponse, error) {
	return h.updateCombat(ctx, req.CombatID, (*engine.Combat).Pause)
}

// ResumeCombat continues a paused combat
func (h *Handler) ResumeCombat(ctx context.Context, req *CombatRequest) (*CombatResponse, error) {
	return h.updateCombat(ctx, req.CombatID, (*engine.Combat).Resume)
}

// EndCombat ends the combat. Ending an ended combat succeeds.
func (h *Handler) EndCombat(ctx context.Context, req *CombatRequest) (*CombatResponse, error) {
	return h.updateCombat(ctx, req.CombatID, func(c *engine.Combat) error {
		c.End()
		return nil
	})
}

// GetSummary returns the polling view
func (h *Handler) GetSummary(ctx context.Context, req *CombatRequest) (*SummaryResponse, error) {
	if req.CombatID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("combat_id is required"))
	}

	var summary *engine.Summary
	err := h.combats.View(ctx, req.CombatID, func(c *engine.Combat) error {
		summary = c.Summary()
		return nil
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &SummaryResponse{Summary: summary}, nil
}

func (h *Handler) snapshot(ctx context.Context, id string) (*engine.Combat, error) {
	var out *engine.Combat
	err := h.combats.View(ctx, id, func(c *engine.Combat) error {
		out = c.Clone()
		return nil
	})
	return out, err
}

// updateCombat runs fn under the combat lock and returns the resulting state
func (h *Handler) updateCombat(ctx context.Context, id string, fn func(c *engine.Combat) error) (*CombatResponse, error) {
	if id == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("combat_id is required"))
	}

	var out *engine.Combat
	err := h.combats.Update(ctx, id, func(c *engine.Combat) error {
		if err := fn(c); err != nil {
			return err
		}
		out = c.Clone()
		return nil
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &CombatResponse{Combat: out}, nil
}

func (h *Handler) updateCombatant(ctx context.Context, combatID, combatantID string, fn func(c *engine.Combatant)) (*CombatantResponse, error) {
	if err := validateCombatant(combatID, combatantID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	var out *engine.Combatant
	err := h.combats.Update(ctx, combatID, func(c *engine.Combat) error {
		combatant, err := c.Combatant(combatantID)
		if err != nil {
			return err
		}
		fn(combatant)
		out = combatant.Clone()
		return nil
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &CombatantResponse{Combatant: out}, nil
}

func (h *Handler) changeCondition(
	ctx context.Context,
	req *ConditionRequest,
	apply func(c *engine.Combat, id string, condition engine.Condition) error,
) (*CombatantResponse, error) {
	if err := validateCombatant(req.CombatID, req.CombatantID); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	condition, err := engine.ParseCondition(req.Condition)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	var out *engine.Combatant
	err = h.combats.Update(ctx, req.CombatID, func(c *engine.Combat) error {
		if err := apply(c, req.CombatantID, condition); err != nil {
			return err
		}
		combatant, err := c.Combatant(req.CombatantID)
		if err != nil {
			return err
		}
		out = combatant.Clone()
		return nil
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &CombatantResponse{Combatant: out}, nil
}

func validateCombatant(combatID, combatantID string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("combat_id", combatID, vb)
	errors.ValidateRequired("combatant_id", combatantID, vb)
	return vb.Build()
}
