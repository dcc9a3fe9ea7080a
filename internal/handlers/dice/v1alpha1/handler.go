// Package v1alpha1 handles the dice grpc service interface
package v1alpha1

import (
	"context"

	"github.com/KirkDiggler/dm-api/internal/errors"
	"github.com/KirkDiggler/dm-api/internal/orchestrators/dice"
)

// HandlerConfig holds dependencies for the dice handler
type HandlerConfig struct {
	DiceService dice.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil || c.DiceService == nil {
		return errors.InvalidArgument("dice service is required")
	}
	return nil
}

// Handler implements DiceServiceServer
type Handler struct {
	diceService dice.Service
}

var _ DiceServiceServer = (*Handler)(nil)

// NewHandler creates a new dice handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		diceService: cfg.DiceService,
	}, nil
}

// RollDice rolls dice using the given notation and appends the roll to the entity's log
func (h *Handler) RollDice(ctx context.Context, req *RollDiceRequest) (*RollDiceResponse, error) {
	if err := validateKey(req.EntityID, req.Context); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.Notation == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("notation is required"))
	}

	out, err := h.diceService.RollDice(ctx, &dice.RollDiceInput{
		EntityID:    req.EntityID,
		Context:     req.Context,
		Notation:    req.Notation,
		Description: req.ModifierDescription,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &RollDiceResponse{
		Roll:      out.Roll,
		Rolls:     out.Session.Rolls,
		ExpiresAt: out.Session.ExpiresAt.Unix(),
	}, nil
}

// GetRollSession retrieves a roll log
func (h *Handler) GetRollSession(ctx context.Context, req *RollSessionRequest) (*GetRollSessionResponse, error) {
	if err := validateKey(req.EntityID, req.Context); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.diceService.GetRollSession(ctx, &dice.GetRollSessionInput{
		EntityID: req.EntityID,
		Context:  req.Context,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetRollSessionResponse{
		Rolls:     out.Session.Rolls,
		ExpiresAt: out.Session.ExpiresAt.Unix(),
		CreatedAt: out.Session.CreatedAt.Unix(),
	}, nil
}

// ClearRollSession removes a roll log
func (h *Handler) ClearRollSession(ctx context.Context, req *RollSessionRequest) (*ClearRollSessionResponse, error) {
	if err := validateKey(req.EntityID, req.Context); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.diceService.ClearRollSession(ctx, &dice.ClearRollSessionInput{
		EntityID: req.EntityID,
		Context:  req.Context,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ClearRollSessionResponse{
		Message:      "Roll session cleared successfully",
		RollsCleared: out.RollsDeleted,
	}, nil
}

func validateKey(entityID, rollContext string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("entity_id", entityID, vb)
	errors.ValidateRequired("context", rollContext, vb)
	return vb.Build()
}
