// Package v1alpha1 handles the session grpc service interface
package v1alpha1

import (
	"context"

	engine "github.com/KirkDiggler/dm-api/internal/engine/combat"
	"github.com/KirkDiggler/dm-api/internal/errors"
	combatorch "github.com/KirkDiggler/dm-api/internal/orchestrators/combat"
	"github.com/KirkDiggler/dm-api/internal/orchestrators/session"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	SessionService session.Service

	// CombatManager is used to copy combats the session service hands back
	CombatManager *combatorch.Manager
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("handler config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.SessionService == nil {
		vb.RequiredField("SessionService")
	}
	if c.CombatManager == nil {
		vb.RequiredField("CombatManager")
	}
	return vb.Build()
}

// Handler implements SessionServiceServer
type Handler struct {
	sessions session.Service
	combats  *combatorch.Manager
}

var _ SessionServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{
		sessions: cfg.SessionService,
		combats:  cfg.CombatManager,
	}, nil
}

func (h *Handler) CreateSession(ctx context.Context, req *CreateSessionRequest) (*SessionResponse, error) {
	out, err := h.sessions.CreateSession(ctx, &session.CreateSessionInput{
		CampaignID: req.CampaignID,
		Name:       req.Name,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &SessionResponse{Session: out.Session}, nil
}

func (h *Handler) GetSession(ctx context.Context, req *SessionRequest) (*SessionResponse, error) {
	if req.SessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	out, err := h.sessions.GetSession(ctx, &session.GetSessionInput{SessionID: req.SessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &SessionResponse{Session: out.Session}, nil
}

// DeleteSession removes a session along with its combats
func (h *Handler) DeleteSession(ctx context.Context, req *SessionRequest) (*DeleteSessionResponse, error) {
	if req.SessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	out, err := h.sessions.DeleteSession(ctx, &session.DeleteSessionInput{SessionID: req.SessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &DeleteSessionResponse{Deleted: out.Deleted}, nil
}

func (h *Handler) AddChatMessage(ctx context.Context, req *AddChatMessageRequest) (*ChatMessageResponse, error) {
	if req.SessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	out, err := h.sessions.AddChatMessage(ctx, &session.AddChatMessageInput{
		SessionID: req.SessionID,
		Sender:    req.Sender,
		Content:   req.Content,
		IsDM:      req.IsDM,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &ChatMessageResponse{Message: out.Message}, nil
}

func (h *Handler) RecordAction(ctx context.Context, req *RecordActionRequest) (*ActionEntryResponse, error) {
	if req.SessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	out, err := h.sessions.RecordAction(ctx, &session.RecordActionInput{
		SessionID:   req.SessionID,
		Kind:        req.Kind,
		Actor:       req.Actor,
		Description: req.Description,
		CombatID:    req.CombatID,
		Round:       req.Round,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &ActionEntryResponse{Entry: out.Entry}, nil
}

func (h *Handler) SetPhase(ctx context.Context, req *SetPhaseRequest) (*SessionResponse, error) {
	if req.SessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	out, err := h.sessions.SetPhase(ctx, &session.SetPhaseInput{
		SessionID: req.SessionID,
		Phase:     req.Phase,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &SessionResponse{Session: out.Session}, nil
}

func (h *Handler) StartCombat(ctx context.Context, req *StartCombatRequest) (*CombatResponse, error) {
	if req.SessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	out, err := h.sessions.StartCombat(ctx, &session.StartCombatInput{
		SessionID:          req.SessionID,
		Description:        req.Description,
		EnvironmentEffects: req.EnvironmentEffects,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return h.combatResponse(ctx, out.Combat)
}

func (h *Handler) EndCombat(ctx context.Context, req *SessionRequest) (*CombatResponse, error) {
	if req.SessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	out, err := h.sessions.EndCombat(ctx, &session.EndCombatInput{SessionID: req.SessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return h.combatResponse(ctx, out.Combat)
}

func (h *Handler) GetSessionCombat(ctx context.Context, req *SessionRequest) (*CombatResponse, error) {
	if req.SessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	out, err := h.sessions.GetSessionCombat(ctx, &session.GetSessionCombatInput{SessionID: req.SessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return h.combatResponse(ctx, out.Combat)
}

func (h *Handler) ApplyDamage(ctx context.Context, req *SessionAmountRequest) (*DamageResponse, error) {
	if err := validateCombatant(req.SessionID, req.CombatantID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.sessions.ApplyDamage(ctx, &session.ApplyDamageInput{
		SessionID:   req.SessionID,
		CombatantID: req.CombatantID,
		Amount:      req.Amount,
		Source:      req.Source,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &DamageResponse{Result: out.Result}, nil
}

func (h *Handler) ApplyHealing(ctx context.Context, req *SessionAmountRequest) (*HealResponse, error) {
	if err := validateCombatant(req.SessionID, req.CombatantID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.sessions.ApplyHealing(ctx, &session.ApplyHealingInput{
		SessionID:   req.SessionID,
		CombatantID: req.CombatantID,
		Amount:      req.Amount,
		Source:      req.Source,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &HealResponse{Result: out.Result}, nil
}

func (h *Handler) NextTurn(ctx context.Context, req *SessionRequest) (*NextTurnResponse, error) {
	if req.SessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	out, err := h.sessions.NextTurn(ctx, &session.NextTurnInput{SessionID: req.SessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &NextTurnResponse{Result: out.Result}, nil
}

func (h *Handler) AddCondition(ctx context.Context, req *SessionConditionRequest) (*ConditionsResponse, error) {
	input, err := conditionInput(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.sessions.AddCondition(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &ConditionsResponse{Conditions: out.Conditions}, nil
}

func (h *Handler) RemoveCondition(ctx context.Context, req *SessionConditionRequest) (*ConditionsResponse, error) {
	input, err := conditionInput(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.sessions.RemoveCondition(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &ConditionsResponse{Conditions: out.Conditions}, nil
}

// combatResponse copies c under its lock. A combat deleted in the meantime
// comes back as an empty response.
func (h *Handler) combatResponse(ctx context.Context, c *engine.Combat) (*CombatResponse, error) {
	if c == nil {
		return &CombatResponse{}, nil
	}

	resp := &CombatResponse{}
	err := h.combats.View(ctx, c.ID, func(live *engine.Combat) error {
		resp.Combat = live.Clone()
		return nil
	})
	if err != nil && !errors.IsNotFound(err) {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

func conditionInput(req *SessionConditionRequest) (*session.ConditionInput, error) {
	if err := validateCombatant(req.SessionID, req.CombatantID); err != nil {
		return nil, err
	}
	condition, err := engine.ParseCondition(req.Condition)
	if err != nil {
		return nil, err
	}
	return &session.ConditionInput{
		SessionID:   req.SessionID,
		CombatantID: req.CombatantID,
		Condition:   condition,
	}, nil
}

func validateCombatant(sessionID, combatantID string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("session_id", sessionID, vb)
	errors.ValidateRequired("combatant_id", combatantID, vb)
	return vb.Build()
}
