// Package dice implements the dice orchestrator: rolls through rpg-toolkit and
// keeps a per-entity roll log, including initiative rolls for combat.
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/dm-api/internal/orchestrators/dice Service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/dm-api/internal/errors"
	"github.com/KirkDiggler/dm-api/internal/pkg/idgen"
	dicesession "github.com/KirkDiggler/dm-api/internal/repositories/dice_session"
)

const (
	// InitiativeNotation is the die rolled for initiative before the bonus
	InitiativeNotation = "1d20"

	// DefaultSessionTTL keeps initiative logs around for a long fight
	DefaultSessionTTL = 4 * time.Hour

	maxDiceCount = 100
	maxDieSize   = 1000
)

// Matches "2d6", "1d20+5", "3d8-1"
var diceNotationRegex = regexp.MustCompile(`^(\d+)d(\d+)(?:([+-])(\d+))?$`)

// Roller rolls count dice of the given size and returns each face
type Roller func(count, size int) ([]int, error)

// Service defines the interface for dice operations
type Service interface {
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)

	// RollInitiative rolls 1d20 plus the bonus and logs it under initiative:<combat_id>
	RollInitiative(ctx context.Context, input *RollInitiativeInput) (*RollInitiativeOutput, error)

	GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error)
	ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	DiceSessionRepo dicesession.Repository
	IDGenerator     idgen.Generator

	// Roller defaults to the rpg-toolkit roller
	Roller Roller

	// SessionTTL applies to new roll logs; zero uses DefaultSessionTTL
	SessionTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DiceSessionRepo == nil {
		vb.RequiredField("DiceSessionRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.SessionTTL < 0 {
		vb.Field("SessionTTL", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	diceSessionRepo dicesession.Repository
	idGen           idgen.Generator
	roll            Roller
	sessionTTL      time.Duration
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = ToolkitRoller
	}
	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}

	return &orchestrator{
		diceSessionRepo: cfg.DiceSessionRepo,
		idGen:           cfg.IDGenerator,
		roll:            roller,
		sessionTTL:      ttl,
	}, nil
}

// InitiativeContext names the roll log for a combat's initiative rolls
func InitiativeContext(combatID string) string {
	return "initiative:" + combatID
}

// ToolkitRoller rolls with rpg-toolkit. The toolkit only reports individual
// faces inside its description ("+2d6[3,4]=7"), so they are parsed from there.
func ToolkitRoller(count, size int) ([]int, error) {
	roll, err := dice.NewRoll(count, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create dice roll")
	}

	total := roll.GetValue()
	description := roll.GetDescription()

	start := strings.Index(description, "[")
	end := strings.Index(description, "]")
	if start < 0 || end <= start {
		return nil, errors.Internalf("unexpected roll description %q", description)
	}

	faces := make([]int, 0, count)
	sum := 0
	for _, part := range strings.Split(description[start+1:end], ",") {
		face, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Internalf("unexpected roll description %q", description)
		}
		faces = append(faces, face)
		sum += face
	}

	if len(faces) != count || sum != total {
		return nil, errors.Internalf("roll description %q does not match total %d", description, total)
	}
	return faces, nil
}

type notation struct {
	count    int
	size     int
	modifier int
}

func parseNotation(raw string) (*notation, error) {
	matches := diceNotationRegex.FindStringSubmatch(strings.ToLower(strings.ReplaceAll(raw, " ", "")))
	if matches == nil {
		return nil, errors.InvalidArgumentf("invalid dice notation: %s (expected format: XdY[+N])", raw)
	}

	count, _ := strconv.Atoi(matches[1])
	size, _ := strconv.Atoi(matches[2])
	if count <= 0 || size <= 0 {
		return nil, errors.InvalidArgumentf("dice count and size must be positive: %s", raw)
	}
	if count > maxDiceCount || size > maxDieSize {
		return nil, errors.InvalidArgumentf("too many dice or sides: %s", raw)
	}

	n := &notation{count: count, size: size}
	if matches[3] != "" {
		n.modifier, _ = strconv.Atoi(matches[4])
		if matches[3] == "-" {
			n.modifier = -n.modifier
		}
	}
	return n, nil
}

func (o *orchestrator) rollNotation(raw string) (*dicesession.DiceRoll, error) {
	n, err := parseNotation(raw)
	if err != nil {
		return nil, err
	}

	faces, err := o.roll(n.count, n.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll dice")
	}

	diceTotal := 0
	for _, face := range faces {
		diceTotal += face
	}

	return &dicesession.DiceRoll{
		RollID:    o.idGen.Generate(),
		Notation:  raw,
		Dice:      faces,
		DiceTotal: diceTotal,
		Modifier:  n.modifier,
		Total:     diceTotal + n.modifier,
	}, nil
}

// appendRoll adds the roll to the entity's log, creating the log when needed
func (o *orchestrator) appendRoll(ctx context.Context, entityID, rollContext string, roll *dicesession.DiceRoll, ttl time.Duration) (*dicesession.DiceSession, error) {
	existing, err := o.diceSessionRepo.Get(ctx, dicesession.GetInput{
		EntityID: entityID,
		Context:  rollContext,
	})
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, "failed to check for existing session")
		}

		if ttl == 0 {
			ttl = o.sessionTTL
		}
		created, err := o.diceSessionRepo.Create(ctx, dicesession.CreateInput{
			EntityID: entityID,
			Context:  rollContext,
			Rolls:    []dicesession.DiceRoll{*roll},
			TTL:      ttl,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create dice session")
		}
		return created.Session, nil
	}

	session := existing.Session
	session.Rolls = append(session.Rolls, *roll)
	if err := o.diceSessionRepo.Update(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to update dice session")
	}
	return session, nil
}

// RollDice rolls dice using the specified notation and stores the result in a session
func (o *orchestrator) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("EntityID", input.EntityID, vb)
	errors.ValidateRequired("Context", input.Context, vb)
	errors.ValidateRequired("Notation", input.Notation, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	roll, err := o.rollNotation(input.Notation)
	if err != nil {
		return nil, err
	}
	roll.Description = input.Description

	session, err := o.appendRoll(ctx, input.EntityID, input.Context, roll, input.TTL)
	if err != nil {
		return nil, err
	}

	slog.Info("Dice rolled",
		"entity_id", input.EntityID,
		"context", input.Context,
		"notation", input.Notation,
		"total", roll.Total,
		"roll_id", roll.RollID,
	)

	return &RollDiceOutput{Roll: roll, Session: session}, nil
}

func (o *orchestrator) RollInitiative(ctx context.Context, input *RollInitiativeInput) (*RollInitiativeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("EntityID", input.EntityID, vb)
	errors.ValidateRequired("CombatID", input.CombatID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	raw := InitiativeNotation
	if input.Bonus > 0 {
		raw = fmt.Sprintf("%s+%d", InitiativeNotation, input.Bonus)
	} else if input.Bonus < 0 {
		raw = fmt.Sprintf("%s%d", InitiativeNotation, input.Bonus)
	}

	roll, err := o.rollNotation(raw)
	if err != nil {
		return nil, err
	}
	roll.Description = "Initiative"

	if _, err := o.appendRoll(ctx, input.EntityID, InitiativeContext(input.CombatID), roll, 0); err != nil {
		return nil, err
	}

	slog.Info("Initiative rolled",
		"entity_id", input.EntityID,
		"combat_id", input.CombatID,
		"die", roll.DiceTotal,
		"bonus", input.Bonus,
		"total", roll.Total,
	)

	return &RollInitiativeOutput{Roll: roll, Total: roll.Total}, nil
}

// GetRollSession retrieves an existing dice roll session
func (o *orchestrator) GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.diceSessionRepo.Get(ctx, dicesession.GetInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get dice session")
	}

	return &GetRollSessionOutput{Session: out.Session}, nil
}

// ClearRollSession removes a dice roll session
func (o *orchestrator) ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.diceSessionRepo.Delete(ctx, dicesession.DeleteInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete dice session")
	}

	slog.Info("Dice session cleared",
		"entity_id", input.EntityID,
		"context", input.Context,
		"rolls_deleted", out.RollsDeleted,
	)

	return &ClearRollSessionOutput{RollsDeleted: out.RollsDeleted}, nil
}
