package dice

import (
	"time"

	dicesession "github.com/KirkDiggler/dm-api/internal/repositories/dice_session"
)

// RollDiceInput rolls Notation (XdY with an optional +N or -N) and appends
// the result to the log for EntityID and Context. TTL applies only when the
// log is created; zero uses the orchestrator default.
type RollDiceInput struct {
	EntityID    string
	Context     string
	Notation    string
	Description string
	TTL         time.Duration
}

type RollDiceOutput struct {
	Roll    *dicesession.DiceRoll
	Session *dicesession.DiceSession
}

// RollInitiativeInput is logged under InitiativeContext(CombatID)
type RollInitiativeInput struct {
	EntityID string
	CombatID string
	Bonus    int
}

type RollInitiativeOutput struct {
	Roll  *dicesession.DiceRoll
	Total int
}

type GetRollSessionInput struct {
	EntityID string
	Context  string
}

type GetRollSessionOutput struct {
	Session *dicesession.DiceSession
}

type ClearRollSessionInput struct {
	EntityID string
	Context  string
}

// ClearRollSessionOutput reports how many rolls were in the removed log
type ClearRollSessionOutput struct {
	RollsDeleted int
}
