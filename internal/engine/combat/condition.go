package combat

import (
	"strings"

	"github.com/KirkDiggler/dm-api/internal/errors"
)

// Condition is a named status effect attached to a combatant
type Condition string

// D&D 5e conditions plus concentration, which the table tracks the same way
const (
	ConditionBlinded       Condition = "blinded"
	ConditionCharmed       Condition = "charmed"
	ConditionDeafened      Condition = "deafened"
	ConditionFrightened    Condition = "frightened"
	ConditionGrappled      Condition = "grappled"
	ConditionIncapacitated Condition = "incapacitated"
	ConditionInvisible     Condition = "invisible"
	ConditionParalyzed     Condition = "paralyzed"
	ConditionPetrified     Condition = "petrified"
	ConditionPoisoned      Condition = "poisoned"
	ConditionProne         Condition = "prone"
	ConditionRestrained    Condition = "restrained"
	ConditionStunned       Condition = "stunned"
	ConditionUnconscious   Condition = "unconscious"
	ConditionExhaustion    Condition = "exhaustion"
	ConditionConcentration Condition = "concentration"
)

var allConditions = []Condition{
	ConditionBlinded,
	ConditionCharmed,
	ConditionDeafened,
	ConditionFrightened,
	ConditionGrappled,
	ConditionIncapacitated,
	ConditionInvisible,
	ConditionParalyzed,
	ConditionPetrified,
	ConditionPoisoned,
	ConditionProne,
	ConditionRestrained,
	ConditionStunned,
	ConditionUnconscious,
	ConditionExhaustion,
	ConditionConcentration,
}

// AllConditions returns every known condition in declaration order
func AllConditions() []Condition {
	out := make([]Condition, len(allConditions))
	copy(out, allConditions)
	return out
}

// String returns the wire name of the condition
func (c Condition) String() string {
	return string(c)
}

// IsValid reports whether c is one of the known conditions
func (c Condition) IsValid() bool {
	for _, known := range allConditions {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCondition converts a client supplied name into a Condition.
// Unknown names are rejected instead of being stored.
func ParseCondition(name string) (Condition, error) {
	c := Condition(strings.ToLower(strings.TrimSpace(name)))
	if !c.IsValid() {
		return "", errors.InvalidArgumentf("unknown condition: %q", name)
	}
	return c, nil
}
