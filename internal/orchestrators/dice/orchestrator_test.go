package dice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/dm-api/internal/errors"
	"github.com/KirkDiggler/dm-api/internal/pkg/idgen"
	dicesession "github.com/KirkDiggler/dm-api/internal/repositories/dice_session"
	dicesessionmock "github.com/KirkDiggler/dm-api/internal/repositories/dice_session/mock"
)

// fixedRoller returns the given faces in order, cycling when it runs out
func fixedRoller(faces ...int) Roller {
	next := 0
	return func(count, _ int) ([]int, error) {
		out := make([]int, count)
		for i := range out {
			out[i] = faces[next%len(faces)]
			next++
		}
		return out, nil
	}
}

func TestParseNotation(t *testing.T) {
	testCases := []struct {
		raw      string
		expected notation
	}{
		{"1d20", notation{count: 1, size: 20}},
		{"2D6", notation{count: 2, size: 6}},
		{"1d20+5", notation{count: 1, size: 20, modifier: 5}},
		{"3d8-1", notation{count: 3, size: 8, modifier: -1}},
		{"1d20 + 2", notation{count: 1, size: 20, modifier: 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			n, err := parseNotation(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, *n)
		})
	}

	for _, bad := range []string{"", "d20", "1d", "0d6", "1d0", "2d6+", "fireball", "101d6", "1d1001"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := parseNotation(bad)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestRollInitiative_CreatesLog(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := dicesessionmock.NewMockRepository(ctrl)
	o, err := NewOrchestrator(&Config{
		DiceSessionRepo: mockRepo,
		IDGenerator:     idgen.NewSequential("roll"),
		Roller:          fixedRoller(14),
	})
	require.NoError(t, err)

	ctx := context.Background()

	mockRepo.EXPECT().
		Get(ctx, dicesession.GetInput{EntityID: "goblin", Context: "initiative:combat_1"}).
		Return(nil, errors.NotFound("dice session not found"))

	mockRepo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input dicesession.CreateInput) (*dicesession.CreateOutput, error) {
			assert.Equal(t, "initiative:combat_1", input.Context)
			assert.Equal(t, DefaultSessionTTL, input.TTL)
			require.Len(t, input.Rolls, 1)
			assert.Equal(t, "1d20+2", input.Rolls[0].Notation)
			return &dicesession.CreateOutput{Session: &dicesession.DiceSession{Rolls: input.Rolls}}, nil
		})

	out, err := o.RollInitiative(ctx, &RollInitiativeInput{EntityID: "goblin", CombatID: "combat_1", Bonus: 2})
	require.NoError(t, err)
	assert.Equal(t, 16, out.Total)
	assert.Equal(t, []int{14}, out.Roll.Dice)
	assert.Equal(t, 14, out.Roll.DiceTotal)
	assert.Equal(t, 2, out.Roll.Modifier)
	assert.Equal(t, "roll_1", out.Roll.RollID)
}

func TestRollInitiative_NegativeBonusAppends(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := dicesessionmock.NewMockRepository(ctrl)
	o, err := NewOrchestrator(&Config{
		DiceSessionRepo: mockRepo,
		IDGenerator:     idgen.NewSequential("roll"),
		Roller:          fixedRoller(1),
	})
	require.NoError(t, err)

	ctx := context.Background()
	existing := &dicesession.DiceSession{
		EntityID: "zombie",
		Context:  "initiative:c",
		Rolls:    []dicesession.DiceRoll{{RollID: "earlier", Total: 9}},
	}

	mockRepo.EXPECT().Get(ctx, gomock.Any()).Return(&dicesession.GetOutput{Session: existing}, nil)
	mockRepo.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, session *dicesession.DiceSession) error {
			assert.Len(t, session.Rolls, 2)
			assert.Equal(t, "1d20-2", session.Rolls[1].Notation)
			return nil
		})

	out, err := o.RollInitiative(ctx, &RollInitiativeInput{EntityID: "zombie", CombatID: "c", Bonus: -2})
	require.NoError(t, err)
	assert.Equal(t, -1, out.Total)
}

func TestRollInitiative_Validation(t *testing.T) {
	o, err := NewOrchestrator(&Config{
		DiceSessionRepo: dicesession.NewInMemory(nil),
		IDGenerator:     idgen.NewSequential("roll"),
	})
	require.NoError(t, err)

	_, err = o.RollInitiative(context.Background(), &RollInitiativeInput{EntityID: "x"})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = o.RollInitiative(context.Background(), nil)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestRollInitiative_RepositoryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := dicesessionmock.NewMockRepository(ctrl)
	o, err := NewOrchestrator(&Config{
		DiceSessionRepo: mockRepo,
		IDGenerator:     idgen.NewSequential("roll"),
		Roller:          fixedRoller(10),
	})
	require.NoError(t, err)

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.Unavailable("redis is down"))

	_, err = o.RollInitiative(context.Background(), &RollInitiativeInput{EntityID: "x", CombatID: "c"})
	assert.True(t, errors.IsUnavailable(err))
}

func TestRollDice_InMemoryRoundTrip(t *testing.T) {
	repo := dicesession.NewInMemory(nil)
	o, err := NewOrchestrator(&Config{
		DiceSessionRepo: repo,
		IDGenerator:     idgen.NewSequential("roll"),
		Roller:          fixedRoller(3, 4),
	})
	require.NoError(t, err)

	ctx := context.Background()
	out, err := o.RollDice(ctx, &RollDiceInput{EntityID: "fighter", Context: "damage", Notation: "2d6+3", Description: "Longsword"})
	require.NoError(t, err)
	assert.Equal(t, 10, out.Roll.Total)
	assert.Equal(t, "Longsword", out.Roll.Description)

	_, err = o.RollDice(ctx, &RollDiceInput{EntityID: "fighter", Context: "damage", Notation: "1d6"})
	require.NoError(t, err)

	got, err := o.GetRollSession(ctx, &GetRollSessionInput{EntityID: "fighter", Context: "damage"})
	require.NoError(t, err)
	assert.Len(t, got.Session.Rolls, 2)

	cleared, err := o.ClearRollSession(ctx, &ClearRollSessionInput{EntityID: "fighter", Context: "damage"})
	require.NoError(t, err)
	assert.Equal(t, 2, cleared.RollsDeleted)

	_, err = o.GetRollSession(ctx, &GetRollSessionInput{EntityID: "fighter", Context: "damage"})
	assert.True(t, errors.IsNotFound(err))
}

func TestToolkitRoller_FacesInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 8).Draw(rt, "count")
		size := rapid.SampledFrom([]int{4, 6, 8, 10, 12, 20}).Draw(rt, "size")

		faces, err := ToolkitRoller(count, size)
		require.NoError(rt, err)
		require.Len(rt, faces, count)
		for _, face := range faces {
			assert.GreaterOrEqual(rt, face, 1)
			assert.LessOrEqual(rt, face, size)
		}
	})
}
