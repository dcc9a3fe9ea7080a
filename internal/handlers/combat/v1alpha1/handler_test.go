package v1alpha1_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	engine "github.com/KirkDiggler/dm-api/internal/engine/combat"
	"github.com/KirkDiggler/dm-api/internal/errors"
	"github.com/KirkDiggler/dm-api/internal/handlers/combat/v1alpha1"
	combatorch "github.com/KirkDiggler/dm-api/internal/orchestrators/combat"
	"github.com/KirkDiggler/dm-api/internal/orchestrators/dice"
	dicemock "github.com/KirkDiggler/dm-api/internal/orchestrators/dice/mock"
	"github.com/KirkDiggler/dm-api/internal/pkg/clock"
	"github.com/KirkDiggler/dm-api/internal/pkg/idgen"
	dicesession "github.com/KirkDiggler/dm-api/internal/repositories/dice_session"
	"github.com/KirkDiggler/dm-api/internal/testutils"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockDice *dicemock.MockService
	manager  *combatorch.Manager
	handler  *v1alpha1.Handler
	client   *v1alpha1.Client
	ctx      context.Context
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockDice = dicemock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	var err error
	s.manager, err = combatorch.NewManager(&combatorch.Config{
		IDGenerator: idgen.NewSequential("combat"),
		Clock:       clock.New(),
	})
	s.Require().NoError(err)

	s.handler, err = v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		CombatManager: s.manager,
		DiceService:   s.mockDice,
	})
	s.Require().NoError(err)

	conn := testutils.StartBufconnServer(s.T(), func(srv *grpc.Server) {
		v1alpha1.RegisterCombatServiceServer(srv, s.handler)
	})
	s.client = v1alpha1.NewClient(conn)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) requireCode(err error, code codes.Code) {
	s.Require().Error(err)
	s.Equal(code, status.Code(err), err.Error())
}

func (s *HandlerTestSuite) createFight() string {
	resp, err := s.client.CreateCombat(s.ctx, &v1alpha1.CreateCombatRequest{
		SessionID:   "session-1",
		Description: "Goblin ambush",
	})
	s.Require().NoError(err)

	_, err = s.client.AddCombatant(s.ctx, &v1alpha1.AddCombatantRequest{
		CombatID: resp.Combat.ID,
		Combatant: v1alpha1.CombatantSpec{
			ID: "fighter", Name: "Fighter", Initiative: 18, MaxHP: 47,
		},
	})
	s.Require().NoError(err)

	npc, notPlayer := true, false
	_, err = s.client.AddCombatant(s.ctx, &v1alpha1.AddCombatantRequest{
		CombatID: resp.Combat.ID,
		Combatant: v1alpha1.CombatantSpec{
			ID: "goblin", Name: "Goblin", Initiative: 14, MaxHP: 7, IsNPC: &npc, IsPlayer: &notPlayer,
		},
	})
	s.Require().NoError(err)

	return resp.Combat.ID
}

func (s *HandlerTestSuite) TestNewHandler_Validation() {
	h, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.Nil(h)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "invalid config")
}

func (s *HandlerTestSuite) TestGoblinAmbush() {
	id := s.createFight()

	started, err := s.client.StartCombat(s.ctx, &v1alpha1.CombatRequest{CombatID: id})
	s.Require().NoError(err)
	s.Equal(engine.StatusActive, started.Combat.Status)
	s.Equal(1, started.Combat.RoundNumber)
	s.Equal([]string{"fighter", "goblin"}, started.Combat.TurnOrder)

	turn, err := s.client.NextTurn(s.ctx, &v1alpha1.CombatRequest{CombatID: id})
	s.Require().NoError(err)
	s.Equal(1, turn.Result.Round)
	s.Require().NotNil(turn.Result.Current)
	s.Equal("Goblin", turn.Result.Current.Name)

	hit, err := s.client.ApplyDamage(s.ctx, &v1alpha1.AmountRequest{CombatID: id, CombatantID: "goblin", Amount: 10})
	s.Require().NoError(err)
	s.Equal(7, hit.Result.HPDamage)
	s.True(hit.Result.IsUnconscious)
	s.True(hit.Result.CombatEnded)
	s.Equal(engine.SidePlayers, hit.Result.Winner)

	got, err := s.client.GetCombat(s.ctx, &v1alpha1.CombatRequest{CombatID: id})
	s.Require().NoError(err)
	s.Equal(engine.StatusEnded, got.Combat.Status)
	s.NotNil(got.Combat.EndedAt)

	summary, err := s.client.GetSummary(s.ctx, &v1alpha1.CombatRequest{CombatID: id})
	s.Require().NoError(err)
	s.Equal(engine.StatusEnded, summary.Summary.Status)
	s.Require().Len(summary.Summary.Combatants, 2)
	s.Equal("0/7", summary.Summary.Combatants[1].HP)
}

func (s *HandlerTestSuite) TestAddCombatant_RollsInitiative() {
	id := s.createFight()

	s.mockDice.EXPECT().
		RollInitiative(gomock.Any(), &dice.RollInitiativeInput{EntityID: "rogue", CombatID: id, Bonus: 4}).
		Return(&dice.RollInitiativeOutput{
			Roll:  &dicesession.DiceRoll{RollID: "roll_1", Notation: "1d20+4", Dice: []int{17}, DiceTotal: 17, Modifier: 4, Total: 21},
			Total: 21,
		}, nil)

	resp, err := s.client.AddCombatant(s.ctx, &v1alpha1.AddCombatantRequest{
		CombatID:       id,
		RollInitiative: true,
		Combatant: v1alpha1.CombatantSpec{
			ID: "rogue", Name: "Rogue", Initiative: 1, InitiativeBonus: 4, MaxHP: 30,
		},
	})
	s.Require().NoError(err)
	s.Equal(21, resp.Combatant.Initiative)
	s.Require().NotNil(resp.InitiativeRoll)
	s.Equal("roll_1", resp.InitiativeRoll.RollID)
	s.Equal([]string{"rogue", "fighter", "goblin"}, resp.TurnOrder)
}

func (s *HandlerTestSuite) TestAddCombatant_RollFailureLeavesRosterAlone() {
	id := s.createFight()

	s.mockDice.EXPECT().
		RollInitiative(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("redis down"))

	_, err := s.client.AddCombatant(s.ctx, &v1alpha1.AddCombatantRequest{
		CombatID:       id,
		RollInitiative: true,
		Combatant:      v1alpha1.CombatantSpec{ID: "rogue", Name: "Rogue", MaxHP: 30},
	})
	s.requireCode(err, codes.Unavailable)

	got, err := s.client.GetCombat(s.ctx, &v1alpha1.CombatRequest{CombatID: id})
	s.Require().NoError(err)
	s.Len(got.Combat.Combatants, 2)
}

func (s *HandlerTestSuite) TestAddCombatant_UnknownCombatSkipsRoll() {
	_, err := s.client.AddCombatant(s.ctx, &v1alpha1.AddCombatantRequest{
		CombatID:       "combat_404",
		RollInitiative: true,
		Combatant:      v1alpha1.CombatantSpec{Name: "Rogue", MaxHP: 30},
	})
	s.requireCode(err, codes.NotFound)
}

func (s *HandlerTestSuite) TestAddCombatant_Errors() {
	id := s.createFight()

	s.Run("duplicate id", func() {
		_, err := s.client.AddCombatant(s.ctx, &v1alpha1.AddCombatantRequest{
			CombatID:  id,
			Combatant: v1alpha1.CombatantSpec{ID: "goblin", Name: "Goblin", MaxHP: 7},
		})
		s.requireCode(err, codes.AlreadyExists)
	})

	s.Run("invalid combatant", func() {
		_, err := s.client.AddCombatant(s.ctx, &v1alpha1.AddCombatantRequest{
			CombatID:  id,
			Combatant: v1alpha1.CombatantSpec{Name: "Ghost", MaxHP: 0},
		})
		s.requireCode(err, codes.InvalidArgument)
	})

	s.Run("missing combat id", func() {
		_, err := s.client.AddCombatant(s.ctx, &v1alpha1.AddCombatantRequest{
			Combatant: v1alpha1.CombatantSpec{Name: "Rogue", MaxHP: 30},
		})
		s.requireCode(err, codes.InvalidArgument)
	})
}

func (s *HandlerTestSuite) TestStateErrors() {
	id := s.createFight()

	_, err := s.client.NextTurn(s.ctx, &v1alpha1.CombatRequest{CombatID: id})
	s.requireCode(err, codes.FailedPrecondition)

	_, err = s.client.PauseCombat(s.ctx, &v1alpha1.CombatRequest{CombatID: id})
	s.requireCode(err, codes.FailedPrecondition)

	_, err = s.client.StartCombat(s.ctx, &v1alpha1.CombatRequest{CombatID: id})
	s.Require().NoError(err)

	paused, err := s.client.PauseCombat(s.ctx, &v1alpha1.CombatRequest{CombatID: id})
	s.Require().NoError(err)
	s.Equal(engine.StatusPaused, paused.Combat.Status)

	resumed, err := s.client.ResumeCombat(s.ctx, &v1alpha1.CombatRequest{CombatID: id})
	s.Require().NoError(err)
	s.Equal(engine.StatusActive, resumed.Combat.Status)

	ended, err := s.client.EndCombat(s.ctx, &v1alpha1.CombatRequest{CombatID: id})
	s.Require().NoError(err)
	s.Equal(engine.StatusEnded, ended.Combat.Status)

	_, err = s.client.EndCombat(s.ctx, &v1alpha1.CombatRequest{CombatID: id})
	s.Require().NoError(err)

	_, err = s.client.StartCombat(s.ctx, &v1alpha1.CombatRequest{CombatID: id})
	s.requireCode(err, codes.FailedPrecondition)
}

func (s *HandlerTestSuite) TestNotFound() {
	_, err := s.client.GetCombat(s.ctx, &v1alpha1.CombatRequest{CombatID: "combat_404"})
	s.requireCode(err, codes.NotFound)

	id := s.createFight()
	_, err = s.client.ApplyHealing(s.ctx, &v1alpha1.AmountRequest{CombatID: id, CombatantID: "dragon", Amount: 5})
	s.requireCode(err, codes.NotFound)
}

func (s *HandlerTestSuite) TestConditions() {
	id := s.createFight()

	added, err := s.client.AddCondition(s.ctx, &v1alpha1.ConditionRequest{CombatID: id, CombatantID: "fighter", Condition: "Poisoned"})
	s.Require().NoError(err)
	s.Equal([]engine.Condition{engine.ConditionPoisoned}, added.Combatant.Conditions)

	removed, err := s.client.RemoveCondition(s.ctx, &v1alpha1.ConditionRequest{CombatID: id, CombatantID: "fighter", Condition: "poisoned"})
	s.Require().NoError(err)
	s.Empty(removed.Combatant.Conditions)

	_, err = s.client.AddCondition(s.ctx, &v1alpha1.ConditionRequest{CombatID: id, CombatantID: "fighter", Condition: "on-fire"})
	s.requireCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestDeathSavesAndDeadFlag() {
	id := s.createFight()

	_, err := s.client.ApplyDamage(s.ctx, &v1alpha1.AmountRequest{CombatID: id, CombatantID: "fighter", Amount: 47})
	s.Require().NoError(err)

	var last *v1alpha1.CombatantResponse
	for range 3 {
		last, err = s.client.RecordDeathSave(s.ctx, &v1alpha1.DeathSaveRequest{CombatID: id, CombatantID: "fighter"})
		s.Require().NoError(err)
	}
	s.True(last.Combatant.IsDead)

	revived, err := s.client.SetDead(s.ctx, &v1alpha1.SetDeadRequest{CombatID: id, CombatantID: "fighter", Dead: false})
	s.Require().NoError(err)
	s.False(revived.Combatant.IsDead)
}

func (s *HandlerTestSuite) TestListAndDelete() {
	first := s.createFight()
	second := s.createFight()

	listed, err := s.client.ListSessionCombats(s.ctx, &v1alpha1.ListSessionCombatsRequest{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Require().Len(listed.Combats, 2)
	s.Equal(first, listed.Combats[0].ID)
	s.Equal(second, listed.Combats[1].ID)

	_, err = s.client.DeleteCombat(s.ctx, &v1alpha1.CombatRequest{CombatID: first})
	s.Require().NoError(err)
	_, err = s.client.DeleteCombat(s.ctx, &v1alpha1.CombatRequest{CombatID: first})
	s.Require().NoError(err)

	listed, err = s.client.ListSessionCombats(s.ctx, &v1alpha1.ListSessionCombatsRequest{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Len(listed.Combats, 1)

	_, err = s.client.ListSessionCombats(s.ctx, &v1alpha1.ListSessionCombatsRequest{})
	s.requireCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestResponsesDoNotAliasLiveState() {
	id := s.createFight()

	resp, err := s.handler.GetCombat(s.ctx, &v1alpha1.CombatRequest{CombatID: id})
	s.Require().NoError(err)
	resp.Combat.Combatants[0].CurrentHP = 1
	resp.Combat.TurnOrder[0] = "nobody"

	again, err := s.handler.GetCombat(s.ctx, &v1alpha1.CombatRequest{CombatID: id})
	s.Require().NoError(err)
	s.Equal(47, again.Combat.Combatants[0].CurrentHP)
	s.Equal("fighter", again.Combat.TurnOrder[0])
}
