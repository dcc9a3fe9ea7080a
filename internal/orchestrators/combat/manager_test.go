package combat_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	engine "github.com/KirkDiggler/dm-api/internal/engine/combat"
	"github.com/KirkDiggler/dm-api/internal/errors"
	combatorch "github.com/KirkDiggler/dm-api/internal/orchestrators/combat"
	"github.com/KirkDiggler/dm-api/internal/pkg/clock"
	"github.com/KirkDiggler/dm-api/internal/pkg/idgen"
)

type ManagerTestSuite struct {
	suite.Suite
	manager *combatorch.Manager
	ctx     context.Context
}

func (s *ManagerTestSuite) SetupTest() {
	var err error
	s.manager, err = combatorch.NewManager(&combatorch.Config{
		IDGenerator: idgen.NewSequential("combat"),
		Clock:       clock.New(),
	})
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *ManagerTestSuite) addGoblinFight(sessionID string) *engine.Combat {
	c := s.manager.CreateCombat(&combatorch.CreateCombatInput{
		SessionID:   sessionID,
		Description: "Goblin ambush",
	})

	fighter, err := engine.NewCombatant(&engine.CombatantConfig{ID: "fighter", Name: "Fighter", Initiative: 18, MaxHP: 47})
	s.Require().NoError(err)
	npc := true
	notPlayer := false
	goblin, err := engine.NewCombatant(&engine.CombatantConfig{
		ID: "goblin", Name: "Goblin", Initiative: 14, MaxHP: 7, IsNPC: &npc, IsPlayer: &notPlayer,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.manager.Update(s.ctx, c.ID, func(cb *engine.Combat) error {
		if err := cb.AddCombatant(fighter); err != nil {
			return err
		}
		return cb.AddCombatant(goblin)
	}))
	return c
}

func (s *ManagerTestSuite) TestNewManager_Validation() {
	s.Run("nil config", func() {
		m, err := combatorch.NewManager(nil)
		s.Nil(m)
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("missing dependencies", func() {
		m, err := combatorch.NewManager(&combatorch.Config{})
		s.Nil(m)
		s.Require().Error(err)
		s.Contains(err.Error(), "IDGenerator")
		s.Contains(err.Error(), "Clock")
	})

	s.Run("unknown turn pointer", func() {
		_, err := combatorch.NewManager(&combatorch.Config{
			IDGenerator: idgen.NewSequential("c"),
			Clock:       clock.New(),
			TurnPointer: "sideways",
		})
		s.Require().Error(err)
	})
}

func (s *ManagerTestSuite) TestCreateAndGet() {
	c := s.manager.CreateCombat(&combatorch.CreateCombatInput{
		SessionID:          "session_1",
		EnvironmentEffects: []string{"dim light"},
	})

	s.Equal("combat_1", c.ID)
	s.Equal(engine.StatusReady, c.Status)
	s.Equal(engine.TurnPointerPositional, c.TurnPointer)
	s.Same(c, s.manager.GetCombat("combat_1"))
	s.Nil(s.manager.GetCombat("nope"))
	s.Equal(1, s.manager.Count())
}

func (s *ManagerTestSuite) TestCreateCombat_NilInput() {
	c := s.manager.CreateCombat(nil)
	s.NotEmpty(c.ID)
	s.Empty(c.SessionID)
}

func (s *ManagerTestSuite) TestTurnPointerIsApplied() {
	m, err := combatorch.NewManager(&combatorch.Config{
		IDGenerator: idgen.NewSequential("c"),
		Clock:       clock.New(),
		TurnPointer: engine.TurnPointerTrackCurrent,
	})
	s.Require().NoError(err)

	s.Equal(engine.TurnPointerTrackCurrent, m.CreateCombat(nil).TurnPointer)
}

func (s *ManagerTestSuite) TestGetSessionCombats_CreationOrder() {
	first := s.manager.CreateCombat(&combatorch.CreateCombatInput{SessionID: "a"})
	s.manager.CreateCombat(&combatorch.CreateCombatInput{SessionID: "b"})
	second := s.manager.CreateCombat(&combatorch.CreateCombatInput{SessionID: "a"})
	third := s.manager.CreateCombat(&combatorch.CreateCombatInput{SessionID: "a"})

	combats := s.manager.GetSessionCombats("a")
	s.Require().Len(combats, 3)
	s.Equal([]string{first.ID, second.ID, third.ID}, []string{combats[0].ID, combats[1].ID, combats[2].ID})
	s.Empty(s.manager.GetSessionCombats("missing"))
}

func (s *ManagerTestSuite) TestDeleteCombat() {
	c := s.manager.CreateCombat(nil)

	s.manager.DeleteCombat(c.ID)
	s.manager.DeleteCombat(c.ID)

	s.Nil(s.manager.GetCombat(c.ID))
	s.Zero(s.manager.Count())
	err := s.manager.Update(s.ctx, c.ID, func(*engine.Combat) error { return nil })
	s.True(errors.IsNotFound(err))
}

func (s *ManagerTestSuite) TestUpdate_PropagatesError() {
	c := s.addGoblinFight("s")

	err := s.manager.Update(s.ctx, c.ID, func(cb *engine.Combat) error {
		_, err := cb.NextTurn()
		return err
	})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *ManagerTestSuite) TestUpdate_ScenarioEndsCombat() {
	c := s.addGoblinFight("s")

	var result *engine.DamageResult
	s.Require().NoError(s.manager.Update(s.ctx, c.ID, func(cb *engine.Combat) error {
		if err := cb.Start(); err != nil {
			return err
		}
		var err error
		result, err = cb.ApplyDamage("goblin", 10)
		return err
	}))

	s.True(result.CombatEnded)
	s.Equal(engine.SidePlayers, result.Winner)

	s.Require().NoError(s.manager.View(s.ctx, c.ID, func(cb *engine.Combat) error {
		s.Equal(engine.StatusEnded, cb.Status)
		return nil
	}))
}

func (s *ManagerTestSuite) TestUpdate_RespectsCancellation() {
	c := s.manager.CreateCombat(nil)

	holding := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- s.manager.Update(s.ctx, c.ID, func(*engine.Combat) error {
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding

	ctx, cancel := context.WithTimeout(s.ctx, 20*time.Millisecond)
	defer cancel()
	err := s.manager.View(ctx, c.ID, func(*engine.Combat) error { return nil })
	s.Equal(errors.CodeCanceled, errors.GetCode(err))

	close(release)
	s.NoError(<-done)
}

func (s *ManagerTestSuite) TestUpdate_SerializesWriters() {
	c := s.manager.CreateCombat(nil)
	const writers = 50

	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.NoError(s.manager.Update(s.ctx, c.ID, func(cb *engine.Combat) error {
				cb.EnvironmentEffects = append(cb.EnvironmentEffects, "fog")
				return nil
			}))
		}()
	}
	wg.Wait()

	s.Require().NoError(s.manager.View(s.ctx, c.ID, func(cb *engine.Combat) error {
		s.Len(cb.EnvironmentEffects, writers)
		return nil
	}))
}

func TestManagerTestSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}
