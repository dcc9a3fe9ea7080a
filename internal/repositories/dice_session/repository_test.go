package dicesession_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dm-api/internal/errors"
	mockclock "github.com/KirkDiggler/dm-api/internal/pkg/clock/mock"
	dicesession "github.com/KirkDiggler/dm-api/internal/repositories/dice_session"
	"github.com/KirkDiggler/dm-api/internal/testutils"
)

// RepositoryTestSuite runs the same contract against every implementation
type RepositoryTestSuite struct {
	suite.Suite
	useRedis bool

	ctrl *gomock.Controller
	now  time.Time
	mr   *miniredis.Miniredis
	repo dicesession.Repository
	ctx  context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.now = time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	clk := mockclock.NewMockClock(s.ctrl)
	clk.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()
	s.ctx = context.Background()

	if !s.useRedis {
		s.repo = dicesession.NewInMemory(clk)
		return
	}

	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr
	var err error
	s.repo, err = dicesession.NewRedisRepository(&dicesession.Config{Client: client, Clock: clk})
	s.Require().NoError(err)
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func initiativeRoll(id string, die, bonus int) dicesession.DiceRoll {
	return dicesession.DiceRoll{
		RollID:    id,
		Notation:  "1d20",
		Dice:      []int{die},
		DiceTotal: die,
		Modifier:  bonus,
		Total:     die + bonus,
	}
}

func (s *RepositoryTestSuite) TestCreateAndGet() {
	out, err := s.repo.Create(s.ctx, dicesession.CreateInput{
		EntityID: "goblin",
		Context:  "initiative:combat_1",
		Rolls:    []dicesession.DiceRoll{initiativeRoll("roll_1", 12, 2)},
	})
	s.Require().NoError(err)
	s.Equal(s.now.Add(dicesession.DefaultTTL), out.Session.ExpiresAt)

	got, err := s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "goblin", Context: "initiative:combat_1"})
	s.Require().NoError(err)
	s.Require().Len(got.Session.Rolls, 1)
	s.Equal(14, got.Session.Rolls[0].Total)
	s.True(got.Session.ExpiresAt.Equal(out.Session.ExpiresAt))

	if s.useRedis {
		s.True(s.mr.Exists("dice_session:goblin:initiative:combat_1"))
	}
}

func (s *RepositoryTestSuite) TestValidation() {
	_, err := s.repo.Create(s.ctx, dicesession.CreateInput{Context: "x"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "x"})
	s.True(errors.IsInvalidArgument(err))

	s.True(errors.IsInvalidArgument(s.repo.Update(s.ctx, nil)))
}

func (s *RepositoryTestSuite) TestGet_Missing() {
	_, err := s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "nobody", Context: "initiative:c"})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestExpiry() {
	_, err := s.repo.Create(s.ctx, dicesession.CreateInput{EntityID: "e", Context: "c", TTL: time.Minute})
	s.Require().NoError(err)

	s.now = s.now.Add(time.Minute)

	_, err = s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "e", Context: "c"})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestUpdateAppendsRoll() {
	created, err := s.repo.Create(s.ctx, dicesession.CreateInput{
		EntityID: "fighter",
		Context:  "initiative:combat_1",
		Rolls:    []dicesession.DiceRoll{initiativeRoll("roll_1", 15, 3)},
	})
	s.Require().NoError(err)

	session := created.Session
	session.Rolls = append(session.Rolls, initiativeRoll("roll_2", 4, 3))
	s.Require().NoError(s.repo.Update(s.ctx, session))

	got, err := s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "fighter", Context: "initiative:combat_1"})
	s.Require().NoError(err)
	s.Len(got.Session.Rolls, 2)
}

func (s *RepositoryTestSuite) TestUpdateExpired() {
	created, err := s.repo.Create(s.ctx, dicesession.CreateInput{EntityID: "e", Context: "c", TTL: time.Minute})
	s.Require().NoError(err)

	s.now = s.now.Add(2 * time.Minute)

	err = s.repo.Update(s.ctx, created.Session)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *RepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, dicesession.CreateInput{
		EntityID: "e",
		Context:  "c",
		Rolls:    []dicesession.DiceRoll{initiativeRoll("a", 1, 0), initiativeRoll("b", 2, 0)},
	})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, dicesession.DeleteInput{EntityID: "e", Context: "c"})
	s.Require().NoError(err)
	s.Equal(2, out.RollsDeleted)

	out, err = s.repo.Delete(s.ctx, dicesession.DeleteInput{EntityID: "e", Context: "c"})
	s.Require().NoError(err)
	s.Zero(out.RollsDeleted)
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{})
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{useRedis: true})
}
