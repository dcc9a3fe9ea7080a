package gamesession_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dm-api/internal/errors"
	"github.com/KirkDiggler/dm-api/internal/pkg/clock"
	gamesession "github.com/KirkDiggler/dm-api/internal/repositories/game_session"
)

type InMemoryRepositoryTestSuite struct {
	suite.Suite
	clock *clock.Manual
	start time.Time
	repo  *gamesession.InMemoryRepository
	ctx   context.Context
}

func (s *InMemoryRepositoryTestSuite) SetupTest() {
	s.start = time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	s.clock = clock.NewManual(s.start)
	s.repo = gamesession.NewInMemory(s.clock)
	s.ctx = context.Background()
}

func (s *InMemoryRepositoryTestSuite) TestSaveAndLoad_ReturnsCopy() {
	session := testSession("s")

	out, err := s.repo.Save(s.ctx, &gamesession.SaveInput{Session: session})
	s.Require().NoError(err)
	s.Equal(s.start.Add(gamesession.DefaultTTL), out.ExpiresAt)

	session.Name = "changed after save"

	loaded, err := s.repo.Load(s.ctx, &gamesession.LoadInput{SessionID: "s"})
	s.Require().NoError(err)
	s.Equal("Sunless Citadel", loaded.Session.Name)
	s.Len(loaded.Session.ActionHistory, 1)
}

func (s *InMemoryRepositoryTestSuite) TestExpiry() {
	_, err := s.repo.Save(s.ctx, &gamesession.SaveInput{Session: testSession("s"), TTL: time.Hour})
	s.Require().NoError(err)

	s.clock.Advance(59 * time.Minute)
	_, err = s.repo.Load(s.ctx, &gamesession.LoadInput{SessionID: "s"})
	s.NoError(err)

	s.clock.Advance(time.Minute)
	_, err = s.repo.Load(s.ctx, &gamesession.LoadInput{SessionID: "s"})
	s.True(errors.IsNotFound(err))
}

func (s *InMemoryRepositoryTestSuite) TestSaveResetsTTL() {
	_, err := s.repo.Save(s.ctx, &gamesession.SaveInput{Session: testSession("s"), TTL: time.Hour})
	s.Require().NoError(err)

	s.clock.Advance(50 * time.Minute)
	_, err = s.repo.Save(s.ctx, &gamesession.SaveInput{Session: testSession("s"), TTL: time.Hour})
	s.Require().NoError(err)

	s.clock.Advance(50 * time.Minute)
	_, err = s.repo.Load(s.ctx, &gamesession.LoadInput{SessionID: "s"})
	s.NoError(err)
}

func (s *InMemoryRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Save(s.ctx, &gamesession.SaveInput{Session: testSession("s")})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, &gamesession.DeleteInput{SessionID: "s"})
	s.Require().NoError(err)
	s.True(out.Deleted)

	_, err = s.repo.Load(s.ctx, &gamesession.LoadInput{SessionID: "s"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, &gamesession.DeleteInput{})
	s.True(errors.IsInvalidArgument(err))
}

func TestInMemoryRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(InMemoryRepositoryTestSuite))
}
