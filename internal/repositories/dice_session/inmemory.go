package dicesession

import (
	"context"
	"sync"

	"github.com/KirkDiggler/dm-api/internal/pkg/clock"
)

type sessionKey struct {
	entityID string
	context  string
}

// InMemoryRepository implements Repository for single-process deployments
type InMemoryRepository struct {
	clock clock.Clock

	mu    sync.Mutex
	store map[sessionKey]*DiceSession
}

// NewInMemory creates an in-memory repository; a nil clock uses the system clock
func NewInMemory(clk clock.Clock) *InMemoryRepository {
	if clk == nil {
		clk = clock.New()
	}
	return &InMemoryRepository{
		clock: clk,
		store: make(map[sessionKey]*DiceSession),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Create stores a new dice session
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	session := newSession(input, r.clock.Now())

	r.mu.Lock()
	r.store[sessionKey{input.EntityID, input.Context}] = copySession(session)
	r.mu.Unlock()

	return &CreateOutput{Session: session}, nil
}

// Get retrieves a copy of a live dice session
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionKey{input.EntityID, input.Context}
	session, ok := r.store[key]
	if !ok {
		return nil, notFound(input.EntityID, input.Context)
	}
	if !r.clock.Now().Before(session.ExpiresAt) {
		delete(r.store, key)
		return nil, notFound(input.EntityID, input.Context)
	}

	return &GetOutput{Session: copySession(session)}, nil
}

// Delete removes a dice session
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionKey{input.EntityID, input.Context}
	rolls := 0
	if session, ok := r.store[key]; ok && r.clock.Now().Before(session.ExpiresAt) {
		rolls = len(session.Rolls)
	}
	delete(r.store, key)

	return &DeleteOutput{RollsDeleted: rolls}, nil
}

// Update replaces a dice session
func (r *InMemoryRepository) Update(_ context.Context, session *DiceSession) error {
	if err := validateUpdate(session, r.clock.Now()); err != nil {
		return err
	}

	r.mu.Lock()
	r.store[sessionKey{session.EntityID, session.Context}] = copySession(session)
	r.mu.Unlock()
	return nil
}

func copySession(s *DiceSession) *DiceSession {
	out := *s
	out.Rolls = make([]DiceRoll, len(s.Rolls))
	for i, roll := range s.Rolls {
		roll.Dice = append([]int(nil), roll.Dice...)
		out.Rolls[i] = roll
	}
	return &out
}
