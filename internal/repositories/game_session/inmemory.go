package gamesession

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/KirkDiggler/dm-api/internal/entities"
	"github.com/KirkDiggler/dm-api/internal/errors"
	"github.com/KirkDiggler/dm-api/internal/pkg/clock"
)

type snapshot struct {
	data      []byte
	expiresAt time.Time
}

// InMemoryRepository keeps snapshots in process with the same expiry rules as redis.
// Snapshots are stored as JSON so loads never alias the caller's session.
type InMemoryRepository struct {
	clock clock.Clock

	mu    sync.RWMutex
	store map[string]snapshot
}

// NewInMemory creates a new in-memory repository; a nil clock uses the system clock
func NewInMemory(clk clock.Clock) *InMemoryRepository {
	if clk == nil {
		clk = clock.New()
	}
	return &InMemoryRepository{
		clock: clk,
		store: make(map[string]snapshot),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Save stores a snapshot
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Session)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal session")
	}

	expiresAt := r.clock.Now().Add(ttlOrDefault(input.TTL))

	r.mu.Lock()
	r.store[input.Session.ID] = snapshot{data: data, expiresAt: expiresAt}
	r.mu.Unlock()

	return &SaveOutput{ExpiresAt: expiresAt}, nil
}

// Load returns a fresh copy of the snapshot
func (r *InMemoryRepository) Load(_ context.Context, input *LoadInput) (*LoadOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	r.mu.RLock()
	snap, ok := r.store[input.SessionID]
	r.mu.RUnlock()

	if !ok || !r.clock.Now().Before(snap.expiresAt) {
		if ok {
			r.mu.Lock()
			delete(r.store, input.SessionID)
			r.mu.Unlock()
		}
		return nil, errors.NotFoundf("session %s not found", input.SessionID).
			WithMeta("session_id", input.SessionID)
	}

	var session entities.Session
	if err := json.Unmarshal(snap.data, &session); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal session")
	}

	return &LoadOutput{Session: &session}, nil
}

// Delete removes a snapshot
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	r.mu.Lock()
	_, ok := r.store[input.SessionID]
	delete(r.store, input.SessionID)
	r.mu.Unlock()

	return &DeleteOutput{Deleted: ok}, nil
}
