package dicesession

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dm-api/internal/errors"
	"github.com/KirkDiggler/dm-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/dm-api/internal/redis"
)

// Key pattern: dice_session:{entity_id}:{context}
const keyPrefix = "dice_session:"

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for dice sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	session := newSession(input, r.clock.Now())
	if err := r.write(ctx, session); err != nil {
		return nil, err
	}

	return &CreateOutput{Session: session}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	data, err := r.client.Get(ctx, buildKey(input.EntityID, input.Context)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, notFound(input.EntityID, input.Context)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get dice session from redis")
	}

	var session DiceSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal dice session")
	}

	// redis expiry is second-grained; the stored deadline is authoritative
	if !r.clock.Now().Before(session.ExpiresAt) {
		_ = r.client.Del(ctx, buildKey(input.EntityID, input.Context)).Err()
		return nil, notFound(input.EntityID, input.Context)
	}

	return &GetOutput{Session: &session}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	rolls := 0
	if existing, err := r.Get(ctx, GetInput(input)); err == nil {
		rolls = len(existing.Session.Rolls)
	}

	if err := r.client.Del(ctx, buildKey(input.EntityID, input.Context)).Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to delete dice session from redis")
	}

	return &DeleteOutput{RollsDeleted: rolls}, nil
}

func (r *redisRepository) Update(ctx context.Context, session *DiceSession) error {
	if err := validateUpdate(session, r.clock.Now()); err != nil {
		return err
	}
	return r.write(ctx, session)
}

func (r *redisRepository) write(ctx context.Context, session *DiceSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "failed to marshal dice session")
	}

	ttl := session.ExpiresAt.Sub(r.clock.Now())
	if err := r.client.Set(ctx, buildKey(session.EntityID, session.Context), data, ttl).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store dice session in redis")
	}
	return nil
}

func buildKey(entityID, ctxName string) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, entityID, ctxName)
}
