package main

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/KirkDiggler/dm-api/internal/config"
	engine "github.com/KirkDiggler/dm-api/internal/engine/combat"
	"github.com/KirkDiggler/dm-api/internal/errors"
	combatv1alpha1 "github.com/KirkDiggler/dm-api/internal/handlers/combat/v1alpha1"
	dicev1alpha1 "github.com/KirkDiggler/dm-api/internal/handlers/dice/v1alpha1"
	sessionv1alpha1 "github.com/KirkDiggler/dm-api/internal/handlers/session/v1alpha1"
	combatorch "github.com/KirkDiggler/dm-api/internal/orchestrators/combat"
	"github.com/KirkDiggler/dm-api/internal/orchestrators/dice"
	"github.com/KirkDiggler/dm-api/internal/orchestrators/session"
	"github.com/KirkDiggler/dm-api/internal/pkg/clock"
	"github.com/KirkDiggler/dm-api/internal/pkg/idgen"
	"github.com/KirkDiggler/dm-api/internal/redis"
	dicesession "github.com/KirkDiggler/dm-api/internal/repositories/dice_session"
	gamesession "github.com/KirkDiggler/dm-api/internal/repositories/game_session"
)

// app holds the wired services behind the gRPC handlers
type app struct {
	combats  *combatorch.Manager
	sessions session.Service
	dice     dice.Service

	// nil with the memory backend
	redis redis.Client
}

// newApp builds repositories for the configured backend and the orchestrators on top of them
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	clk := clock.New()

	a := &app{}

	var (
		sessionRepo gamesession.Repository
		diceRepo    dicesession.Repository
	)

	if cfg.Storage.Backend == config.StorageRedis {
		rc := cfg.Storage.Redis
		client, err := redis.Connect(ctx, rc.Addr, rc.ClusterAddrs, &redis.Options{
			Password:    rc.Password,
			DB:          rc.DB,
			PoolSize:    rc.PoolSize,
			DialTimeout: rc.DialTimeout,
			UseTLS:      rc.UseTLS,
		})
		switch {
		case err != nil && rc.Required:
			return nil, errors.Wrap(err, "failed to connect to redis")
		case err != nil:
			slog.Warn("Redis unreachable, falling back to in-memory storage",
				"addr", rc.Addr,
				"error", err,
			)
		default:
			a.redis = client

			sessionRepo, err = gamesession.NewRedisRepository(&gamesession.Config{Client: client, Clock: clk})
			if err != nil {
				return nil, errors.Wrap(err, "failed to create session repository")
			}
			diceRepo, err = dicesession.NewRedisRepository(&dicesession.Config{Client: client, Clock: clk})
			if err != nil {
				return nil, errors.Wrap(err, "failed to create dice session repository")
			}

			slog.Info("Using redis storage", "addr", rc.Addr, "db", rc.DB)
		}
	}

	if a.redis == nil {
		sessionRepo = gamesession.NewInMemory(clk)
		diceRepo = dicesession.NewInMemory(clk)

		slog.Info("Using in-memory storage")
	}

	combats, err := combatorch.NewManager(&combatorch.Config{
		IDGenerator: idgen.NewUUID("combat"),
		Clock:       clk,
		TurnPointer: engine.TurnPointer(cfg.Combat.TurnPointer),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create combat manager")
	}
	a.combats = combats

	a.sessions, err = session.NewOrchestrator(&session.Config{
		CombatManager: combats,
		IDGenerator:   idgen.NewUUID("session"),
		Clock:         clk,
		Repository:    sessionRepo,
		SnapshotTTL:   cfg.Session.SnapshotTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session orchestrator")
	}

	a.dice, err = dice.NewOrchestrator(&dice.Config{
		DiceSessionRepo: diceRepo,
		IDGenerator:     idgen.NewUUID("roll"),
		SessionTTL:      cfg.Dice.SessionTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create dice orchestrator")
	}

	return a, nil
}

// register installs every service and the health service on srv
func (a *app) register(srv *grpc.Server) (*health.Server, error) {
	combatHandler, err := combatv1alpha1.NewHandler(&combatv1alpha1.HandlerConfig{
		CombatManager: a.combats,
		DiceService:   a.dice,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create combat handler")
	}

	sessionHandler, err := sessionv1alpha1.NewHandler(&sessionv1alpha1.HandlerConfig{
		SessionService: a.sessions,
		CombatManager:  a.combats,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session handler")
	}

	diceHandler, err := dicev1alpha1.NewHandler(&dicev1alpha1.HandlerConfig{
		DiceService: a.dice,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create dice handler")
	}

	combatv1alpha1.RegisterCombatServiceServer(srv, combatHandler)
	sessionv1alpha1.RegisterSessionServiceServer(srv, sessionHandler)
	dicev1alpha1.RegisterDiceServiceServer(srv, diceHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	for _, name := range []string{combatv1alpha1.ServiceName, sessionv1alpha1.ServiceName, dicev1alpha1.ServiceName} {
		healthServer.SetServingStatus(name, grpc_health_v1.HealthCheckResponse_SERVING)
	}

	return healthServer, nil
}

// close releases the redis connection pool, if any
func (a *app) close() error {
	if a.redis == nil {
		return nil
	}
	return a.redis.Close()
}
