package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/twofactor/pkg/config"
	"github.com/dmitrymomot/twofactor/pkg/httpserver"
	"github.com/dmitrymomot/twofactor/pkg/logger"
	"github.com/dmitrymomot/twofactor/pkg/mongo"
	"github.com/dmitrymomot/twofactor/pkg/pg"
	"github.com/dmitrymomot/twofactor/pkg/ratelimiter"
	"github.com/dmitrymomot/twofactor/pkg/redis"
	"github.com/dmitrymomot/twofactor/pkg/session"
	"github.com/dmitrymomot/twofactor/svc/twofactor"
	"github.com/dmitrymomot/twofactor/svc/twofactor/mongostorage"
	"github.com/dmitrymomot/twofactor/svc/twofactor/pgstorage"
)

var errUnknownDriver = errors.New("unknown driver")

// userStore is a twofactor.Storage that can also register users.
type userStore interface {
	twofactor.Storage
	CreateUser(ctx context.Context, id uuid.UUID, email string) (*twofactor.User, error)
}

// backends holds every connection the server opened.
type backends struct {
	users    userStore
	sessions session.Store
	attempts ratelimiter.Store
	checks   []httpserver.Check
	closers  []func()
}

func (b *backends) onClose(fn func()) {
	b.closers = append(b.closers, fn)
}

// Close releases resources in reverse order of acquisition.
func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func openBackends(ctx context.Context, cfg Config, log *slog.Logger) (_ *backends, err error) {
	b := &backends{}
	defer func() {
		if err != nil {
			b.Close()
		}
	}()

	if err := b.openUsers(ctx, cfg, log); err != nil {
		return nil, err
	}

	switch cfg.SessionStore {
	case driverMemory:
		sessions := session.NewMemoryStore(cfg.Session.CleanupInterval)
		b.onClose(func() { _ = sessions.Close() })
		attempts := ratelimiter.NewMemoryStore()
		b.onClose(attempts.Close)
		b.sessions, b.attempts = sessions, attempts
	case driverRedis:
		client, err := connectRedis(ctx)
		if err != nil {
			return nil, err
		}
		b.onClose(func() { _ = client.Close() })
		b.sessions = session.NewRedisStore(client, cfg.Session.RedisPrefix)
		b.attempts = ratelimiter.NewRedisStore(client, cfg.AppName+":attempts:")
		b.checks = append(b.checks, httpserver.Check{Name: "redis", Ping: redis.Healthcheck(client)})
	default:
		return nil, fmt.Errorf("%w: session store %q", errUnknownDriver, cfg.SessionStore)
	}

	log.InfoContext(ctx, "backends ready",
		logger.Driver(cfg.StorageDriver),
		slog.String("session_store", cfg.SessionStore),
	)
	return b, nil
}

func (b *backends) openUsers(ctx context.Context, cfg Config, log *slog.Logger) error {
	switch cfg.StorageDriver {
	case driverMemory:
		b.users = twofactor.NewMemoryStorage()
		return nil

	case driverPostgres:
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return err
		}
		b.onClose(pool.Close)
		if err := pg.Migrate(ctx, pool, pgstorage.Migrations, pgstorage.MigrationsDir, pgCfg, log); err != nil {
			return err
		}
		b.users = pgstorage.New(pool)
		b.checks = append(b.checks, httpserver.Check{Name: "postgres", Ping: pg.Healthcheck(pool)})
		return nil

	case driverMongo:
		var mongoCfg mongo.Config
		if err := config.Load(&mongoCfg); err != nil {
			return err
		}
		client, err := mongo.New(ctx, mongoCfg)
		if err != nil {
			return err
		}
		b.onClose(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		})
		users := mongostorage.New(client.Database(mongoCfg.Database), mongostorage.DefaultCollection)
		if err := users.EnsureIndexes(ctx); err != nil {
			return err
		}
		b.users = users
		b.checks = append(b.checks, httpserver.Check{Name: "mongo", Ping: mongo.Healthcheck(client)})
		return nil
	}

	return fmt.Errorf("%w: storage %q", errUnknownDriver, cfg.StorageDriver)
}

func connectRedis(ctx context.Context) (*goredis.Client, error) {
	var redisCfg redis.Config
	if err := config.Load(&redisCfg); err != nil {
		return nil, err
	}
	return redis.Connect(ctx, redisCfg)
}
