package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"matka_backend/internal/platform/changefeed"
	"matka_backend/internal/platform/db"
)

// NewRelay picks the cross-process change relay: Redis pub/sub when Redis is
// available, otherwise Postgres LISTEN/NOTIFY. With SQLite there is no relay
// and the returned Relay is nil. The cleanup function is never nil.
func NewRelay(ctx context.Context, rdb *redis.Client, dbCfg db.Config, broker *changefeed.Broker) (changefeed.Relay, func(), error) {
	if rdb != nil {
		slog.Info("change relay: redis pub/sub", "channel", changefeed.DefaultChannel)
		return changefeed.NewRedisRelay(rdb, changefeed.DefaultChannel, broker), func() {}, nil
	}
	if dbCfg.Driver != db.DriverPostgres {
		slog.Info("change relay disabled", "driver", dbCfg.Driver)
		return nil, func() {}, nil
	}

	pool, err := pgxpool.New(ctx, db.BuildDSN(dbCfg))
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to create listen pool: %w", err)
	}
	slog.Info("change relay: postgres LISTEN/NOTIFY", "channel", changefeed.DefaultChannel)
	return changefeed.NewPostgresRelay(pool, changefeed.DefaultChannel, broker), pool.Close, nil
}
