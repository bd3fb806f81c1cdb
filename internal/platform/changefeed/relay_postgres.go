package changefeed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRelay forwards change signals through Postgres LISTEN/NOTIFY.
// It is used when Redis is not configured.
type PostgresRelay struct {
	pool    *pgxpool.Pool
	channel string
	origin  origin
}

var _ Relay = (*PostgresRelay)(nil)

// NewPostgresRelay creates a PostgresRelay. If channel is empty, DefaultChannel is used.
func NewPostgresRelay(pool *pgxpool.Pool, channel string, broker *Broker) *PostgresRelay {
	if channel == "" {
		channel = DefaultChannel
	}
	return &PostgresRelay{pool: pool, channel: channel, origin: newOrigin(broker)}
}

// Publish announces a local change to other processes.
func (r *PostgresRelay) Publish(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "SELECT pg_notify($1, $2)", r.channel, r.origin.id)
	return err
}

// Run holds one pooled connection in LISTEN mode and notifies the broker for
// every notification sent by another process.
func (r *PostgresRelay) Run(ctx context.Context) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen connection: %w", err)
	}
	defer conn.Release()
	defer func() { _, _ = conn.Exec(context.Background(), "UNLISTEN *") }()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{r.channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen %s: %w", r.channel, err)
	}

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("wait for notification: %w", err)
		}
		r.origin.deliver(n.Payload)
	}
}
