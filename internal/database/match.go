// internal/database/match.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jason-s-yu/pairup/internal/models"
)

// matchesSchema is the archive table written by the historian. The server never reads it.
const matchesSchema = `
	CREATE TABLE IF NOT EXISTS matches (
		id         UUID PRIMARY KEY,
		player1_id UUID NOT NULL,
		player2_id UUID NOT NULL,
		matched_at TIMESTAMPTZ NOT NULL,
		archived_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// EnsureSchema creates the matches table if it does not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, matchesSchema); err != nil {
		return fmt.Errorf("create matches table: %w", err)
	}
	return nil
}

// InsertMatches archives a batch of match events in one transaction. Events that were
// already archived (same match id) are skipped, so redelivery is harmless.
func InsertMatches(ctx context.Context, pool *pgxpool.Pool, evs []models.MatchEvent) error {
	if len(evs) == 0 {
		return nil
	}
	q := `
		INSERT INTO matches (id, player1_id, player2_id, matched_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`
	err := pgx.BeginTxFunc(ctx, pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, ev := range evs {
			matchedAt := time.UnixMilli(ev.Timestamp).UTC()
			if _, err := tx.Exec(ctx, q, ev.MatchID, ev.Player1, ev.Player2, matchedAt); err != nil {
				return fmt.Errorf("insert match %s: %w", ev.MatchID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to archive %d matches: %w", len(evs), err)
	}
	return nil
}
