package repository

import (
	"context"
	"database/sql"
	"fmt"
	"vct-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// MessageRepository owns the user-facing message feed. New messages are
// read newest-batch-first while a single tick's batch keeps its original
// order, matching a feed that prepends each batch to the front.
type MessageRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMessageRepository(sqlDB *sql.DB, logger zerolog.Logger) *MessageRepository {
	return &MessageRepository{db: sqlDB, logger: logger}
}

func (r *MessageRepository) Insert(ctx context.Context, entries []domain.MessageEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, entry := range entries {
		id := entry.ID
		if id == "" {
			id, err = gonanoid.New()
			if err != nil {
				return fmt.Errorf("failed to generate nanoid: %w", err)
			}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO messages (id, timestamp, region, message) VALUES (?, ?, ?, ?)`,
			id, entry.Timestamp, entry.Region, entry.Message,
		)
		if err != nil {
			return fmt.Errorf("insert message for %s: %w", entry.Region, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit messages: %w", err)
	}

	r.logger.Debug().Int("count", len(entries)).Msg("messages inserted")
	return nil
}

// List returns the feed newest-first: later batches before earlier ones,
// in-batch order preserved.
func (r *MessageRepository) List(ctx context.Context, limit int) ([]domain.MessageEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, timestamp, region, message FROM messages
		 ORDER BY timestamp DESC, seq ASC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var entries []domain.MessageEntry
	for rows.Next() {
		var e domain.MessageEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Region, &e.Message); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
