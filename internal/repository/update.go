package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"vct-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// UpdateRepository owns the append-only audit log: one entry per tick per
// region where at least one change record was produced.
type UpdateRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewUpdateRepository(sqlDB *sql.DB, logger zerolog.Logger) *UpdateRepository {
	return &UpdateRepository{db: sqlDB, logger: logger}
}

func (r *UpdateRepository) Append(ctx context.Context, entry domain.UpdateEntry) error {
	id := entry.ID
	if id == "" {
		var err error
		id, err = gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
	}

	oldRaw, err := json.Marshal(entry.Old)
	if err != nil {
		return fmt.Errorf("encode old team list: %w", err)
	}
	changesRaw, err := json.Marshal(entry.Changes)
	if err != nil {
		return fmt.Errorf("encode changes: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO updates (id, timestamp, region, type, old_teams, changes)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, entry.Timestamp, entry.Region, entry.Type, string(oldRaw), string(changesRaw),
	)
	if err != nil {
		return fmt.Errorf("append update for %s: %w", entry.Region, err)
	}

	r.logger.Debug().
		Str("region", entry.Region).
		Int("changes", len(entry.Changes)).
		Msg("update appended to audit log")
	return nil
}

// List returns audit entries in append order. An empty region matches all.
func (r *UpdateRepository) List(ctx context.Context, region string, limit int) ([]domain.UpdateEntry, error) {
	query := `SELECT id, timestamp, region, type, old_teams, changes FROM updates`
	args := []any{}
	if region != "" {
		query += ` WHERE region = ?`
		args = append(args, region)
	}
	query += ` ORDER BY seq ASC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list updates: %w", err)
	}
	defer rows.Close()

	var entries []domain.UpdateEntry
	for rows.Next() {
		var e domain.UpdateEntry
		var oldRaw, changesRaw string
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Region, &e.Type, &oldRaw, &changesRaw); err != nil {
			return nil, fmt.Errorf("scan update: %w", err)
		}
		if err := json.Unmarshal([]byte(oldRaw), &e.Old); err != nil {
			return nil, fmt.Errorf("decode old team list: %w", err)
		}
		if err := json.Unmarshal([]byte(changesRaw), &e.Changes); err != nil {
			return nil, fmt.Errorf("decode changes: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
