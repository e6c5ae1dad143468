package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"vct-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// SnapshotRepository owns the per-region snapshot documents: the last seen
// valid team list for each region, stored verbatim as one JSON document and
// overwritten whole on every change.
type SnapshotRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSnapshotRepository(sqlDB *sql.DB, logger zerolog.Logger) *SnapshotRepository {
	return &SnapshotRepository{db: sqlDB, logger: logger}
}

// Load returns the stored team list for a region. A region never seen
// before yields an empty list, so the first run reads as "all teams added".
func (r *SnapshotRepository) Load(ctx context.Context, region string) ([]domain.Team, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT teams FROM region_snapshots WHERE region = ?`, region,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Debug().Str("region", region).Msg("no snapshot yet, starting empty")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot for %s: %w", region, err)
	}

	var teams []domain.Team
	if err := json.Unmarshal([]byte(raw), &teams); err != nil {
		return nil, fmt.Errorf("decode snapshot for %s: %w", region, err)
	}
	return teams, nil
}

// Save overwrites the region's snapshot document with the new team list.
func (r *SnapshotRepository) Save(ctx context.Context, region string, teams []domain.Team) error {
	raw, err := json.Marshal(teams)
	if err != nil {
		return fmt.Errorf("encode snapshot for %s: %w", region, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO region_snapshots (region, teams, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(region) DO UPDATE SET teams = excluded.teams, updated_at = excluded.updated_at`,
		region, string(raw), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot for %s: %w", region, err)
	}

	r.logger.Debug().Str("region", region).Int("teams", len(teams)).Msg("snapshot saved")
	return nil
}
