package service

import (
	"context"
	"sync/atomic"
	"time"
	"vct-tracker/internal/config"
	"vct-tracker/internal/constants"
	"vct-tracker/internal/domain"
	"vct-tracker/internal/roster"
	"vct-tracker/internal/sheets"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Fetcher downloads one region's raw CSV export.
type Fetcher interface {
	FetchCSV(ctx context.Context, url string) (string, error)
}

// Poller drives the region pipeline: on every tick it fetches, normalizes
// and diffs each configured region sequentially, isolating failures so one
// bad region never blocks the rest.
type Poller struct {
	cfg       *config.Config
	fetcher   Fetcher
	snapshots SnapshotStore
	recorder  *Recorder
	logger    zerolog.Logger
	running   atomic.Bool
}

func NewPoller(cfg *config.Config, fetcher Fetcher, snapshots SnapshotStore, recorder *Recorder, logger zerolog.Logger) *Poller {
	return &Poller{
		cfg:       cfg,
		fetcher:   fetcher,
		snapshots: snapshots,
		recorder:  recorder,
		logger:    logger,
	}
}

// Run executes one tick immediately, then one per poll interval until the
// context is cancelled.
func (p *Poller) Run(ctx context.Context) {
	p.RunTick(ctx)

	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("poller stopped")
			return
		case <-ticker.C:
			p.RunTick(ctx)
		}
	}
}

// RunTick processes all regions once. Ticks are single-flight: if the
// previous tick is still running when the next fires, the new one is
// skipped rather than allowed to interleave reads and writes.
func (p *Poller) RunTick(ctx context.Context) {
	if !p.running.CompareAndSwap(false, true) {
		p.logger.Warn().Msg("previous tick still running, skipping")
		return
	}
	defer p.running.Store(false)

	start := time.Now()
	log := p.logger.With().Str("run_id", uuid.New().String()).Logger()
	log.Info().Msg("starting data processing")

	for _, region := range p.cfg.Regions {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Msg("tick cancelled")
			return
		}
		if err := p.processRegion(ctx, log, region); err != nil {
			log.Error().Err(err).Str("region", region.Name).Msg("error processing region")
			continue
		}
	}

	log.Info().Dur("duration", time.Since(start)).Msg("processing completed")
}

// processRegion runs fetch → parse → normalize → diff → record → persist
// for one region. Any failure leaves that region's stored state untouched;
// the next tick retries naturally.
func (p *Poller) processRegion(ctx context.Context, log zerolog.Logger, region config.RegionSource) error {
	ctx, cancel := context.WithTimeout(ctx, constants.RegionTimeout)
	defer cancel()

	log.Info().Str("region", region.Name).Msg("fetching data")

	raw, err := p.fetcher.FetchCSV(ctx, p.cfg.URLFor(region))
	if err != nil {
		return err
	}

	rows, err := sheets.ParseCSV(raw)
	if err != nil {
		return err
	}

	newTeams := roster.Normalize(rows)
	if len(newTeams) == 0 {
		return domain.ErrValidation
	}

	oldTeams, err := p.snapshots.Load(ctx, region.Name)
	if err != nil {
		return err
	}

	if cmp.Equal(oldTeams, newTeams) {
		log.Info().Str("region", region.Name).Msg("no changes detected")
		return nil
	}

	changes, err := p.recorder.Record(ctx, region.Name, oldTeams, newTeams, time.Now().UTC())
	if err != nil {
		return err
	}

	if err := p.snapshots.Save(ctx, region.Name, newTeams); err != nil {
		return err
	}

	log.Info().
		Str("region", region.Name).
		Int("teams", len(newTeams)).
		Int("changes", len(changes)).
		Msg("snapshot updated")
	return nil
}
