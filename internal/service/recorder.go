package service

import (
	"context"
	"time"
	"vct-tracker/internal/constants"
	"vct-tracker/internal/domain"
	"vct-tracker/internal/roster"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Store and notifier contracts the recorder depends on. The concrete
// implementations live in internal/repository and internal/notify.
type (
	SnapshotStore interface {
		Load(ctx context.Context, region string) ([]domain.Team, error)
		Save(ctx context.Context, region string, teams []domain.Team) error
	}

	UpdateStore interface {
		Append(ctx context.Context, entry domain.UpdateEntry) error
	}

	MessageStore interface {
		Insert(ctx context.Context, entries []domain.MessageEntry) error
	}

	Notifier interface {
		Notify(ctx context.Context, message, title string) error
	}

	Poster interface {
		Post(ctx context.Context, message string) error
	}
)

// Recorder turns a detected snapshot delta into its durable and outbound
// effects: the audit log entry, the message feed batch, and fire-and-forget
// push + social notifications.
type Recorder struct {
	updates  UpdateStore
	messages MessageStore
	notifier Notifier
	poster   Poster
	logger   zerolog.Logger
}

func NewRecorder(updates UpdateStore, messages MessageStore, notifier Notifier, poster Poster, logger zerolog.Logger) *Recorder {
	return &Recorder{
		updates:  updates,
		messages: messages,
		notifier: notifier,
		poster:   poster,
		logger:   logger,
	}
}

// Record diffs the two team lists and, when anything changed, appends one
// audit entry, inserts the generated messages, and dispatches notifications.
// The returned change list is what the diff produced; an empty list means
// nothing was persisted (the lists differed only in ways the diff does not
// classify, such as team order).
//
// Notifications are dispatched in the background and never awaited; their
// failures are logged and do not affect what gets persisted.
func (r *Recorder) Record(ctx context.Context, region string, oldTeams, newTeams []domain.Team, timestamp time.Time) ([]domain.TeamChange, error) {
	changes := roster.DiffTeams(oldTeams, newTeams)
	if len(changes) == 0 {
		return nil, nil
	}

	var newMessages []domain.MessageEntry
	addMessage := func(message, title string) {
		r.dispatch(message, title)
		newMessages = append(newMessages, domain.MessageEntry{
			Timestamp: timestamp,
			Region:    region,
			Message:   message,
		})
	}

	for _, change := range changes {
		switch change.Type {
		case domain.ChangeRosterUpdated:
			for _, rosterChange := range change.Changes {
				if message := roster.PlayerChangeMessage(rosterChange, change.Team); message != "" {
					addMessage(message, "Roster updated")
				}
			}
		case domain.ChangeTeamAdded:
			addMessage(roster.TeamAddedMessage(change.Team, region), "New team added")
		case domain.ChangeTeamRemoved:
			addMessage(roster.TeamRemovedMessage(change.Team, region), "Team removed")
		}
		// team_info_updated is audited but never announced.
	}

	entry := domain.UpdateEntry{
		Timestamp: timestamp,
		Region:    region,
		Type:      domain.UpdateTypeChanges,
		Old:       oldTeams,
		Changes:   changes,
	}
	if err := r.updates.Append(ctx, entry); err != nil {
		return nil, err
	}
	if err := r.messages.Insert(ctx, newMessages); err != nil {
		return nil, err
	}

	for _, msg := range newMessages {
		r.logger.Info().Str("region", msg.Region).Str("message", msg.Message).Msg("new update")
	}

	return changes, nil
}

// dispatch fires both outbound channels without awaiting delivery.
func (r *Recorder) dispatch(message, title string) {
	g := new(errgroup.Group)
	g.Go(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), constants.NotifyTimeout)
		defer cancel()
		return r.notifier.Notify(ctx, message, title)
	})
	g.Go(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), constants.NotifyTimeout)
		defer cancel()
		return r.poster.Post(ctx, message)
	})

	go func() {
		if err := g.Wait(); err != nil {
			r.logger.Error().Err(err).Msg("notification dispatch failed")
		}
	}()
}
