package service

import (
	"context"
	"testing"
	"time"
	"vct-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeSnapshotStore struct {
	snapshots map[string][]domain.Team
	saveErr   error
	loadErr   error
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{snapshots: map[string][]domain.Team{}}
}

func (f *fakeSnapshotStore) Load(_ context.Context, region string) ([]domain.Team, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.snapshots[region], nil
}

func (f *fakeSnapshotStore) Save(_ context.Context, region string, teams []domain.Team) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.snapshots[region] = teams
	return nil
}

type fakeUpdateStore struct {
	entries []domain.UpdateEntry
	err     error
}

func (f *fakeUpdateStore) Append(_ context.Context, entry domain.UpdateEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

type fakeMessageStore struct {
	batches [][]domain.MessageEntry
}

func (f *fakeMessageStore) Insert(_ context.Context, entries []domain.MessageEntry) error {
	if len(entries) > 0 {
		f.batches = append(f.batches, entries)
	}
	return nil
}

type fakeNotifier struct{ sent chan string }

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan string, 16)}
}

func (f *fakeNotifier) Notify(_ context.Context, message, _ string) error {
	f.sent <- message
	return nil
}

type fakePoster struct{ posted chan string }

func newFakePoster() *fakePoster {
	return &fakePoster{posted: make(chan string, 16)}
}

func (f *fakePoster) Post(_ context.Context, message string) error {
	f.posted <- message
	return nil
}

func receiveAll(t *testing.T, ch chan string, n int) []string {
	t.Helper()
	var out []string
	for i := 0; i < n; i++ {
		select {
		case msg := <-ch:
			out = append(out, msg)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for message %d of %d", i+1, n)
		}
	}
	return out
}

func rosterTeam(name, playerName, status string) domain.Team {
	return domain.Team{
		Team:    name,
		Region:  "EMEA",
		Tag:     "TAG",
		Manager: "mgr@x.com",
		Roster: []domain.Player{{
			Name: playerName, Status: status, End: "2025-12-31",
			LegalName: playerName, LegalSurname: "Smith",
		}},
	}
}

func newTestRecorder() (*Recorder, *fakeUpdateStore, *fakeMessageStore, *fakeNotifier, *fakePoster) {
	updates := &fakeUpdateStore{}
	messages := &fakeMessageStore{}
	notifier := newFakeNotifier()
	poster := newFakePoster()
	rec := NewRecorder(updates, messages, notifier, poster, zerolog.Nop())
	return rec, updates, messages, notifier, poster
}

func TestRecorder_NoDiffMeansNothingPersisted(t *testing.T) {
	rec, updates, messages, _, _ := newTestRecorder()

	teams := []domain.Team{rosterTeam("Team A", "Alice", "Active")}
	changes, err := rec.Record(context.Background(), "EMEA", teams, teams, time.Now())
	require.NoError(t, err)
	require.Empty(t, changes)
	require.Empty(t, updates.entries)
	require.Empty(t, messages.batches)
}

func TestRecorder_RosterChangeProducesAuditAndMessages(t *testing.T) {
	rec, updates, messages, notifier, poster := newTestRecorder()

	oldTeams := []domain.Team{rosterTeam("Team A", "Alice", "Active")}
	newTeams := []domain.Team{rosterTeam("Team A", "Alice", "Inactive")}
	ts := time.Now().UTC()

	changes, err := rec.Record(context.Background(), "EMEA", oldTeams, newTeams, ts)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	require.Equal(t, domain.ChangeRosterUpdated, changes[0].Type)

	require.Len(t, updates.entries, 1)
	entry := updates.entries[0]
	require.Equal(t, "EMEA", entry.Region)
	require.Equal(t, domain.UpdateTypeChanges, entry.Type)
	require.Equal(t, oldTeams, entry.Old)
	require.Equal(t, ts, entry.Timestamp)

	require.Len(t, messages.batches, 1)
	wantMsg := `Alice "Alice" Smith (Team A) roster status was changed from Active to Inactive`
	require.Equal(t, wantMsg, messages.batches[0][0].Message)

	require.Equal(t, []string{wantMsg}, receiveAll(t, notifier.sent, 1))
	require.Equal(t, []string{wantMsg}, receiveAll(t, poster.posted, 1))
}

func TestRecorder_TeamAddedAndRemovedMessages(t *testing.T) {
	rec, updates, messages, notifier, _ := newTestRecorder()

	oldTeams := []domain.Team{rosterTeam("Goes", "Bob", "Active")}
	newTeams := []domain.Team{rosterTeam("Arrives", "Cara", "Active")}

	changes, err := rec.Record(context.Background(), "PACIFIC", oldTeams, newTeams, time.Now())
	require.NoError(t, err)
	require.Len(t, changes, 2)

	require.Len(t, messages.batches, 1)
	batch := messages.batches[0]
	require.Len(t, batch, 2)
	require.Equal(t, "New team Arrives has been added to PACIFIC", batch[0].Message)
	require.Equal(t, "Team Goes has been removed from PACIFIC", batch[1].Message)

	require.Len(t, updates.entries, 1)
	require.ElementsMatch(t,
		[]string{"New team Arrives has been added to PACIFIC", "Team Goes has been removed from PACIFIC"},
		receiveAll(t, notifier.sent, 2))
}

func TestRecorder_InfoChangeIsAuditedButSilent(t *testing.T) {
	rec, updates, messages, _, _ := newTestRecorder()

	oldTeams := []domain.Team{rosterTeam("Team A", "Alice", "Active")}
	changed := rosterTeam("Team A", "Alice", "Active")
	changed.Tag = "NEW"
	newTeams := []domain.Team{changed}

	changes, err := rec.Record(context.Background(), "EMEA", oldTeams, newTeams, time.Now())
	require.NoError(t, err)
	require.Len(t, changes, 1)
	require.Equal(t, domain.ChangeTeamInfoUpdated, changes[0].Type)

	// The audit entry is written even though no message was generated.
	require.Len(t, updates.entries, 1)
	require.Empty(t, messages.batches)
}

func TestRecorder_SilentFieldChangeStillAudited(t *testing.T) {
	rec, updates, messages, _, _ := newTestRecorder()

	oldTeams := []domain.Team{rosterTeam("Team A", "Alice", "Active")}
	changed := rosterTeam("Team A", "Alice", "Active")
	changed.Roster[0].LegalSurname = "Smythe"
	newTeams := []domain.Team{changed}

	changes, err := rec.Record(context.Background(), "EMEA", oldTeams, newTeams, time.Now())
	require.NoError(t, err)
	require.Len(t, changes, 1)
	require.Equal(t, domain.ChangeRosterUpdated, changes[0].Type)

	require.Len(t, updates.entries, 1)
	require.Empty(t, messages.batches)
}

func TestRecorder_AppendFailureReturnsError(t *testing.T) {
	rec, updates, _, _, _ := newTestRecorder()
	updates.err = context.DeadlineExceeded

	oldTeams := []domain.Team{}
	newTeams := []domain.Team{rosterTeam("Team A", "Alice", "Active")}

	_, err := rec.Record(context.Background(), "EMEA", oldTeams, newTeams, time.Now())
	require.Error(t, err)
}
