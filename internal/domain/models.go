package domain

import (
	"time"
)

type Player struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	End          string `json:"end"`
	LegalName    string `json:"legal_name"`
	LegalSurname string `json:"legal_surname"`
}

type Team struct {
	Team    string   `json:"team"`
	Region  string   `json:"region"`
	Tag     string   `json:"tag"`
	Manager string   `json:"manager"`
	Roster  []Player `json:"roster"`
}

// TeamInfo is the non-roster slice of a Team compared by the diff engine.
// The team name is excluded because it is the match key.
type TeamInfo struct {
	Region  string `json:"region"`
	Tag     string `json:"tag"`
	Manager string `json:"manager"`
}

func (t Team) Info() TeamInfo {
	return TeamInfo{Region: t.Region, Tag: t.Tag, Manager: t.Manager}
}

type ChangeType string

const (
	ChangeTeamAdded       ChangeType = "team_added"
	ChangeTeamRemoved     ChangeType = "team_removed"
	ChangeTeamInfoUpdated ChangeType = "team_info_updated"
	ChangeRosterUpdated   ChangeType = "roster_updated"

	ChangePlayerAdded   ChangeType = "player_added"
	ChangePlayerRemoved ChangeType = "player_removed"
	ChangePlayerUpdated ChangeType = "player_updated"
)

// TeamChange is one detected team-level difference between two snapshots.
// Exactly one of Data, Changes or Old/New is populated depending on Type.
type TeamChange struct {
	Type    ChangeType     `json:"type"`
	Team    string         `json:"team"`
	Data    *Team          `json:"data,omitempty"`
	Changes []PlayerChange `json:"changes,omitempty"`
	Old     *TeamInfo      `json:"old,omitempty"`
	New     *TeamInfo      `json:"new,omitempty"`
}

// PlayerChange is one roster-level difference nested inside a roster_updated.
// Player carries the full object for added/removed; Old/New carry both
// generations for updated (field extraction happens in the formatter).
type PlayerChange struct {
	Type   ChangeType `json:"type"`
	Player *Player    `json:"player,omitempty"`
	Old    *Player    `json:"old,omitempty"`
	New    *Player    `json:"new,omitempty"`
}

// FieldDelta is one user-facing field change surfaced by the formatter.
type FieldDelta struct {
	Field string `json:"field"`
	From  string `json:"from"`
	To    string `json:"to"`
}

const UpdateTypeChanges = "changes"

// UpdateEntry is one append-only audit record: everything detected for one
// region in one tick, together with the previous team list it was diffed
// against.
type UpdateEntry struct {
	ID        string       `json:"-"`
	Timestamp time.Time    `json:"timestamp"`
	Region    string       `json:"region"`
	Type      string       `json:"type"`
	Old       []Team       `json:"old"`
	Changes   []TeamChange `json:"changes"`
}

// MessageEntry is one line of the newest-first message feed.
type MessageEntry struct {
	ID        string    `json:"-"`
	Timestamp time.Time `json:"timestamp"`
	Region    string    `json:"region"`
	Message   string    `json:"message"`
}
