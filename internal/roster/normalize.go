// Package roster holds the pure core of the tracker: normalizing raw sheet
// rows into team records, diffing two generations of a region's team list,
// and rendering change records as human-readable messages. Nothing in this
// package performs I/O.
package roster

import (
	"strings"
	"vct-tracker/internal/constants"
	"vct-tracker/internal/domain"
)

// Fixed column layout of the published contract sheet.
const (
	colLeague = iota
	colTeam
	colTournamentName
	colRole
	colFirstName
	colFamilyName
	colEndDate
	colResidentStatus
	colRosterStatus
	colTeamTag
	colContactInfo
)

// Normalize converts raw sheet rows into team records with nested rosters.
//
// The first two rows are headers and always skipped. A fully blank row ends
// the current team's roster block. A row naming a different team than the
// current one starts a new team record; a team name re-entered after a blank
// row starts a second, separate record (no merging here). A row contributes
// a player only when both legal name cells are filled, so divider rows that
// carry a team name but no player are tolerated. Teams whose roster ends up
// empty are dropped.
func Normalize(rows [][]string) []domain.Team {
	var teams []*domain.Team
	var current *domain.Team

	for i, row := range rows {
		if i < constants.HeaderRowCount {
			continue
		}

		if isBlank(row) {
			current = nil
			continue
		}

		team := cell(row, colTeam)
		if current == nil || current.Team != team {
			if strings.TrimSpace(team) != "" {
				current = &domain.Team{
					Team:    team,
					Region:  cell(row, colLeague),
					Tag:     cell(row, colTeamTag),
					Manager: cell(row, colContactInfo),
				}
				teams = append(teams, current)
			}
		}

		firstName := cell(row, colFirstName)
		familyName := cell(row, colFamilyName)
		if current != nil && firstName != "" && familyName != "" {
			current.Roster = append(current.Roster, domain.Player{
				Name:         cell(row, colTournamentName),
				Status:       cell(row, colRosterStatus),
				End:          cell(row, colEndDate),
				LegalName:    firstName,
				LegalSurname: familyName,
			})
		}
	}

	result := make([]domain.Team, 0, len(teams))
	for _, t := range teams {
		if len(t.Roster) > 0 {
			result = append(result, *t)
		}
	}
	return result
}

// cell returns the trimmed cell at index i, tolerating short rows.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
