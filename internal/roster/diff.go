package roster

import (
	"vct-tracker/internal/domain"

	"github.com/google/go-cmp/cmp"
)

// DiffTeams compares two generations of a region's team list and returns the
// detected changes in a stable order: additions and updates in newTeams
// order, then removals in oldTeams order. Teams match by name; a team that
// matched and is deeply equal produces nothing. For a matched, unequal team
// both a roster_updated and a team_info_updated may be emitted in the same
// pass. Running DiffTeams twice on the same inputs yields identical output.
//
// If a list carries two teams with the same name (the normalizer can produce
// that after a section-break re-entry) the lookup takes the first match.
func DiffTeams(oldTeams, newTeams []domain.Team) []domain.TeamChange {
	var changes []domain.TeamChange

	for _, newTeam := range newTeams {
		oldTeam, found := findTeam(oldTeams, newTeam.Team)
		if !found {
			data := newTeam
			changes = append(changes, domain.TeamChange{
				Type: domain.ChangeTeamAdded,
				Team: newTeam.Team,
				Data: &data,
			})
			continue
		}

		if cmp.Equal(oldTeam, newTeam) {
			continue
		}

		if rosterChanges := diffRoster(oldTeam.Roster, newTeam.Roster); len(rosterChanges) > 0 {
			changes = append(changes, domain.TeamChange{
				Type:    domain.ChangeRosterUpdated,
				Team:    newTeam.Team,
				Changes: rosterChanges,
			})
		}

		oldInfo, newInfo := oldTeam.Info(), newTeam.Info()
		if oldInfo != newInfo {
			changes = append(changes, domain.TeamChange{
				Type: domain.ChangeTeamInfoUpdated,
				Team: newTeam.Team,
				Old:  &oldInfo,
				New:  &newInfo,
			})
		}
	}

	for _, oldTeam := range oldTeams {
		if _, found := findTeam(newTeams, oldTeam.Team); !found {
			data := oldTeam
			changes = append(changes, domain.TeamChange{
				Type: domain.ChangeTeamRemoved,
				Team: oldTeam.Team,
				Data: &data,
			})
		}
	}

	return changes
}

// diffRoster is the player-level pass, same shape as the team pass one level
// down. Players match by tournament name within the team. An updated player
// carries both full generations; field extraction is the formatter's job.
func diffRoster(oldRoster, newRoster []domain.Player) []domain.PlayerChange {
	var changes []domain.PlayerChange

	for _, newPlayer := range newRoster {
		oldPlayer, found := findPlayer(oldRoster, newPlayer.Name)
		if !found {
			p := newPlayer
			changes = append(changes, domain.PlayerChange{
				Type:   domain.ChangePlayerAdded,
				Player: &p,
			})
			continue
		}
		if oldPlayer != newPlayer {
			oldCopy, newCopy := oldPlayer, newPlayer
			changes = append(changes, domain.PlayerChange{
				Type: domain.ChangePlayerUpdated,
				Old:  &oldCopy,
				New:  &newCopy,
			})
		}
	}

	for _, oldPlayer := range oldRoster {
		if _, found := findPlayer(newRoster, oldPlayer.Name); !found {
			p := oldPlayer
			changes = append(changes, domain.PlayerChange{
				Type:   domain.ChangePlayerRemoved,
				Player: &p,
			})
		}
	}

	return changes
}

func findTeam(teams []domain.Team, name string) (domain.Team, bool) {
	for _, t := range teams {
		if t.Team == name {
			return t, true
		}
	}
	return domain.Team{}, false
}

func findPlayer(roster []domain.Player, name string) (domain.Player, bool) {
	for _, p := range roster {
		if p.Name == name {
			return p, true
		}
	}
	return domain.Player{}, false
}
