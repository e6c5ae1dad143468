package roster

import (
	"fmt"
	"strings"
	"vct-tracker/internal/domain"
)

// PlayerChangeMessage renders one roster-level change as a human-readable
// message. It returns "" when the change carries no user-facing meaning:
// an update touching neither roster status nor contract end date, or a
// change type this formatter does not announce.
func PlayerChangeMessage(change domain.PlayerChange, team string) string {
	switch change.Type {
	case domain.ChangePlayerAdded:
		p := change.Player
		return fmt.Sprintf("%s %q %s has been added to %s with a %s contract",
			p.LegalName, p.Name, p.LegalSurname, team, p.End)

	case domain.ChangePlayerRemoved:
		p := change.Player
		return fmt.Sprintf("%s %q %s has been removed from %s",
			p.LegalName, p.Name, p.LegalSurname, team)

	case domain.ChangePlayerUpdated:
		deltas := PlayerFieldDeltas(*change.Old, *change.New)
		if len(deltas) == 0 {
			return ""
		}
		playerName := fmt.Sprintf("%s %q %s",
			change.New.LegalName, change.New.Name, change.New.LegalSurname)
		lines := make([]string, len(deltas))
		for i, d := range deltas {
			lines[i] = fmt.Sprintf("%s (%s) %s was changed from %s to %s",
				playerName, team, d.Field, d.From, d.To)
		}
		return strings.Join(lines, "\n")

	default:
		return ""
	}
}

// PlayerFieldDeltas extracts the user-facing field changes between two
// generations of a player. Only roster status and contract end date are
// announced; legal-name corrections stay in the audit log.
func PlayerFieldDeltas(prev, next domain.Player) []domain.FieldDelta {
	var deltas []domain.FieldDelta
	if prev.Status != next.Status {
		deltas = append(deltas, domain.FieldDelta{
			Field: "roster status",
			From:  prev.Status,
			To:    next.Status,
		})
	}
	if prev.End != next.End {
		deltas = append(deltas, domain.FieldDelta{
			Field: "contract end date",
			From:  prev.End,
			To:    next.End,
		})
	}
	return deltas
}

func TeamAddedMessage(team, region string) string {
	return fmt.Sprintf("New team %s has been added to %s", team, region)
}

func TeamRemovedMessage(team, region string) string {
	return fmt.Sprintf("Team %s has been removed from %s", team, region)
}
