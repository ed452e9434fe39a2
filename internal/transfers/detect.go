package transfers

import "github.com/omarshaarawi/tempad/internal/models"

// NoPlayer stands in for the missing side of an unbalanced transfer pair.
const NoPlayer = 0

const UnknownName = "Unknown"

// NameLookup resolves a player id to a display name.
type NameLookup func(playerID int) (string, bool)

// Detect diffs two consecutive squads. A nil previous squad yields no transfers.
//
// Ins and outs are paired by detection order, so with several transfers in one
// gameweek the pairing is positional rather than a true attribution.
func Detect(previous *models.GameweekSquad, current models.GameweekSquad, names NameLookup) []models.Transfer {
	if previous == nil {
		return []models.Transfer{}
	}

	prevIDs := idSet(previous.Players)
	currIDs := idSet(current.Players)

	var in, out []int
	for _, p := range current.Players {
		if _, ok := prevIDs[p.PlayerID]; !ok {
			in = append(in, p.PlayerID)
		}
	}
	for _, p := range previous.Players {
		if _, ok := currIDs[p.PlayerID]; !ok {
			out = append(out, p.PlayerID)
		}
	}

	n := max(len(in), len(out))
	transfers := make([]models.Transfer, 0, n)
	for i := 0; i < n; i++ {
		elementIn, elementOut := NoPlayer, NoPlayer
		if i < len(in) {
			elementIn = in[i]
		}
		if i < len(out) {
			elementOut = out[i]
		}

		transfers = append(transfers, models.Transfer{
			Gameweek:       current.Gameweek,
			ElementIn:      elementIn,
			ElementInName:  resolve(names, elementIn),
			ElementOut:     elementOut,
			ElementOutName: resolve(names, elementOut),
		})
	}

	return transfers
}

func idSet(players []models.Selection) map[int]struct{} {
	ids := make(map[int]struct{}, len(players))
	for _, p := range players {
		ids[p.PlayerID] = struct{}{}
	}
	return ids
}

func resolve(names NameLookup, playerID int) string {
	if playerID == NoPlayer || names == nil {
		return UnknownName
	}
	if name, ok := names(playerID); ok && name != "" {
		return name
	}
	return UnknownName
}
