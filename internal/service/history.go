package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/omarshaarawi/tempad/internal/models"
	"github.com/omarshaarawi/tempad/internal/transfers"
)

const unknownPlayerName = "Unknown Player"

// BuildHistory reconstructs every finished gameweek squad since the manager
// started, with transfers detected against the previous gameweek. Any failed
// upstream call aborts the whole build.
func (s *TimelineService) BuildHistory(ctx context.Context, managerID int) (*models.ManagerHistory, error) {
	entry, err := s.gateway.GetManagerEntry(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("building history for manager %d: %w", managerID, err)
	}

	bootstrap, err := s.gateway.GetBootstrapStatic(ctx)
	if err != nil {
		return nil, fmt.Errorf("building history for manager %d: %w", managerID, err)
	}

	names := bootstrap.PlayerNames()
	lookup := func(id int) (string, bool) {
		name, ok := names[id]
		return name, ok
	}

	history := &models.ManagerHistory{
		ManagerID:    managerID,
		TeamName:     entry.Name,
		ManagerName:  strings.TrimSpace(entry.PlayerFirstName + " " + entry.PlayerLastName),
		StartedEvent: entry.StartedEvent,
		Squads:       []models.GameweekSquad{},
	}

	var previous *models.GameweekSquad
	for _, gw := range bootstrap.FinishedGameweeks() {
		if gw < entry.StartedEvent {
			continue
		}

		picks, err := s.gateway.GetPicks(ctx, managerID, gw)
		if err != nil {
			return nil, fmt.Errorf("building history for manager %d: %w", managerID, err)
		}

		squad := squadFromPicks(gw, picks, names)
		squad.Transfers = transfers.Detect(previous, squad, lookup)
		history.Squads = append(history.Squads, squad)

		prev := squad
		previous = &prev
	}

	return history, nil
}

func squadFromPicks(gameweek int, picks *models.PicksResponse, names map[int]string) models.GameweekSquad {
	players := make([]models.Selection, 0, len(picks.Picks))
	for _, p := range picks.Picks {
		name, ok := names[p.Element]
		if !ok || name == "" {
			name = unknownPlayerName
		}
		players = append(players, models.Selection{
			PlayerID:      p.Element,
			PlayerName:    name,
			Gameweek:      gameweek,
			Position:      p.Position,
			Multiplier:    p.Multiplier,
			IsCaptain:     p.IsCaptain,
			IsViceCaptain: p.IsViceCaptain,
		})
	}
	return models.GameweekSquad{Gameweek: gameweek, Players: players}
}
