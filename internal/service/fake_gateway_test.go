package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/omarshaarawi/tempad/internal/models"
)

var errNotFound = errors.New("not found")

type fakeGateway struct {
	mu           sync.Mutex
	bootstrap    *models.BootstrapStatic
	bootstrapErr error
	entries      map[int]*models.EntryResponse
	picks        map[int]*models.PicksResponse
	picksErr     map[int]error
	points       map[int]map[int]int
	failing      map[int]bool
	playerErrs   map[int]error
	summaryCalls map[int]int
}

func newFakeGateway(finished, total int) *fakeGateway {
	events := make([]models.Event, 0, total)
	for id := 1; id <= total; id++ {
		events = append(events, models.Event{ID: id, Finished: id <= finished})
	}
	return &fakeGateway{
		bootstrap:    &models.BootstrapStatic{Events: events},
		entries:      make(map[int]*models.EntryResponse),
		picks:        make(map[int]*models.PicksResponse),
		picksErr:     make(map[int]error),
		points:       make(map[int]map[int]int),
		failing:      make(map[int]bool),
		playerErrs:   make(map[int]error),
		summaryCalls: make(map[int]int),
	}
}

func (f *fakeGateway) addPlayer(id int, name string) {
	f.bootstrap.Elements = append(f.bootstrap.Elements, models.Element{ID: id, WebName: name})
}

func (f *fakeGateway) setPoints(playerID, round, pts int) {
	if f.points[playerID] == nil {
		f.points[playerID] = make(map[int]int)
	}
	f.points[playerID][round] = pts
}

func (f *fakeGateway) GetBootstrapStatic(ctx context.Context) (*models.BootstrapStatic, error) {
	if f.bootstrapErr != nil {
		return nil, f.bootstrapErr
	}
	return f.bootstrap, nil
}

func (f *fakeGateway) GetManagerEntry(ctx context.Context, managerID int) (*models.EntryResponse, error) {
	entry, ok := f.entries[managerID]
	if !ok {
		return nil, fmt.Errorf("fetching manager %d: %w", managerID, errNotFound)
	}
	return entry, nil
}

func (f *fakeGateway) GetPicks(ctx context.Context, managerID, gameweek int) (*models.PicksResponse, error) {
	if err := f.picksErr[gameweek]; err != nil {
		return nil, err
	}
	picks, ok := f.picks[gameweek]
	if !ok {
		return nil, fmt.Errorf("picks for gameweek %d: %w", gameweek, errNotFound)
	}
	return picks, nil
}

func (f *fakeGateway) GetElementSummary(ctx context.Context, playerID int) (*models.ElementSummary, error) {
	f.mu.Lock()
	f.summaryCalls[playerID]++
	f.mu.Unlock()

	if f.failing[playerID] {
		return nil, errors.New("element summary unavailable")
	}
	if err := f.playerErrs[playerID]; err != nil {
		return nil, err
	}

	var history []models.ElementHistory
	for round := 1; round <= len(f.bootstrap.Events); round++ {
		if pts, ok := f.points[playerID][round]; ok {
			history = append(history, models.ElementHistory{Element: playerID, Round: round, TotalPoints: pts})
		}
	}
	return &models.ElementSummary{History: history}, nil
}

func (f *fakeGateway) totalSummaryCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.summaryCalls {
		total += n
	}
	return total
}

// pick describes one squad slot for buildPicks.
type pick struct {
	id         int
	multiplier int
	captain    bool
}

func buildPicks(picks ...pick) *models.PicksResponse {
	out := &models.PicksResponse{}
	for i, p := range picks {
		out.Picks = append(out.Picks, models.Pick{
			Element:    p.id,
			Position:   i + 1,
			Multiplier: p.multiplier,
			IsCaptain:  p.captain,
		})
	}
	return out
}
