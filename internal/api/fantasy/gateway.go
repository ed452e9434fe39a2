package fantasy

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/tempad/internal/api/fpl"
	"github.com/omarshaarawi/tempad/internal/models"
	"github.com/omarshaarawi/tempad/internal/repository/memory"
	"github.com/omarshaarawi/tempad/internal/scoring"
)

const similarityThreshold = 0.7

// Upstream is the raw FPL API surface; *fpl.API satisfies it.
type Upstream interface {
	GetBootstrapStatic(ctx context.Context) (*models.BootstrapStatic, error)
	GetManagerEntry(ctx context.Context, managerID int) (*models.EntryResponse, error)
	GetPicks(ctx context.Context, managerID, gameweek int) (*models.PicksResponse, error)
	GetElementSummary(ctx context.Context, playerID int) (*models.ElementSummary, error)
}

type API struct {
	upstream Upstream
	repo     *memory.Repository
	ttl      time.Duration
}

func NewAPI(upstream Upstream, repo *memory.Repository, ttl time.Duration) *API {
	return &API{upstream: upstream, repo: repo, ttl: ttl}
}

// GetBootstrapStatic serves reference data from the shared slot, refreshing it once stale.
func (a *API) GetBootstrapStatic(ctx context.Context) (*models.BootstrapStatic, error) {
	if data, ok := a.repo.GetBootstrap(a.ttl); ok {
		return data, nil
	}
	return a.RefreshBootstrapStatic(ctx)
}

func (a *API) RefreshBootstrapStatic(ctx context.Context) (*models.BootstrapStatic, error) {
	data, err := a.upstream.GetBootstrapStatic(ctx)
	if err != nil {
		return nil, err
	}
	a.repo.SaveBootstrap(data)
	slog.Debug("Refreshed reference data", "players", len(data.Elements), "gameweeks", len(data.Events))
	return data, nil
}

// ReferenceUpdatedAt is when reference data was last fetched, zero if never.
func (a *API) ReferenceUpdatedAt() time.Time {
	return a.repo.LastUpdated()
}

func (a *API) GetManagerEntry(ctx context.Context, managerID int) (*models.EntryResponse, error) {
	return a.upstream.GetManagerEntry(ctx, managerID)
}

func (a *API) GetPicks(ctx context.Context, managerID, gameweek int) (*models.PicksResponse, error) {
	return a.upstream.GetPicks(ctx, managerID, gameweek)
}

func (a *API) GetElementSummary(ctx context.Context, playerID int) (*models.ElementSummary, error) {
	return a.upstream.GetElementSummary(ctx, playerID)
}

// SearchPlayers ranks reference players by name similarity to query.
func (a *API) SearchPlayers(ctx context.Context, query string, limit int) ([]models.Element, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty player query")
	}

	bootstrap, err := a.GetBootstrapStatic(ctx)
	if err != nil {
		return nil, err
	}

	return searchElements(bootstrap.Elements, query, limit), nil
}

type scoredElement struct {
	element    models.Element
	similarity float64
}

func searchElements(elements []models.Element, query string, limit int) []models.Element {
	q := strings.ToLower(query)

	var matches []scoredElement
	for _, el := range elements {
		best := 0.0
		for _, name := range []string{el.WebName, el.FirstName + " " + el.SecondName, el.SecondName} {
			if s := similarity(q, strings.ToLower(name)); s > best {
				best = s
			}
		}
		if best > similarityThreshold {
			matches = append(matches, scoredElement{element: el, similarity: best})
		}
	}

	if len(matches) == 0 {
		for _, el := range elements {
			full := el.FirstName + " " + el.SecondName
			if fuzzy.MatchNormalizedFold(query, el.WebName) || fuzzy.MatchNormalizedFold(query, full) {
				matches = append(matches, scoredElement{element: el})
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].similarity != matches[j].similarity {
			return matches[i].similarity > matches[j].similarity
		}
		return matches[i].element.TotalPoints > matches[j].element.TotalPoints
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]models.Element, len(matches))
	for i, m := range matches {
		out[i] = m.element
	}
	return out
}

func similarity(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 0
	}
	distance := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(distance)/float64(maxLen)
}

// LookupPlayer finds the best match for query and reports its recent gameweek points.
func (a *API) LookupPlayer(ctx context.Context, query string) (models.PlayerLookup, error) {
	matches, err := a.SearchPlayers(ctx, query, 1)
	if err != nil {
		return models.PlayerLookup{}, err
	}
	if len(matches) == 0 {
		return models.PlayerLookup{}, fmt.Errorf("player %q: %w", query, fpl.ErrNotFound)
	}
	el := matches[0]

	bootstrap, err := a.GetBootstrapStatic(ctx)
	if err != nil {
		return models.PlayerLookup{}, err
	}

	lookup := models.PlayerLookup{
		PlayerID:      el.ID,
		WebName:       el.WebName,
		FullName:      strings.TrimSpace(el.FirstName + " " + el.SecondName),
		TeamShortName: teamShortName(bootstrap.Teams, el.Team),
		Position:      positionName(bootstrap.ElementTypes, el.ElementType),
		Cost:          float64(el.NowCost) / 10,
		Form:          el.Form,
		TotalPoints:   el.TotalPoints,
	}

	finished := bootstrap.FinishedGameweeks()
	if len(finished) == 0 {
		return lookup, nil
	}

	summary, err := a.upstream.GetElementSummary(ctx, el.ID)
	if err != nil {
		slog.Warn("Failed to fetch player history", "player", el.ID, "error", err)
		return lookup, nil
	}

	lookup.LatestGameweek = finished[len(finished)-1]
	if pts, ok := scoring.PointsForRound(summary.History, lookup.LatestGameweek); ok {
		lookup.LatestPoints = &pts
	}
	if len(finished) > 1 {
		lookup.PreviousGameweek = finished[len(finished)-2]
		if pts, ok := scoring.PointsForRound(summary.History, lookup.PreviousGameweek); ok {
			lookup.PreviousPoints = &pts
		}
	}

	return lookup, nil
}

func teamShortName(teams []models.Team, teamID int) string {
	for _, t := range teams {
		if t.ID == teamID {
			return t.ShortName
		}
	}
	return "Unknown"
}

func positionName(types []models.ElementType, typeID int) string {
	for _, et := range types {
		if et.ID == typeID {
			return et.SingularNameShort
		}
	}
	positions := map[int]string{1: "GKP", 2: "DEF", 3: "MID", 4: "FWD"}
	if pos, ok := positions[typeID]; ok {
		return pos
	}
	return "Unknown"
}
