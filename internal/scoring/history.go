package scoring

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/omarshaarawi/tempad/internal/models"
	"golang.org/x/sync/singleflight"
)

type HistoryFetcher interface {
	GetElementSummary(ctx context.Context, playerID int) (*models.ElementSummary, error)
}

// PointsForRound returns the points of the first history entry played in round.
func PointsForRound(history []models.ElementHistory, round int) (int, bool) {
	for _, h := range history {
		if h.Round == round {
			return h.TotalPoints, true
		}
	}
	return 0, false
}

type historyResult struct {
	history []models.ElementHistory
	err     error
}

// HistorySource memoizes player histories for the lifetime of one computation.
// Failed fetches are memoized as well so a broken player costs a single upstream call.
type HistorySource struct {
	fetcher HistoryFetcher
	group   singleflight.Group

	mu      sync.Mutex
	results map[int]historyResult
}

func NewHistorySource(fetcher HistoryFetcher) *HistorySource {
	return &HistorySource{
		fetcher: fetcher,
		results: make(map[int]historyResult),
	}
}

func (s *HistorySource) History(ctx context.Context, playerID int) ([]models.ElementHistory, error) {
	s.mu.Lock()
	res, ok := s.results[playerID]
	s.mu.Unlock()
	if ok {
		return res.history, res.err
	}

	v, _, _ := s.group.Do(strconv.Itoa(playerID), func() (interface{}, error) {
		s.mu.Lock()
		if res, ok := s.results[playerID]; ok {
			s.mu.Unlock()
			return res, nil
		}
		s.mu.Unlock()

		summary, err := s.fetcher.GetElementSummary(ctx, playerID)
		res := historyResult{err: err}
		if err == nil && summary != nil {
			res.history = summary.History
		}

		// A cancelled request says nothing about the player.
		if isContextError(err) {
			return res, nil
		}
		if err != nil {
			slog.Warn("Failed to fetch player history", "player", playerID, "error", err)
		}
		s.mu.Lock()
		s.results[playerID] = res
		s.mu.Unlock()
		return res, nil
	})

	res = v.(historyResult)
	return res.history, res.err
}

// Points is the player's raw points in gameweek. Fetch failures and missing
// rounds count as zero; only cancellation or an expired deadline is returned.
func (s *HistorySource) Points(ctx context.Context, playerID, gameweek int) (int, error) {
	history, err := s.History(ctx, playerID)
	if isContextError(err) {
		return 0, err
	}
	if err != nil {
		return 0, nil
	}
	points, ok := PointsForRound(history, gameweek)
	if !ok {
		slog.Debug("No history entry for round", "player", playerID, "gameweek", gameweek)
	}
	return points, nil
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
