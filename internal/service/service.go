package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/omarshaarawi/tempad/internal/models"
	"github.com/omarshaarawi/tempad/internal/scoring"
)

// Gateway is the upstream data the pipeline reads from.
type Gateway interface {
	GetBootstrapStatic(ctx context.Context) (*models.BootstrapStatic, error)
	GetManagerEntry(ctx context.Context, managerID int) (*models.EntryResponse, error)
	GetPicks(ctx context.Context, managerID, gameweek int) (*models.PicksResponse, error)
	GetElementSummary(ctx context.Context, playerID int) (*models.ElementSummary, error)
}

type PlayerFinder interface {
	LookupPlayer(ctx context.Context, query string) (models.PlayerLookup, error)
}

type TimelineService struct {
	gateway     Gateway
	players     PlayerFinder
	concurrency int
	now         func() time.Time
}

func NewTimelineService(gateway Gateway, players PlayerFinder) *TimelineService {
	return &TimelineService{
		gateway:     gateway,
		players:     players,
		concurrency: 8,
		now:         time.Now,
	}
}

// computation holds the per-request memo shared by every stage of one pipeline run.
type computation struct {
	source *scoring.HistorySource
	scorer *scoring.Scorer
}

func (s *TimelineService) newComputation() *computation {
	source := scoring.NewHistorySource(s.gateway)
	return &computation{
		source: source,
		scorer: scoring.NewScorer(source).WithConcurrency(s.concurrency),
	}
}

// Report runs the whole pipeline for one manager.
func (s *TimelineService) Report(ctx context.Context, managerID int) (*models.TimelineReport, error) {
	start := s.now()

	history, err := s.BuildHistory(ctx, managerID)
	if err != nil {
		return nil, err
	}

	c := s.newComputation()

	scores, err := s.aggregate(ctx, c, history.Squads)
	if err != nil {
		return nil, fmt.Errorf("scoring history for manager %d: %w", managerID, err)
	}

	timeline, err := s.simulate(ctx, c, scores)
	if err != nil {
		return nil, fmt.Errorf("simulating timelines for manager %d: %w", managerID, err)
	}

	summary := Summarize(scores, timeline)
	summary.GeneratedAt = s.now()

	slog.Info("Computed timeline",
		"manager", managerID,
		"gameweeks", len(scores),
		"branches", len(timeline.Branches),
		"duration", time.Since(start))

	return &models.TimelineReport{
		ManagerID:   managerID,
		TeamName:    history.TeamName,
		ManagerName: history.ManagerName,
		History:     scores,
		Timeline:    timeline,
		Summary:     summary,
	}, nil
}

// ScoreHistory runs the score aggregator over an already built history.
func (s *TimelineService) ScoreHistory(ctx context.Context, managerID int) (*models.ManagerHistory, []models.GameweekScore, error) {
	history, err := s.BuildHistory(ctx, managerID)
	if err != nil {
		return nil, nil, err
	}

	scores, err := s.aggregate(ctx, s.newComputation(), history.Squads)
	if err != nil {
		return nil, nil, fmt.Errorf("scoring history for manager %d: %w", managerID, err)
	}
	return history, scores, nil
}

func (s *TimelineService) LookupPlayer(ctx context.Context, query string) (models.PlayerLookup, error) {
	if s.players == nil {
		return models.PlayerLookup{}, fmt.Errorf("player lookup not configured")
	}
	return s.players.LookupPlayer(ctx, query)
}
