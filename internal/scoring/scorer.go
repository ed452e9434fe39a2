package scoring

import (
	"context"

	"github.com/omarshaarawi/tempad/internal/models"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

type PointsSource interface {
	Points(ctx context.Context, playerID, gameweek int) (int, error)
}

type SquadScore struct {
	Gameweek     int
	TotalScore   int
	PlayerScores []models.PlayerScore
}

type Scorer struct {
	points      PointsSource
	concurrency int
}

func NewScorer(points PointsSource) *Scorer {
	return &Scorer{points: points, concurrency: defaultConcurrency}
}

// WithConcurrency caps the number of in-flight player lookups per squad.
func (s *Scorer) WithConcurrency(n int) *Scorer {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

// ScoreSquad scores players against gameweek using each selection's own multiplier.
// PlayerScores keeps the order of players; lookups run concurrently.
func (s *Scorer) ScoreSquad(ctx context.Context, players []models.Selection, gameweek int) (SquadScore, error) {
	scores := make([]models.PlayerScore, len(players))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, p := range players {
		i, p := i, p
		g.Go(func() error {
			points, err := s.points.Points(gctx, p.PlayerID, gameweek)
			if err != nil {
				return err
			}
			scores[i] = models.PlayerScore{
				PlayerID:          p.PlayerID,
				PlayerName:        p.PlayerName,
				GameweekPoints:    points,
				Multiplier:        p.Multiplier,
				ContributedPoints: points * p.Multiplier,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SquadScore{}, err
	}
	if err := ctx.Err(); err != nil {
		return SquadScore{}, err
	}

	total := 0
	for _, ps := range scores {
		total += ps.ContributedPoints
	}

	return SquadScore{Gameweek: gameweek, TotalScore: total, PlayerScores: scores}, nil
}
