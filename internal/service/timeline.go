package service

import (
	"context"
	"fmt"

	"github.com/omarshaarawi/tempad/internal/models"
)

// simulate builds the actual cumulative trajectory plus one frozen-team branch
// per gameweek. Branch i matches reality up to and including gameweek i, then
// replays squad i with its original multipliers against each later gameweek.
func (s *TimelineService) simulate(ctx context.Context, c *computation, scores []models.GameweekScore) (models.AlternateTimeline, error) {
	mainBranch := make([]models.TimelineBranchScore, 0, len(scores))
	mainCumulative := 0
	for _, gw := range scores {
		mainCumulative += gw.TotalScore
		mainBranch = append(mainBranch, models.TimelineBranchScore{
			Gameweek:        gw.Gameweek,
			GameweekScore:   gw.TotalScore,
			CumulativeScore: mainCumulative,
		})
	}

	branches := make([]models.TimelineBranch, 0, len(scores))
	for i, origin := range scores {
		branchScores := make([]models.TimelineBranchScore, 0, len(scores))
		cumulative := 0

		for k := 0; k <= i; k++ {
			cumulative += scores[k].TotalScore
			branchScores = append(branchScores, models.TimelineBranchScore{
				Gameweek:        scores[k].Gameweek,
				GameweekScore:   scores[k].TotalScore,
				CumulativeScore: cumulative,
			})
		}

		for j := i + 1; j < len(scores); j++ {
			target := scores[j].Gameweek
			frozen, err := c.scorer.ScoreSquad(ctx, origin.Players, target)
			if err != nil {
				return models.AlternateTimeline{}, fmt.Errorf("scoring gameweek %d squad in gameweek %d: %w", origin.Gameweek, target, err)
			}

			cumulative += frozen.TotalScore
			branchScores = append(branchScores, models.TimelineBranchScore{
				Gameweek:        target,
				GameweekScore:   frozen.TotalScore,
				CumulativeScore: cumulative,
			})
		}

		branches = append(branches, models.TimelineBranch{
			BranchID:          i,
			OriginGameweek:    origin.Gameweek,
			BranchLabel:       fmt.Sprintf("GW%d Team (Frozen)", origin.Gameweek),
			Scores:            branchScores,
			TotalPointsToDate: cumulative,
		})
	}

	return models.AlternateTimeline{
		MainBranch:      mainBranch,
		MainTotalPoints: mainCumulative,
		Branches:        branches,
	}, nil
}

// SimulateTimelines runs the simulator on its own, with a fresh history memo.
func (s *TimelineService) SimulateTimelines(ctx context.Context, scores []models.GameweekScore) (models.AlternateTimeline, error) {
	return s.simulate(ctx, s.newComputation(), scores)
}
