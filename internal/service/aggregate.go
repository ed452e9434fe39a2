package service

import (
	"context"

	"github.com/omarshaarawi/tempad/internal/models"
	"github.com/omarshaarawi/tempad/internal/rating"
	"github.com/omarshaarawi/tempad/internal/scoring"
	"github.com/omarshaarawi/tempad/internal/transfers"
)

// CaptainMultiplier is applied to both sides of a captain change, triple captain included.
const CaptainMultiplier = 2

// aggregateState is what one gameweek hands to the next.
type aggregateState struct {
	previous *models.GameweekSquad
}

func (s *TimelineService) aggregate(ctx context.Context, c *computation, squads []models.GameweekSquad) ([]models.GameweekScore, error) {
	scores := make([]models.GameweekScore, 0, len(squads))

	state := aggregateState{}
	for _, squad := range squads {
		var (
			score models.GameweekScore
			err   error
		)
		score, state, err = aggregateStep(ctx, c, state, squad)
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}

	return scores, nil
}

func aggregateStep(ctx context.Context, c *computation, state aggregateState, squad models.GameweekSquad) (models.GameweekScore, aggregateState, error) {
	squadScore, err := c.scorer.ScoreSquad(ctx, squad.Players, squad.Gameweek)
	if err != nil {
		return models.GameweekScore{}, state, err
	}

	effectiveness, err := transferEffectiveness(ctx, c.source, squad, squadScore.PlayerScores)
	if err != nil {
		return models.GameweekScore{}, state, err
	}
	captain, err := captainChange(ctx, c.source, state.previous, squad, squadScore.PlayerScores)
	if err != nil {
		return models.GameweekScore{}, state, err
	}

	score := models.GameweekScore{
		GameweekSquad:         squad,
		TotalScore:            squadScore.TotalScore,
		PlayerScores:          squadScore.PlayerScores,
		TransferEffectiveness: effectiveness,
		CaptainChange:         captain,
	}

	next := squad
	return score, aggregateState{previous: &next}, ctx.Err()
}

// transferEffectiveness compares each incoming player's actual contribution
// with what the outgoing player would have scored in the same slot.
func transferEffectiveness(ctx context.Context, points scoring.PointsSource, squad models.GameweekSquad, playerScores []models.PlayerScore) ([]models.TransferEffectiveness, error) {
	byPlayer := indexScores(playerScores)

	out := make([]models.TransferEffectiveness, 0, len(squad.Transfers))
	for _, t := range squad.Transfers {
		inPoints, inContributed, inMultiplier := 0, 0, 1
		if ps, ok := byPlayer[t.ElementIn]; ok {
			inPoints = ps.GameweekPoints
			inContributed = ps.ContributedPoints
			inMultiplier = ps.Multiplier
		}

		outPoints := 0
		if t.ElementOut != transfers.NoPlayer {
			var err error
			outPoints, err = points.Points(ctx, t.ElementOut, squad.Gameweek)
			if err != nil {
				return nil, err
			}
		}
		outHypothetical := outPoints * inMultiplier

		diff := inContributed - outHypothetical
		out = append(out, models.TransferEffectiveness{
			Transfer:                              t,
			TransferredInPoints:                   inPoints,
			TransferredOutPoints:                  outPoints,
			TransferredInContributed:              inContributed,
			TransferredOutHypotheticalContributed: outHypothetical,
			Diff:                                  diff,
			IsPositive:                            diff >= 0,
			Rating:                                rating.Rate(diff),
		})
	}

	return out, nil
}

// captainChange is nil unless both gameweeks have a captain and they differ.
func captainChange(ctx context.Context, points scoring.PointsSource, previous *models.GameweekSquad, current models.GameweekSquad, playerScores []models.PlayerScore) (*models.CaptainChangeEffectiveness, error) {
	if previous == nil {
		return nil, nil
	}
	oldCaptain, ok := previous.Captain()
	if !ok {
		return nil, nil
	}
	newCaptain, ok := current.Captain()
	if !ok || newCaptain.PlayerID == oldCaptain.PlayerID {
		return nil, nil
	}

	byPlayer := indexScores(playerScores)

	newPoints := byPlayer[newCaptain.PlayerID].GameweekPoints

	var oldPoints int
	if current.Contains(oldCaptain.PlayerID) {
		oldPoints = byPlayer[oldCaptain.PlayerID].GameweekPoints
	} else {
		// transferred out since last gameweek
		var err error
		oldPoints, err = points.Points(ctx, oldCaptain.PlayerID, current.Gameweek)
		if err != nil {
			return nil, err
		}
	}

	newContributed := newPoints * CaptainMultiplier
	oldHypothetical := oldPoints * CaptainMultiplier
	diff := newContributed - oldHypothetical

	return &models.CaptainChangeEffectiveness{
		Gameweek:                               current.Gameweek,
		PreviousCaptainID:                      oldCaptain.PlayerID,
		PreviousCaptainName:                    oldCaptain.PlayerName,
		NewCaptainID:                           newCaptain.PlayerID,
		NewCaptainName:                         newCaptain.PlayerName,
		NewCaptainPoints:                       newPoints,
		PreviousCaptainPoints:                  oldPoints,
		NewCaptainContributed:                  newContributed,
		PreviousCaptainHypotheticalContributed: oldHypothetical,
		Diff:                                   diff,
		IsPositive:                             diff >= 0,
		Rating:                                 rating.Rate(diff),
	}, nil
}

func indexScores(playerScores []models.PlayerScore) map[int]models.PlayerScore {
	byPlayer := make(map[int]models.PlayerScore, len(playerScores))
	for _, ps := range playerScores {
		byPlayer[ps.PlayerID] = ps
	}
	return byPlayer
}
