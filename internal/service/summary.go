package service

import "github.com/omarshaarawi/tempad/internal/models"

// Summarize tallies transfer ratings and captain swings and picks the best and
// worst frozen branches. Ties keep the earliest branch.
func Summarize(scores []models.GameweekScore, timeline models.AlternateTimeline) models.TimelineSummary {
	summary := models.TimelineSummary{Gameweeks: len(scores)}

	for _, gw := range scores {
		for _, te := range gw.TransferEffectiveness {
			switch te.Rating.Band {
			case models.RatingMasterclass:
				summary.Transfers.Masterclasses++
				summary.Transfers.GoodTransfers++
			case models.RatingGood:
				summary.Transfers.GoodTransfers++
			case models.RatingBad:
				summary.Transfers.BadTransfers++
			case models.RatingDisasterclass:
				summary.Transfers.Disasterclasses++
				summary.Transfers.BadTransfers++
			}
		}
		if gw.CaptainChange != nil {
			summary.CaptainChanges++
			summary.CaptainDiff += gw.CaptainChange.Diff
		}
	}

	if len(timeline.Branches) == 0 {
		return summary
	}

	best, worst := timeline.Branches[0], timeline.Branches[0]
	for _, b := range timeline.Branches[1:] {
		if b.TotalPointsToDate > best.TotalPointsToDate {
			best = b
		}
		if b.TotalPointsToDate < worst.TotalPointsToDate {
			worst = b
		}
	}
	summary.BestBranch = &best
	summary.WorstBranch = &worst
	summary.VsBestDiff = timeline.MainTotalPoints - best.TotalPointsToDate

	return summary
}
