package service

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/tempad/internal/models"
)

func (s *TimelineService) TimelineText(ctx context.Context, managerID int) (string, error) {
	report, err := s.Report(ctx, managerID)
	if err != nil {
		return "", fmt.Errorf("error computing timeline: %w", err)
	}
	return formatTimelineReport(report), nil
}

func (s *TimelineService) TransfersText(ctx context.Context, managerID int) (string, error) {
	history, scores, err := s.ScoreHistory(ctx, managerID)
	if err != nil {
		return "", fmt.Errorf("error scoring history: %w", err)
	}
	return formatTransfers(history, scores), nil
}

func (s *TimelineService) CaptainsText(ctx context.Context, managerID int) (string, error) {
	history, scores, err := s.ScoreHistory(ctx, managerID)
	if err != nil {
		return "", fmt.Errorf("error scoring history: %w", err)
	}
	return formatCaptains(history, scores), nil
}

func (s *TimelineService) PlayerText(ctx context.Context, query string) (string, error) {
	player, err := s.LookupPlayer(ctx, query)
	if err != nil {
		return "", fmt.Errorf("error looking up player: %w", err)
	}
	return formatPlayer(player), nil
}

func displayName(teamName string, managerID int) string {
	if teamName == "" {
		return fmt.Sprintf("Manager %d", managerID)
	}
	return escape(teamName)
}

// escape neutralises Markdown control characters in upstream-supplied text.
func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func formatTimelineReport(r *models.TimelineReport) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🕰 *%s: Alternate Timelines*\n\n", displayName(r.TeamName, r.ManagerID)))

	if r.Summary.Gameweeks == 0 {
		sb.WriteString("No finished gameweeks yet.")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Actual: *%d pts* over %d gameweeks\n", r.Timeline.MainTotalPoints, r.Summary.Gameweeks))

	if best := r.Summary.BestBranch; best != nil {
		sb.WriteString(fmt.Sprintf("Best frozen team: %s - %d pts\n", best.BranchLabel, best.TotalPointsToDate))
	}
	if worst := r.Summary.WorstBranch; worst != nil {
		sb.WriteString(fmt.Sprintf("Worst frozen team: %s - %d pts\n", worst.BranchLabel, worst.TotalPointsToDate))
	}
	sb.WriteString(fmt.Sprintf("Vs best: %+d\n\n", r.Summary.VsBestDiff))

	t := r.Summary.Transfers
	sb.WriteString("🔁 *Transfers*\n")
	sb.WriteString(fmt.Sprintf("Good: %d (Masterclasses: %d)\n", t.GoodTransfers, t.Masterclasses))
	sb.WriteString(fmt.Sprintf("Bad: %d (Disasterclasses: %d)\n\n", t.BadTransfers, t.Disasterclasses))

	sb.WriteString("©️ *Captaincy*\n")
	sb.WriteString(fmt.Sprintf("Changes: %d, net %+d pts\n\n", r.Summary.CaptainChanges, r.Summary.CaptainDiff))

	sb.WriteString("📈 *Frozen Teams*\n")
	for _, b := range r.Timeline.Branches {
		sb.WriteString(fmt.Sprintf("GW%d: %d (%+d)\n", b.OriginGameweek, b.TotalPointsToDate, b.TotalPointsToDate-r.Timeline.MainTotalPoints))
	}

	return sb.String()
}

func formatTransfers(h *models.ManagerHistory, scores []models.GameweekScore) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔁 *%s: Transfers*\n\n", displayName(h.TeamName, h.ManagerID)))

	count := 0
	for _, gw := range scores {
		if len(gw.TransferEffectiveness) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("*GW%d*\n", gw.Gameweek))
		for _, te := range gw.TransferEffectiveness {
			sb.WriteString(fmt.Sprintf("  • %s ➡️ %s: %d vs %d (%+d) %s\n",
				escape(te.Transfer.ElementOutName),
				escape(te.Transfer.ElementInName),
				te.TransferredInContributed,
				te.TransferredOutHypotheticalContributed,
				te.Diff,
				te.Rating.Label))
			count++
		}
		sb.WriteString("\n")
	}

	if count == 0 {
		sb.WriteString("No transfers made.")
	}

	return sb.String()
}

func formatCaptains(h *models.ManagerHistory, scores []models.GameweekScore) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("©️ *%s: Captain Changes*\n\n", displayName(h.TeamName, h.ManagerID)))

	count := 0
	for _, gw := range scores {
		cc := gw.CaptainChange
		if cc == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("GW%d: %s ➡️ %s: %d vs %d (%+d) %s\n",
			cc.Gameweek,
			escape(cc.PreviousCaptainName),
			escape(cc.NewCaptainName),
			cc.NewCaptainContributed,
			cc.PreviousCaptainHypotheticalContributed,
			cc.Diff,
			cc.Rating.Label))
		count++
	}

	if count == 0 {
		sb.WriteString("Same captain all season.")
	}

	return sb.String()
}

func formatPlayer(p models.PlayerLookup) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* (%s - %s)\n", escape(p.WebName), escape(p.Position), escape(p.TeamShortName)))
	sb.WriteString("━━━━━━━━━━━━━━━━\n")
	sb.WriteString(fmt.Sprintf("£%.1fm, form %s\n", p.Cost, escape(p.Form)))
	sb.WriteString(fmt.Sprintf("Total: %d pts\n", p.TotalPoints))

	if p.LatestGameweek > 0 {
		sb.WriteString(fmt.Sprintf("GW%d: %s\n", p.LatestGameweek, pointsLabel(p.LatestPoints)))
	}
	if p.PreviousGameweek > 0 {
		sb.WriteString(fmt.Sprintf("GW%d: %s\n", p.PreviousGameweek, pointsLabel(p.PreviousPoints)))
	}

	return sb.String()
}

func pointsLabel(points *int) string {
	if points == nil {
		return "--"
	}
	return fmt.Sprintf("%d pts", *points)
}
