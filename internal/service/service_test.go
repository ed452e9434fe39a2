package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/omarshaarawi/tempad/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const managerID = 1234

// squadFor builds a 15-man squad: lead in slot 1, players 1..10 starting and
// 11..14 on the bench. captain is one of 1 or 2.
func squadFor(lead, captain int) *models.PicksResponse {
	picks := []pick{{id: lead, multiplier: 1}}
	for id := 1; id <= 14; id++ {
		p := pick{id: id, multiplier: 1}
		if id > 10 {
			p.multiplier = 0
		}
		if id == captain {
			p.multiplier = 2
			p.captain = true
		}
		picks = append(picks, p)
	}
	return buildPicks(picks...)
}

// scenarioGateway: three finished gameweeks, player 100 swapped for 200 in
// gameweek 2 and the armband moved from player 1 to player 2.
func scenarioGateway() *fakeGateway {
	f := newFakeGateway(3, 38)
	f.entries[managerID] = &models.EntryResponse{ID: managerID, Name: "Tempad FC", PlayerFirstName: "Ada", PlayerLastName: "Lovelace", StartedEvent: 1}
	f.addPlayer(100, "Old")
	f.addPlayer(200, "New")
	f.addPlayer(1, "CaptainOne")
	f.addPlayer(2, "CaptainTwo")

	f.picks[1] = squadFor(100, 1)
	f.picks[2] = squadFor(200, 2)
	f.picks[3] = squadFor(200, 2)

	for round, pts := range map[int]int{1: 5, 2: 2, 3: 4} {
		f.setPoints(100, round, pts)
	}
	for round, pts := range map[int]int{1: 9, 2: 8, 3: 1} {
		f.setPoints(200, round, pts)
	}
	for round, pts := range map[int]int{1: 6, 2: 3, 3: 2} {
		f.setPoints(1, round, pts)
	}
	for round, pts := range map[int]int{1: 2, 2: 7, 3: 10} {
		f.setPoints(2, round, pts)
	}
	for id := 3; id <= 14; id++ {
		for round := 1; round <= 3; round++ {
			f.setPoints(id, round, 1)
		}
	}
	return f
}

func TestBuildHistory(t *testing.T) {
	f := scenarioGateway()
	svc := NewTimelineService(f, nil)

	history, err := svc.BuildHistory(context.Background(), managerID)
	require.NoError(t, err)

	assert.Equal(t, "Tempad FC", history.TeamName)
	assert.Equal(t, "Ada Lovelace", history.ManagerName)
	require.Len(t, history.Squads, 3)

	for i, squad := range history.Squads {
		assert.Equal(t, i+1, squad.Gameweek)
		assert.Len(t, squad.Players, 15)
	}

	assert.Empty(t, history.Squads[0].Transfers)
	require.Len(t, history.Squads[1].Transfers, 1)
	assert.Equal(t, models.Transfer{Gameweek: 2, ElementIn: 200, ElementInName: "New", ElementOut: 100, ElementOutName: "Old"}, history.Squads[1].Transfers[0])
	assert.Empty(t, history.Squads[2].Transfers)

	assert.Equal(t, "Unknown Player", history.Squads[0].Players[5].PlayerName)
}

func TestBuildHistory_StartsAtStartedEvent(t *testing.T) {
	f := scenarioGateway()
	f.entries[managerID].StartedEvent = 2
	delete(f.picks, 1)

	history, err := NewTimelineService(f, nil).BuildHistory(context.Background(), managerID)
	require.NoError(t, err)

	require.Len(t, history.Squads, 2)
	assert.Equal(t, 2, history.Squads[0].Gameweek)
	assert.Empty(t, history.Squads[0].Transfers, "first tracked gameweek is a baseline")
}

func TestBuildHistory_NoFinishedGameweeks(t *testing.T) {
	f := scenarioGateway()
	f.entries[managerID].StartedEvent = 4

	history, err := NewTimelineService(f, nil).BuildHistory(context.Background(), managerID)
	require.NoError(t, err)
	assert.NotNil(t, history.Squads)
	assert.Empty(t, history.Squads)
}

func TestBuildHistory_FatalFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *fakeGateway)
		wantErr error
	}{
		{
			name:    "unknown manager",
			mutate:  func(f *fakeGateway) { delete(f.entries, managerID) },
			wantErr: errNotFound,
		},
		{
			name:    "reference data down",
			mutate:  func(f *fakeGateway) { f.bootstrapErr = errBoom },
			wantErr: errBoom,
		},
		{
			name:    "picks fetch fails mid-season",
			mutate:  func(f *fakeGateway) { f.picksErr[2] = errBoom },
			wantErr: errBoom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := scenarioGateway()
			tt.mutate(f)

			history, err := NewTimelineService(f, nil).BuildHistory(context.Background(), managerID)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, history, "no partial history")
		})
	}
}

var errBoom = errors.New("boom")

func TestReport_EndToEnd(t *testing.T) {
	f := scenarioGateway()
	svc := NewTimelineService(f, nil)

	report, err := svc.Report(context.Background(), managerID)
	require.NoError(t, err)

	history := report.History
	require.Len(t, history, 3)
	assert.Equal(t, 27, history[0].TotalScore)
	assert.Equal(t, 33, history[1].TotalScore)
	assert.Equal(t, 31, history[2].TotalScore)

	require.Len(t, history[1].TransferEffectiveness, 1)
	te := history[1].TransferEffectiveness[0]
	assert.Equal(t, 8, te.TransferredInPoints)
	assert.Equal(t, 2, te.TransferredOutPoints)
	assert.Equal(t, 6, te.Diff)
	assert.True(t, te.IsPositive)
	assert.Equal(t, models.RatingGood, te.Rating.Band)

	assert.Nil(t, history[0].CaptainChange)
	require.NotNil(t, history[1].CaptainChange)
	cc := history[1].CaptainChange
	assert.Equal(t, 1, cc.PreviousCaptainID)
	assert.Equal(t, 2, cc.NewCaptainID)
	assert.Equal(t, 14, cc.NewCaptainContributed)
	assert.Equal(t, 6, cc.PreviousCaptainHypotheticalContributed)
	assert.Equal(t, 8, cc.Diff)
	assert.Nil(t, history[2].CaptainChange)

	tl := report.Timeline
	assert.Equal(t, []models.TimelineBranchScore{
		{Gameweek: 1, GameweekScore: 27, CumulativeScore: 27},
		{Gameweek: 2, GameweekScore: 33, CumulativeScore: 60},
		{Gameweek: 3, GameweekScore: 31, CumulativeScore: 91},
	}, tl.MainBranch)
	assert.Equal(t, 91, tl.MainTotalPoints)

	require.Len(t, tl.Branches, 3)
	gw1 := tl.Branches[0]
	assert.Equal(t, "GW1 Team (Frozen)", gw1.BranchLabel)
	// player 100 scores his own 2 points in gameweek 2, not player 200's 8
	assert.Equal(t, []models.TimelineBranchScore{
		{Gameweek: 1, GameweekScore: 27, CumulativeScore: 27},
		{Gameweek: 2, GameweekScore: 23, CumulativeScore: 50},
		{Gameweek: 3, GameweekScore: 26, CumulativeScore: 76},
	}, gw1.Scores)
	assert.Equal(t, 76, gw1.TotalPointsToDate)
	assert.Equal(t, 91, tl.Branches[1].TotalPointsToDate)
	assert.Equal(t, 91, tl.Branches[2].TotalPointsToDate)

	s := report.Summary
	assert.Equal(t, 3, s.Gameweeks)
	assert.Equal(t, models.TransferStats{GoodTransfers: 1}, s.Transfers)
	assert.Equal(t, 1, s.CaptainChanges)
	assert.Equal(t, 8, s.CaptainDiff)
	require.NotNil(t, s.BestBranch)
	assert.Equal(t, 1, s.BestBranch.BranchID, "ties keep the earliest branch")
	assert.Equal(t, 0, s.WorstBranch.BranchID)
	assert.Equal(t, 0, s.VsBestDiff)

	// 16 distinct players, each fetched once across aggregation and every branch
	assert.Equal(t, 16, f.totalSummaryCalls())
}

func TestReport_BranchInvariants(t *testing.T) {
	report, err := NewTimelineService(scenarioGateway(), nil).Report(context.Background(), managerID)
	require.NoError(t, err)

	n := len(report.History)
	require.Len(t, report.Timeline.Branches, n)
	for i, b := range report.Timeline.Branches {
		require.Len(t, b.Scores, n)
		assert.Equal(t, i, b.BranchID)
		for k := 0; k <= i; k++ {
			assert.Equal(t, report.Timeline.MainBranch[k].CumulativeScore, b.Scores[k].CumulativeScore,
				"branch %d diverges before its origin at index %d", i, k)
		}
		assert.Equal(t, b.Scores[n-1].CumulativeScore, b.TotalPointsToDate)
	}
}

func TestReport_CaptainTransferredOut(t *testing.T) {
	f := scenarioGateway()
	// gameweek 1 captain is player 100, who is sold before gameweek 2
	gw1 := squadFor(100, 0)
	gw1.Picks[0].IsCaptain = true
	gw1.Picks[0].Multiplier = 2
	f.picks[1] = gw1

	report, err := NewTimelineService(f, nil).Report(context.Background(), managerID)
	require.NoError(t, err)

	cc := report.History[1].CaptainChange
	require.NotNil(t, cc)
	assert.Equal(t, 100, cc.PreviousCaptainID)
	assert.Equal(t, 2, cc.PreviousCaptainPoints, "fetched from the sold player's own history")
	assert.Equal(t, 4, cc.PreviousCaptainHypotheticalContributed)
	assert.Equal(t, 10, cc.Diff)
	assert.Equal(t, models.RatingMasterclass, cc.Rating.Band)
}

func TestReport_PlayerHistoryFailureIsZero(t *testing.T) {
	f := scenarioGateway()
	f.failing[200] = true

	report, err := NewTimelineService(f, nil).Report(context.Background(), managerID)
	require.NoError(t, err)

	assert.Equal(t, 33-8, report.History[1].TotalScore)
	te := report.History[1].TransferEffectiveness[0]
	assert.Equal(t, -2, te.Diff)
	assert.False(t, te.IsPositive)
	assert.Equal(t, models.RatingBad, te.Rating.Band)
	assert.Equal(t, 1, f.summaryCalls[200])
}

func TestReport_Empty(t *testing.T) {
	f := scenarioGateway()
	f.entries[managerID].StartedEvent = 10

	report, err := NewTimelineService(f, nil).Report(context.Background(), managerID)
	require.NoError(t, err)

	assert.Empty(t, report.History)
	assert.Empty(t, report.Timeline.MainBranch)
	assert.Empty(t, report.Timeline.Branches)
	assert.Zero(t, report.Timeline.MainTotalPoints)
	assert.Nil(t, report.Summary.BestBranch)
}

func TestReport_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTimelineService(scenarioGateway(), nil).Report(ctx, managerID)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulateTimelines_MatchesReport(t *testing.T) {
	svc := NewTimelineService(scenarioGateway(), nil)

	_, scores, err := svc.ScoreHistory(context.Background(), managerID)
	require.NoError(t, err)

	timeline, err := svc.SimulateTimelines(context.Background(), scores)
	require.NoError(t, err)

	report, err := svc.Report(context.Background(), managerID)
	require.NoError(t, err)
	assert.Equal(t, report.Timeline, timeline)
}

func TestReport_PlayerDeadlineIsFatal(t *testing.T) {
	f := scenarioGateway()
	f.playerErrs[5] = fmt.Errorf("waiting for rate limiter: %w", context.DeadlineExceeded)

	report, err := NewTimelineService(f, nil).Report(context.Background(), managerID)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, report, "a deadline is not a zero-point player")
}
