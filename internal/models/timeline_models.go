package models

import "time"

// Selection is one player's role within a single gameweek's squad.
type Selection struct {
	PlayerID      int    `json:"playerId"`
	PlayerName    string `json:"playerName"`
	Gameweek      int    `json:"gameweekNumber"`
	Position      int    `json:"position"`
	Multiplier    int    `json:"multiplier"`
	IsCaptain     bool   `json:"isCaptain"`
	IsViceCaptain bool   `json:"isViceCaptain"`
}

type Transfer struct {
	Gameweek       int    `json:"gameweek"`
	ElementIn      int    `json:"elementIn"`
	ElementInName  string `json:"elementInName"`
	ElementOut     int    `json:"elementOut"`
	ElementOutName string `json:"elementOutName"`
}

// GameweekSquad is a manager's squad as picked for one finished gameweek,
// with the transfers that produced it from the previous gameweek.
type GameweekSquad struct {
	Gameweek  int         `json:"gameweek"`
	Players   []Selection `json:"players"`
	Transfers []Transfer  `json:"transfers"`
}

// Captain returns the captain's selection, or false when the squad has none.
func (s GameweekSquad) Captain() (Selection, bool) {
	for _, p := range s.Players {
		if p.IsCaptain {
			return p, true
		}
	}
	return Selection{}, false
}

// Contains reports whether playerID is part of the squad.
func (s GameweekSquad) Contains(playerID int) bool {
	for _, p := range s.Players {
		if p.PlayerID == playerID {
			return true
		}
	}
	return false
}

type ManagerHistory struct {
	ManagerID    int             `json:"managerId"`
	TeamName     string          `json:"teamName"`
	ManagerName  string          `json:"managerName"`
	StartedEvent int             `json:"startedEvent"`
	Squads       []GameweekSquad `json:"squads"`
}

type PlayerScore struct {
	PlayerID          int    `json:"playerId"`
	PlayerName        string `json:"playerName"`
	GameweekPoints    int    `json:"gameweekPoints"`
	Multiplier        int    `json:"multiplier"`
	ContributedPoints int    `json:"contributedPoints"`
}

type RatingBand string

const (
	RatingDisasterclass RatingBand = "disasterclass"
	RatingBad           RatingBand = "bad"
	RatingNoImpact      RatingBand = "no-impact"
	RatingGood          RatingBand = "good"
	RatingMasterclass   RatingBand = "masterclass"
)

type Rating struct {
	Band  RatingBand `json:"band"`
	Label string     `json:"label"`
}

type TransferEffectiveness struct {
	Transfer                              Transfer `json:"transfer"`
	TransferredInPoints                   int      `json:"transferredInPoints"`
	TransferredOutPoints                  int      `json:"transferredOutPoints"`
	TransferredInContributed              int      `json:"transferredInContributed"`
	TransferredOutHypotheticalContributed int      `json:"transferredOutHypotheticalContributed"`
	Diff                                  int      `json:"diff"`
	IsPositive                            bool     `json:"isPositive"`
	Rating                                Rating   `json:"rating"`
}

type CaptainChangeEffectiveness struct {
	Gameweek                               int    `json:"gameweek"`
	PreviousCaptainID                      int    `json:"previousCaptainId"`
	PreviousCaptainName                    string `json:"previousCaptainName"`
	NewCaptainID                           int    `json:"newCaptainId"`
	NewCaptainName                         string `json:"newCaptainName"`
	NewCaptainPoints                       int    `json:"newCaptainPoints"`
	PreviousCaptainPoints                  int    `json:"previousCaptainPoints"`
	NewCaptainContributed                  int    `json:"newCaptainContributed"`
	PreviousCaptainHypotheticalContributed int    `json:"previousCaptainHypotheticalContributed"`
	Diff                                   int    `json:"diff"`
	IsPositive                             bool   `json:"isPositive"`
	Rating                                 Rating `json:"rating"`
}

// GameweekScore is the aggregated record for one gameweek.
type GameweekScore struct {
	GameweekSquad
	TotalScore            int                         `json:"totalScore"`
	PlayerScores          []PlayerScore               `json:"playerScores"`
	TransferEffectiveness []TransferEffectiveness     `json:"transferEffectiveness"`
	CaptainChange         *CaptainChangeEffectiveness `json:"captainChange"`
}

type TimelineBranchScore struct {
	Gameweek        int `json:"gameweek"`
	GameweekScore   int `json:"gameweekScore"`
	CumulativeScore int `json:"cumulativeScore"`
}

type TimelineBranch struct {
	BranchID          int                   `json:"branchId"`
	OriginGameweek    int                   `json:"originGameweek"`
	BranchLabel       string                `json:"branchLabel"`
	Scores            []TimelineBranchScore `json:"scores"`
	TotalPointsToDate int                   `json:"totalPointsToDate"`
}

type AlternateTimeline struct {
	MainBranch      []TimelineBranchScore `json:"mainBranch"`
	MainTotalPoints int                   `json:"mainTotalPoints"`
	Branches        []TimelineBranch      `json:"branches"`
}

type TransferStats struct {
	GoodTransfers   int `json:"goodTransfers"`
	Masterclasses   int `json:"masterclasses"`
	BadTransfers    int `json:"badTransfers"`
	Disasterclasses int `json:"disasterclasses"`
}

type TimelineSummary struct {
	Gameweeks      int             `json:"gameweeks"`
	Transfers      TransferStats   `json:"transfers"`
	CaptainChanges int             `json:"captainChanges"`
	CaptainDiff    int             `json:"captainDiff"`
	BestBranch     *TimelineBranch `json:"bestBranch"`
	WorstBranch    *TimelineBranch `json:"worstBranch"`
	VsBestDiff     int             `json:"vsBestDiff"`
	GeneratedAt    time.Time       `json:"generatedAt"`
}

// TimelineReport bundles everything computed for one manager in one request.
type TimelineReport struct {
	ManagerID   int               `json:"managerId"`
	TeamName    string            `json:"teamName"`
	ManagerName string            `json:"managerName"`
	History     []GameweekScore   `json:"history"`
	Timeline    AlternateTimeline `json:"timeline"`
	Summary     TimelineSummary   `json:"summary"`
}

type PlayerLookup struct {
	PlayerID         int     `json:"playerId"`
	WebName          string  `json:"webName"`
	FullName         string  `json:"fullName"`
	TeamShortName    string  `json:"teamShortName"`
	Position         string  `json:"position"`
	Cost             float64 `json:"cost"`
	Form             string  `json:"form"`
	TotalPoints      int     `json:"totalPoints"`
	LatestGameweek   int     `json:"latestGameweek"`
	LatestPoints     *int    `json:"latestPoints"`
	PreviousGameweek int     `json:"previousGameweek"`
	PreviousPoints   *int    `json:"previousPoints"`
}
