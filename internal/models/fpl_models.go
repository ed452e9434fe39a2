package models

import "sort"

// Wire types for the subset of the Fantasy Premier League API the engine reads.

type BootstrapStatic struct {
	Events       []Event       `json:"events"`
	Teams        []Team        `json:"teams"`
	Elements     []Element     `json:"elements"`
	ElementTypes []ElementType `json:"element_types"`
	TotalPlayers int           `json:"total_players"`
}

// FinishedGameweeks returns the ids of finished events in ascending order.
func (b *BootstrapStatic) FinishedGameweeks() []int {
	var ids []int
	for _, ev := range b.Events {
		if ev.Finished {
			ids = append(ids, ev.ID)
		}
	}
	sort.Ints(ids)
	return ids
}

// PlayerNames indexes web names by player id.
func (b *BootstrapStatic) PlayerNames() map[int]string {
	names := make(map[int]string, len(b.Elements))
	for _, el := range b.Elements {
		names[el.ID] = el.WebName
	}
	return names
}

type Event struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	DeadlineTime string `json:"deadline_time"`
	Finished     bool   `json:"finished"`
	DataChecked  bool   `json:"data_checked"`
	IsPrevious   bool   `json:"is_previous"`
	IsCurrent    bool   `json:"is_current"`
	IsNext       bool   `json:"is_next"`
	AverageScore int    `json:"average_entry_score"`
	HighestScore *int   `json:"highest_score"`
}

type Team struct {
	ID        int    `json:"id"`
	Code      int    `json:"code"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Strength  int    `json:"strength"`
}

type ElementType struct {
	ID                int    `json:"id"`
	SingularName      string `json:"singular_name"`
	SingularNameShort string `json:"singular_name_short"`
}

type Element struct {
	ID            int    `json:"id"`
	Code          int    `json:"code"`
	ElementType   int    `json:"element_type"`
	Team          int    `json:"team"`
	FirstName     string `json:"first_name"`
	SecondName    string `json:"second_name"`
	WebName       string `json:"web_name"`
	NowCost       int    `json:"now_cost"`
	Form          string `json:"form"`
	TotalPoints   int    `json:"total_points"`
	EventPoints   int    `json:"event_points"`
	Status        string `json:"status"`
	SelectedByPct string `json:"selected_by_percent"`
	PointsPerGame string `json:"points_per_game"`
	News          string `json:"news"`
}

type EntryResponse struct {
	ID                   int    `json:"id"`
	Name                 string `json:"name"`
	PlayerFirstName      string `json:"player_first_name"`
	PlayerLastName       string `json:"player_last_name"`
	StartedEvent         int    `json:"started_event"`
	CurrentEvent         int    `json:"current_event"`
	SummaryOverallPoints int    `json:"summary_overall_points"`
	SummaryOverallRank   int    `json:"summary_overall_rank"`
	EnteredEvents        []int  `json:"entered_events"`
}

type PicksResponse struct {
	ActiveChip    *string        `json:"active_chip"`
	AutomaticSubs []AutomaticSub `json:"automatic_subs"`
	EntryHistory  EntryHistory   `json:"entry_history"`
	Picks         []Pick         `json:"picks"`
}

type Pick struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
	ElementType   int  `json:"element_type"`
}

type AutomaticSub struct {
	Entry      int `json:"entry"`
	ElementIn  int `json:"element_in"`
	ElementOut int `json:"element_out"`
	Event      int `json:"event"`
}

type EntryHistory struct {
	Event              int `json:"event"`
	Points             int `json:"points"`
	TotalPoints        int `json:"total_points"`
	Rank               int `json:"rank"`
	OverallRank        int `json:"overall_rank"`
	Bank               int `json:"bank"`
	Value              int `json:"value"`
	EventTransfers     int `json:"event_transfers"`
	EventTransfersCost int `json:"event_transfers_cost"`
	PointsOnBench      int `json:"points_on_bench"`
}

type ElementSummary struct {
	History []ElementHistory `json:"history"`
}

type ElementHistory struct {
	Element      int    `json:"element"`
	Fixture      int    `json:"fixture"`
	OpponentTeam int    `json:"opponent_team"`
	TotalPoints  int    `json:"total_points"`
	WasHome      bool   `json:"was_home"`
	KickoffTime  string `json:"kickoff_time"`
	Round        int    `json:"round"`
	Minutes      int    `json:"minutes"`
	Value        int    `json:"value"`
}
