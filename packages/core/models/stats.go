package models

// StatisticAggregates summarises a set of PlayerStatistic rows.
type StatisticAggregates struct {
	PlayerID         uint    `json:"player_id"`
	TeamAssignmentID *uint   `json:"team_assignment_id,omitempty"`
	Games            int64   `json:"games"`
	GamesStarted     int64   `json:"games_started"`
	TotalMinutes     int64   `json:"total_minutes"`
	TotalGoals       int64   `json:"total_goals"`
	TotalAssists     int64   `json:"total_assists"`
	AverageMinutes   float64 `json:"average_minutes"`
	AverageGoals     float64 `json:"average_goals"`
	AverageAssists   float64 `json:"average_assists"`
}

// ComputeAverages fills the per-game averages from the totals.
// An empty set leaves every average at zero.
func (s *StatisticAggregates) ComputeAverages() {
	if s.Games == 0 {
		s.AverageMinutes = 0
		s.AverageGoals = 0
		s.AverageAssists = 0
		return
	}

	games := float64(s.Games)
	s.AverageMinutes = float64(s.TotalMinutes) / games
	s.AverageGoals = float64(s.TotalGoals) / games
	s.AverageAssists = float64(s.TotalAssists) / games
}
