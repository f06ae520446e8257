package models

import "time"

type PlayerStatistic struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TeamAssignmentID uint      `gorm:"not null;index:idx_player_statistics_team_assignment_id" json:"team_assignment_id" validate:"gte=1"`
	GameDate         time.Time `gorm:"not null;index:idx_player_statistics_game_date" json:"game_date"`
	MinutesPlayed    int       `gorm:"not null" json:"minutes_played" validate:"gte=0"`
	Starter          bool      `gorm:"not null" json:"starter"`
	JerseyNumber     int       `gorm:"not null" json:"jersey_number" validate:"gte=1"`
	Goals            int       `gorm:"not null" json:"goals" validate:"gte=0"`
	Assists          int       `gorm:"not null" json:"assists" validate:"gte=0"`
	Audit

	TeamAssignment *TeamAssignment `gorm:"foreignKey:TeamAssignmentID;references:ID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (PlayerStatistic) TableName() string {
	return "player_statistics"
}

type PlayerStatisticRequest struct {
	TeamAssignmentID uint   `json:"team_assignment_id" binding:"required"`
	GameDate         string `json:"game_date" binding:"required" example:"2025-01-12"`
	MinutesPlayed    int    `json:"minutes_played"`
	Starter          bool   `json:"starter"`
	JerseyNumber     int    `json:"jersey_number"`
	Goals            int    `json:"goals"`
	Assists          int    `json:"assists"`
}
