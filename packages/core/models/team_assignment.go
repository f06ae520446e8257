package models

import "time"

type TeamAssignment struct {
	ID               uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID         uint       `gorm:"not null;index:idx_team_assignments_player_team_championship,priority:1" json:"player_id" validate:"gte=1"`
	TeamName         string     `gorm:"size:200;not null;index:idx_team_assignments_team_name;index:idx_team_assignments_player_team_championship,priority:2" json:"team_name" validate:"max=200"`
	ChampionshipName string     `gorm:"size:200;not null;index:idx_team_assignments_player_team_championship,priority:3" json:"championship_name" validate:"max=200"`
	JoinedDate       time.Time  `gorm:"not null" json:"joined_date"`
	LeftDate         *time.Time `gorm:"index:idx_team_assignments_left_date" json:"left_date"`
	Audit

	Player *Player `gorm:"foreignKey:PlayerID;references:ID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (TeamAssignment) TableName() string {
	return "team_assignments"
}

// IsActive reports whether the player still belongs to the team. It is never stored.
func (a TeamAssignment) IsActive() bool {
	return a.LeftDate == nil
}

type TeamAssignmentResponse struct {
	TeamAssignment
	IsActive bool `json:"is_active"`
}

func NewTeamAssignmentResponse(a TeamAssignment) TeamAssignmentResponse {
	return TeamAssignmentResponse{TeamAssignment: a, IsActive: a.IsActive()}
}

type CreateTeamAssignmentRequest struct {
	PlayerID         uint    `json:"player_id" binding:"required"`
	TeamName         string  `json:"team_name" binding:"required"`
	ChampionshipName string  `json:"championship_name" binding:"required"`
	JoinedDate       string  `json:"joined_date" binding:"required" example:"2024-09-01"`
	LeftDate         *string `json:"left_date,omitempty" example:"2025-06-30"`
}

type UpdateTeamAssignmentRequest struct {
	TeamName         string  `json:"team_name" binding:"required"`
	ChampionshipName string  `json:"championship_name" binding:"required"`
	JoinedDate       string  `json:"joined_date" binding:"required" example:"2024-09-01"`
	LeftDate         *string `json:"left_date,omitempty" example:"2025-06-30"`
}

type CloseTeamAssignmentRequest struct {
	LeftDate string `json:"left_date" binding:"required" example:"2025-06-30"`
}
