package models

import (
	"time"
)

type Player struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      string    `gorm:"size:450;not null;index:idx_players_user_id" json:"user_id" validate:"max=450"`
	Name        string    `gorm:"size:200;not null;index:idx_players_name" json:"name" validate:"max=200"`
	DateOfBirth time.Time `gorm:"not null;index:idx_players_date_of_birth" json:"date_of_birth"`
	Gender      *string   `gorm:"size:50" json:"gender,omitempty" validate:"omitempty,max=50"`
	PhotoURL    *string   `gorm:"size:500" json:"photo_url,omitempty" validate:"omitempty,max=500"`
	Audit
}

func (Player) TableName() string {
	return "players"
}

// Age returns the player's age in whole years at now. It is never stored.
func (p Player) Age(now time.Time) int {
	if p.DateOfBirth.IsZero() {
		return 0
	}

	dob := p.DateOfBirth.UTC()
	now = now.UTC()

	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

type PlayerResponse struct {
	Player
	Age int `json:"age"`
}

func NewPlayerResponse(p Player, now time.Time) PlayerResponse {
	return PlayerResponse{Player: p, Age: p.Age(now)}
}

type CreatePlayerRequest struct {
	Name        string  `json:"name" binding:"required"`
	DateOfBirth string  `json:"date_of_birth" binding:"required" example:"2014-03-15"`
	Gender      *string `json:"gender,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	// UserID defaults to the authenticated user when empty.
	UserID string `json:"user_id,omitempty"`
}

type UpdatePlayerRequest struct {
	Name        string  `json:"name" binding:"required"`
	DateOfBirth string  `json:"date_of_birth" binding:"required" example:"2014-03-15"`
	Gender      *string `json:"gender,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	UserID      string  `json:"user_id,omitempty"`
}
