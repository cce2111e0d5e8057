package models

import (
	"time"

	"gorm.io/datatypes"
)

type Card struct {
	PlayerID  string         `gorm:"primaryKey" json:"player_id"`
	GameID    string         `json:"game_id"`
	Grid      datatypes.JSON `json:"grid"`   // rows of numbers, 0 = blank
	Marked    datatypes.JSON `json:"marked"` // marked numbers
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
