package models

import "time"

type Player struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index:idx_game_player_name,unique" json:"name"`
	GameID    string    `gorm:"index:idx_game_player_name,unique" json:"game_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
