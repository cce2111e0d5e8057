package models

import (
	"time"

	"gorm.io/datatypes"
)

type Game struct {
	ID          string         `gorm:"primaryKey"` // 6-digit game id
	Status      string         // pending | active | finished
	NumbersJSON datatypes.JSON // drawn numbers in draw order
	WinnerID    string
	WinnerName  string
	EndTime     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
