package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Wardmisp/Bingo/game"
	"github.com/Wardmisp/Bingo/models"
)

// Gorm persists games, players and cards through the shared gorm
// connection. Card grids travel as JSON columns.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) CreateGame(gameID string) error {
	rec := models.Game{ID: gameID, Status: game.StatePending.String()}
	if err := g.db.Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("game %s: %w", gameID, game.ErrConflict)
		}
		return fmt.Errorf("creating game %s: %w", gameID, err)
	}
	return nil
}

func (g *Gorm) GameIDExists(gameID string) (bool, error) {
	var count int64
	if err := g.db.Model(&models.Game{}).Where("id = ?", gameID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking game %s: %w", gameID, err)
	}
	return count > 0, nil
}

func (g *Gorm) ArchiveGame(gameID string, drawn []int, winnerID, winnerName string) error {
	numbers, err := json.Marshal(drawn)
	if err != nil {
		return fmt.Errorf("encoding drawn numbers: %w", err)
	}
	res := g.db.Model(&models.Game{}).Where("id = ?", gameID).Updates(map[string]any{
		"status":       game.StateFinished.String(),
		"numbers_json": datatypes.JSON(numbers),
		"winner_id":    winnerID,
		"winner_name":  winnerName,
		"end_time":     time.Now(),
	})
	if res.Error != nil {
		return fmt.Errorf("archiving game %s: %w", gameID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("game %s: %w", gameID, game.ErrNotFound)
	}
	return nil
}

func (g *Gorm) CreatePlayer(name, gameID string) (string, error) {
	exists, err := g.GameIDExists(gameID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("game %s: %w", gameID, game.ErrNotFound)
	}

	var count int64
	if err := g.db.Model(&models.Player{}).
		Where("game_id = ? AND name = ?", gameID, name).
		Count(&count).Error; err != nil {
		return "", fmt.Errorf("checking player name: %w", err)
	}
	if count > 0 {
		return "", fmt.Errorf("player %q in game %s: %w", name, gameID, game.ErrConflict)
	}

	player := models.Player{ID: uuid.NewString(), Name: name, GameID: gameID}
	if err := g.db.Create(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", fmt.Errorf("player %q in game %s: %w", name, gameID, game.ErrConflict)
		}
		return "", fmt.Errorf("creating player: %w", err)
	}
	return player.ID, nil
}

func (g *Gorm) FindPlayersByGame(gameID string) ([]Player, error) {
	var recs []models.Player
	if err := g.db.Where("game_id = ?", gameID).Order("created_at").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing players for game %s: %w", gameID, err)
	}
	out := make([]Player, len(recs))
	for i, r := range recs {
		out[i] = Player{ID: r.ID, Name: r.Name, GameID: r.GameID}
	}
	return out, nil
}

func (g *Gorm) GetPlayer(playerID string) (Player, error) {
	var rec models.Player
	if err := g.db.First(&rec, "id = ?", playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Player{}, fmt.Errorf("player %s: %w", playerID, game.ErrNotFound)
		}
		return Player{}, fmt.Errorf("fetching player %s: %w", playerID, err)
	}
	return Player{ID: rec.ID, Name: rec.Name, GameID: rec.GameID}, nil
}

func (g *Gorm) RemovePlayer(gameID, playerID string) error {
	res := g.db.Where("id = ? AND game_id = ?", playerID, gameID).Delete(&models.Player{})
	if res.Error != nil {
		return fmt.Errorf("removing player %s: %w", playerID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("player %s in game %s: %w", playerID, gameID, game.ErrNotFound)
	}
	g.db.Where("player_id = ?", playerID).Delete(&models.Card{})
	return nil
}

func (g *Gorm) GetCard(playerID string) (*game.Card, error) {
	var rec models.Card
	if err := g.db.First(&rec, "player_id = ?", playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("card for player %s: %w", playerID, game.ErrNotFound)
		}
		return nil, fmt.Errorf("fetching card for player %s: %w", playerID, err)
	}

	var grid [][]int
	if err := json.Unmarshal(rec.Grid, &grid); err != nil {
		return nil, fmt.Errorf("decoding card grid: %w", err)
	}
	var marked []int
	if len(rec.Marked) > 0 {
		if err := json.Unmarshal(rec.Marked, &marked); err != nil {
			return nil, fmt.Errorf("decoding marked numbers: %w", err)
		}
	}
	return game.CardFromGrid(grid, marked), nil
}

func (g *Gorm) SaveCard(playerID string, c *game.Card) error {
	grid, err := json.Marshal(c.Grid())
	if err != nil {
		return fmt.Errorf("encoding card grid: %w", err)
	}
	marked, err := json.Marshal(c.MarkedNumbers())
	if err != nil {
		return fmt.Errorf("encoding marked numbers: %w", err)
	}

	var player models.Player
	gameID := ""
	if err := g.db.First(&player, "id = ?", playerID).Error; err == nil {
		gameID = player.GameID
	}

	rec := models.Card{
		PlayerID: playerID,
		GameID:   gameID,
		Grid:     datatypes.JSON(grid),
		Marked:   datatypes.JSON(marked),
	}
	err = g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"grid", "marked", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("saving card for player %s: %w", playerID, err)
	}
	return nil
}
