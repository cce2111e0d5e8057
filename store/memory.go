package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Wardmisp/Bingo/game"
)

// Memory is a map-backed Store. It is the zero-config default and the
// backend the tests run against; production deployments use Gorm.
type Memory struct {
	mu      sync.RWMutex
	games   map[string]*gameRecord
	players map[string]Player
	cards   map[string]*game.Card
}

type gameRecord struct {
	finished   bool
	drawn      []int
	winnerID   string
	winnerName string
}

func NewMemory() *Memory {
	return &Memory{
		games:   make(map[string]*gameRecord),
		players: make(map[string]Player),
		cards:   make(map[string]*game.Card),
	}
}

func (m *Memory) CreateGame(gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[gameID]; ok {
		return fmt.Errorf("game %s: %w", gameID, game.ErrConflict)
	}
	m.games[gameID] = &gameRecord{}
	return nil
}

func (m *Memory) GameIDExists(gameID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.games[gameID]
	return ok, nil
}

func (m *Memory) ArchiveGame(gameID string, drawn []int, winnerID, winnerName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.games[gameID]
	if !ok {
		return fmt.Errorf("game %s: %w", gameID, game.ErrNotFound)
	}
	rec.finished = true
	rec.drawn = append([]int(nil), drawn...)
	rec.winnerID = winnerID
	rec.winnerName = winnerName
	return nil
}

func (m *Memory) CreatePlayer(name, gameID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.games[gameID]; !ok {
		return "", fmt.Errorf("game %s: %w", gameID, game.ErrNotFound)
	}
	for _, p := range m.players {
		if p.GameID == gameID && p.Name == name {
			return "", fmt.Errorf("player %q in game %s: %w", name, gameID, game.ErrConflict)
		}
	}

	id := uuid.NewString()
	m.players[id] = Player{ID: id, Name: name, GameID: gameID}
	return id, nil
}

func (m *Memory) FindPlayersByGame(gameID string) ([]Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Player{}
	for _, p := range m.players {
		if p.GameID == gameID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Memory) GetPlayer(playerID string) (Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[playerID]
	if !ok {
		return Player{}, fmt.Errorf("player %s: %w", playerID, game.ErrNotFound)
	}
	return p, nil
}

func (m *Memory) RemovePlayer(gameID, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[playerID]
	if !ok || p.GameID != gameID {
		return fmt.Errorf("player %s in game %s: %w", playerID, gameID, game.ErrNotFound)
	}
	delete(m.players, playerID)
	delete(m.cards, playerID)
	return nil
}

func (m *Memory) GetCard(playerID string) (*game.Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.cards[playerID]
	if !ok {
		return nil, fmt.Errorf("card for player %s: %w", playerID, game.ErrNotFound)
	}
	return game.CardFromGrid(c.Grid(), c.MarkedNumbers()), nil
}

func (m *Memory) SaveCard(playerID string, c *game.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards[playerID] = game.CardFromGrid(c.Grid(), c.MarkedNumbers())
	return nil
}
