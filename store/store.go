// Package store is the persistence collaborator behind the game engine.
// The engine never sees a concrete backend; anything that can hold
// players, cards and game records satisfies Store.
package store

import "github.com/Wardmisp/Bingo/game"

// Player is a registered participant record.
type Player struct {
	ID     string `json:"playerId"`
	Name   string `json:"name"`
	GameID string `json:"gameId"`
}

// Store is what the HTTP layer and the engine need from persistence.
// Lookups that miss return game.ErrNotFound; duplicate registrations
// return game.ErrConflict with no partial writes.
type Store interface {
	// CreateGame records a new game id. Duplicate ids are a conflict.
	CreateGame(gameID string) error
	// GameIDExists reports whether a game id is already taken.
	GameIDExists(gameID string) (bool, error)
	// ArchiveGame marks a game finished, keeping the drawn numbers and
	// the winner for later inspection.
	ArchiveGame(gameID string, drawn []int, winnerID, winnerName string) error

	// CreatePlayer registers a player in a game and returns the new
	// player id. Display names are unique per game.
	CreatePlayer(name, gameID string) (string, error)
	FindPlayersByGame(gameID string) ([]Player, error)
	GetPlayer(playerID string) (Player, error)
	RemovePlayer(gameID, playerID string) error

	// GetCard and SaveCard round-trip the one card a player owns.
	GetCard(playerID string) (*game.Card, error)
	SaveCard(playerID string, c *game.Card) error
}
