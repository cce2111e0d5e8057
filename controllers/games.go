package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wardmisp/Bingo/game"
)

type playerRegistration struct {
	PlayerName string `json:"playerName" binding:"required"`
	GameID     string `json:"gameId"`
}

// CreateGame starts a fresh game session and registers its first player.
func (a *API) CreateGame(c *gin.Context) {
	var req playerRegistration
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := a.Games.Create()
	if err != nil {
		a.fail(c, err)
		return
	}
	if err := a.Store.CreateGame(session.ID); err != nil {
		a.Games.Remove(session.ID)
		a.fail(c, err)
		return
	}

	playerID, err := a.register(session, req.PlayerName)
	if err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, registrationResponse{
		Status:   "success",
		Message:  fmt.Sprintf("game %s created", session.ID),
		PlayerID: playerID,
		GameID:   session.ID,
	})
}

// JoinGame adds a player to an existing game. Duplicate display names in
// the same game are rejected before anything mutates.
func (a *API) JoinGame(c *gin.Context) {
	var req playerRegistration
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.GameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gameId is required"})
		return
	}

	session, err := a.liveSession(req.GameID)
	if err != nil {
		a.fail(c, err)
		return
	}

	playerID, err := a.register(session, req.PlayerName)
	if err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, registrationResponse{
		Status:   "success",
		Message:  fmt.Sprintf("joined game %s", session.ID),
		PlayerID: playerID,
		GameID:   session.ID,
	})
}

// ListPlayers returns everyone registered in a game.
func (a *API) ListPlayers(c *gin.Context) {
	gameID := c.Param("gameId")
	exists, err := a.Store.GameIDExists(gameID)
	if err != nil {
		a.fail(c, err)
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	players, err := a.Store.FindPlayersByGame(gameID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, players)
}

// RemovePlayer takes a player out of a game and releases their card.
func (a *API) RemovePlayer(c *gin.Context) {
	gameID := c.Param("gameId")
	playerID := c.Param("playerId")

	if err := a.Store.RemovePlayer(gameID, playerID); err != nil {
		a.fail(c, err)
		return
	}
	if session, ok := a.Games.Get(gameID); ok {
		session.RemovePlayer(playerID)
	}

	c.JSON(http.StatusOK, registrationResponse{
		Status:  "success",
		Message: fmt.Sprintf("player removed from game %s", gameID),
	})
}

// StartGame launches the draw loop. Idempotent: a second start reports
// started=false and changes nothing.
func (a *API) StartGame(c *gin.Context) {
	session, err := a.liveSession(c.Param("gameId"))
	if err != nil {
		a.fail(c, err)
		return
	}

	started := session.Start()
	msg := "draw loop started"
	if !started {
		msg = "already running"
		if session.State() == game.StateFinished {
			msg = "game finished"
		}
	}
	c.JSON(http.StatusOK, gin.H{"started": started, "status": session.State().String(), "message": msg})
}

// StopGame halts the draw loop. Idempotent, also for unknown sessions.
func (a *API) StopGame(c *gin.Context) {
	if session, ok := a.Games.Get(c.Param("gameId")); ok {
		session.Stop()
		c.JSON(http.StatusOK, gin.H{"status": session.State().String()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": game.StateFinished.String()})
}

// register persists a player, deals their card, and adds them to the
// live session. Storage is the authority on name uniqueness.
func (a *API) register(session *game.Session, name string) (string, error) {
	playerID, err := a.Store.CreatePlayer(name, session.ID)
	if err != nil {
		return "", err
	}
	if err := session.AddPlayer(playerID, name); err != nil {
		_ = a.Store.RemovePlayer(session.ID, playerID)
		return "", err
	}

	card := game.NewCard(a.Cfg.CardRows, a.Cfg.CardCols, session.PoolMax())
	if err := a.Store.SaveCard(playerID, card); err != nil {
		session.RemovePlayer(playerID)
		_ = a.Store.RemovePlayer(session.ID, playerID)
		return "", err
	}
	return playerID, nil
}

// liveSession resolves a game id to its in-memory session, recreating
// one for a persisted game that has none (e.g. after a restart).
func (a *API) liveSession(gameID string) (*game.Session, error) {
	if session, ok := a.Games.Get(gameID); ok {
		return session, nil
	}
	exists, err := a.Store.GameIDExists(gameID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("game %s: %w", gameID, game.ErrNotFound)
	}
	return a.Games.GetOrCreate(gameID), nil
}
