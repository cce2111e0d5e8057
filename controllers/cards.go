package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Wardmisp/Bingo/game"
)

// GetBingoCard returns a player's card as rows of numbers.
func (a *API) GetBingoCard(c *gin.Context) {
	gameID := c.Param("gameId")
	playerID := c.Param("playerId")

	player, err := a.Store.GetPlayer(playerID)
	if err != nil {
		a.fail(c, err)
		return
	}
	if player.GameID != gameID {
		c.JSON(http.StatusNotFound, gin.H{"error": "player not in this game"})
		return
	}

	card, err := a.Store.GetCard(playerID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": card.Grid()})
}

type markResponse struct {
	Marked bool `json:"marked"`
	Win    bool `json:"win"`
}

// MarkNumber marks a drawn number on a player's card and, on a completed
// row, hands the win to the coordinator. Marking against a finished game
// is a successful no-op so client retries stay idempotent.
func (a *API) MarkNumber(c *gin.Context) {
	playerID := c.Param("playerId")
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "number must be an integer"})
		return
	}

	player, err := a.Store.GetPlayer(playerID)
	if err != nil {
		a.fail(c, err)
		return
	}

	session, ok := a.Games.Get(player.GameID)
	poolMax := a.Cfg.PoolMax
	if ok {
		poolMax = session.PoolMax()
	}
	if number < 1 || number > poolMax {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "number out of range [1," + strconv.Itoa(poolMax) + "]",
		})
		return
	}

	// A stale mark after game over succeeds without doing anything.
	if ok && session.State() == game.StateFinished {
		c.JSON(http.StatusOK, markResponse{})
		return
	}

	card, err := a.Store.GetCard(playerID)
	if err != nil {
		a.fail(c, err)
		return
	}

	marked := card.Mark(number)
	if marked {
		if err := a.Store.SaveCard(playerID, card); err != nil {
			a.fail(c, err)
			return
		}
	}

	win := marked && card.HasWinningRow()
	if win {
		a.Coordinator.DeclareWin(player.GameID, playerID)
	}
	c.JSON(http.StatusOK, markResponse{Marked: marked, Win: win})
}
