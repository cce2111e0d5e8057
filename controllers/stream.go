package controllers

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Wardmisp/Bingo/game"
)

// BingoStream is the server-sent-events feed for one game. Each message
// is "event: <name>\ndata: <payload>\n\n" with name bingo_number or
// game_over; game_over is the last event the stream carries.
func (a *API) BingoStream(c *gin.Context) {
	session, err := a.liveSession(c.Param("gameId"))
	if err != nil {
		a.fail(c, err)
		return
	}

	playerID := c.Query("playerId")
	hub := session.Hub()
	sub := hub.Subscribe(playerID)
	defer hub.Unsubscribe(sub)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	a.Log.Debugw("stream opened", "game_id", session.ID, "player_id", playerID)

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, renderEvent(sub.PlayerID, ev))
			return ev.Name != game.EventGameOver
		case <-c.Request.Context().Done():
			return false
		}
	})

	a.Log.Debugw("stream closed", "game_id", session.ID, "player_id", playerID)
}

// renderEvent produces the data payload for one subscriber. The winner
// sees "You won!"; everyone else sees who beat them.
func renderEvent(playerID string, ev game.Event) string {
	switch ev.Name {
	case game.EventBingoNumber:
		return strconv.Itoa(ev.Number)
	case game.EventGameOver:
		if playerID != "" && playerID == ev.WinnerID {
			return "You won!"
		}
		return fmt.Sprintf("Player %s won!", ev.WinnerName)
	}
	return ""
}
