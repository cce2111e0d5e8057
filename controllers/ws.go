package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Wardmisp/Bingo/game"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsFrame is what goes over the websocket mirror of the event stream.
type wsFrame struct {
	Event  string `json:"event"`
	Number int    `json:"number,omitempty"`
	Data   string `json:"data,omitempty"`
}

type wsClient struct {
	conn *websocket.Conn
	hub  *game.Hub
	sub  *game.Subscriber
	log  *zap.SugaredLogger
}

// GameSocket serves the same events as the SSE stream over a websocket,
// for clients that already speak it.
func (a *API) GameSocket(c *gin.Context) {
	session, err := a.liveSession(c.Param("gameId"))
	if err != nil {
		a.fail(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		a.Log.Errorw("websocket upgrade failed", "game_id", session.ID, "error", err)
		return
	}

	hub := session.Hub()
	client := &wsClient{
		conn: conn,
		hub:  hub,
		sub:  hub.Subscribe(c.Query("playerId")),
		log:  a.Log,
	}

	go client.writePump()
	go client.readPump()
}

// writePump forwards hub events to the connection until the stream ends.
// game_over is terminal; the connection closes after it.
func (c *wsClient) writePump() {
	defer c.conn.Close()

	for ev := range c.sub.Events() {
		frame := wsFrame{
			Event:  ev.Name,
			Number: ev.Number,
			Data:   renderEvent(c.sub.PlayerID, ev),
		}
		if err := c.conn.WriteJSON(frame); err != nil {
			c.log.Debugw("websocket write failed", "error", err)
			return
		}
		if ev.Name == game.EventGameOver {
			return
		}
	}
}

// readPump only watches for the peer going away; the stream is one-way.
func (c *wsClient) readPump() {
	defer func() {
		c.hub.Unsubscribe(c.sub)
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Debugw("websocket read ended", "error", err)
			}
			return
		}
	}
}
