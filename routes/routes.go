package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Wardmisp/Bingo/controllers"
)

func SetupRoutes(r *gin.Engine, api *controllers.API) {
	// ----------------------
	// Registration routes
	// ----------------------
	r.POST("/create-game", api.CreateGame) // New game + first player
	r.POST("/join-game", api.JoinGame)     // Join an existing game

	// ----------------------
	// Player routes
	// ----------------------
	r.GET("/players/:gameId", api.ListPlayers)
	r.DELETE("/players/:gameId/:playerId", api.RemovePlayer)

	// ----------------------
	// Card routes
	// ----------------------
	r.GET("/player-card/:gameId/:playerId", api.GetBingoCard)
	r.POST("/player-card/:playerId/:number", api.MarkNumber)

	// ----------------------
	// Session control
	// ----------------------
	r.POST("/games/:gameId/start", api.StartGame)
	r.POST("/games/:gameId/stop", api.StopGame)

	// ----------------------
	// Live streams
	// ----------------------
	r.GET("/bingo-stream/:gameId", api.BingoStream) // SSE
	r.GET("/ws/:gameId", api.GameSocket)            // WebSocket mirror
}
