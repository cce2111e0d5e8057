package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Wardmisp/Bingo/config"
	"github.com/Wardmisp/Bingo/game"
	"github.com/Wardmisp/Bingo/store"
)

// API holds the collaborators the handlers need. Built once in main and
// handed to the route table; there is no package-level session state.
type API struct {
	Store       store.Store
	Games       *game.Registry
	Coordinator *game.Coordinator
	Cfg         config.Config
	Log         *zap.SugaredLogger
}

func NewAPI(st store.Store, games *game.Registry, coord *game.Coordinator, cfg config.Config, log *zap.SugaredLogger) *API {
	return &API{Store: st, Games: games, Coordinator: coord, Cfg: cfg, Log: log}
}

// registrationResponse is the shape create-game and join-game return.
type registrationResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	PlayerID string `json:"playerId,omitempty"`
	GameID   string `json:"gameId,omitempty"`
}

// fail maps the error taxonomy onto HTTP statuses. Anything outside the
// taxonomy is a logged internal failure with a generic body.
func (a *API) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrAlreadyFinished):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		a.Log.Errorw("internal error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
