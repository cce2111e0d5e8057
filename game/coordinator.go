package game

import "go.uber.org/zap"

// ArchiveFunc persists the outcome of a finished game.
type ArchiveFunc func(gameID string, drawn []int, winnerID, winnerName string) error

// Coordinator turns a winning mark into the terminal game_over event.
// It runs off the request path: the marking client gets its response
// while the announcement proceeds independently, with failures logged
// rather than dropped.
type Coordinator struct {
	games   *Registry
	archive ArchiveFunc
	log     *zap.SugaredLogger
}

func NewCoordinator(games *Registry, archive ArchiveFunc, log *zap.SugaredLogger) *Coordinator {
	return &Coordinator{games: games, archive: archive, log: log}
}

// DeclareWin resolves the winner's identity and finishes the game. A win
// against an already-finished session is silently ignored so stale client
// retries stay idempotent. Returns immediately.
func (c *Coordinator) DeclareWin(gameID, playerID string) {
	go func() {
		s, ok := c.games.Get(gameID)
		if !ok {
			c.log.Warnw("win declared for unknown game", "game_id", gameID, "player_id", playerID)
			return
		}
		name, ok := s.PlayerName(playerID)
		if !ok {
			c.log.Warnw("winner not in session, announcing by id", "game_id", gameID, "player_id", playerID)
			name = playerID
		}
		if !s.Finish(playerID, name) {
			c.log.Debugw("late win ignored, game already finished", "game_id", gameID, "player_id", playerID)
			return
		}
		if c.archive != nil {
			if err := c.archive(gameID, s.Drawn(), playerID, name); err != nil {
				c.log.Errorw("archiving finished game failed", "game_id", gameID, "error", err)
			}
		}
	}()
}
