package game

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Taxonomy shared by the engine and its collaborators.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrAlreadyFinished = errors.New("game already finished")
)

// State is a session's lifecycle phase. Transitions only move forward:
// Pending -> Active -> Finished.
type State int32

const (
	StatePending State = iota
	StateActive
	StateFinished
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateActive:
		return "active"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Winner records who ended the game.
type Winner struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

// DefaultDrawInterval is the pause between announced numbers.
const DefaultDrawInterval = 7 * time.Second

// Session is one running bingo round: its draw pool, its lifecycle flag,
// the players that joined, and the hub feeding its live subscribers.
// The mutex guards lifecycle and draw state only; it is never held across
// I/O or event delivery.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	state    State
	players  map[string]string // player id -> display name
	pool     *DrawPool
	drawn    []int
	interval time.Duration
	winner   *Winner
	finished time.Time
	cancel   chan struct{}
	done     chan struct{}

	hub *Hub
	log *zap.SugaredLogger
}

func NewSession(id string, poolMax int, interval time.Duration, log *zap.SugaredLogger) *Session {
	if interval <= 0 {
		interval = DefaultDrawInterval
	}
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		players:   make(map[string]string),
		pool:      NewDrawPool(poolMax),
		interval:  interval,
		hub:       NewHub(log),
		log:       log,
	}
}

// Hub exposes the session's broadcaster to the connection layer.
func (s *Session) Hub() *Hub {
	return s.hub
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Winner returns the winner record, or nil while the game is running.
func (s *Session) Winner() *Winner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.winner
}

// Drawn returns the already-announced numbers in draw order.
func (s *Session) Drawn() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.drawn...)
}

// PoolMax returns the upper bound of this session's number range.
func (s *Session) PoolMax() int {
	return s.pool.Max()
}

// AddPlayer records a player as part of this session. Display names are
// unique within a session; a duplicate is rejected before any state
// changes. Joining a finished session fails with ErrAlreadyFinished.
func (s *Session) AddPlayer(playerID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateFinished {
		return ErrAlreadyFinished
	}
	for _, existing := range s.players {
		if existing == name {
			return ErrConflict
		}
	}
	s.players[playerID] = name
	return nil
}

// RemovePlayer forgets a player. Unknown ids are a no-op.
func (s *Session) RemovePlayer(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, playerID)
}

// HasPlayer reports whether playerID joined this session.
func (s *Session) HasPlayer(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.players[playerID]
	return ok
}

// PlayerName resolves a joined player's display name.
func (s *Session) PlayerName(playerID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.players[playerID]
	return name, ok
}

// PlayerCount reports how many players joined.
func (s *Session) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}

// Start launches the draw loop. It reports whether a new loop was
// started: calling it on an Active session is a no-op returning false,
// never a second loop. A Finished session cannot be restarted.
func (s *Session) Start() bool {
	s.mu.Lock()
	if s.state != StatePending {
		s.mu.Unlock()
		return false
	}
	s.state = StateActive
	s.cancel = make(chan struct{})
	s.done = make(chan struct{})
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	go s.drawLoop(cancel, done)
	s.log.Infow("draw loop started", "game_id", s.ID, "interval", s.interval)
	return true
}

// Stop ends the session without a winner. Idempotent; the running loop
// exits within one draw interval. No game_over event is published for an
// explicit stop.
func (s *Session) Stop() {
	if s.transitionFinished(nil) {
		s.log.Infow("session stopped", "game_id", s.ID)
	}
}

// Finish is the game-over path: flip to Finished, halt the draw loop,
// then publish exactly one game_over event. It reports whether this call
// won the transition; a second, late win claim is a no-op. The ordering
// (flag, then loop stop, then publish) guarantees game_over is the last
// event subscribers receive, modulo a draw already in flight.
func (s *Session) Finish(winnerID, winnerName string) bool {
	if !s.transitionFinished(&Winner{PlayerID: winnerID, Name: winnerName}) {
		return false
	}
	s.hub.Publish(Event{
		Name:       EventGameOver,
		WinnerID:   winnerID,
		WinnerName: winnerName,
	})
	s.log.Infow("game over", "game_id", s.ID, "winner_id", winnerID, "winner", winnerName)
	return true
}

// transitionFinished performs the single forward transition to Finished.
// Exactly one caller wins it, and only that caller closes the cancel
// channel.
func (s *Session) transitionFinished(w *Winner) bool {
	s.mu.Lock()
	if s.state == StateFinished {
		s.mu.Unlock()
		return false
	}
	s.state = StateFinished
	s.finished = time.Now()
	s.winner = w
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		close(cancel)
	}
	return true
}

// FinishedAt returns when the session ended, zero while running.
func (s *Session) FinishedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// Wait blocks until the draw loop has exited. Returns immediately if no
// loop was ever started.
func (s *Session) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// teardown releases everything the session holds: loop, then hub.
func (s *Session) teardown() {
	s.Stop()
	s.Wait()
	s.hub.Close()
}

func (s *Session) drawLoop(cancel <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		select {
		case <-cancel:
			return
		case <-time.After(s.interval):
		}

		s.mu.Lock()
		if s.state != StateActive {
			s.mu.Unlock()
			return
		}
		n, err := s.pool.Draw()
		if err != nil {
			// Exhaustion is recovered internally: reshuffle a full
			// range and keep announcing until a win or a stop.
			s.pool.Reset()
			n, err = s.pool.Draw()
			if err != nil {
				s.mu.Unlock()
				return
			}
		}
		s.drawn = append(s.drawn, n)
		s.mu.Unlock()

		// Publish outside the lock. A number drawn while a win lands
		// may still be delivered; that window is accepted.
		s.hub.Publish(Event{Name: EventBingoNumber, Number: n})
	}
}
