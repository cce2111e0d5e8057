package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultRetention keeps finished sessions visible before the
	// sweeper reclaims them.
	DefaultRetention = 10 * time.Minute

	sweepInterval = time.Minute
	idAttempts    = 20
)

// RegistryConfig tunes the sessions a registry creates.
type RegistryConfig struct {
	PoolMax      int
	DrawInterval time.Duration
	Retention    time.Duration
	// IDExists, when set, is consulted on id generation so new game ids
	// collide neither with live sessions nor with persisted ones.
	IDExists func(gameID string) (bool, error)
}

// Registry owns every live Session, keyed by game id. Sessions are
// created lazily and garbage-collected after they finish. There is no
// package-level session state; callers hold a registry reference.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	cfg  RegistryConfig
	rng  *rand.Rand
	log  *zap.SugaredLogger
	quit chan struct{}
	once sync.Once
}

func NewRegistry(cfg RegistryConfig, log *zap.SugaredLogger) *Registry {
	if cfg.PoolMax <= 0 {
		cfg.PoolMax = DefaultPoolMax
	}
	if cfg.DrawInterval <= 0 {
		cfg.DrawInterval = DefaultDrawInterval
	}
	if cfg.Retention <= 0 {
		cfg.Retention = DefaultRetention
	}
	r := &Registry{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		log:      log,
		quit:     make(chan struct{}),
	}
	go r.sweepLoop()
	return r
}

// Create makes a session under a fresh 6-digit game id. Id collisions
// against live sessions and the storage backend are retried internally,
// never surfaced.
func (r *Registry) Create() (*Session, error) {
	for i := 0; i < idAttempts; i++ {
		id := r.newID()

		if r.cfg.IDExists != nil {
			exists, err := r.cfg.IDExists(id)
			if err != nil {
				return nil, fmt.Errorf("checking game id %s: %w", id, err)
			}
			if exists {
				continue
			}
		}

		r.mu.Lock()
		if _, taken := r.sessions[id]; taken {
			r.mu.Unlock()
			continue
		}
		s := NewSession(id, r.cfg.PoolMax, r.cfg.DrawInterval, r.log)
		r.sessions[id] = s
		r.mu.Unlock()

		r.log.Infow("session created", "game_id", id)
		return s, nil
	}
	return nil, fmt.Errorf("could not allocate a unique game id after %d attempts", idAttempts)
}

// Get looks up a live session.
func (r *Registry) Get(gameID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[gameID]
	return s, ok
}

// GetOrCreate returns the live session for gameID, creating it when a
// known game has no in-memory session yet (e.g. after a restart).
func (r *Registry) GetOrCreate(gameID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[gameID]; ok {
		return s
	}
	s := NewSession(gameID, r.cfg.PoolMax, r.cfg.DrawInterval, r.log)
	r.sessions[gameID] = s
	return s
}

// Remove tears a session down and forgets it: draw loop stopped and
// joined, subscribers evicted.
func (r *Registry) Remove(gameID string) {
	r.mu.Lock()
	s, ok := r.sessions[gameID]
	delete(r.sessions, gameID)
	r.mu.Unlock()
	if ok {
		s.teardown()
		r.log.Infow("session removed", "game_id", gameID)
	}
}

// Len reports how many sessions are live.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close tears down every session and stops the sweeper.
func (r *Registry) Close() {
	r.once.Do(func() { close(r.quit) })

	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for id, s := range r.sessions {
		sessions = append(sessions, s)
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	for _, s := range sessions {
		s.teardown()
	}
}

// Sweep reclaims sessions that finished longer than the retention window
// ago. Exported for tests; the background loop calls it on a timer.
func (r *Registry) Sweep(now time.Time) {
	r.mu.Lock()
	expired := make([]*Session, 0)
	for id, s := range r.sessions {
		if s.State() != StateFinished {
			continue
		}
		if now.Sub(s.FinishedAt()) >= r.cfg.Retention {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.teardown()
		r.log.Infow("expired session reclaimed", "game_id", s.ID)
	}
}

func (r *Registry) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-r.quit:
			return
		case now := <-ticker.C:
			r.Sweep(now)
		}
	}
}

func (r *Registry) newID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("%06d", 100000+r.rng.Intn(900000))
}
