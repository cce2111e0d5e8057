package game

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// DefaultPoolMax is the standard bingo range. Compact 3x3 games use 25.
const (
	DefaultPoolMax = 75
	CompactPoolMax = 25
)

// ErrExhausted is returned by Draw when every number has been drawn.
// Callers either Reset the pool or end the round.
var ErrExhausted = errors.New("draw pool exhausted")

// DrawPool holds the not-yet-drawn numbers 1..max for one game session.
// All mutation is serialized behind an internal lock.
type DrawPool struct {
	mu        sync.Mutex
	max       int
	remaining []int
	rng       *rand.Rand
}

func NewDrawPool(max int) *DrawPool {
	if max <= 0 {
		max = DefaultPoolMax
	}
	p := &DrawPool{
		max: max,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	p.refill()
	return p
}

// Draw removes and returns one number chosen uniformly at random from the
// remaining set, or ErrExhausted when the set is empty.
func (p *DrawPool) Draw() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.remaining) == 0 {
		return 0, ErrExhausted
	}
	i := p.rng.Intn(len(p.remaining))
	n := p.remaining[i]
	last := len(p.remaining) - 1
	p.remaining[i] = p.remaining[last]
	p.remaining = p.remaining[:last]
	return n, nil
}

// Reset repopulates the full 1..max range.
func (p *DrawPool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refill()
}

// Remaining reports how many numbers have not been drawn yet.
func (p *DrawPool) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.remaining)
}

// Max returns the upper bound of the pool's range.
func (p *DrawPool) Max() int {
	return p.max
}

func (p *DrawPool) refill() {
	p.remaining = make([]int, p.max)
	for i := range p.remaining {
		p.remaining[i] = i + 1
	}
}
