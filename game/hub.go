package game

import (
	"sync"

	"go.uber.org/zap"
)

// Event names on the live stream.
const (
	EventBingoNumber = "bingo_number"
	EventGameOver    = "game_over"
)

// Event is one message on a session's live stream. Number is set for
// bingo_number events; the winner fields for game_over.
type Event struct {
	Name       string `json:"event"`
	Number     int    `json:"number,omitempty"`
	WinnerID   string `json:"winnerId,omitempty"`
	WinnerName string `json:"winnerName,omitempty"`
}

// Subscriber is one live outbound connection attached to a session's hub.
// The connection layer owns the underlying transport; the hub only owns
// the queue.
type Subscriber struct {
	PlayerID string
	ch       chan Event
	once     sync.Once
}

// Events is the subscriber's receive channel. It is closed when the
// subscriber is dropped or the hub shuts down.
func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

func (s *Subscriber) close() {
	s.once.Do(func() { close(s.ch) })
}

// subscriberBuffer matches the per-client send queue size used on the
// websocket side.
const subscriberBuffer = 32

// Hub fans events out from one game session to its subscribers. Publish
// never blocks: a subscriber whose queue is full is dropped rather than
// stalling the publisher or its peers. Events arrive at each subscriber
// in publish order.
type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscriber]struct{}
	closed bool
	log    *zap.SugaredLogger
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		subs: make(map[*Subscriber]struct{}),
		log:  log,
	}
}

// Subscribe attaches a new subscriber. playerID may be empty for
// spectators. Subscribing to a closed hub returns a subscriber whose
// channel is already closed.
func (h *Hub) Subscribe(playerID string) *Subscriber {
	s := &Subscriber{PlayerID: playerID, ch: make(chan Event, subscriberBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		s.close()
		return s
	}
	h.subs[s] = struct{}{}
	return s
}

// Unsubscribe detaches s and releases its queue. Safe to call twice.
func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	_, ok := h.subs[s]
	delete(h.subs, s)
	h.mu.Unlock()
	if ok {
		s.close()
	}
}

// Publish enqueues ev for every current subscriber and returns
// immediately. Subscribers that cannot absorb the event are evicted.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for s := range h.subs {
		select {
		case s.ch <- ev:
		default:
			if h.log != nil {
				h.log.Warnw("dropping slow subscriber", "player_id", s.PlayerID)
			}
			delete(h.subs, s)
			s.close()
		}
	}
}

// Close evicts every subscriber and rejects further publishes. Used on
// session teardown so no connection is left waiting on a dead game.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for s := range h.subs {
		delete(h.subs, s)
		s.close()
	}
}

// SubscriberCount reports how many connections are currently attached.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
