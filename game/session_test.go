package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testSession(t *testing.T, interval time.Duration) *Session {
	t.Helper()
	s := NewSession("123456", CompactPoolMax, interval, testLogger())
	t.Cleanup(s.teardown)
	return s
}

func TestSessionLifecycleForwardOnly(t *testing.T) {
	s := testSession(t, time.Hour)
	require.Equal(t, StatePending, s.State())

	require.True(t, s.Start())
	require.Equal(t, StateActive, s.State())

	// A second start never spawns a second loop.
	require.False(t, s.Start())

	s.Stop()
	require.Equal(t, StateFinished, s.State())
	require.False(t, s.Start())
	s.Wait()
}

func TestSessionStopIsIdempotent(t *testing.T) {
	s := testSession(t, time.Hour)
	s.Start()
	s.Stop()
	s.Stop()
	require.Equal(t, StateFinished, s.State())
}

func TestSessionDrawLoopPublishesNumbers(t *testing.T) {
	s := testSession(t, 5*time.Millisecond)
	sub := s.Hub().Subscribe("p1")

	require.True(t, s.Start())

	for i := 0; i < 3; i++ {
		ev := recvEvent(t, sub)
		require.Equal(t, EventBingoNumber, ev.Name)
		require.GreaterOrEqual(t, ev.Number, 1)
		require.LessOrEqual(t, ev.Number, CompactPoolMax)
	}

	drawn := s.Drawn()
	require.GreaterOrEqual(t, len(drawn), 3)
}

func TestSessionStopHaltsDraws(t *testing.T) {
	s := testSession(t, 5*time.Millisecond)
	sub := s.Hub().Subscribe("p1")

	s.Start()
	recvEvent(t, sub)
	s.Stop()
	s.Wait()

	// Drain anything that was in flight, then confirm silence.
	for {
		select {
		case _, ok := <-sub.Events():
			if !ok {
				return
			}
		case <-time.After(50 * time.Millisecond):
			return
		}
	}
}

func TestSessionDrawPoolRecyclesWhenExhausted(t *testing.T) {
	s := testSession(t, time.Millisecond)
	sub := s.Hub().Subscribe("p1")
	s.Start()

	// More draws than the pool holds: exhaustion resets internally and
	// the loop keeps announcing.
	seen := 0
	for seen < CompactPoolMax+5 {
		ev := recvEvent(t, sub)
		require.Equal(t, EventBingoNumber, ev.Name)
		seen++
	}
}

func TestSessionFinishPublishesSingleTerminalGameOver(t *testing.T) {
	s := testSession(t, time.Hour)
	require.NoError(t, s.AddPlayer("p1", "Alice"))
	require.NoError(t, s.AddPlayer("p2", "Bob"))

	winnerSub := s.Hub().Subscribe("p1")
	loserSub := s.Hub().Subscribe("p2")

	s.Start()
	require.True(t, s.Finish("p1", "Alice"))
	// A stale second win claim is ignored.
	require.False(t, s.Finish("p2", "Bob"))
	s.Wait()

	for _, sub := range []*Subscriber{winnerSub, loserSub} {
		gameOvers := 0
		var last Event
		deadline := time.After(time.Second)
	drain:
		for {
			select {
			case ev, ok := <-sub.Events():
				if !ok {
					break drain
				}
				last = ev
				if ev.Name == EventGameOver {
					gameOvers++
					// Terminal: nothing may follow. Unsubscribe closes
					// the channel so the loop ends.
					s.Hub().Unsubscribe(sub)
				}
			case <-deadline:
				break drain
			}
		}
		require.Equal(t, 1, gameOvers)
		require.Equal(t, EventGameOver, last.Name, "game_over was not the last event")
		require.Equal(t, "p1", last.WinnerID)
		require.Equal(t, "Alice", last.WinnerName)
	}

	w := s.Winner()
	require.NotNil(t, w)
	require.Equal(t, "Alice", w.Name)
}

func TestSessionOrderingDrawThenGameOver(t *testing.T) {
	s := testSession(t, time.Hour) // loop idle; publish by hand
	a := s.Hub().Subscribe("a")
	b := s.Hub().Subscribe("b")

	s.Hub().Publish(Event{Name: EventBingoNumber, Number: 17})
	require.True(t, s.Finish("a", "Ann"))

	for _, sub := range []*Subscriber{a, b} {
		first := recvEvent(t, sub)
		require.Equal(t, EventBingoNumber, first.Name)
		require.Equal(t, 17, first.Number)
		second := recvEvent(t, sub)
		require.Equal(t, EventGameOver, second.Name)

		select {
		case ev, ok := <-sub.Events():
			require.False(t, ok, "unexpected event after game_over: %+v", ev)
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestSessionDuplicatePlayerNameRejected(t *testing.T) {
	s := testSession(t, time.Hour)
	require.NoError(t, s.AddPlayer("p1", "Alice"))
	err := s.AddPlayer("p2", "Alice")
	require.ErrorIs(t, err, ErrConflict)

	// The first registration is untouched.
	name, ok := s.PlayerName("p1")
	require.True(t, ok)
	require.Equal(t, "Alice", name)
	require.False(t, s.HasPlayer("p2"))
	require.Equal(t, 1, s.PlayerCount())
}

func TestSessionJoinAfterFinish(t *testing.T) {
	s := testSession(t, time.Hour)
	s.Stop()
	require.ErrorIs(t, s.AddPlayer("p1", "Late"), ErrAlreadyFinished)
}
