package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDrawPoolDrainsWithoutRepeats(t *testing.T) {
	p := NewDrawPool(75)

	seen := make(map[int]bool, 75)
	for i := 0; i < 75; i++ {
		require.Equal(t, 75-i, p.Remaining())
		n, err := p.Draw()
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 1)
		require.LessOrEqual(t, n, 75)
		require.False(t, seen[n], "number %d drawn twice", n)
		seen[n] = true
	}

	require.Equal(t, 0, p.Remaining())
	_, err := p.Draw()
	require.ErrorIs(t, err, ErrExhausted)
}

func TestDrawPoolReset(t *testing.T) {
	p := NewDrawPool(25)
	for i := 0; i < 25; i++ {
		_, err := p.Draw()
		require.NoError(t, err)
	}
	_, err := p.Draw()
	require.ErrorIs(t, err, ErrExhausted)

	p.Reset()
	require.Equal(t, 25, p.Remaining())
	n, err := p.Draw()
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, 1)
	require.LessOrEqual(t, n, 25)
}

func TestDrawPoolConcurrentDraws(t *testing.T) {
	p := NewDrawPool(75)

	var mu sync.Mutex
	seen := make(map[int]int)
	var wg sync.WaitGroup
	for i := 0; i < 75; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := p.Draw()
			if err != nil {
				return
			}
			mu.Lock()
			seen[n]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, seen, 75)
	for n, count := range seen {
		require.Equal(t, 1, count, "number %d drawn %d times", n, count)
	}
}

func TestDrawPoolDefaultsMax(t *testing.T) {
	p := NewDrawPool(0)
	require.Equal(t, DefaultPoolMax, p.Max())
	require.Equal(t, DefaultPoolMax, p.Remaining())
}
