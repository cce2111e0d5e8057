package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Wardmisp/Bingo/game"
)

func TestMemoryGameLifecycle(t *testing.T) {
	m := NewMemory()

	exists, err := m.GameIDExists("123456")
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, m.CreateGame("123456"))
	require.ErrorIs(t, m.CreateGame("123456"), game.ErrConflict)

	exists, err = m.GameIDExists("123456")
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, m.ArchiveGame("123456", []int{3, 1, 2}, "p1", "Alice"))
	require.ErrorIs(t, m.ArchiveGame("000000", nil, "", ""), game.ErrNotFound)
}

func TestMemoryDuplicatePlayerNameConflict(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.CreateGame("123456"))

	first, err := m.CreatePlayer("Alice", "123456")
	require.NoError(t, err)

	_, err = m.CreatePlayer("Alice", "123456")
	require.ErrorIs(t, err, game.ErrConflict)

	// First registration untouched by the rejected duplicate.
	p, err := m.GetPlayer(first)
	require.NoError(t, err)
	require.Equal(t, "Alice", p.Name)
	require.Equal(t, "123456", p.GameID)

	players, err := m.FindPlayersByGame("123456")
	require.NoError(t, err)
	require.Len(t, players, 1)

	// Same name in a different game is fine.
	require.NoError(t, m.CreateGame("654321"))
	_, err = m.CreatePlayer("Alice", "654321")
	require.NoError(t, err)
}

func TestMemoryPlayerInUnknownGame(t *testing.T) {
	m := NewMemory()
	_, err := m.CreatePlayer("Alice", "000000")
	require.ErrorIs(t, err, game.ErrNotFound)
}

func TestMemoryCardRoundTrip(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.CreateGame("123456"))
	id, err := m.CreatePlayer("Alice", "123456")
	require.NoError(t, err)

	_, err = m.GetCard(id)
	require.ErrorIs(t, err, game.ErrNotFound)

	card := game.CardFromGrid([][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, nil)
	card.Mark(5)
	require.NoError(t, m.SaveCard(id, card))

	// Mutating the original after saving must not leak into the store.
	card.Mark(9)

	loaded, err := m.GetCard(id)
	require.NoError(t, err)
	require.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, loaded.Grid())
	require.Equal(t, []int{5}, loaded.MarkedNumbers())
}

func TestMemoryRemovePlayer(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.CreateGame("123456"))
	id, err := m.CreatePlayer("Alice", "123456")
	require.NoError(t, err)
	require.NoError(t, m.SaveCard(id, game.NewCard(3, 3, 25)))

	require.ErrorIs(t, m.RemovePlayer("999999", id), game.ErrNotFound)
	require.NoError(t, m.RemovePlayer("123456", id))

	_, err = m.GetPlayer(id)
	require.ErrorIs(t, err, game.ErrNotFound)
	_, err = m.GetCard(id)
	require.ErrorIs(t, err, game.ErrNotFound)
}
