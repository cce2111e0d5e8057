package game

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T, cfg RegistryConfig) *Registry {
	t.Helper()
	r := NewRegistry(cfg, testLogger())
	t.Cleanup(r.Close)
	return r
}

func TestRegistryCreateSixDigitIDs(t *testing.T) {
	r := testRegistry(t, RegistryConfig{})
	idPattern := regexp.MustCompile(`^\d{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		s, err := r.Create()
		require.NoError(t, err)
		require.Regexp(t, idPattern, s.ID)
		require.False(t, seen[s.ID])
		seen[s.ID] = true
	}
	require.Equal(t, 10, r.Len())
}

func TestRegistryCreateRetriesOnStoreCollision(t *testing.T) {
	collisions := 0
	r := testRegistry(t, RegistryConfig{
		IDExists: func(gameID string) (bool, error) {
			// First two candidates collide with "persisted" games.
			collisions++
			return collisions <= 2, nil
		},
	})

	s, err := r.Create()
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Equal(t, 3, collisions)
}

func TestRegistryGetAndLazyCreate(t *testing.T) {
	r := testRegistry(t, RegistryConfig{})

	_, ok := r.Get("654321")
	require.False(t, ok)

	s := r.GetOrCreate("654321")
	require.Equal(t, "654321", s.ID)

	again, ok := r.Get("654321")
	require.True(t, ok)
	require.Same(t, s, again)
	require.Same(t, s, r.GetOrCreate("654321"))
}

func TestRegistryRemoveTearsDown(t *testing.T) {
	r := testRegistry(t, RegistryConfig{DrawInterval: time.Hour})
	s := r.GetOrCreate("111222")
	sub := s.Hub().Subscribe("p")
	s.Start()

	r.Remove("111222")
	require.Equal(t, 0, r.Len())
	require.Equal(t, StateFinished, s.State())

	// Subscribers are forced out, not orphaned.
	_, ok := <-sub.Events()
	require.False(t, ok)
}

func TestRegistrySweepReclaimsFinishedSessions(t *testing.T) {
	r := testRegistry(t, RegistryConfig{Retention: time.Minute})

	running := r.GetOrCreate("100001")
	finished := r.GetOrCreate("100002")
	finished.Stop()

	// Too fresh to reclaim.
	r.Sweep(time.Now())
	require.Equal(t, 2, r.Len())

	// Past the retention window only the finished session goes.
	r.Sweep(time.Now().Add(2 * time.Minute))
	require.Equal(t, 1, r.Len())
	_, ok := r.Get(running.ID)
	require.True(t, ok)
	_, ok = r.Get(finished.ID)
	require.False(t, ok)
}
