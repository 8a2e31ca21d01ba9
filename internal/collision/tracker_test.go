package collision

import (
	"testing"

	"github.com/marcozanotti/utilsforecast/errs"
	"github.com/stretchr/testify/require"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker(4)

	require.NotNil(t, tracker)
	require.False(t, tracker.HasCollision())
}

func TestTracker_Track(t *testing.T) {
	t.Run("distinct keys", func(t *testing.T) {
		tracker := NewTracker(2)

		require.NoError(t, tracker.Track("store_1", 0x1234567890abcdef))
		require.NoError(t, tracker.Track("store_2", 0xfedcba0987654321))
		require.False(t, tracker.HasCollision())
	})

	t.Run("collision is flagged, not rejected", func(t *testing.T) {
		tracker := NewTracker(2)

		require.NoError(t, tracker.Track("store_1", 0x1234567890abcdef))
		require.NoError(t, tracker.Track("store_9", 0x1234567890abcdef))
		require.True(t, tracker.HasCollision())
	})

	t.Run("duplicate key", func(t *testing.T) {
		tracker := NewTracker(2)

		require.NoError(t, tracker.Track("store_1", 0x1234567890abcdef))
		err := tracker.Track("store_1", 0x1234567890abcdef)
		require.ErrorIs(t, err, errs.ErrDuplicateKey)
		require.False(t, tracker.HasCollision())
	})

	t.Run("duplicate detected after collision", func(t *testing.T) {
		tracker := NewTracker(3)

		require.NoError(t, tracker.Track("a", 1))
		require.NoError(t, tracker.Track("b", 1))
		require.NoError(t, tracker.Track("c", 2))
		require.ErrorIs(t, tracker.Track("b", 1), errs.ErrDuplicateKey)
		require.ErrorIs(t, tracker.Track("c", 2), errs.ErrDuplicateKey)
		require.ErrorIs(t, tracker.Track("a", 3), errs.ErrDuplicateKey)
	})
}
