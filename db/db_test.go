package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puissance4/games"
)

func gamesTally(p1, p2, draw int) games.Tally {
	return games.Tally{P1: p1, P2: p2, Draw: draw}
}

func TestOpenUnconfigured(t *testing.T) {
	for _, raw := range []string{"", "   "} {
		store, err := Open(context.Background(), raw)
		require.NoError(t, err)
		assert.Nil(t, store)
	}
}

func TestOpenUnsupportedScheme(t *testing.T) {
	store, err := Open(context.Background(), "mongodb://localhost/scores")
	assert.ErrorIs(t, err, ErrUnsupportedStore)
	assert.Nil(t, store)
}

func TestOpenMemory(t *testing.T) {
	store, err := Open(context.Background(), "memory://")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
}

func TestOpenSQLiteURL(t *testing.T) {
	store, err := Open(context.Background(), "file:open_url?mode=memory&cache=shared")
	require.NoError(t, err)
	defer store.Close()
	assert.IsType(t, &SQLStore{}, store)
}

// exerciseStore runs the same append/summary checks against any backend.
func exerciseStore(t *testing.T, store ScoreStore) {
	t.Helper()
	ctx := context.Background()

	summary, err := store.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, games.Summary{}, summary, "empty store")

	require.NoError(t, store.Append(ctx, NewScoreRecord(games.Tally{P1: 3, P2: 1, Draw: 2})))

	summary, err = store.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, games.Summary{P1Total: 3, P2Total: 1, DrawsTotal: 2, Games: 1}, summary)

	require.NoError(t, store.Append(ctx, NewScoreRecord(games.Tally{P1: 0, P2: 4, Draw: 0})))
	require.NoError(t, store.Append(ctx, NewScoreRecord(games.Tally{})))

	summary, err = store.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, games.Summary{P1Total: 3, P2Total: 5, DrawsTotal: 2, Games: 3}, summary)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	exerciseStore(t, store)

	records := store.Records()
	require.Len(t, records, 3)
	assert.Equal(t, 3, records[0].Player1Wins)
	assert.False(t, records[0].PlayedAt.IsZero())
}

func TestNewScoreRecord(t *testing.T) {
	rec := NewScoreRecord(games.Tally{P1: 1, P2: 2, Draw: 3})
	assert.Equal(t, 1, rec.Player1Wins)
	assert.Equal(t, 2, rec.Player2Wins)
	assert.Equal(t, 3, rec.Draws)
	assert.False(t, rec.PlayedAt.IsZero())
	assert.Equal(t, games.Tally{P1: 1, P2: 2, Draw: 3}, rec.tally())
}
