package tracker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"yada/internal/config"
	"yada/internal/food"
)

// TestSessionRoundTrip exercises a full session: add foods, compose,
// log servings, save, then reopen and verify everything survived.
func TestSessionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()

	tr, err := Open(dir, cfg)
	require.NoError(t, err)

	apple, err := tr.Catalog.AddBasicFood("Apple", []string{"fruit"}, 95)
	require.NoError(t, err)
	pb, err := tr.Catalog.AddBasicFood("Peanut Butter", []string{"spread"}, 190)
	require.NoError(t, err)

	snack, err := tr.Catalog.AddCompositeFood("PB Apple Snack", []string{"snack"}, []food.Serving{
		{Food: apple, Servings: 1},
		{Food: pb, Servings: 0.5},
	})
	require.NoError(t, err)
	require.InDelta(t, 190, snack.CaloriesPerServing(), 1e-9)

	tr.Log.Add("2024-01-01", food.Serving{Food: snack, Servings: 2})
	require.InDelta(t, 380, tr.Log.TotalCalories("2024-01-01"), 1e-9)

	require.NoError(t, tr.Save())

	// Reopen: catalog and log reload from the data files, with log
	// entries resolved against the reloaded catalog.
	reopened, err := Open(dir, cfg)
	require.NoError(t, err)
	require.Equal(t, 3, reopened.Catalog.Len())
	require.InDelta(t, 380, reopened.Log.TotalCalories("2024-01-01"), 1e-9)

	// The undo history is session-transient: nothing to undo after
	// reopening.
	require.False(t, reopened.Log.Undo())
}

func TestOpen_EmptyDir(t *testing.T) {
	tr, err := Open(t.TempDir(), config.DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, 0, tr.Catalog.Len())
	require.Empty(t, tr.Log.Dates())
}

func TestOpen_LogEntryForMissingFoodSkipped(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()

	tr, err := Open(dir, cfg)
	require.NoError(t, err)
	apple, err := tr.Catalog.AddBasicFood("Apple", nil, 95)
	require.NoError(t, err)
	tr.Log.Add("2024-01-01", food.Serving{Food: apple, Servings: 1})
	require.NoError(t, tr.SaveLog())
	// Catalog intentionally not saved: on reopen Apple is unknown.

	reopened, err := Open(dir, cfg)
	require.NoError(t, err)
	require.Empty(t, reopened.Log.ServingsForDate("2024-01-01"))
}
