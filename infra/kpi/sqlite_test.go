package kpi

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishantk2507/ZeroWasteAI/core/metrics/eco"
)

var _ eco.Store = (*SQLiteStore)(nil)

func TestSQLiteStoreUpsert(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "kpi.db"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Add(eco.Record{RecipientID: "n1", Date: day.Add(9 * time.Hour), Deliveries: 1, DistanceKm: 10, CO2SavedKg: 2.8}))
	require.NoError(t, s.Add(eco.Record{RecipientID: "n1", Date: day.Add(15 * time.Hour), Deliveries: 2, DistanceKm: 5, CO2SavedKg: 1.4}))
	require.NoError(t, s.Add(eco.Record{RecipientID: "n1", Date: day.AddDate(0, 0, 2), Deliveries: 1, DistanceKm: 1}))

	recs, err := s.Query("n1", day, day)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "n1", recs[0].RecipientID)
	assert.Equal(t, day, recs[0].Date)
	assert.Equal(t, 3, recs[0].Deliveries)
	assert.InDelta(t, 15.0, recs[0].DistanceKm, 1e-9)
	assert.InDelta(t, 4.2, recs[0].CO2SavedKg, 1e-9)

	recs, err = s.Query("n1", day, day.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestSQLiteStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kpi.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Add(eco.Record{RecipientID: "n2", Date: day, Deliveries: 1}))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	recs, err := s.Query("n2", day, day)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
