package eco

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreAggregation(t *testing.T) {
	s := NewMemoryStore()
	d := Day(time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC))
	require.NoError(t, s.Add(Record{RecipientID: "n1", Date: d, Deliveries: 1, DistanceKm: 12, CO2SavedKg: 3.36}))
	require.NoError(t, s.Add(Record{RecipientID: "n1", Date: d.Add(5 * time.Hour), Deliveries: 1, DistanceKm: 8, CO2SavedKg: 2.24}))
	require.NoError(t, s.Add(Record{RecipientID: "n1", Date: d.AddDate(0, 0, 1), Deliveries: 2, DistanceKm: 4}))
	require.NoError(t, s.Add(Record{RecipientID: "n2", Date: d, Deliveries: 1}))

	recs, err := s.Query("n1", d, d)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 2, recs[0].Deliveries)
	assert.InDelta(t, 20.0, recs[0].DistanceKm, 1e-9)
	assert.InDelta(t, 5.6, recs[0].CO2SavedKg, 1e-9)

	recs, err = s.Query("n1", d, d.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.True(t, recs[0].Date.Before(recs[1].Date))

	recs, err = s.Query("unknown", d, d)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecordCalculations(t *testing.T) {
	r := Record{Deliveries: 4, DistanceKm: 20, CO2SavedKg: 5}
	assert.Equal(t, 5.0, r.AvgDistanceKm())
	assert.Equal(t, 0.25, r.CO2PerKm())
	assert.Zero(t, Record{}.AvgDistanceKm())
	assert.Zero(t, Record{}.CO2PerKm())
}

func TestDayUsesUTC(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	d := Day(time.Date(2024, 6, 16, 2, 0, 0, 0, loc))
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), d)
}
