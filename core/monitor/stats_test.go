package monitor

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ishantk2507/ZeroWasteAI/core/freshness"
)

func TestRecord(t *testing.T) {
	s := New()
	s.Record("Dairy", freshness.LevelCritical, true, true)
	s.Record("Dairy", freshness.LevelWarning, true, false)
	s.Record("Pantry", freshness.LevelGood, false, false)

	assert.Equal(t, 3, s.ItemsProcessed)
	assert.Equal(t, 1, s.SuccessfulMatches)
	assert.Equal(t, 1, s.ByLevel[freshness.LevelCritical])
	assert.Equal(t, CategoryStats{Total: 2, NeedsRedistribution: 2, SuccessfullyMatched: 1}, *s.ByCategory["Dairy"])
	assert.InDelta(t, 1.0/3, s.MatchRate(), 1e-9)
}

func TestZeroValueIsUsable(t *testing.T) {
	var s Stats
	s.Record("Fruit", freshness.LevelMonitor, true, false)
	assert.Equal(t, 1, s.ItemsProcessed)
	assert.Equal(t, 0.0, Stats{}.MatchRate())
}

func TestMergeFromWorkers(t *testing.T) {
	const workers = 4
	parts := make([]Stats, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			local := New()
			for i := 0; i < 10; i++ {
				local.Record("Meat", freshness.LevelWarning, true, i%2 == 0)
			}
			parts[w] = local
		}(w)
	}
	wg.Wait()

	total := New()
	for _, p := range parts {
		total.Merge(p)
	}
	assert.Equal(t, 40, total.ItemsProcessed)
	assert.Equal(t, 20, total.SuccessfulMatches)
	assert.Equal(t, 40, total.ByCategory["Meat"].NeedsRedistribution)
}

func TestCloneIsIndependent(t *testing.T) {
	s := New()
	s.Record("Bakery", freshness.LevelWarning, true, true)
	c := s.Clone()
	c.Record("Bakery", freshness.LevelWarning, true, true)
	assert.Equal(t, 1, s.ByCategory["Bakery"].Total)
	assert.Equal(t, 2, c.ByCategory["Bakery"].Total)
}
