package freshness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ishantk2507/ZeroWasteAI/core/model"
	"github.com/ishantk2507/ZeroWasteAI/core/policy"
)

var now = time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

func evaluator() *Evaluator {
	return NewEvaluator(policy.Default(), func() time.Time { return now })
}

func daysFromNow(n int) time.Time { return now.AddDate(0, 0, n) }

func TestExpiredItems(t *testing.T) {
	e := evaluator()
	for _, offset := range []int{0, -1, -30} {
		r := e.Evaluate(daysFromNow(-40), daysFromNow(offset), model.CategoryFruit)
		assert.Equal(t, Result{Score: 0, Level: LevelCritical, DaysRemaining: 0}, r, "offset %d", offset)
	}
}

func TestExpiryLaterToday(t *testing.T) {
	e := evaluator()
	r := e.Evaluate(daysFromNow(-3), now.Add(2*time.Hour), model.CategoryFruit)
	assert.Equal(t, LevelCritical, r.Level)
	assert.Equal(t, 0.0, r.Score)
}

func TestCalendarDayKeepsZone(t *testing.T) {
	e := evaluator()
	ist := time.FixedZone("IST", 5*3600+1800)
	// 2024-06-20 01:00 IST is 2024-06-19 19:30 UTC but still June 20.
	expiry := time.Date(2024, 6, 20, 1, 0, 0, 0, ist)
	r := e.Evaluate(daysFromNow(-5), expiry, model.CategoryFruit)
	assert.Equal(t, 5, r.DaysRemaining)
	assert.InDelta(t, 50.0, r.Score, 1e-9)
}

func TestDegenerateShelfLife(t *testing.T) {
	e := evaluator()
	r := e.Evaluate(daysFromNow(5), daysFromNow(3), model.CategoryFruit)
	assert.Equal(t, Result{Score: 0, Level: LevelCritical, DaysRemaining: 0}, r)
}

func TestTierOneScaling(t *testing.T) {
	e := evaluator()
	r := e.Evaluate(daysFromNow(-10), daysFromNow(5), model.CategoryDairy)
	assert.Less(t, r.Score, 50.0)
	assert.InDelta(t, 30.0, r.Score, 1e-9)
	assert.Equal(t, 5, r.DaysRemaining)
	assert.NotEqual(t, LevelGood, r.Level)
	assert.Equal(t, LevelMonitor, r.Level)
}

func TestTierFourScaling(t *testing.T) {
	e := evaluator()
	r := e.Evaluate(daysFromNow(-5), daysFromNow(5), model.CategoryPantry)
	assert.InDelta(t, 55.0, r.Score, 1e-9)
	assert.Equal(t, LevelGood, r.Level)

	r = e.Evaluate(daysFromNow(0), daysFromNow(30), model.CategoryPantry)
	assert.Equal(t, 100.0, r.Score)
}

func TestUnscaledTier(t *testing.T) {
	e := evaluator()
	r := e.Evaluate(daysFromNow(-8), daysFromNow(2), model.CategoryBakery)
	assert.InDelta(t, 20.0, r.Score, 1e-9)
	assert.Equal(t, LevelWarning, r.Level)
}

func TestScoreBounds(t *testing.T) {
	e := evaluator()
	for stock := -30; stock <= 0; stock++ {
		for exp := -5; exp <= 40; exp++ {
			for _, c := range []string{model.CategoryMeat, model.CategoryPantry, model.CategoryFruit, "Other"} {
				r := e.Evaluate(daysFromNow(stock), daysFromNow(exp), c)
				if r.Score < 0 || r.Score > 100 {
					t.Fatalf("score out of range: %v", r.Score)
				}
				if r.DaysRemaining < 0 {
					t.Fatalf("negative days remaining")
				}
				if r.Level != e.Classify(r.Score) {
					t.Fatalf("level %s does not match score %v", r.Level, r.Score)
				}
			}
		}
	}
}

func TestClassifyBoundaries(t *testing.T) {
	e := evaluator()
	cases := []struct {
		score float64
		want  Level
	}{
		{0, LevelCritical},
		{10, LevelCritical},
		{10.0001, LevelWarning},
		{20, LevelWarning},
		{30, LevelMonitor},
		{30.5, LevelGood},
		{100, LevelGood},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, e.Classify(c.score), "score %v", c.score)
	}
}

func TestLevelHelpers(t *testing.T) {
	assert.True(t, LevelCritical.Urgent())
	assert.True(t, LevelWarning.Urgent())
	assert.False(t, LevelMonitor.Urgent())
	assert.Equal(t, 0, LevelCritical.Priority())
	assert.Equal(t, 3, LevelGood.Priority())
	l, ok := ParseLevel("monitor")
	assert.True(t, ok)
	assert.Equal(t, LevelMonitor, l)
	_, ok = ParseLevel("fresh")
	assert.False(t, ok)
}
