// Package freshness turns stock and expiry dates into a freshness score and
// warning level.
package freshness

import (
	"math"
	"time"

	"github.com/ishantk2507/ZeroWasteAI/core/geo"
	"github.com/ishantk2507/ZeroWasteAI/core/policy"
)

// Level is a discrete urgency bucket derived from the freshness score.
type Level string

const (
	LevelCritical Level = "critical"
	LevelWarning  Level = "warning"
	LevelMonitor  Level = "monitor"
	LevelGood     Level = "good"
)

// Levels lists every level from most to least urgent.
var Levels = []Level{LevelCritical, LevelWarning, LevelMonitor, LevelGood}

// Priority orders levels for candidate selection, 0 being the most urgent.
func (l Level) Priority() int {
	switch l {
	case LevelCritical:
		return 0
	case LevelWarning:
		return 1
	case LevelMonitor:
		return 2
	default:
		return 3
	}
}

// Urgent reports whether the level requires prompt action.
func (l Level) Urgent() bool { return l == LevelCritical || l == LevelWarning }

// ParseLevel returns the level named s and whether it is known.
func ParseLevel(s string) (Level, bool) {
	for _, l := range Levels {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// Result is the derived freshness of an item.
type Result struct {
	Score         float64 `json:"freshness_score"`
	Level         Level   `json:"warning_level"`
	DaysRemaining int     `json:"days_remaining"`
}

// Evaluator computes freshness relative to a clock.
type Evaluator struct {
	policy policy.Policy
	now    func() time.Time
}

// NewEvaluator returns an Evaluator. A nil clock uses time.Now.
func NewEvaluator(p policy.Policy, now func() time.Time) *Evaluator {
	if now == nil {
		now = time.Now
	}
	return &Evaluator{policy: p, now: now}
}

var expired = Result{Score: 0, Level: LevelCritical, DaysRemaining: 0}

// Evaluate scores an item stocked on stock that expires on expiry.
// Dates are compared as calendar days, each taken in its own time zone.
func (e *Evaluator) Evaluate(stock, expiry time.Time, category string) Result {
	today := day(e.now())
	exp := day(expiry)
	if !today.Before(exp) {
		return expired
	}
	shelf := days(day(stock), exp)
	if shelf <= 0 {
		return expired
	}
	remaining := days(today, exp)
	score := float64(remaining) / float64(shelf) * 100
	score *= e.policy.TierMultiplier(category)
	score = geo.Round(math.Max(0, math.Min(100, score)), 4)
	return Result{Score: score, Level: e.Classify(score), DaysRemaining: remaining}
}

// Classify maps a score onto a warning level.
func (e *Evaluator) Classify(score float64) Level {
	t := e.policy.Thresholds
	switch {
	case score <= t.Critical:
		return LevelCritical
	case score <= t.Warning:
		return LevelWarning
	case score <= t.Monitor:
		return LevelMonitor
	default:
		return LevelGood
	}
}

// day keeps the civil date of t in its own location.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func days(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
