// Package stats rolls persisted detection results into per-user statistics
// over a trailing time window.
package stats

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/meghnad/studylens/internal/store"
)

// WindowDays is the length of the trailing aggregation window.
const WindowDays = 30

// TopBehaviors is the maximum number of entries in the common-behavior list.
const TopBehaviors = 5

// BehaviorCount pairs a behavior label with its occurrence count in the window.
type BehaviorCount struct {
	Behavior string
	Count    int
}

// UserStatsWindow is the derived rollup of a user's detection results in
// the trailing window. It is computed fresh on every query, never cached.
type UserStatsWindow struct {
	AvgScore        float64
	CommonBehaviors []BehaviorCount
	SessionCount    int
	TotalHours      float64
	DaysAnalyzed    int
}

// WindowFetcher supplies the rows inside a user's trailing window.
// *store.DetectionRepository satisfies it.
type WindowFetcher interface {
	FetchWindow(userID string, since time.Time) ([]*store.DetectionRow, error)
}

// Aggregator computes user statistics windows from persisted rows.
type Aggregator struct {
	fetcher WindowFetcher
	now     func() time.Time
}

// NewAggregator creates an Aggregator reading rows from the given fetcher.
func NewAggregator(fetcher WindowFetcher) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		now:     time.Now,
	}
}

// UserWindow computes the stats window for one user. A fetch failure is
// returned to the caller; zeroed stats are reserved for the legitimate
// no-rows case.
func (a *Aggregator) UserWindow(userID string) (*UserStatsWindow, error) {
	since := a.now().AddDate(0, 0, -WindowDays)

	rows, err := a.fetcher.FetchWindow(userID, since)
	if err != nil {
		return nil, fmt.Errorf("fetch detection window: %w", err)
	}

	return Compute(rows), nil
}

// Compute derives the stats window from the supplied rows.
//
// TotalHours is the single max-minus-min timestamp span across all rows,
// not a sum of per-session durations. Non-contiguous sessions therefore
// inflate it and overlapping ones deflate it; this matches the deployed
// behavior and is kept for compatibility. It is a known limitation.
func Compute(rows []*store.DetectionRow) *UserStatsWindow {
	w := &UserStatsWindow{
		CommonBehaviors: []BehaviorCount{},
		DaysAnalyzed:    WindowDays,
	}
	if len(rows) == 0 {
		return w
	}

	scores := make([]float64, len(rows))
	for i, row := range rows {
		scores[i] = row.Score
	}
	w.AvgScore = stat.Mean(scores, nil)

	w.CommonBehaviors = topBehaviors(rows)

	sessions := make(map[string]struct{})
	first, last := rows[0].Timestamp, rows[0].Timestamp
	for _, row := range rows {
		sessions[row.SessionID] = struct{}{}
		if row.Timestamp.Before(first) {
			first = row.Timestamp
		}
		if row.Timestamp.After(last) {
			last = row.Timestamp
		}
	}
	w.SessionCount = len(sessions)
	w.TotalHours = last.Sub(first).Seconds() / 3600

	return w
}

// topBehaviors flattens the rows' behavior lists, counts occurrences, and
// returns the most frequent labels. Ties keep first-encountered order, so
// the result is deterministic for any fixed row order.
func topBehaviors(rows []*store.DetectionRow) []BehaviorCount {
	counts := make(map[string]int)
	var order []string

	for _, row := range rows {
		for _, behavior := range row.Behaviors {
			if _, seen := counts[behavior]; !seen {
				order = append(order, behavior)
			}
			counts[behavior]++
		}
	}

	top := make([]BehaviorCount, 0, len(order))
	for _, behavior := range order {
		top = append(top, BehaviorCount{Behavior: behavior, Count: counts[behavior]})
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})

	if len(top) > TopBehaviors {
		top = top[:TopBehaviors]
	}
	return top
}
