package stats

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/meghnad/studylens/internal/store"
)

func TestCompute_EmptyWindow(t *testing.T) {
	w := Compute(nil)

	if w.AvgScore != 0 {
		t.Errorf("AvgScore = %f, want 0", w.AvgScore)
	}
	if len(w.CommonBehaviors) != 0 {
		t.Errorf("CommonBehaviors = %v, want empty", w.CommonBehaviors)
	}
	if w.SessionCount != 0 {
		t.Errorf("SessionCount = %d, want 0", w.SessionCount)
	}
	if w.TotalHours != 0 {
		t.Errorf("TotalHours = %f, want 0", w.TotalHours)
	}
	if w.DaysAnalyzed != WindowDays {
		t.Errorf("DaysAnalyzed = %d, want %d", w.DaysAnalyzed, WindowDays)
	}
}

func TestCompute_SingleSessionScenario(t *testing.T) {
	t0 := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	rows := []*store.DetectionRow{
		{SessionID: "s1", Score: 1, Behaviors: []string{"A"}, Timestamp: t0},
		{SessionID: "s1", Score: 2, Behaviors: []string{"A", "B"}, Timestamp: t0.Add(time.Minute)},
		{SessionID: "s1", Score: 2, Behaviors: []string{"B"}, Timestamp: t0.Add(2 * time.Minute)},
	}

	w := Compute(rows)

	if math.Abs(w.AvgScore-5.0/3.0) > 1e-9 {
		t.Errorf("AvgScore = %f, want %f", w.AvgScore, 5.0/3.0)
	}

	// A and B tie at 2; first-encountered order wins.
	want := []BehaviorCount{{"A", 2}, {"B", 2}}
	if len(w.CommonBehaviors) != len(want) {
		t.Fatalf("CommonBehaviors = %v, want %v", w.CommonBehaviors, want)
	}
	for i, bc := range want {
		if w.CommonBehaviors[i] != bc {
			t.Errorf("CommonBehaviors[%d] = %v, want %v", i, w.CommonBehaviors[i], bc)
		}
	}

	if w.SessionCount != 1 {
		t.Errorf("SessionCount = %d, want 1", w.SessionCount)
	}
}

func TestCompute_TotalHoursIsFullSpan(t *testing.T) {
	// Two sessions: t0..t0+2h active, then a 3h gap, then 1h active.
	// TotalHours is the max-minus-min span (6h), not the 3h of active
	// time. Kept for compatibility with the deployed behavior.
	t0 := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	rows := []*store.DetectionRow{
		{SessionID: "s1", Score: 1, Timestamp: t0},
		{SessionID: "s1", Score: 1, Timestamp: t0.Add(2 * time.Hour)},
		{SessionID: "s2", Score: 1, Timestamp: t0.Add(5 * time.Hour)},
		{SessionID: "s2", Score: 1, Timestamp: t0.Add(6 * time.Hour)},
	}

	w := Compute(rows)

	if w.TotalHours != 6.0 {
		t.Errorf("TotalHours = %f, want 6.0", w.TotalHours)
	}
	if w.SessionCount != 2 {
		t.Errorf("SessionCount = %d, want 2", w.SessionCount)
	}
}

func TestCompute_TotalHoursIndependentOfRowOrder(t *testing.T) {
	t0 := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	rows := []*store.DetectionRow{
		{SessionID: "s2", Score: 1, Timestamp: t0.Add(4 * time.Hour)},
		{SessionID: "s1", Score: 1, Timestamp: t0},
		{SessionID: "s3", Score: 1, Timestamp: t0.Add(time.Hour)},
	}

	w := Compute(rows)

	if w.TotalHours != 4.0 {
		t.Errorf("TotalHours = %f, want 4.0", w.TotalHours)
	}
	if w.SessionCount != 3 {
		t.Errorf("SessionCount = %d, want 3", w.SessionCount)
	}
}

func TestCompute_TopBehaviorsCappedAtFive(t *testing.T) {
	t0 := time.Now()
	row := &store.DetectionRow{
		SessionID: "s1",
		Behaviors: []string{"A", "B", "C", "D", "E", "F", "G"},
		Timestamp: t0,
	}
	// Make C clearly the most common.
	boost := &store.DetectionRow{
		SessionID: "s1",
		Behaviors: []string{"C", "C"},
		Timestamp: t0,
	}

	w := Compute([]*store.DetectionRow{row, boost})

	if len(w.CommonBehaviors) != TopBehaviors {
		t.Fatalf("len(CommonBehaviors) = %d, want %d", len(w.CommonBehaviors), TopBehaviors)
	}
	if w.CommonBehaviors[0].Behavior != "C" || w.CommonBehaviors[0].Count != 3 {
		t.Errorf("CommonBehaviors[0] = %v, want {C 3}", w.CommonBehaviors[0])
	}

	// The remaining four keep first-encountered order among the tied.
	wantTail := []string{"A", "B", "D", "E"}
	for i, behavior := range wantTail {
		got := w.CommonBehaviors[i+1]
		if got.Behavior != behavior || got.Count != 1 {
			t.Errorf("CommonBehaviors[%d] = %v, want {%s 1}", i+1, got, behavior)
		}
	}
}

// failingFetcher simulates a persistence failure.
type failingFetcher struct{}

func (f *failingFetcher) FetchWindow(userID string, since time.Time) ([]*store.DetectionRow, error) {
	return nil, errors.New("connection refused")
}

func TestUserWindow_FetchFailureSurfaces(t *testing.T) {
	a := NewAggregator(&failingFetcher{})

	w, err := a.UserWindow("u1")
	if err == nil {
		t.Fatal("expected fetch failure to surface, got nil error")
	}
	if w != nil {
		t.Errorf("window = %v, want nil on failure", w)
	}
}

// stubFetcher records the window boundary it was asked for.
type stubFetcher struct {
	since time.Time
	rows  []*store.DetectionRow
}

func (f *stubFetcher) FetchWindow(userID string, since time.Time) ([]*store.DetectionRow, error) {
	f.since = since
	return f.rows, nil
}

func TestUserWindow_TrailingThirtyDays(t *testing.T) {
	fetcher := &stubFetcher{}
	a := NewAggregator(fetcher)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return now }

	w, err := a.UserWindow("u1")
	if err != nil {
		t.Fatalf("UserWindow() error = %v", err)
	}

	wantSince := now.AddDate(0, 0, -WindowDays)
	if !fetcher.since.Equal(wantSince) {
		t.Errorf("since = %v, want %v", fetcher.since, wantSince)
	}
	if w.DaysAnalyzed != WindowDays {
		t.Errorf("DaysAnalyzed = %d, want %d", w.DaysAnalyzed, WindowDays)
	}
}
