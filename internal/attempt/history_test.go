package attempt

import (
	"testing"

	"quiz-client/internal/backend"
)

func historyAttempts() []backend.Attempt {
	return []backend.Attempt{
		{ID: 1, AttemptNumber: 1, Score: 4, CreatedAt: "2026-03-01T09:00:00Z"},
		{ID: 3, AttemptNumber: 3, Score: 6, CreatedAt: "2026-03-03T09:00:00Z"},
		{ID: 2, AttemptNumber: 2, Score: 8, CreatedAt: "2026-03-02T09:00:00Z"},
	}
}

func TestHistorySortsNewestFirst(t *testing.T) {
	history := NewHistory(historyAttempts())

	attempts := history.Attempts()
	if attempts[0].ID != 3 || attempts[1].ID != 2 || attempts[2].ID != 1 {
		t.Fatalf("unexpected order: %d, %d, %d", attempts[0].ID, attempts[1].ID, attempts[2].ID)
	}
}

func TestHistoryLatestAndBest(t *testing.T) {
	history := NewHistory(historyAttempts())

	if latest := history.Latest(); latest == nil || latest.ID != 3 {
		t.Fatalf("latest = %+v, want attempt 3", latest)
	}
	if best := history.Best(); best == nil || best.ID != 2 {
		t.Fatalf("best = %+v, want attempt 2 (score 8)", best)
	}
}

func TestHistoryAverageScore(t *testing.T) {
	history := NewHistory(historyAttempts())
	if avg := history.AverageScore(); avg != 6 {
		t.Fatalf("average = %v, want 6", avg)
	}
}

func TestHistoryEmpty(t *testing.T) {
	history := NewHistory(nil)

	if history.Total() != 0 {
		t.Fatalf("total = %d, want 0", history.Total())
	}
	if history.Latest() != nil || history.Best() != nil {
		t.Fatalf("expected nil latest/best on empty history")
	}
	if history.AverageScore() != 0 {
		t.Fatalf("average = %v, want 0", history.AverageScore())
	}
}
