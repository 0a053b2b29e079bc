package attempt

import (
	"sort"

	"quiz-client/internal/backend"
)

// History is a read-only view over a user's attempts for one quiz, newest
// first.
type History struct {
	attempts []backend.Attempt
}

func NewHistory(attempts []backend.Attempt) History {
	sorted := make([]backend.Attempt, len(attempts))
	copy(sorted, attempts)
	sort.SliceStable(sorted, func(i, j int) bool {
		left, errL := backend.ParseTime(sorted[i].CreatedAt)
		right, errR := backend.ParseTime(sorted[j].CreatedAt)
		if errL != nil || errR != nil {
			return false
		}
		return left.After(right)
	})
	return History{attempts: sorted}
}

func (h History) Attempts() []backend.Attempt {
	return h.attempts
}

func (h History) Total() int {
	return len(h.attempts)
}

func (h History) Latest() *backend.Attempt {
	if len(h.attempts) == 0 {
		return nil
	}
	return &h.attempts[0]
}

func (h History) Best() *backend.Attempt {
	if len(h.attempts) == 0 {
		return nil
	}
	best := &h.attempts[0]
	for i := range h.attempts {
		if h.attempts[i].Score > best.Score {
			best = &h.attempts[i]
		}
	}
	return best
}

func (h History) AverageScore() float64 {
	if len(h.attempts) == 0 {
		return 0
	}
	sum := 0.0
	for _, attempt := range h.attempts {
		sum += attempt.Score
	}
	return sum / float64(len(h.attempts))
}
