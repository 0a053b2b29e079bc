package attempt

import "quiz-client/internal/backend"

// Derived values are recomputed from the live state on each call rather than
// stored, so they can never drift from the answers slice.

// Snapshot is a consistent point-in-time copy of the runner's observable
// state, taken under one lock so no field can be newer than another.
type Snapshot struct {
	Attempt         *backend.Attempt
	Quiz            *backend.Quiz
	Index           int
	CurrentQuestion *backend.Question
	Answers         []UserAnswer
	AnsweredCount   int
	SubmittedCount  int
	IsFirst         bool
	IsLast          bool
	Loading         bool
	Submitting      bool
	Completed       bool
	Result          *backend.QuizResult
	Err             string
}

func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		Quiz:            r.quiz,
		Index:           r.index,
		CurrentQuestion: r.currentQuestionLocked(),
		Answers:         make([]UserAnswer, len(r.answers)),
		IsFirst:         r.index == 0,
		Loading:         r.loading,
		Submitting:      r.submitting,
		Completed:       r.completed,
		Result:          r.result,
		Err:             r.lastErr,
	}
	copy(snap.Answers, r.answers)
	if r.attempt != nil {
		copied := *r.attempt
		snap.Attempt = &copied
	}
	for i := range r.answers {
		if r.answers[i].Answer != nil {
			snap.AnsweredCount++
		}
		if r.answers[i].Submitted {
			snap.SubmittedCount++
		}
	}
	if r.quiz != nil {
		snap.IsLast = r.index == len(r.quiz.Questions)-1
	}
	return snap
}

func (r *Runner) Attempt() *backend.Attempt {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.attempt == nil {
		return nil
	}
	copied := *r.attempt
	return &copied
}

func (r *Runner) Quiz() *backend.Quiz {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quiz
}

func (r *Runner) Index() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index
}

func (r *Runner) CurrentQuestion() *backend.Question {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentQuestionLocked()
}

func (r *Runner) CurrentAnswer() *Value {
	r.mu.Lock()
	defer r.mu.Unlock()
	question := r.currentQuestionLocked()
	if question == nil {
		return nil
	}
	entry := r.answerEntryLocked(question.ID)
	if entry == nil {
		return nil
	}
	return entry.Answer
}

func (r *Runner) CurrentSubmitted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	question := r.currentQuestionLocked()
	if question == nil {
		return false
	}
	entry := r.answerEntryLocked(question.ID)
	return entry != nil && entry.Submitted
}

func (r *Runner) TotalQuestions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.quiz == nil {
		return 0
	}
	return len(r.quiz.Questions)
}

// AnsweredCount is the number of questions with a buffered answer, submitted
// or not.
func (r *Runner) AnsweredCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for i := range r.answers {
		if r.answers[i].Answer != nil {
			count++
		}
	}
	return count
}

func (r *Runner) SubmittedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for i := range r.answers {
		if r.answers[i].Submitted {
			count++
		}
	}
	return count
}

func (r *Runner) IsFirst() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index == 0
}

func (r *Runner) IsLast() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.quiz == nil {
		return false
	}
	return r.index == len(r.quiz.Questions)-1
}

func (r *Runner) Answers() []UserAnswer {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]UserAnswer, len(r.answers))
	copy(out, r.answers)
	return out
}

func (r *Runner) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

func (r *Runner) Submitting() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.submitting
}

func (r *Runner) Completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed
}

func (r *Runner) Result() *backend.QuizResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

// Err returns the last recorded failure as a human-readable string, or ""
// when the previous operation succeeded. Failures never escape as panics; all
// operations report success through their boolean returns.
func (r *Runner) Err() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}
