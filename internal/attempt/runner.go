// Package attempt owns the lifecycle of a single quiz-taking session:
// starting an attempt, buffering answers locally, submitting each answer to
// the backend as the user advances, and finalizing for a score.
package attempt

import (
	"context"
	"sync"

	"quiz-client/internal/backend"
)

// Backend is the slice of the API client the runner needs.
type Backend interface {
	StartAttempt(ctx context.Context, quizID int64) (backend.Attempt, error)
	SubmitAnswers(ctx context.Context, attemptID int64, answers []backend.AnswerSubmit) ([]backend.Answer, error)
	SubmitAttempt(ctx context.Context, attemptID int64) (backend.QuizResult, error)
}

// Value is a buffered response to one question. Text answers and single-choice
// selections use Text (for single choice it holds the chosen option label);
// multiple-choice selections use Labels.
type Value struct {
	Text   string
	Labels []string
}

// UserAnswer is the local record for one question of the bound quiz. The
// answers slice always holds exactly one entry per question, in quiz order;
// only Answer and Submitted ever change after Start.
type UserAnswer struct {
	QuestionID int64
	Answer     *Value
	Submitted  bool
}

// Runner is the quiz-attempt state machine. All methods are safe for
// concurrent use; answer submissions for different questions may overlap,
// while an in-flight set keyed by question id makes a duplicate submission for
// the same question a no-op.
type Runner struct {
	api Backend

	mu         sync.Mutex
	attempt    *backend.Attempt
	quiz       *backend.Quiz
	index      int
	answers    []UserAnswer
	inFlight   map[int64]struct{}
	loading    bool
	submitting bool
	completed  bool
	result     *backend.QuizResult
	lastErr    string
}

func NewRunner(api Backend) *Runner {
	return &Runner{
		api:      api,
		inFlight: make(map[int64]struct{}),
	}
}

// Start creates an attempt for the quiz and seeds one empty answer entry per
// question. On failure the error is recorded and no attempt is held.
func (r *Runner) Start(ctx context.Context, quiz backend.Quiz) bool {
	r.mu.Lock()
	r.loading = true
	r.lastErr = ""
	r.mu.Unlock()

	created, err := r.api.StartAttempt(ctx, quiz.ID)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false
	if err != nil {
		r.lastErr = err.Error()
		return false
	}

	answers := make([]UserAnswer, 0, len(quiz.Questions))
	for _, question := range quiz.Questions {
		answers = append(answers, UserAnswer{QuestionID: question.ID})
	}

	r.attempt = &created
	r.quiz = &quiz
	r.answers = answers
	r.index = 0
	r.completed = false
	r.result = nil
	return true
}

// SetAnswer buffers a response locally, overwriting any previous value and
// clearing the submitted flag. No network call, no type validation; the
// presentation layer owns matching the value shape to the question type.
func (r *Runner) SetAnswer(questionID int64, value Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.answers {
		if r.answers[i].QuestionID == questionID {
			v := value
			r.answers[i].Answer = &v
			r.answers[i].Submitted = false
			return
		}
	}
}

// SubmitAnswer sends the buffered answer for one question to the backend,
// translated into its wire form by question type. Returns false without a
// network call when no attempt is active, nothing is buffered, the question is
// unknown, or a submission for the same question is already in flight.
func (r *Runner) SubmitAnswer(ctx context.Context, questionID int64) bool {
	r.mu.Lock()

	if r.attempt == nil {
		r.lastErr = "no active attempt"
		r.mu.Unlock()
		return false
	}
	if _, busy := r.inFlight[questionID]; busy {
		r.mu.Unlock()
		return false
	}

	entry := r.answerEntryLocked(questionID)
	if entry == nil || entry.Answer == nil {
		r.lastErr = "no answer to submit"
		r.mu.Unlock()
		return false
	}

	question := r.questionLocked(questionID)
	if question == nil {
		r.lastErr = "question not found"
		r.mu.Unlock()
		return false
	}

	submit := buildAnswerSubmit(*question, *entry.Answer)
	attemptID := r.attempt.ID
	r.inFlight[questionID] = struct{}{}
	r.lastErr = ""
	r.mu.Unlock()

	_, err := r.api.SubmitAnswers(ctx, attemptID, []backend.AnswerSubmit{submit})

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inFlight, questionID)
	if err != nil {
		r.lastErr = err.Error()
		return false
	}
	if entry := r.answerEntryLocked(questionID); entry != nil {
		entry.Submitted = true
	}
	return true
}

// Next advances to the following question, clamped at the last index. A
// buffered, not-yet-submitted answer on the current question is submitted
// first (awaited); the advance happens regardless of the submission outcome.
func (r *Runner) Next(ctx context.Context) {
	r.autoSubmitCurrent(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index < r.lastIndexLocked() {
		r.index++
	}
}

// Previous steps back one question, clamped at 0. Never touches submission
// state, so earlier answers can be reviewed without side effects.
func (r *Runner) Previous() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index > 0 {
		r.index--
	}
}

// GoTo jumps to an arbitrary question, clamped to the valid range. Forward
// jumps take the same auto-submit path as Next so a buffered answer is never
// silently stranded.
func (r *Runner) GoTo(ctx context.Context, index int) {
	r.mu.Lock()
	forward := index > r.index
	r.mu.Unlock()

	if forward {
		r.autoSubmitCurrent(ctx)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 {
		index = 0
	}
	if last := r.lastIndexLocked(); index > last {
		index = last
	}
	r.index = index
}

// Submit finalizes the attempt. On success the scored result is stored and
// the session becomes terminal; on failure the session stays in progress.
func (r *Runner) Submit(ctx context.Context) bool {
	r.mu.Lock()
	if r.attempt == nil {
		r.lastErr = "no active attempt to submit"
		r.mu.Unlock()
		return false
	}
	attemptID := r.attempt.ID
	r.submitting = true
	r.lastErr = ""
	r.mu.Unlock()

	result, err := r.api.SubmitAttempt(ctx, attemptID)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitting = false
	if err != nil {
		r.lastErr = err.Error()
		return false
	}
	r.result = &result
	r.completed = true
	return true
}

// Reset clears all state back to the initial shape so the runner can be
// reused for another attempt.
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempt = nil
	r.quiz = nil
	r.index = 0
	r.answers = nil
	r.loading = false
	r.submitting = false
	r.completed = false
	r.result = nil
	r.lastErr = ""
}

func (r *Runner) autoSubmitCurrent(ctx context.Context) {
	r.mu.Lock()
	var pendingID int64
	pending := false
	if question := r.currentQuestionLocked(); question != nil {
		if entry := r.answerEntryLocked(question.ID); entry != nil && entry.Answer != nil && !entry.Submitted {
			pendingID = question.ID
			pending = true
		}
	}
	r.mu.Unlock()

	if pending {
		r.SubmitAnswer(ctx, pendingID)
	}
}

func buildAnswerSubmit(question backend.Question, value Value) backend.AnswerSubmit {
	submit := backend.AnswerSubmit{QuestionID: question.ID}

	switch question.QuestionType {
	case backend.QuestionText:
		text := value.Text
		submit.TextAnswer = &text
	case backend.QuestionSingle:
		ids := []int64{}
		for _, option := range question.Options {
			if option.OptionText == value.Text {
				ids = append(ids, option.ID)
				break
			}
		}
		submit.SelectedOptionIDs = ids
	case backend.QuestionMultiple:
		chosen := make(map[string]bool, len(value.Labels))
		for _, label := range value.Labels {
			chosen[label] = true
		}
		ids := []int64{}
		for _, option := range question.Options {
			if chosen[option.OptionText] {
				ids = append(ids, option.ID)
			}
		}
		submit.SelectedOptionIDs = ids
	}
	return submit
}

func (r *Runner) answerEntryLocked(questionID int64) *UserAnswer {
	for i := range r.answers {
		if r.answers[i].QuestionID == questionID {
			return &r.answers[i]
		}
	}
	return nil
}

func (r *Runner) questionLocked(questionID int64) *backend.Question {
	if r.quiz == nil {
		return nil
	}
	for i := range r.quiz.Questions {
		if r.quiz.Questions[i].ID == questionID {
			return &r.quiz.Questions[i]
		}
	}
	return nil
}

func (r *Runner) currentQuestionLocked() *backend.Question {
	if r.quiz == nil || r.index < 0 || r.index >= len(r.quiz.Questions) {
		return nil
	}
	return &r.quiz.Questions[r.index]
}

func (r *Runner) lastIndexLocked() int {
	if r.quiz == nil || len(r.quiz.Questions) == 0 {
		return 0
	}
	return len(r.quiz.Questions) - 1
}
