package attempt

import (
	"context"
	"errors"
	"sync"
	"testing"

	"quiz-client/internal/backend"
)

type fakeBackend struct {
	mu sync.Mutex

	startAttempt backend.Attempt
	startErr     error
	startCalls   int

	submitted     [][]backend.AnswerSubmit
	submitErr     error
	submitBlock   chan struct{}
	submitStarted chan struct{}

	result        backend.QuizResult
	finalizeErr   error
	finalizeCalls int
}

func (f *fakeBackend) StartAttempt(_ context.Context, quizID int64) (backend.Attempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.startCalls++
	if f.startErr != nil {
		return backend.Attempt{}, f.startErr
	}
	attempt := f.startAttempt
	attempt.QuizID = quizID
	return attempt, nil
}

func (f *fakeBackend) SubmitAnswers(_ context.Context, _ int64, answers []backend.AnswerSubmit) ([]backend.Answer, error) {
	f.mu.Lock()
	started := f.submitStarted
	block := f.submitBlock
	f.submitted = append(f.submitted, answers)
	err := f.submitErr
	f.mu.Unlock()

	if started != nil {
		close(started)
		f.mu.Lock()
		f.submitStarted = nil
		f.mu.Unlock()
	}
	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return []backend.Answer{{QuestionID: answers[0].QuestionID}}, nil
}

func (f *fakeBackend) SubmitAttempt(context.Context, int64) (backend.QuizResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finalizeCalls++
	if f.finalizeErr != nil {
		return backend.QuizResult{}, f.finalizeErr
	}
	return f.result, nil
}

func (f *fakeBackend) submitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submitted)
}

func twoQuestionQuiz() backend.Quiz {
	return backend.Quiz{
		ID:    7,
		Title: "Capitals",
		Questions: []backend.Question{
			{
				ID:           11,
				QuizID:       7,
				QuestionText: "Capital of France?",
				QuestionType: backend.QuestionSingle,
				Points:       1,
				Options: []backend.Option{
					{ID: 1, QuestionID: 11, OptionText: "Paris"},
					{ID: 2, QuestionID: 11, OptionText: "Rome"},
				},
			},
			{
				ID:           12,
				QuizID:       7,
				QuestionText: "Describe Paris.",
				QuestionType: backend.QuestionText,
				Points:       2,
			},
		},
	}
}

func TestStartSeedsOneEmptyAnswerPerQuestion(t *testing.T) {
	api := &fakeBackend{startAttempt: backend.Attempt{ID: 100}}
	runner := NewRunner(api)

	if !runner.Start(context.Background(), twoQuestionQuiz()) {
		t.Fatalf("Start failed: %s", runner.Err())
	}

	answers := runner.Answers()
	if len(answers) != 2 {
		t.Fatalf("answers length = %d, want 2", len(answers))
	}
	for idx, entry := range answers {
		if entry.Answer != nil || entry.Submitted {
			t.Fatalf("entry %d not zeroed: %+v", idx, entry)
		}
	}
	if runner.Index() != 0 {
		t.Fatalf("index = %d, want 0", runner.Index())
	}
}

func TestStartFailureHoldsNoAttempt(t *testing.T) {
	api := &fakeBackend{startErr: errors.New("boom")}
	runner := NewRunner(api)

	if runner.Start(context.Background(), twoQuestionQuiz()) {
		t.Fatalf("expected Start to fail")
	}
	if runner.Err() == "" {
		t.Fatalf("expected recorded error")
	}
	if runner.Attempt() != nil {
		t.Fatalf("expected no attempt held after failure")
	}
}

func TestSetAnswerOverwritesAndClearsSubmitted(t *testing.T) {
	api := &fakeBackend{startAttempt: backend.Attempt{ID: 100}}
	runner := NewRunner(api)
	runner.Start(context.Background(), twoQuestionQuiz())

	runner.SetAnswer(11, Value{Text: "Rome"})
	if !runner.SubmitAnswer(context.Background(), 11) {
		t.Fatalf("SubmitAnswer failed: %s", runner.Err())
	}
	if !runner.CurrentSubmitted() {
		t.Fatalf("expected current answer submitted")
	}

	runner.SetAnswer(11, Value{Text: "Paris"})
	if runner.CurrentSubmitted() {
		t.Fatalf("overwrite should clear submitted flag")
	}
	if got := runner.CurrentAnswer().Text; got != "Paris" {
		t.Fatalf("buffered answer = %q, want %q", got, "Paris")
	}
}

func TestSubmitAnswerResolvesSingleChoiceLabel(t *testing.T) {
	api := &fakeBackend{startAttempt: backend.Attempt{ID: 100}}
	runner := NewRunner(api)
	runner.Start(context.Background(), twoQuestionQuiz())

	runner.SetAnswer(11, Value{Text: "Paris"})
	if !runner.SubmitAnswer(context.Background(), 11) {
		t.Fatalf("SubmitAnswer failed: %s", runner.Err())
	}

	if got := len(api.submitted); got != 1 {
		t.Fatalf("submissions = %d, want 1", got)
	}
	payload := api.submitted[0][0]
	if payload.QuestionID != 11 {
		t.Fatalf("question_id = %d, want 11", payload.QuestionID)
	}
	if len(payload.SelectedOptionIDs) != 1 || payload.SelectedOptionIDs[0] != 1 {
		t.Fatalf("selected_option_ids = %v, want [1]", payload.SelectedOptionIDs)
	}
	if payload.TextAnswer != nil {
		t.Fatalf("text_answer should be empty for single choice")
	}
}

func TestSubmitAnswerUnresolvedLabelSendsEmptyList(t *testing.T) {
	api := &fakeBackend{startAttempt: backend.Attempt{ID: 100}}
	runner := NewRunner(api)
	runner.Start(context.Background(), twoQuestionQuiz())

	runner.SetAnswer(11, Value{Text: "Berlin"})
	if !runner.SubmitAnswer(context.Background(), 11) {
		t.Fatalf("SubmitAnswer failed: %s", runner.Err())
	}

	payload := api.submitted[0][0]
	if payload.SelectedOptionIDs == nil || len(payload.SelectedOptionIDs) != 0 {
		t.Fatalf("selected_option_ids = %v, want empty non-nil slice", payload.SelectedOptionIDs)
	}
}

func TestSubmitAnswerGuards(t *testing.T) {
	api := &fakeBackend{startAttempt: backend.Attempt{ID: 100}}
	runner := NewRunner(api)

	if runner.SubmitAnswer(context.Background(), 11) {
		t.Fatalf("expected failure with no active attempt")
	}
	if runner.Err() != "no active attempt" {
		t.Fatalf("err = %q", runner.Err())
	}

	runner.Start(context.Background(), twoQuestionQuiz())
	if runner.SubmitAnswer(context.Background(), 11) {
		t.Fatalf("expected failure with nothing buffered")
	}
	if runner.Err() != "no answer to submit" {
		t.Fatalf("err = %q", runner.Err())
	}

	runner.SetAnswer(11, Value{Text: "Paris"})
	if runner.SubmitAnswer(context.Background(), 999) {
		t.Fatalf("expected failure for unknown question")
	}

	if got := api.submitCount(); got != 0 {
		t.Fatalf("guard failures must not reach the network, got %d calls", got)
	}
}

func TestConcurrentSubmitSameQuestionIsNoOp(t *testing.T) {
	api := &fakeBackend{
		startAttempt:  backend.Attempt{ID: 100},
		submitBlock:   make(chan struct{}),
		submitStarted: make(chan struct{}),
	}
	runner := NewRunner(api)
	runner.Start(context.Background(), twoQuestionQuiz())
	runner.SetAnswer(11, Value{Text: "Paris"})

	firstDone := make(chan bool)
	go func() {
		firstDone <- runner.SubmitAnswer(context.Background(), 11)
	}()

	<-api.submitStarted
	if runner.SubmitAnswer(context.Background(), 11) {
		t.Fatalf("second concurrent submit should return false")
	}

	close(api.submitBlock)
	if !<-firstDone {
		t.Fatalf("first submit should succeed: %s", runner.Err())
	}
	if got := api.submitCount(); got != 1 {
		t.Fatalf("network calls = %d, want 1", got)
	}
}

func TestNextAutoSubmitsBufferedAnswer(t *testing.T) {
	api := &fakeBackend{startAttempt: backend.Attempt{ID: 100}}
	runner := NewRunner(api)
	runner.Start(context.Background(), twoQuestionQuiz())

	runner.SetAnswer(11, Value{Text: "Paris"})
	runner.Next(context.Background())

	if got := api.submitCount(); got != 1 {
		t.Fatalf("expected auto-submit, got %d calls", got)
	}
	if runner.Index() != 1 {
		t.Fatalf("index = %d, want 1", runner.Index())
	}

	answers := runner.Answers()
	if !answers[0].Submitted {
		t.Fatalf("first answer should be marked submitted")
	}
}

func TestNextClampsAtLastIndex(t *testing.T) {
	api := &fakeBackend{startAttempt: backend.Attempt{ID: 100}}
	runner := NewRunner(api)
	runner.Start(context.Background(), twoQuestionQuiz())

	runner.Next(context.Background())
	runner.Next(context.Background())
	runner.Next(context.Background())

	if runner.Index() != 1 {
		t.Fatalf("index = %d, want clamped 1", runner.Index())
	}
	if !runner.IsLast() {
		t.Fatalf("expected IsLast at final index")
	}
}

func TestPreviousClampsAtZero(t *testing.T) {
	api := &fakeBackend{startAttempt: backend.Attempt{ID: 100}}
	runner := NewRunner(api)
	runner.Start(context.Background(), twoQuestionQuiz())

	runner.Previous()
	if runner.Index() != 0 {
		t.Fatalf("index = %d, want 0", runner.Index())
	}
	if !runner.IsFirst() {
		t.Fatalf("expected IsFirst at index 0")
	}
}

func TestGoToClampsAndForwardJumpAutoSubmits(t *testing.T) {
	api := &fakeBackend{startAttempt: backend.Attempt{ID: 100}}
	runner := NewRunner(api)
	runner.Start(context.Background(), twoQuestionQuiz())

	runner.SetAnswer(11, Value{Text: "Paris"})
	runner.GoTo(context.Background(), 5)

	if runner.Index() != 1 {
		t.Fatalf("index = %d, want clamped 1", runner.Index())
	}
	if got := api.submitCount(); got != 1 {
		t.Fatalf("forward jump should auto-submit, got %d calls", got)
	}

	runner.GoTo(context.Background(), -3)
	if runner.Index() != 0 {
		t.Fatalf("index = %d, want clamped 0", runner.Index())
	}
}

func TestSubmitStoresResultAndCompletes(t *testing.T) {
	api := &fakeBackend{
		startAttempt: backend.Attempt{ID: 100},
		result: backend.QuizResult{
			AttemptID:      100,
			TotalQuestions: 2,
			CorrectAnswers: 1,
		},
	}
	runner := NewRunner(api)
	runner.Start(context.Background(), twoQuestionQuiz())

	if !runner.Submit(context.Background()) {
		t.Fatalf("Submit failed: %s", runner.Err())
	}
	if !runner.Completed() {
		t.Fatalf("expected completed session")
	}
	if runner.Result().TotalQuestions != 2 {
		t.Fatalf("result total_questions = %d, want 2", runner.Result().TotalQuestions)
	}
}

func TestSubmitFailureStaysInProgress(t *testing.T) {
	api := &fakeBackend{
		startAttempt: backend.Attempt{ID: 100},
		finalizeErr:  errors.New("backend down"),
	}
	runner := NewRunner(api)
	runner.Start(context.Background(), twoQuestionQuiz())

	if runner.Submit(context.Background()) {
		t.Fatalf("expected Submit to fail")
	}
	if runner.Completed() {
		t.Fatalf("failed submit must not complete the session")
	}
	if runner.Err() == "" {
		t.Fatalf("expected recorded error")
	}
}

func TestResetReturnsToInitialState(t *testing.T) {
	api := &fakeBackend{startAttempt: backend.Attempt{ID: 100}}
	runner := NewRunner(api)
	runner.Start(context.Background(), twoQuestionQuiz())
	runner.SetAnswer(11, Value{Text: "Paris"})
	runner.Next(context.Background())

	runner.Reset()

	if runner.Attempt() != nil || runner.Quiz() != nil {
		t.Fatalf("expected cleared attempt and quiz")
	}
	if runner.Index() != 0 || runner.TotalQuestions() != 0 {
		t.Fatalf("expected zeroed navigation state")
	}
	if runner.Err() != "" {
		t.Fatalf("expected cleared error")
	}
}

func TestEndToEndTwoQuestionAttempt(t *testing.T) {
	api := &fakeBackend{
		startAttempt: backend.Attempt{ID: 100},
		result: backend.QuizResult{
			AttemptID:      100,
			TotalQuestions: 2,
			CorrectAnswers: 2,
		},
	}
	runner := NewRunner(api)

	if !runner.Start(context.Background(), twoQuestionQuiz()) {
		t.Fatalf("Start failed: %s", runner.Err())
	}

	runner.SetAnswer(11, Value{Text: "Paris"})
	runner.Next(context.Background())

	runner.SetAnswer(12, Value{Text: "City of light."})
	if !runner.SubmitAnswer(context.Background(), 12) {
		t.Fatalf("text submit failed: %s", runner.Err())
	}

	textPayload := api.submitted[1][0]
	if textPayload.TextAnswer == nil || *textPayload.TextAnswer != "City of light." {
		t.Fatalf("text_answer payload = %v", textPayload.TextAnswer)
	}

	if !runner.Submit(context.Background()) {
		t.Fatalf("Submit failed: %s", runner.Err())
	}
	if !runner.Completed() {
		t.Fatalf("expected completed")
	}
	if runner.Result().TotalQuestions != 2 {
		t.Fatalf("total_questions = %d, want 2", runner.Result().TotalQuestions)
	}
	if runner.AnsweredCount() != 2 || runner.SubmittedCount() != 2 {
		t.Fatalf("answered=%d submitted=%d, want 2/2", runner.AnsweredCount(), runner.SubmittedCount())
	}
}

func TestMultipleChoiceResolvesEachLabel(t *testing.T) {
	quiz := backend.Quiz{
		ID: 9,
		Questions: []backend.Question{
			{
				ID:           21,
				QuestionType: backend.QuestionMultiple,
				Options: []backend.Option{
					{ID: 31, OptionText: "red"},
					{ID: 32, OptionText: "green"},
					{ID: 33, OptionText: "blue"},
				},
			},
		},
	}

	api := &fakeBackend{startAttempt: backend.Attempt{ID: 100}}
	runner := NewRunner(api)
	runner.Start(context.Background(), quiz)

	runner.SetAnswer(21, Value{Labels: []string{"red", "blue"}})
	if !runner.SubmitAnswer(context.Background(), 21) {
		t.Fatalf("SubmitAnswer failed: %s", runner.Err())
	}

	payload := api.submitted[0][0]
	if len(payload.SelectedOptionIDs) != 2 ||
		payload.SelectedOptionIDs[0] != 31 || payload.SelectedOptionIDs[1] != 33 {
		t.Fatalf("selected_option_ids = %v, want [31 33]", payload.SelectedOptionIDs)
	}
}

func TestSnapshotIsConsistentCopy(t *testing.T) {
	api := &fakeBackend{startAttempt: backend.Attempt{ID: 100}}
	runner := NewRunner(api)
	runner.Start(context.Background(), twoQuestionQuiz())

	runner.SetAnswer(11, Value{Text: "Paris"})
	if !runner.SubmitAnswer(context.Background(), 11) {
		t.Fatalf("SubmitAnswer failed: %s", runner.Err())
	}
	runner.Next(context.Background())

	snap := runner.Snapshot()
	if snap.Attempt == nil || snap.Attempt.ID != 100 {
		t.Fatalf("attempt = %+v", snap.Attempt)
	}
	if snap.Index != 1 || snap.IsFirst || !snap.IsLast {
		t.Fatalf("position: index=%d first=%v last=%v", snap.Index, snap.IsFirst, snap.IsLast)
	}
	if snap.CurrentQuestion == nil || snap.CurrentQuestion.ID != 12 {
		t.Fatalf("current question = %+v", snap.CurrentQuestion)
	}
	if snap.AnsweredCount != 1 || snap.SubmittedCount != 1 {
		t.Fatalf("counts: answered=%d submitted=%d", snap.AnsweredCount, snap.SubmittedCount)
	}
	if snap.Completed || snap.Result != nil || snap.Err != "" {
		t.Fatalf("terminal state leaked: %+v", snap)
	}

	// Mutating the copy must not touch the runner.
	snap.Answers[0].Submitted = false
	snap.Attempt.ID = 999
	if !runner.Answers()[0].Submitted {
		t.Fatalf("runner state mutated through snapshot copy")
	}
	if runner.Attempt().ID != 100 {
		t.Fatalf("attempt mutated through snapshot copy")
	}
}
