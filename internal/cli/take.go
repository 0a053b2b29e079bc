package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"quiz-client/internal/attempt"
	"quiz-client/internal/backend"
)

// runTake walks the user through one quiz attempt question by question.
func (a *App) runTake(ctx context.Context, rawID string) {
	quizID, err := parseID(rawID)
	if err != nil {
		fmt.Fprintf(a.out, "invalid quiz id: %v\n", err)
		return
	}
	if !a.sess.IsAuthenticated() {
		fmt.Fprintln(a.out, "sign in first")
		return
	}

	quiz, err := a.client.GetQuiz(ctx, quizID)
	if err != nil {
		a.printErr(err)
		return
	}
	if len(quiz.Questions) == 0 {
		fmt.Fprintln(a.out, "quiz has no questions")
		return
	}

	runner := attempt.NewRunner(a.client)
	if !runner.Start(ctx, quiz) {
		fmt.Fprintf(a.out, "could not start attempt: %s\n", runner.Err())
		return
	}

	fmt.Fprintf(a.out, "\n%s (%d questions)\n", quiz.Title, runner.TotalQuestions())
	fmt.Fprintln(a.out, "answer, then: next / prev / goto <n> / finish / abandon")

	for !runner.Completed() {
		question := runner.CurrentQuestion()
		if question == nil {
			break
		}
		a.printQuestion(runner, *question)

		line, err := a.prompt("> ")
		if err != nil {
			return
		}
		if line == "" {
			continue
		}

		args := strings.Fields(line)
		switch strings.ToLower(args[0]) {
		case "next", "n":
			runner.Next(ctx)
			a.reportErr(runner)
		case "prev", "p":
			runner.Previous()
		case "goto", "g":
			if len(args) != 2 {
				fmt.Fprintln(a.out, "usage: goto <question number>")
				continue
			}
			number, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Fprintln(a.out, "question number must be an integer")
				continue
			}
			runner.GoTo(ctx, number-1)
			a.reportErr(runner)
		case "finish", "submit":
			a.finishAttempt(ctx, runner, quiz)
		case "abandon":
			runner.Reset()
			fmt.Fprintln(a.out, "attempt abandoned")
			return
		default:
			a.captureAnswer(runner, *question, line)
		}
	}
}

func (a *App) printQuestion(runner *attempt.Runner, question backend.Question) {
	fmt.Fprintf(a.out, "\nQ%d/%d: %s", runner.Index()+1, runner.TotalQuestions(), question.QuestionText)
	if runner.CurrentSubmitted() {
		fmt.Fprint(a.out, " [submitted]")
	} else if runner.CurrentAnswer() != nil {
		fmt.Fprint(a.out, " [answered]")
	}
	fmt.Fprintln(a.out)

	switch question.QuestionType {
	case backend.QuestionText:
		fmt.Fprintln(a.out, "(free text)")
	case backend.QuestionMultiple:
		for idx, option := range question.Options {
			fmt.Fprintf(a.out, "%c. %s\n", 'A'+idx, option.OptionText)
		}
		fmt.Fprintln(a.out, "(choose letters, e.g. A,C)")
	default:
		for idx, option := range question.Options {
			fmt.Fprintf(a.out, "%c. %s\n", 'A'+idx, option.OptionText)
		}
	}
}

// captureAnswer interprets free input as an answer for the current question:
// free text for text questions, one letter for single choice, a comma list of
// letters for multiple choice. The buffered value holds option labels; the
// runner resolves labels to option ids at submission time.
func (a *App) captureAnswer(runner *attempt.Runner, question backend.Question, input string) {
	switch question.QuestionType {
	case backend.QuestionText:
		runner.SetAnswer(question.ID, attempt.Value{Text: input})
	case backend.QuestionSingle:
		label, ok := optionLabel(question.Options, input)
		if !ok {
			fmt.Fprintf(a.out, "enter a letter A-%c\n", 'A'+len(question.Options)-1)
			return
		}
		runner.SetAnswer(question.ID, attempt.Value{Text: label})
	case backend.QuestionMultiple:
		labels := make([]string, 0, len(question.Options))
		for _, part := range strings.Split(input, ",") {
			label, ok := optionLabel(question.Options, part)
			if !ok {
				fmt.Fprintf(a.out, "enter letters A-%c separated by commas\n", 'A'+len(question.Options)-1)
				return
			}
			labels = append(labels, label)
		}
		runner.SetAnswer(question.ID, attempt.Value{Labels: labels})
	}
	fmt.Fprintln(a.out, "answer recorded")
}

func (a *App) finishAttempt(ctx context.Context, runner *attempt.Runner, quiz backend.Quiz) {
	// Flush the current question's buffered answer, matching Next's behavior.
	if question := runner.CurrentQuestion(); question != nil {
		if runner.CurrentAnswer() != nil && !runner.CurrentSubmitted() {
			runner.SubmitAnswer(ctx, question.ID)
		}
	}

	if !runner.Submit(ctx) {
		fmt.Fprintf(a.out, "could not submit attempt: %s\n", runner.Err())
		return
	}

	result := runner.Result()
	fmt.Fprintf(a.out, "\nScore: %d/%d correct, %.0f%%\n",
		result.CorrectAnswers, result.TotalQuestions, result.ScorePercentage)

	if a.cache != nil {
		if err := a.cache.SaveResult(ctx, *result, quiz.Title); err != nil {
			fmt.Fprintln(a.out, "(result not cached locally)")
		}
	}
}

func (a *App) reportErr(runner *attempt.Runner) {
	if msg := runner.Err(); msg != "" {
		fmt.Fprintf(a.out, "warning: %s\n", msg)
	}
}

func optionLabel(options []backend.Option, input string) (string, bool) {
	input = strings.ToUpper(strings.TrimSpace(input))
	if len(input) != 1 {
		return "", false
	}
	idx := int(input[0] - 'A')
	if idx < 0 || idx >= len(options) {
		return "", false
	}
	return options[idx].OptionText, true
}
