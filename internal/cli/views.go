package cli

import (
	"context"
	"fmt"
	"strings"

	"quiz-client/internal/attempt"
	"quiz-client/internal/backend"
)

func (a *App) printQuizPage(page backend.QuizPage, err error) {
	if err != nil {
		a.printErr(err)
		return
	}
	if len(page.Items) == 0 {
		fmt.Fprintln(a.out, "No quizzes found.")
		return
	}

	for _, quiz := range page.Items {
		tags := make([]string, 0, len(quiz.Tags))
		for _, tag := range quiz.Tags {
			tags = append(tags, tag.Name)
		}
		line := fmt.Sprintf("%d. %s", quiz.ID, quiz.Title)
		if len(tags) > 0 {
			line += " [" + strings.Join(tags, ", ") + "]"
		}
		fmt.Fprintln(a.out, line)
	}
	fmt.Fprintf(a.out, "page %d/%d (%d quizzes)\n",
		page.Meta.CurrentPage, page.Meta.TotalPages, page.Meta.Total)
}

func (a *App) runReview(ctx context.Context, rawID string) {
	attemptID, err := parseID(rawID)
	if err != nil {
		fmt.Fprintf(a.out, "invalid attempt id: %v\n", err)
		return
	}

	details, err := a.client.AttemptDetails(ctx, attemptID)
	if err != nil {
		a.printErr(err)
		return
	}

	review := attempt.NewReview(details)
	fmt.Fprintf(a.out, "attempt %d: %d%% in %s\n", details.ID, review.ScorePercentage, review.TimeTaken)
	fmt.Fprintf(a.out, "%d correct, %d incorrect, %d unanswered of %d\n",
		review.CorrectAnswers, review.IncorrectAnswers, review.UnansweredQuestions, review.TotalQuestions)

	for idx, result := range review.Results {
		marker := "-"
		switch {
		case result.IsCorrect == nil:
			marker = "·"
		case *result.IsCorrect:
			marker = "✓"
		default:
			marker = "✗"
		}
		fmt.Fprintf(a.out, "%s Q%d: %s (%.0f/%.0f pts)\n",
			marker, idx+1, result.Question.QuestionText, result.PointsEarned, result.Question.Points)
	}
}

func (a *App) runHistory(ctx context.Context, args []string) {
	// Without a quiz id, fall back to the local cache of finished results so
	// history works offline.
	if len(args) < 2 {
		a.printCachedHistory(ctx)
		return
	}

	quizID, err := parseID(args[1])
	if err != nil {
		fmt.Fprintf(a.out, "invalid quiz id: %v\n", err)
		return
	}

	attempts, err := a.client.ListQuizAttempts(ctx, quizID)
	if err != nil {
		a.printErr(err)
		return
	}

	history := attempt.NewHistory(attempts)
	if history.Total() == 0 {
		fmt.Fprintln(a.out, "No attempts for this quiz.")
		return
	}

	fmt.Fprintf(a.out, "%d attempts, average score %.1f\n", history.Total(), history.AverageScore())
	if best := history.Best(); best != nil {
		fmt.Fprintf(a.out, "best: attempt #%d score %.1f\n", best.AttemptNumber, best.Score)
	}
	for _, item := range history.Attempts() {
		finished := "in progress"
		if item.FinishedAt != nil {
			finished = *item.FinishedAt
		}
		fmt.Fprintf(a.out, "  attempt %d (#%d) score=%.1f finished=%s\n",
			item.ID, item.AttemptNumber, item.Score, finished)
	}
}

func (a *App) printCachedHistory(ctx context.Context) {
	if a.cache == nil {
		fmt.Fprintln(a.out, "usage: history <quiz_id>")
		return
	}
	results, err := a.cache.RecentResults(ctx, 10)
	if err != nil {
		a.printErr(err)
		return
	}
	if len(results) == 0 {
		fmt.Fprintln(a.out, "No cached results yet.")
		return
	}
	fmt.Fprintln(a.out, "Recent results (local cache):")
	for _, item := range results {
		fmt.Fprintf(a.out, "  %s: %d/%d correct, %.0f%% (%s)\n",
			item.QuizTitle, item.CorrectAnswers, item.TotalQuestions,
			item.ScorePercentage, item.FinishedAt.Format("2006-01-02 15:04"))
	}
}

// runResults prints the backend's aggregated per-quiz results for the
// signed-in user.
func (a *App) runResults(ctx context.Context, rawID string) {
	quizID, err := parseID(rawID)
	if err != nil {
		fmt.Fprintf(a.out, "invalid quiz id: %v\n", err)
		return
	}

	summary, err := a.client.QuizResults(ctx, quizID)
	if err != nil {
		a.printErr(err)
		return
	}
	if summary.TotalAttempts == 0 {
		fmt.Fprintln(a.out, "No finished attempts for this quiz.")
		return
	}

	fmt.Fprintf(a.out, "%d attempts, best score %.1f\n", summary.TotalAttempts, summary.BestScore)
	if latest := summary.LatestAttempt; latest != nil {
		fmt.Fprintf(a.out, "latest: attempt %d score=%.1f (%.0f%%) at %s\n",
			latest.AttemptID, latest.Score, latest.Percentage, latest.CompletedAt)
	}
	for _, item := range summary.AttemptsHistory {
		fmt.Fprintf(a.out, "  #%d score=%.1f (%.0f%%) %s\n",
			item.AttemptNumber, item.Score, item.Percentage, item.CompletedAt)
	}
}

func (a *App) runLeaderboard(ctx context.Context, rawID string) {
	quizID, err := parseID(rawID)
	if err != nil {
		fmt.Fprintf(a.out, "invalid quiz id: %v\n", err)
		return
	}

	board, err := a.client.Leaderboard(ctx, quizID)
	if err != nil {
		a.printErr(err)
		return
	}
	if len(board.Entries) == 0 {
		fmt.Fprintln(a.out, "No leaderboard entries.")
		return
	}

	for idx, entry := range board.Entries {
		fmt.Fprintf(a.out, "%d. %s score=%.1f attempt=#%d\n",
			idx+1, entry.Username, entry.Score, entry.AttemptNumber)
	}
}
