package attempt

import (
	"fmt"
	"math"

	"quiz-client/internal/backend"
)

// QuestionResult joins one question with the user's stored answer for it.
// UserAnswer is nil and IsCorrect nil when the question went unanswered.
type QuestionResult struct {
	Question     backend.Question
	UserAnswer   *backend.Answer
	IsCorrect    *bool
	PointsEarned float64
}

// Review is a pure projection of a finished attempt's raw records into
// display statistics. Build it fresh from each fetch; it holds no mutable
// state.
type Review struct {
	TotalQuestions      int
	AnsweredQuestions   int
	CorrectAnswers      int
	IncorrectAnswers    int
	UnansweredQuestions int
	ScorePercentage     int
	TimeTaken           string
	Results             []QuestionResult
}

func NewReview(details backend.AttemptDetails) Review {
	review := Review{
		TotalQuestions:    len(details.Questions),
		AnsweredQuestions: len(details.UserAnswers),
		TimeTaken:         formatTimeTaken(details),
	}
	review.UnansweredQuestions = review.TotalQuestions - review.AnsweredQuestions

	answersByQuestion := make(map[int64]*backend.Answer, len(details.UserAnswers))
	for i := range details.UserAnswers {
		answer := &details.UserAnswers[i]
		answersByQuestion[answer.QuestionID] = answer
		if answer.IsCorrect != nil {
			if *answer.IsCorrect {
				review.CorrectAnswers++
			} else {
				review.IncorrectAnswers++
			}
		}
	}

	totalPoints := 0.0
	review.Results = make([]QuestionResult, 0, len(details.Questions))
	for _, question := range details.Questions {
		totalPoints += question.Points

		result := QuestionResult{Question: question}
		if answer, ok := answersByQuestion[question.ID]; ok {
			result.UserAnswer = answer
			result.IsCorrect = answer.IsCorrect
			if answer.IsCorrect != nil && *answer.IsCorrect {
				result.PointsEarned = question.Points
			}
		}
		review.Results = append(review.Results, result)
	}

	if totalPoints > 0 {
		review.ScorePercentage = int(math.Round(details.Score / totalPoints * 100))
	}
	return review
}

// formatTimeTaken renders elapsed wall-clock time as "<m>m <s>s", or "<s>s"
// under a minute. "N/A" when the attempt is unfinished or timestamps are
// unreadable.
func formatTimeTaken(details backend.AttemptDetails) string {
	if details.FinishedAt == nil {
		return "N/A"
	}
	started, err := backend.ParseTime(details.StartedAt)
	if err != nil {
		return "N/A"
	}
	finished, err := backend.ParseTime(*details.FinishedAt)
	if err != nil {
		return "N/A"
	}

	elapsed := int(finished.Sub(started).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	minutes := elapsed / 60
	seconds := elapsed % 60
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
