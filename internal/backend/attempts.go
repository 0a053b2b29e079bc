package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

// StartAttempt creates a new attempt record for the quiz and returns it.
func (c *Client) StartAttempt(ctx context.Context, quizID int64) (Attempt, error) {
	var attempt Attempt
	if err := c.doJSON(ctx, http.MethodPost, quizPath(quizID)+"/start", nil, &attempt); err != nil {
		return Attempt{}, err
	}
	return attempt, nil
}

// SubmitAttempt finalizes the attempt; the backend scores it and returns the
// terminal result.
func (c *Client) SubmitAttempt(ctx context.Context, attemptID int64) (QuizResult, error) {
	var result QuizResult
	if err := c.doJSON(ctx, http.MethodPost, attemptPath(attemptID)+"/submit", struct{}{}, &result); err != nil {
		return QuizResult{}, err
	}
	return result, nil
}

func (c *Client) GetAttempt(ctx context.Context, attemptID int64) (Attempt, error) {
	var attempt Attempt
	if err := c.doJSON(ctx, http.MethodGet, attemptPath(attemptID), nil, &attempt); err != nil {
		return Attempt{}, err
	}
	return attempt, nil
}

// ListQuizAttempts returns the signed-in user's attempts for one quiz.
func (c *Client) ListQuizAttempts(ctx context.Context, quizID int64) ([]Attempt, error) {
	var attempts []Attempt
	if err := c.doJSON(ctx, http.MethodGet, quizPath(quizID)+"/attempts", nil, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

func (c *Client) ListMyAttempts(ctx context.Context) ([]Attempt, error) {
	var attempts []Attempt
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/attempts", nil, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

func (c *Client) AttemptDetails(ctx context.Context, attemptID int64) (AttemptDetails, error) {
	var details AttemptDetails
	if err := c.doJSON(ctx, http.MethodGet, attemptPath(attemptID)+"/details", nil, &details); err != nil {
		return AttemptDetails{}, err
	}
	return details, nil
}

// SubmitAnswers posts answers for questions within an attempt. The backend may
// return a single record or a list; both decode to a slice here.
func (c *Client) SubmitAnswers(ctx context.Context, attemptID int64, answers []AnswerSubmit) ([]Answer, error) {
	path := "/api/v1/answers/attempts/" + strconv.FormatInt(attemptID, 10) + "/answers"

	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, path, answers, &raw); err != nil {
		return nil, err
	}

	var many []Answer
	if err := json.Unmarshal(raw, &many); err == nil {
		return many, nil
	}
	var one Answer
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, err
	}
	return []Answer{one}, nil
}

// QuizResults returns the signed-in user's aggregated results for one quiz.
func (c *Client) QuizResults(ctx context.Context, quizID int64) (QuizResultsSummary, error) {
	var summary QuizResultsSummary
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/answers/results/"+strconv.FormatInt(quizID, 10), nil, &summary); err != nil {
		return QuizResultsSummary{}, err
	}
	return summary, nil
}

func (c *Client) GetAnswer(ctx context.Context, answerID int64) (Answer, error) {
	var answer Answer
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/answers/"+strconv.FormatInt(answerID, 10), nil, &answer); err != nil {
		return Answer{}, err
	}
	return answer, nil
}

func attemptPath(attemptID int64) string {
	return "/api/v1/attempts/" + strconv.FormatInt(attemptID, 10)
}
