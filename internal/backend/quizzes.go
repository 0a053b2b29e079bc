package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

func (p QuizListParams) encode() string {
	query := url.Values{}
	if p.Page > 0 {
		query.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		query.Set("limit", strconv.Itoa(p.Limit))
	}
	if strings.TrimSpace(p.Tag) != "" {
		query.Set("tag", p.Tag)
	}
	if strings.TrimSpace(p.Search) != "" {
		query.Set("search", p.Search)
	}
	if len(query) == 0 {
		return ""
	}
	return "?" + query.Encode()
}

// ListQuizzes fetches one page of the public quiz listing.
func (c *Client) ListQuizzes(ctx context.Context, params QuizListParams) (QuizPage, error) {
	var page QuizPage
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/quizzes/"+params.encode(), nil, &page); err != nil {
		return QuizPage{}, err
	}
	return page, nil
}

// SearchQuizzes is the free-text variant of ListQuizzes.
func (c *Client) SearchQuizzes(ctx context.Context, params QuizListParams) (QuizPage, error) {
	var page QuizPage
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/quizzes/search"+params.encode(), nil, &page); err != nil {
		return QuizPage{}, err
	}
	return page, nil
}

// GetQuiz returns one quiz with its questions populated.
func (c *Client) GetQuiz(ctx context.Context, quizID int64) (Quiz, error) {
	var quiz Quiz
	if err := c.doJSON(ctx, http.MethodGet, quizPath(quizID), nil, &quiz); err != nil {
		return Quiz{}, err
	}
	return quiz, nil
}

func (c *Client) CreateQuiz(ctx context.Context, req QuizInCreate) (Quiz, error) {
	var quiz Quiz
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/quizzes/", req, &quiz); err != nil {
		return Quiz{}, err
	}
	return quiz, nil
}

func (c *Client) UpdateQuiz(ctx context.Context, quizID int64, req QuizInUpdate) (Quiz, error) {
	var quiz Quiz
	if err := c.doJSON(ctx, http.MethodPut, quizPath(quizID), req, &quiz); err != nil {
		return Quiz{}, err
	}
	return quiz, nil
}

func (c *Client) DeleteQuiz(ctx context.Context, quizID int64) error {
	return c.doJSON(ctx, http.MethodDelete, quizPath(quizID), nil, nil)
}

func (c *Client) Leaderboard(ctx context.Context, quizID int64) (Leaderboard, error) {
	var board Leaderboard
	if err := c.doJSON(ctx, http.MethodGet, quizPath(quizID)+"/leaderboard", nil, &board); err != nil {
		return Leaderboard{}, err
	}
	return board, nil
}

// GenerateQuiz asks the backend to author a quiz on the given topic.
func (c *Client) GenerateQuiz(ctx context.Context, req QuizGenerateRequest) (Quiz, error) {
	var quiz Quiz
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/quizzes/generate", req, &quiz); err != nil {
		return Quiz{}, err
	}
	return quiz, nil
}

func quizPath(quizID int64) string {
	return "/api/v1/quizzes/" + strconv.FormatInt(quizID, 10)
}
