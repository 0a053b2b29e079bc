package backend

import "encoding/json"

type QuestionType string

const (
	QuestionSingle   QuestionType = "single"
	QuestionMultiple QuestionType = "multiple"
	QuestionText     QuestionType = "text"
)

type Tag struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

type Option struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct"`
}

type Question struct {
	ID           int64        `json:"id"`
	QuizID       int64        `json:"quiz_id"`
	QuestionText string       `json:"question_text"`
	QuestionType QuestionType `json:"question_type"`
	Points       float64      `json:"points"`
	Options      []Option     `json:"options"`
}

// Quiz carries questions only in detail views; list endpoints omit them.
type Quiz struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatorID   int64      `json:"creator_id"`
	IsPublic    bool       `json:"is_public"`
	Tags        []Tag      `json:"tags"`
	Questions   []Question `json:"questions,omitempty"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   *string    `json:"updated_at"`
}

type User struct {
	ID         int64   `json:"id"`
	Email      string  `json:"email"`
	Username   string  `json:"username"`
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Role       string  `json:"role"`
	IsActive   bool    `json:"is_active"`
	TotalScore float64 `json:"total_score"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  *string `json:"updated_at"`
}

type TokenInfo struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Attempt struct {
	ID            int64   `json:"id"`
	QuizID        int64   `json:"quiz_id"`
	UserID        int64   `json:"user_id"`
	AttemptNumber int     `json:"attempt_number"`
	Score         float64 `json:"score"`
	StartedAt     string  `json:"started_at"`
	FinishedAt    *string `json:"finished_at"`
	CreatedAt     string  `json:"created_at"`
}

// AnswerSubmit is the wire form of one answered question. Exactly one of
// TextAnswer / SelectedOptionIDs is populated depending on the question type.
type AnswerSubmit struct {
	QuestionID        int64
	TextAnswer        *string
	SelectedOptionIDs []int64
}

// MarshalJSON keeps a non-nil empty SelectedOptionIDs slice on the wire as []
// (unresolved single-choice answers must submit an empty list, not omit it).
func (a AnswerSubmit) MarshalJSON() ([]byte, error) {
	payload := map[string]any{"question_id": a.QuestionID}
	if a.TextAnswer != nil {
		payload["text_answer"] = *a.TextAnswer
	}
	if a.SelectedOptionIDs != nil {
		payload["selected_option_ids"] = a.SelectedOptionIDs
	}
	return json.Marshal(payload)
}

// Answer is a stored answer record as the backend returns it, both from the
// answer submission endpoint and inside attempt details / quiz results.
type Answer struct {
	ID                int64   `json:"id"`
	AttemptID         int64   `json:"attempt_id"`
	QuestionID        int64   `json:"question_id"`
	TextAnswer        *string `json:"text_answer"`
	SelectedOptionIDs []int64 `json:"selected_option_ids"`
	IsCorrect         *bool   `json:"is_correct"`
	PointsEarned      float64 `json:"points_earned"`
	SubmittedAt       string  `json:"submitted_at"`
}

type QuizResult struct {
	AttemptID       int64    `json:"attempt_id"`
	QuizID          int64    `json:"quiz_id"`
	UserID          int64    `json:"user_id"`
	AttemptNo       int      `json:"attempt_no"`
	TotalQuestions  int      `json:"total_questions"`
	CorrectAnswers  int      `json:"correct_answers"`
	TotalPoints     float64  `json:"total_points"`
	ScorePercentage float64  `json:"score_percentage"`
	Answers         []Answer `json:"answers"`
}

type AttemptDetails struct {
	ID          int64      `json:"id"`
	QuizID      int64      `json:"quiz_id"`
	UserID      int64      `json:"user_id"`
	AttemptNo   int        `json:"attempt_no"`
	Score       float64    `json:"score"`
	StartedAt   string     `json:"started_at"`
	FinishedAt  *string    `json:"finished_at"`
	Questions   []Question `json:"questions"`
	UserAnswers []Answer   `json:"user_answers"`
}

type LeaderboardEntry struct {
	UserID        int64   `json:"user_id"`
	Username      string  `json:"username"`
	Score         float64 `json:"score"`
	AttemptNumber int     `json:"attempt_number"`
	FinishedAt    string  `json:"finished_at"`
}

type Leaderboard struct {
	QuizID  int64              `json:"quiz_id"`
	Entries []LeaderboardEntry `json:"entries"`
}

// AttemptSummary is one scored attempt inside a QuizResultsSummary. The
// latest_attempt variant omits attempt_number.
type AttemptSummary struct {
	AttemptID     int64   `json:"attempt_id"`
	AttemptNumber int     `json:"attempt_number,omitempty"`
	Score         float64 `json:"score"`
	Percentage    float64 `json:"percentage"`
	CompletedAt   string  `json:"completed_at"`
}

// QuizResultsSummary aggregates the signed-in user's finished attempts for one
// quiz. LatestAttempt is nil when nothing has been completed yet.
type QuizResultsSummary struct {
	QuizID          int64            `json:"quiz_id"`
	TotalAttempts   int              `json:"total_attempts"`
	BestScore       float64          `json:"best_score"`
	LatestAttempt   *AttemptSummary  `json:"latest_attempt"`
	AttemptsHistory []AttemptSummary `json:"attempts_history"`
}

type PageMeta struct {
	Total       int  `json:"total"`
	Skip        int  `json:"skip"`
	Limit       int  `json:"limit"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
	TotalPages  int  `json:"total_pages"`
	CurrentPage int  `json:"current_page"`
}

type QuizPage struct {
	Items []Quiz   `json:"data"`
	Meta  PageMeta `json:"meta"`
}

type UserPage struct {
	Items []User   `json:"data"`
	Meta  PageMeta `json:"meta"`
}

type QuizListParams struct {
	Page   int
	Limit  int
	Tag    string
	Search string
}

type UserListParams struct {
	Page   int
	Limit  int
	Search string
}

type OptionInCreate struct {
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct"`
}

type QuestionInCreate struct {
	QuestionText string           `json:"question_text"`
	QuestionType QuestionType     `json:"question_type"`
	Points       float64          `json:"points"`
	Options      []OptionInCreate `json:"options"`
}

type QuizInCreate struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	IsPublic    bool               `json:"is_public"`
	TagNames    []string           `json:"tag_names"`
	Questions   []QuestionInCreate `json:"questions"`
}

type QuizInUpdate struct {
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	IsPublic    *bool              `json:"is_public,omitempty"`
	TagNames    []string           `json:"tag_names,omitempty"`
	Questions   []QuestionInCreate `json:"questions,omitempty"`
}

type QuizGenerateRequest struct {
	Topic         string   `json:"topic"`
	QuestionCount int      `json:"question_count"`
	TagNames      []string `json:"tag_names,omitempty"`
}

type TagInCreate struct {
	Name string `json:"name"`
}

type TagInUpdate struct {
	Name string `json:"name"`
}

type UserInCreate struct {
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Role      *string `json:"role,omitempty"`
}

type UserInUpdate struct {
	Email     *string `json:"email,omitempty"`
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Role      *string `json:"role,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult is the outcome of a successful sign-in or sign-up.
type AuthResult struct {
	User  User
	Token TokenInfo
}

type UserStats struct {
	TotalUsers          int `json:"total_users"`
	ActiveUsers         int `json:"active_users"`
	AdminUsers          int `json:"admin_users"`
	RecentRegistrations int `json:"recent_registrations"`
}
