package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// QuizQuestion is one multiple-choice question with the index of the
// correct option.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

// QuizQuestions is the JSONB-backed question list of a quiz.
type QuizQuestions []QuizQuestion

func (q QuizQuestions) Value() (driver.Value, error) {
	if q == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(q)
}

func (q *QuizQuestions) Scan(src interface{}) error {
	return scanJSON(src, q)
}

// Quiz represents a course placement quiz row.
type Quiz struct {
	ID           string        `db:"id" json:"id"`
	CourseID     *string       `db:"course_id" json:"course_id,omitempty"`
	Title        string        `db:"title" json:"title"`
	PassingScore int           `db:"passing_score" json:"passing_score"`
	Questions    QuizQuestions `db:"questions" json:"questions"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// PublicQuestions strips answer keys for public consumption.
func (q *Quiz) PublicQuestions() []PublicQuizQuestion {
	out := make([]PublicQuizQuestion, len(q.Questions))
	for i, question := range q.Questions {
		out[i] = PublicQuizQuestion{Question: question.Question, Options: question.Options}
	}
	return out
}

// PublicQuizQuestion is a question without its answer key.
type PublicQuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// PublicQuiz is the answer-key-free representation served to visitors.
type PublicQuiz struct {
	ID           string               `json:"id"`
	CourseID     *string              `json:"course_id,omitempty"`
	Title        string               `json:"title"`
	PassingScore int                  `json:"passing_score"`
	Questions    []PublicQuizQuestion `json:"questions"`
}

// QuizResultSummary records a graded submission attached to a lead.
type QuizResultSummary struct {
	Score   int   `json:"score"`
	Total   int   `json:"total"`
	Answers []int `json:"answers"`
}

func (r QuizResultSummary) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *QuizResultSummary) Scan(src interface{}) error {
	return scanJSON(src, r)
}
