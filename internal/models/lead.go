package models

import "time"

// Lead is an append-only prospective-student contact record captured
// from any public form, tagged with a free-text source.
type Lead struct {
	ID             string             `db:"id" json:"id"`
	Name           string             `db:"name" json:"name"`
	Email          string             `db:"email" json:"email"`
	Phone          string             `db:"phone" json:"phone"`
	CourseInterest *string            `db:"course_interest" json:"course_interest,omitempty"`
	Source         string             `db:"source" json:"source"`
	Experience     *string            `db:"experience" json:"experience,omitempty"`
	Message        *string            `db:"message" json:"message,omitempty"`
	QuizResult     *QuizResultSummary `db:"quiz_result" json:"quiz_result,omitempty"`
	CreatedAt      time.Time          `db:"created_at" json:"created_at"`
}

// LeadFilter captures supported filters for listing leads.
type LeadFilter struct {
	Source string
}
