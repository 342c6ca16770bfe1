package dto

import "github.com/brightpath-academy/institute-api/internal/models"

// QuizRequest captures quiz create/update payloads.
type QuizRequest struct {
	CourseID     *string              `json:"course_id,omitempty"`
	Title        string               `json:"title" validate:"required,min=3,max=200"`
	PassingScore int                  `json:"passing_score" validate:"gte=0,lte=100"`
	Questions    models.QuizQuestions `json:"questions" validate:"required,min=1"`
}

// QuizSubmission captures a public quiz attempt. Contact details are
// optional; when all three are present the attempt also becomes a lead.
type QuizSubmission struct {
	Name           string  `json:"name" validate:"omitempty,min=2,max=120"`
	Email          string  `json:"email" validate:"omitempty,email"`
	Phone          string  `json:"phone" validate:"omitempty,min=7,max=20"`
	CourseInterest *string `json:"course_interest,omitempty"`
	Answers        []int   `json:"answers" validate:"required,min=1"`
}

// HasContact reports whether the submission carries full contact info.
func (s QuizSubmission) HasContact() bool {
	return s.Name != "" && s.Email != "" && s.Phone != ""
}

// QuizResultResponse reports a graded quiz attempt.
type QuizResultResponse struct {
	QuizID       string `json:"quiz_id"`
	Score        int    `json:"score"`
	Total        int    `json:"total"`
	Correct      int    `json:"correct"`
	PassingScore int    `json:"passing_score"`
	Passed       bool   `json:"passed"`
	LeadID       string `json:"lead_id,omitempty"`
}
