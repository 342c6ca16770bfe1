package dto

// LeadRequest captures a public lead form submission.
type LeadRequest struct {
	Name           string  `json:"name" validate:"required,min=2,max=120"`
	Email          string  `json:"email" validate:"required,email"`
	Phone          string  `json:"phone" validate:"required,min=7,max=20"`
	CourseInterest *string `json:"course_interest,omitempty"`
	Source         string  `json:"source" validate:"required,max=60"`
	Experience     *string `json:"experience,omitempty"`
	Message        *string `json:"message,omitempty" validate:"omitempty,max=2000"`
}

// SyllabusRequest captures the contact form gating a syllabus download.
type SyllabusRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=120"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,min=7,max=20"`
}

// SyllabusDownloadResponse returns the signed syllabus link.
type SyllabusDownloadResponse struct {
	DownloadURL string `json:"download_url"`
	ExpiresAt   string `json:"expires_at"`
}
