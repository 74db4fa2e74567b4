// Package applications tracks candidate applications to job postings.
package applications

import "time"

// Status is the review state of an application.
type Status string

// Application states.
const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// JobSummary is the job context shown to the applicant.
type JobSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CompanyName string `json:"companyName"`
}

// Applicant is the candidate context shown to the recruiter.
type Applicant struct {
	ID          string `json:"id"`
	Fullname    string `json:"fullname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// Application links a candidate to a job.
type Application struct {
	ID          string      `json:"id"`
	JobID       string      `json:"jobId"`
	ApplicantID string      `json:"applicantId"`
	Status      Status      `json:"status"`
	Job         *JobSummary `json:"job,omitempty"`
	Applicant   *Applicant  `json:"applicant,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// StatusForm is the review payload.
type StatusForm struct {
	Status string `json:"status" validate:"required,oneof=pending accepted rejected"`
}
