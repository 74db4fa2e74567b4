// Package jobs manages job postings created by recruiters.
package jobs

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// CompanyRef is the company summary embedded in a job.
type CompanyRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// Job is a posting owned by the recruiter who created it.
type Job struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Requirements    []string   `json:"requirements"`
	Salary          int64      `json:"salary"`
	Location        string     `json:"location"`
	JobType         string     `json:"jobType"`
	ExperienceLevel int        `json:"experienceLevel"`
	Position        int        `json:"position"`
	Company         CompanyRef `json:"company"`
	CreatedBy       string     `json:"createdBy"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ListFilter narrows the public job listing.
type ListFilter struct {
	Keyword string
	Limit   int
	Offset  int
}

// Number accepts a JSON number or a numeric string.
type Number int64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	var raw json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = json.Number(strings.TrimSpace(s))
	}
	if raw == "" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

// CreateForm is the job posting payload. Requirements is a comma separated list.
type CreateForm struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Requirements string `json:"requirements" validate:"required"`
	Salary       Number `json:"salary" validate:"required,gt=0"`
	Location     string `json:"location" validate:"required"`
	JobType      string `json:"jobType" validate:"required"`
	Experience   Number `json:"experience" validate:"required,gte=0"`
	Position     Number `json:"position" validate:"required,gt=0"`
	CompanyID    string `json:"companyId" validate:"required,uuid"`
}

// UpdateForm carries a partial job change. Empty and zero fields are left untouched.
type UpdateForm struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Salary       Number `json:"salary" validate:"gte=0"`
	Location     string `json:"location"`
	JobType      string `json:"jobType"`
	Experience   Number `json:"experience" validate:"gte=0"`
	Position     Number `json:"position" validate:"gte=0"`
}

func splitRequirements(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
