package users

import (
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/hireboard/hireboard/internal/saved"
	"github.com/hireboard/hireboard/internal/shared"
)

// DefaultProfilePhoto is assigned to accounts registered without a photo.
const DefaultProfilePhoto = "https://res.cloudinary.com/dz1qj3x4h/image/upload/v1709301234/default-profile-photo.png"

// Profile holds the free-form part of a user account.
type Profile struct {
	Bio                string   `json:"bio"`
	Skills             []string `json:"skills"`
	Resume             string   `json:"resume"`
	ResumeOriginalName string   `json:"resumeOriginalName"`
	Company            string   `json:"company,omitempty"`
	ProfilePhoto       string   `json:"profilePhoto"`
}

// User is a registered account without credential material.
type User struct {
	ID          string      `json:"id"`
	Fullname    string      `json:"fullname"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phoneNumber"`
	Role        shared.Role `json:"role"`
	Profile     Profile     `json:"profile"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Me is the authoritative view of the current user with saved jobs resolved.
type Me struct {
	User
	SavedJobs []saved.SavedJob `json:"savedJobs"`
}

// NewUser carries the fields persisted on registration.
type NewUser struct {
	ID           string
	Fullname     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Role         shared.Role
	Profile      Profile
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Fullname    string `json:"fullname" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required,min=6"`
	Role        string `json:"role" validate:"required,oneof=candidate recruiter"`
}

// ProfileUpdate carries a partial profile change. Empty fields are left untouched.
type ProfileUpdate struct {
	Fullname    string    `json:"fullname"`
	Email       string    `json:"email" validate:"omitempty,email"`
	PhoneNumber string    `json:"phoneNumber"`
	Bio         string    `json:"bio"`
	Skills      SkillList `json:"skills"`
}

// SkillList accepts either a JSON array or a comma separated string.
type SkillList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *SkillList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = normalizeSkills(list)
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*s = normalizeSkills(strings.Split(joined, ","))
	return nil
}

// normalizeSkills trims entries and drops blanks and case-insensitive duplicates,
// keeping the first spelling seen.
func normalizeSkills(raw []string) []string {
	fold := cases.Fold()
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, skill := range raw {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := fold.String(skill)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill)
	}
	return out
}
