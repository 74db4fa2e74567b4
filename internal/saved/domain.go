// Package saved maintains the saved-jobs set of each user.
//
// The set is stored one-directionally (user -> job) and is only ever changed
// through the repository's atomic add-if-absent and remove-if-present
// primitives, so concurrent requests converge without application locks.
package saved

import (
	"time"

	"github.com/hireboard/hireboard/internal/shared"
)

// ErrJobNotFound is returned when saving a job that does not exist.
var ErrJobNotFound = shared.NotFoundError("job")

// CompanySummary is the company projection shown next to a saved job.
type CompanySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// Ref is one stored member of a user's saved set.
type Ref struct {
	JobID   string
	SavedAt time.Time
}

// SavedJob is a saved reference resolved to its live job.
type SavedJob struct {
	JobID           string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Location        string         `json:"location"`
	JobType         string         `json:"jobType"`
	Salary          int64          `json:"salary"`
	Position        int            `json:"position"`
	ExperienceLevel int            `json:"experienceLevel"`
	Company         CompanySummary `json:"company"`
	CreatedAt       time.Time      `json:"createdAt"`
	SavedAt         time.Time      `json:"savedAt"`
}

// Operation outcomes reported to the Observer.
const (
	OutcomeAdded    = "added"
	OutcomeRemoved  = "removed"
	OutcomeNoop     = "noop"
	OutcomeNotFound = "not_found"
	OutcomeDangling = "dangling"
	OutcomeError    = "error"
)
