package applicants

import (
	"strings"
	"time"
)

// Status is a stage of the hiring pipeline.
type Status string

const (
	StatusApplied   Status = "applied"
	StatusScreening Status = "screening"
	StatusInterview Status = "interview"
	StatusHired     Status = "hired"
	StatusRejected  Status = "rejected"
)

// Statuses lists the pipeline in display order.
var Statuses = []Status{StatusApplied, StatusScreening, StatusInterview, StatusHired, StatusRejected}

// Valid reports whether s is a known pipeline stage.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Label returns the capitalized stage name.
func (s Status) Label() string {
	if !s.Valid() {
		return string(s)
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

type Applicant struct {
	ID          string
	JobID       string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	LinkedIn    string
	ResumeKey   string
	CoverLetter string
	Status      Status
	AppliedAt   time.Time
	UpdatedAt   time.Time

	// JobTitle is filled in by the service for listings and exports.
	JobTitle string
}

func (a Applicant) FullName() string {
	return a.FirstName + " " + a.LastName
}

// Note is a recruiter comment on an applicant.
type Note struct {
	ID          string
	ApplicantID string
	Body        string
	CreatedBy   string
	CreatedAt   time.Time
}

// Filter narrows applicant listings. An empty JobIDs slice matches nothing
// unless AllJobs is set.
type Filter struct {
	JobIDs  []string
	AllJobs bool
	Status  Status
	Limit   int
}
