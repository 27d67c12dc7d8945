package jobs

import (
	"time"

	"github.com/Mareenraj/ATS/internal/intake"
)

// DateLayout is the wire format for deadlines.
const DateLayout = "2006-01-02"

// EmploymentType is the two-letter employment code.
type EmploymentType string

const (
	FullTime   EmploymentType = "FT"
	PartTime   EmploymentType = "PT"
	Contract   EmploymentType = "CT"
	Internship EmploymentType = "IN"
)

var employmentLabels = map[EmploymentType]string{
	FullTime:   "Full-time",
	PartTime:   "Part-time",
	Contract:   "Contract",
	Internship: "Internship",
}

// Valid reports whether t is a known employment type.
func (t EmploymentType) Valid() bool {
	_, ok := employmentLabels[t]
	return ok
}

// Label returns the display name, e.g. "Full-time".
func (t EmploymentType) Label() string {
	return employmentLabels[t]
}

// Job is a posting owned by a recruiter.
type Job struct {
	ID               string
	Title            string
	Description      string
	Location         string
	EmploymentType   EmploymentType
	SalaryRange      string
	Requirements     string
	Responsibilities string
	Deadline         time.Time
	IsActive         bool
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ApplicantCount   int
}

// Expired reports whether now's date is past the deadline date.
func (j Job) Expired(now time.Time) bool {
	return intake.Expired(j.Deadline, now)
}

// Input carries the editable fields of a posting.
type Input struct {
	Title            string
	Description      string
	Location         string
	EmploymentType   EmploymentType
	SalaryRange      string
	Requirements     string
	Responsibilities string
	Deadline         string
	IsActive         *bool
}

// Filter narrows job listings.
type Filter struct {
	ActiveOnly bool
	OwnerID    string
}
