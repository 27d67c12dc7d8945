package applicants

import (
	"time"

	"github.com/Mareenraj/ATS/internal/fit"
	"github.com/Mareenraj/ATS/internal/jobs"
)

// Response is the recruiter-facing view of an applicant.
type Response struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	JobTitle    string    `json:"jobTitle,omitempty"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	LinkedIn    string    `json:"linkedin,omitempty"`
	CoverLetter string    `json:"coverLetter"`
	Status      Status    `json:"status"`
	StatusLabel string    `json:"statusLabel"`
	AppliedAt   time.Time `json:"appliedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type noteResponse struct {
	ID        string    `json:"id"`
	Note      string    `json:"note"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

type resumeResponse struct {
	Outcome string `json:"outcome"`
	Usable  bool   `json:"usable"`
	Text    string `json:"text"`
}

type detailResponse struct {
	Applicant Response        `json:"applicant"`
	Job       jobs.Response   `json:"job"`
	Notes     []noteResponse  `json:"notes"`
	Resume    *resumeResponse `json:"resume"`
	Analysis  *fit.Result     `json:"analysis"`
	Warnings  []string        `json:"warnings"`
}

// ToResponse renders an applicant for recruiter endpoints.
func ToResponse(a Applicant) Response {
	return Response{
		ID:          a.ID,
		JobID:       a.JobID,
		JobTitle:    a.JobTitle,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		FullName:    a.FullName(),
		Email:       a.Email,
		Phone:       a.Phone,
		LinkedIn:    a.LinkedIn,
		CoverLetter: a.CoverLetter,
		Status:      a.Status,
		StatusLabel: a.Status.Label(),
		AppliedAt:   a.AppliedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ToResponses renders a list, never returning nil.
func ToResponses(list []Applicant) []Response {
	out := make([]Response, 0, len(list))
	for _, a := range list {
		out = append(out, ToResponse(a))
	}
	return out
}

func toNoteResponse(n Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		Note:      n.Body,
		CreatedBy: n.CreatedBy,
		CreatedAt: n.CreatedAt,
	}
}

func toDetailResponse(d Detail, now time.Time) detailResponse {
	notes := make([]noteResponse, 0, len(d.Notes))
	for _, n := range d.Notes {
		notes = append(notes, toNoteResponse(n))
	}
	warnings := d.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	resp := detailResponse{
		Applicant: ToResponse(d.Applicant),
		Job:       jobs.ToResponse(d.Job, now),
		Notes:     notes,
		Analysis:  d.Analysis,
		Warnings:  warnings,
	}
	if d.Resume != nil {
		resp.Resume = &resumeResponse{
			Outcome: string(d.Resume.Outcome),
			Usable:  d.Resume.Usable(),
			Text:    d.Resume.String(),
		}
	}
	return resp
}
