package jobs

import "time"

// Response is the JSON shape of a posting.
type Response struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Location            string    `json:"location"`
	EmploymentType      string    `json:"employmentType"`
	EmploymentTypeLabel string    `json:"employmentTypeLabel"`
	SalaryRange         string    `json:"salaryRange"`
	Requirements        string    `json:"requirements"`
	Responsibilities    string    `json:"responsibilities"`
	Deadline            string    `json:"deadline"`
	IsActive            bool      `json:"isActive"`
	IsExpired           bool      `json:"isExpired"`
	CreatedBy           string    `json:"createdBy"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
	ApplicantCount      int       `json:"applicantCount"`
}

// jobRequest is the create/update body. isActive defaults to true on create
// and is left unchanged on update when omitted.
type jobRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Location         string `json:"location"`
	EmploymentType   string `json:"employmentType"`
	SalaryRange      string `json:"salaryRange"`
	Requirements     string `json:"requirements"`
	Responsibilities string `json:"responsibilities"`
	Deadline         string `json:"deadline"`
	IsActive         *bool  `json:"isActive"`
}

func (r jobRequest) input() Input {
	return Input{
		Title:            r.Title,
		Description:      r.Description,
		Location:         r.Location,
		EmploymentType:   EmploymentType(r.EmploymentType),
		SalaryRange:      r.SalaryRange,
		Requirements:     r.Requirements,
		Responsibilities: r.Responsibilities,
		Deadline:         r.Deadline,
		IsActive:         r.IsActive,
	}
}

// ToResponse renders a job for API clients. now decides is_expired.
func ToResponse(job Job, now time.Time) Response {
	return Response{
		ID:                  job.ID,
		Title:               job.Title,
		Description:         job.Description,
		Location:            job.Location,
		EmploymentType:      string(job.EmploymentType),
		EmploymentTypeLabel: job.EmploymentType.Label(),
		SalaryRange:         job.SalaryRange,
		Requirements:        job.Requirements,
		Responsibilities:    job.Responsibilities,
		Deadline:            job.Deadline.Format(DateLayout),
		IsActive:            job.IsActive,
		IsExpired:           job.Expired(now),
		CreatedBy:           job.CreatedBy,
		CreatedAt:           job.CreatedAt,
		UpdatedAt:           job.UpdatedAt,
		ApplicantCount:      job.ApplicantCount,
	}
}

func toResponses(list []Job, now time.Time) []Response {
	out := make([]Response, 0, len(list))
	for _, job := range list {
		out = append(out, ToResponse(job, now))
	}
	return out
}
