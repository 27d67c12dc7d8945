// Package intake decides whether an application may be submitted for a job.
package intake

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Mareenraj/ATS/internal/shared/metrics"
	"github.com/Mareenraj/ATS/internal/shared/session"
)

// Cooldown is the minimum time between two admitted applications from one session.
const Cooldown = 300 * time.Second

// Code identifies why an attempt was rejected.
type Code string

const (
	CodeOwnPosting     Code = "own_posting"
	CodeJobExpired     Code = "job_expired"
	CodeRateLimited    Code = "rate_limited"
	CodeRecruiterEmail Code = "recruiter_email"
	CodeDuplicate      Code = "duplicate_application"
)

// HTTPStatus maps a rejection code to the response status used by the API.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeOwnPosting:
		return http.StatusForbidden
	case CodeJobExpired:
		return http.StatusGone
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeRecruiterEmail:
		return http.StatusUnprocessableEntity
	case CodeDuplicate:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// Job is the part of a posting the guard needs.
type Job struct {
	ID         string
	OwnerID    string
	OwnerEmail string
	Deadline   time.Time
}

// Candidate is the identity submitted with an application.
// UserID is empty for anonymous visitors.
type Candidate struct {
	UserID string
	Email  string
	Phone  string
}

// Rejection is one reason an attempt was refused.
type Rejection struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Decision is the guard's verdict. WaitMinutes is set for rate-limit rejections.
type Decision struct {
	Admitted    bool        `json:"admitted"`
	Rejections  []Rejection `json:"rejections,omitempty"`
	WaitMinutes int         `json:"waitMinutes,omitempty"`
}

// Code returns the code of the first rejection, or "" when admitted.
func (d Decision) Code() Code {
	if len(d.Rejections) == 0 {
		return ""
	}
	return d.Rejections[0].Code
}

// Messages lists every rejection message in evaluation order.
func (d Decision) Messages() []string {
	out := make([]string, 0, len(d.Rejections))
	for _, r := range d.Rejections {
		out = append(out, r.Message)
	}
	return out
}

// ApplicantLookup answers duplicate-contact questions for a job.
type ApplicantLookup interface {
	ExistsByEmail(ctx context.Context, jobID, email string) (bool, error)
	ExistsByPhone(ctx context.Context, jobID, phone string) (bool, error)
}

// Guard evaluates submission policies. It never mutates session state:
// after persisting the applicant the caller saves State{LastAppliedAt: now}.
type Guard struct {
	Applicants ApplicantLookup
}

// Preflight runs the ownership and expiry checks for viewing the apply form.
func (g Guard) Preflight(job Job, viewerID string, now time.Time) Decision {
	if d, rejected := checkAccess(job, viewerID, now); rejected {
		return d
	}
	return admitted()
}

// Admit evaluates a submission attempt. Checks run in a fixed order and the
// first failure among ownership, expiry, cooldown and recruiter email wins.
// Duplicate email and phone are evaluated together so both can be reported.
// Lookup faults are returned as errors, not rejections.
func (g Guard) Admit(ctx context.Context, state session.State, job Job, cand Candidate, now time.Time) (Decision, error) {
	d, err := g.admit(ctx, state, job, cand, now)
	if err != nil {
		return Decision{}, err
	}
	if d.Admitted {
		metrics.IncIntakeDecision("admitted")
	} else {
		metrics.IncIntakeDecision(string(d.Code()))
	}
	return d, nil
}

// Screen runs the checks that need no form data: ownership, expiry and the
// session cooldown. Callers run it before validating the form so a refused
// visitor gets the rejection rather than field errors.
func (g Guard) Screen(state session.State, job Job, userID string, now time.Time) Decision {
	d := screen(state, job, userID, now)
	if !d.Admitted {
		metrics.IncIntakeDecision(string(d.Code()))
	}
	return d
}

func screen(state session.State, job Job, userID string, now time.Time) Decision {
	if d, rejected := checkAccess(job, userID, now); rejected {
		return d
	}
	if !state.LastAppliedAt.IsZero() {
		elapsed := now.Sub(state.LastAppliedAt)
		if elapsed < Cooldown {
			wait := WaitMinutes(elapsed)
			return Decision{
				Rejections:  []Rejection{{Code: CodeRateLimited, Message: fmt.Sprintf("Please wait %d minutes before submitting another application.", wait)}},
				WaitMinutes: wait,
			}
		}
	}
	return admitted()
}

func (g Guard) admit(ctx context.Context, state session.State, job Job, cand Candidate, now time.Time) (Decision, error) {
	if d := screen(state, job, cand.UserID, now); !d.Admitted {
		return d, nil
	}

	email := strings.TrimSpace(cand.Email)
	phone := strings.TrimSpace(cand.Phone)
	if email != "" && email == strings.TrimSpace(job.OwnerEmail) {
		return reject(CodeRecruiterEmail, "You cannot apply using the recruiter's email address."), nil
	}

	var rejections []Rejection
	if g.Applicants != nil {
		dupEmail, err := g.Applicants.ExistsByEmail(ctx, job.ID, email)
		if err != nil {
			return Decision{}, fmt.Errorf("check duplicate email: %w", err)
		}
		if dupEmail {
			rejections = append(rejections, Rejection{Code: CodeDuplicate, Message: fmt.Sprintf("You have already applied for this position with email %s.", email)})
		}
		dupPhone, err := g.Applicants.ExistsByPhone(ctx, job.ID, phone)
		if err != nil {
			return Decision{}, fmt.Errorf("check duplicate phone: %w", err)
		}
		if dupPhone {
			rejections = append(rejections, Rejection{Code: CodeDuplicate, Message: fmt.Sprintf("You have already applied for this position with phone number %s.", phone)})
		}
	}
	if len(rejections) > 0 {
		return Decision{Rejections: rejections}, nil
	}
	return admitted(), nil
}

// WaitMinutes is the whole minutes left in the cooldown plus one.
func WaitMinutes(elapsed time.Duration) int {
	remaining := Cooldown.Seconds() - elapsed.Seconds()
	return int(remaining/60) + 1
}

// Expired reports whether now's calendar date (UTC) is after the deadline's.
func Expired(deadline, now time.Time) bool {
	return dateOf(now).After(dateOf(deadline))
}

func checkAccess(job Job, userID string, now time.Time) (Decision, bool) {
	if userID != "" && userID == job.OwnerID {
		return reject(CodeOwnPosting, "You cannot apply to your own job posting."), true
	}
	if Expired(job.Deadline, now) {
		return reject(CodeJobExpired, "This job posting has expired."), true
	}
	return Decision{}, false
}

func reject(code Code, msg string) Decision {
	return Decision{Rejections: []Rejection{{Code: code, Message: msg}}}
}

func admitted() Decision {
	return Decision{Admitted: true}
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
