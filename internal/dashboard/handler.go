package dashboard

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mareenraj/ATS/internal/applicants"
	"github.com/Mareenraj/ATS/internal/jobs"
	"github.com/Mareenraj/ATS/internal/shared/server/middleware"
	"github.com/Mareenraj/ATS/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", middleware.RequireUser(), h.get)
}

type summaryResponse struct {
	TotalJobs        int                   `json:"totalJobs"`
	ActiveJobs       int                   `json:"activeJobs"`
	TotalApplicants  int                   `json:"totalApplicants"`
	Jobs             []jobs.Response       `json:"jobs"`
	RecentApplicants []applicants.Response `json:"recentApplicants"`
}

func (h *Handler) get(c *gin.Context) {
	sum, err := h.Svc.Summary(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load dashboard", nil)
		return
	}
	now := time.Now()
	if h.Svc.Now != nil {
		now = h.Svc.Now()
	}
	jobList := make([]jobs.Response, 0, len(sum.Jobs))
	for _, job := range sum.Jobs {
		jobList = append(jobList, jobs.ToResponse(job, now))
	}
	respond.OK(c, summaryResponse{
		TotalJobs:        sum.TotalJobs,
		ActiveJobs:       sum.ActiveJobs,
		TotalApplicants:  sum.TotalApplicants,
		Jobs:             jobList,
		RecentApplicants: applicants.ToResponses(sum.RecentApplicants),
	})
}
