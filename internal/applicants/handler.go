package applicants

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Mareenraj/ATS/internal/intake"
	"github.com/Mareenraj/ATS/internal/jobs"
	"github.com/Mareenraj/ATS/internal/shared/server/middleware"
	"github.com/Mareenraj/ATS/internal/shared/server/respond"
	"github.com/Mareenraj/ATS/internal/shared/storage/object"
)

const maxUploadSize = 10 << 20 // 10MB

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the public apply endpoint and the recruiter routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/:id/applications", h.apply)

	recruiter := rg.Group("/applicants", middleware.RequireUser())
	recruiter.GET("", h.list)
	recruiter.GET("/export.xlsx", h.export)
	recruiter.GET("/:id", h.detail)
	recruiter.GET("/:id/resume", h.resume)
	recruiter.POST("/:id/analyze", h.analyze)
	recruiter.PATCH("/:id/status", h.updateStatus)
	recruiter.POST("/:id/notes", h.addNote)
	recruiter.DELETE("/:id", h.delete)
}

func (h *Handler) apply(c *gin.Context) {
	jobID := c.Param("id")
	c.Set("jobId", jobID)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	sub := Submission{
		JobID:     jobID,
		SessionID: middleware.SessionIDFromContext(c),
		UserID:    middleware.UserIDFromContext(c),
	}

	fileHeader, err := c.FormFile("resume")
	switch {
	case err == nil:
		file, openErr := fileHeader.Open()
		if openErr != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read resume", nil)
			return
		}
		defer file.Close()
		sub.ResumeName = fileHeader.Filename
		sub.Resume = file
	case errors.Is(err, http.ErrMissingFile):
		// Apply reports the missing resume with the other field errors.
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "validation_error", "resume exceeds upload limit", gin.H{"limitBytes": maxUploadSize})
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid multipart form", gin.H{"reason": err.Error()})
		return
	}

	sub.Form = Form{
		FirstName:   c.PostForm("firstName"),
		LastName:    c.PostForm("lastName"),
		Email:       c.PostForm("email"),
		Phone:       c.PostForm("phone"),
		LinkedIn:    c.PostForm("linkedin"),
		CoverLetter: c.PostForm("coverLetter"),
	}

	a, d, err := h.Svc.Apply(c.Request.Context(), sub)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !d.Admitted {
		writeRejection(c, d)
		return
	}
	c.Set("applicantId", a.ID)
	respond.Created(c, gin.H{
		"message":     "Application submitted successfully!",
		"applicantId": a.ID,
		"jobId":       a.JobID,
	})
}

func writeRejection(c *gin.Context, d intake.Decision) {
	if d.Code() == intake.CodeRateLimited {
		c.Header("Retry-After", strconv.Itoa(d.WaitMinutes*60))
	}
	respond.Messages(c, d.Code().HTTPStatus(), string(d.Code()), d.Messages())
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), listFilter(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.List(c, ToResponses(list))
}

func (h *Handler) export(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), listFilter(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", "attachment; filename=\"applicants.xlsx\"")
	c.Status(http.StatusOK)
	if err := WriteWorkbook(c.Writer, list); err != nil {
		_ = c.Error(err)
	}
}

func (h *Handler) detail(c *gin.Context) {
	h.renderDetail(c, false)
}

func (h *Handler) analyze(c *gin.Context) {
	h.renderDetail(c, true)
}

func (h *Handler) renderDetail(c *gin.Context, analyze bool) {
	id := c.Param("id")
	c.Set("applicantId", id)
	d, err := h.Svc.Detail(c.Request.Context(), middleware.UserIDFromContext(c), id, analyze)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Set("jobId", d.Job.ID)
	respond.OK(c, toDetailResponse(d, h.Svc.now()))
}

func (h *Handler) resume(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicantId", id)
	a, rc, err := h.Svc.OpenResume(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer rc.Close()

	contentType := "application/octet-stream"
	if strings.EqualFold(filepath.Ext(a.ResumeKey), ".pdf") {
		contentType = "application/pdf"
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", downloadName(a.ResumeKey)))
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicantId", id)
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", gin.H{"reason": err.Error()})
		return
	}
	a, err := h.Svc.UpdateStatus(c.Request.Context(), middleware.UserIDFromContext(c), id, Status(req.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, gin.H{
		"message":   "Status updated successfully!",
		"applicant": ToResponse(a),
	})
}

type noteRequest struct {
	Note string `json:"note"`
}

func (h *Handler) addNote(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicantId", id)
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", gin.H{"reason": err.Error()})
		return
	}
	note, err := h.Svc.AddNote(c.Request.Context(), middleware.UserIDFromContext(c), id, req.Note)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.Created(c, gin.H{
		"message": "Note added successfully!",
		"note":    toNoteResponse(note),
	})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicantId", id)
	a, err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"message": fmt.Sprintf("Applicant \"%s\" has been deleted.", a.FullName())})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var fields FieldErrors
	switch {
	case errors.As(err, &fields):
		respond.Validation(c, fields)
	case errors.Is(err, ErrNotFound), errors.Is(err, jobs.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, object.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Resume file not found.", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "applicant request failed", nil)
	}
}

func listFilter(c *gin.Context) ListFilter {
	return ListFilter{
		JobID:  strings.TrimSpace(c.Query("job")),
		Status: Status(strings.TrimSpace(c.Query("status"))),
	}
}

// downloadName strips the random storage prefix from a resume key.
func downloadName(key string) string {
	name := filepath.Base(key)
	if i := strings.IndexByte(name, '_'); i > 0 && i < len(name)-1 {
		return name[i+1:]
	}
	return name
}
