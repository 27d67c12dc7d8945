package jobs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mareenraj/ATS/internal/shared/server/middleware"
	"github.com/Mareenraj/ATS/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches public listing routes and owner-only CRUD.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs", h.list)
	rg.GET("/jobs/:id", h.get)
	rg.GET("/jobs/:id/apply", h.preflight)

	owner := rg.Group("", middleware.RequireUser())
	owner.POST("/jobs", h.create)
	owner.PUT("/jobs/:id", h.update)
	owner.DELETE("/jobs/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Svc.ListActive(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.List(c, toResponses(list, h.Svc.now()))
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("jobId", id)
	job, err := h.Svc.GetActive(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, ToResponse(job, h.Svc.now()))
}

// preflight tells the apply form whether the viewer may submit at all.
func (h *Handler) preflight(c *gin.Context) {
	id := c.Param("id")
	c.Set("jobId", id)
	job, d, err := h.Svc.Preflight(c.Request.Context(), id, middleware.UserIDFromContext(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !d.Admitted {
		respond.Messages(c, d.Code().HTTPStatus(), string(d.Code()), d.Messages())
		return
	}
	respond.OK(c, gin.H{"job": ToResponse(job, h.Svc.now())})
}

func (h *Handler) create(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", gin.H{"reason": err.Error()})
		return
	}
	job, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req.input())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Set("jobId", job.ID)
	respond.Created(c, gin.H{
		"message": "Job posted successfully!",
		"job":     ToResponse(job, h.Svc.now()),
	})
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set("jobId", id)
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", gin.H{"reason": err.Error()})
		return
	}
	job, err := h.Svc.Update(c.Request.Context(), id, middleware.UserIDFromContext(c), req.input())
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, gin.H{
		"message": "Job updated successfully!",
		"job":     ToResponse(job, h.Svc.now()),
	})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set("jobId", id)
	if _, err := h.Svc.Delete(c.Request.Context(), id, middleware.UserIDFromContext(c)); err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"message": "Job deleted successfully!"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var fields FieldErrors
	switch {
	case errors.As(err, &fields):
		respond.Validation(c, fields)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "job request failed", nil)
	}
}
