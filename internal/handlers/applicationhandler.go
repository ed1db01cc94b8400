package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ujjwal0011/job-portal/internal/dtos"
	"github.com/ujjwal0011/job-portal/internal/middleware"
	"github.com/ujjwal0011/job-portal/internal/services"
)

type ApplicationHandler struct {
	Applications *services.ApplicationService
}

func NewApplicationHandler(applications *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{Applications: applications}
}

// Apply is POST /application/post/:id (Job Seeker only); multipart when a
// fresh resume is attached.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	jobID, ok := paramID(c)
	if !ok {
		return
	}

	var req dtos.ApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		bindFail(c, err)
		return
	}

	app, err := h.Applications.Apply(c.Request.Context(), middleware.CurrentUser(c), jobID, &req, formFile(c, "resume"))
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Application submitted.",
		"application": app,
	})
}

// EmployerGetAll is GET /application/employer/getall (Employer only).
func (h *ApplicationHandler) EmployerGetAll(c *gin.Context) {
	apps, err := h.Applications.ListForEmployer(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "applications": apps})
}

// SeekerGetAll is GET /application/jobseeker/getall (Job Seeker only).
func (h *ApplicationHandler) SeekerGetAll(c *gin.Context) {
	apps, err := h.Applications.ListForSeeker(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "applications": apps})
}

// Delete is DELETE /application/delete/:id; the service decides which side
// of the application the caller owns.
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.Applications.Delete(c.Request.Context(), id, middleware.CurrentUser(c)); err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Application deleted."})
}
