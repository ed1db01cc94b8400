package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ujjwal0011/job-portal/internal/apperrors"
	"github.com/ujjwal0011/job-portal/internal/dtos"
	"github.com/ujjwal0011/job-portal/internal/middleware"
	"github.com/ujjwal0011/job-portal/internal/services"
)

type JobHandler struct {
	Jobs *services.JobService
	LLM  *services.LLMService
}

func NewJobHandler(jobs *services.JobService, llm *services.LLMService) *JobHandler {
	return &JobHandler{Jobs: jobs, LLM: llm}
}

// PostJob is POST /job/post (Employer only).
func (h *JobHandler) PostJob(c *gin.Context) {
	var req dtos.PostJobRequest
	if err := c.ShouldBind(&req); err != nil {
		bindFail(c, err)
		return
	}

	job, err := h.Jobs.PostJob(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Job posted successfully.",
		"job":     job,
	})
}

// ListJobs is GET /job/all, the public filterable listing.
func (h *JobHandler) ListJobs(c *gin.Context) {
	var filter dtos.JobFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindFail(c, err)
		return
	}

	jobs, err := h.Jobs.ListJobs(c.Request.Context(), filter)
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"jobs":    jobs,
		"count":   len(jobs),
	})
}

// GetJob is GET /job/:id, public.
func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	job, err := h.Jobs.GetJob(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "job": job})
}

// MyJobs is GET /job/myjobs (Employer only).
func (h *JobHandler) MyJobs(c *gin.Context) {
	jobs, err := h.Jobs.MyJobs(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "myJobs": jobs})
}

// DeleteJob is DELETE /job/delete/:id (owning Employer only).
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.Jobs.DeleteJob(c.Request.Context(), id, middleware.CurrentUser(c)); err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Job deleted."})
}

// Extract is POST /job/extract (Employer only): structured fields from a
// pasted posting, for prefilling the post-job form.
func (h *JobHandler) Extract(c *gin.Context) {
	var req dtos.ExtractJobRequest
	if err := c.ShouldBind(&req); err != nil {
		bindFail(c, err)
		return
	}

	extracted, err := h.LLM.ExtractJobPosting(c.Request.Context(), req.RawText)
	if err != nil {
		Fail(c, err)
		return
	}

	// json.RawMessage keeps the model's JSON from being re-escaped.
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    json.RawMessage(extracted),
	})
}

// paramID parses the :id route parameter; on failure it has already
// written the response.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		Fail(c, apperrors.Validation("Invalid id parameter."))
		return 0, false
	}
	return uint(id), true
}
