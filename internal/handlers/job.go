package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	apierrors "github.com/Chinmay2660/tracker-api/internal/errors"
	"github.com/Chinmay2660/tracker-api/internal/middleware"
	"github.com/Chinmay2660/tracker-api/internal/models"
	"github.com/Chinmay2660/tracker-api/internal/services"
	"github.com/Chinmay2660/tracker-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// JobHandler coordinates job-related HTTP handlers.
type JobHandler struct {
	jobService *services.JobService
	aiService  *services.AIService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService *services.JobService, aiService *services.AIService) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		aiService:  aiService,
	}
}

// ListJobs returns the current user's jobs, optionally filtered by column
func (h *JobHandler) ListJobs(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var columnID *uint64
	if columnIDStr := c.Query("column_id"); columnIDStr != "" {
		id, err := strconv.ParseUint(columnIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid column_id")
			return
		}
		columnID = &id
	}

	params := utils.GetPaginationParams(c)

	jobs, total, err := h.jobService.ListJobs(services.ListJobsInput{
		UserID:   userID,
		ColumnID: columnID,
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch jobs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs": jobs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetJob returns a specific job by ID
// Job is already loaded by RequireJobAccess middleware
func (h *JobHandler) GetJob(c *gin.Context) {
	jobInterface, exists := c.Get("job")
	if !exists {
		apierrors.InternalError(c, "Job not found in context")
		return
	}

	job, ok := jobInterface.(models.Job)
	if !ok {
		apierrors.InternalError(c, "Invalid job data")
		return
	}

	c.JSON(http.StatusOK, job)
}

// CreateJob creates a new job in a column
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	title, _ := rawReq["title"].(string)
	company, _ := rawReq["company"].(string)
	if title == "" || company == "" {
		apierrors.BadRequest(c, "title and company are required")
		return
	}

	columnID, ok := uintValue(rawReq["column_id"])
	if !ok {
		apierrors.BadRequest(c, "column_id is required")
		return
	}

	input := services.CreateJobInput{
		UserID:   userID,
		ColumnID: columnID,
		Title:    title,
		Company:  company,
	}
	if location, ok := rawReq["location"].(string); ok {
		input.Location = location
	}
	if notes, ok := rawReq["notes"].(string); ok {
		input.Notes = notes
	}
	if v, ok := rawReq["job_url"]; ok {
		input.JobURL = normalizeURL(v)
	}
	if v, ok := rawReq["ctc_min"]; ok {
		input.CtcMin = normalizeNumber(v)
	}
	if v, ok := rawReq["ctc_max"]; ok {
		input.CtcMax = normalizeNumber(v)
	}
	if v, ok := rawReq["applied_date"]; ok {
		input.AppliedDate = parseDateValue(v)
	}

	job, err := h.jobService.CreateJob(input)
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

// MoveJob moves a job to a target column, reconciling its stage history
// and interview stages
func (h *JobHandler) MoveJob(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid job ID")
		return
	}

	type MoveJobRequest struct {
		ColumnID uint64 `json:"column_id" binding:"required"`
	}

	var req MoveJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	job, err := h.jobService.MoveJob(userID, jobID, req.ColumnID)
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// UpdateJob applies a partial edit to a job, running stage reconciliation
// when interview stages or the applied date change
func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid job ID")
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, err := buildUpdateJobInput(rawReq)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	job, err := h.jobService.UpdateJob(userID, jobID, *input)
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ReorderJobs rewrites the positions of jobs within one column to match the
// submitted id order
func (h *JobHandler) ReorderJobs(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ReorderRequest struct {
		JobIDs []uint64 `json:"job_ids" binding:"required"`
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.jobService.ReorderJobs(userID, req.JobIDs); err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Jobs reordered successfully",
	})
}

// DeleteJob deletes a job
func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid job ID")
		return
	}

	if err := h.jobService.DeleteJob(userID, jobID); err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Job deleted successfully",
	})
}

// ParseJobPosting extracts job fields from pasted posting text using AI
func (h *JobHandler) ParseJobPosting(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ParseRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI parsing is not configured. Please set OPENAI_API_KEY environment variable.")
		return
	}

	parsed, err := h.aiService.ParseJobPosting(c.Request.Context(), req.Text)
	if err != nil {
		apierrors.InternalError(c, fmt.Sprintf("Failed to parse posting: %v", err))
		return
	}

	c.JSON(http.StatusOK, parsed)
}

// buildUpdateJobInput translates a raw JSON body into an UpdateJobInput,
// normalizing form sentinels: non-finite or empty-string compensation
// values and empty URLs become absent rather than being persisted as-is.
func buildUpdateJobInput(rawReq map[string]any) (*services.UpdateJobInput, error) {
	var input services.UpdateJobInput

	if v, ok := rawReq["title"].(string); ok {
		input.Title = &v
	}
	if v, ok := rawReq["company"].(string); ok {
		input.Company = &v
	}
	if v, ok := rawReq["location"].(string); ok {
		input.Location = &v
	}
	if v, ok := rawReq["notes"].(string); ok {
		input.Notes = &v
	}

	if v, ok := rawReq["job_url"]; ok {
		input.SetJobURL = true
		input.JobURL = normalizeURL(v)
	}
	if v, ok := rawReq["ctc_min"]; ok {
		input.SetCtcMin = true
		input.CtcMin = normalizeNumber(v)
	}
	if v, ok := rawReq["ctc_max"]; ok {
		input.SetCtcMax = true
		input.CtcMax = normalizeNumber(v)
	}
	if v, ok := rawReq["applied_date"]; ok {
		input.SetAppliedDate = true
		input.AppliedDate = parseDateValue(v)
	}

	if v, ok := rawReq["interview_stages"]; ok {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("invalid interview_stages")
		}
		var stages []models.InterviewStage
		if err := json.Unmarshal(raw, &stages); err != nil {
			return nil, fmt.Errorf("invalid interview_stages")
		}
		input.SetInterviewStages = true
		input.InterviewStages = stages
	}

	return &input, nil
}

// normalizeNumber converts a raw JSON value to a finite float, or nil for
// any sentinel the form may send: null, NaN, infinities, empty or
// non-numeric strings.
func normalizeNumber(v any) *float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
		return &n
	case json.Number:
		f, err := n.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	case string:
		if n == "" {
			return nil
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// normalizeURL drops empty strings so they are never persisted as ""
func normalizeURL(v any) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// parseDateValue accepts RFC3339 timestamps or plain dates
func parseDateValue(v any) *time.Time {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}

func uintValue(v any) (uint64, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 || n != math.Trunc(n) {
			return 0, false
		}
		return uint64(n), true
	case json.Number:
		id, err := strconv.ParseUint(n.String(), 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}

func respondJobError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrJobNotFound),
		errors.Is(err, services.ErrColumnNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNoInterviewStages),
		errors.Is(err, services.ErrNoJobIDsProvided),
		errors.Is(err, services.ErrMixedColumnReorder):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
