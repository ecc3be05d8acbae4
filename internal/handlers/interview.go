package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Chinmay2660/tracker-api/internal/database"
	"github.com/Chinmay2660/tracker-api/internal/middleware"
	"github.com/Chinmay2660/tracker-api/internal/models"
	"github.com/gin-gonic/gin"
)

// InterviewHandler manages interview rounds, the scheduling records behind
// the calendar view. Rounds live independently of a job's interview_stages
// snapshot.
type InterviewHandler struct{}

func NewInterviewHandler() *InterviewHandler {
	return &InterviewHandler{}
}

// ListRounds returns the user's interview rounds, filtered by job or date
// range for the calendar
func (h *InterviewHandler) ListRounds(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	query := database.GetDB().Scopes(database.OwnedBy(userID))

	if jobIDStr := c.Query("job_id"); jobIDStr != "" {
		jobID, err := strconv.ParseUint(jobIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job_id"})
			return
		}
		query = query.Where("job_id = ?", jobID)
	}

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
			return
		}
		query = query.Where("date >= ?", from)
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
			return
		}
		query = query.Where("date < ?", to.Add(24*time.Hour))
	}

	var rounds []models.InterviewRound
	if err := query.Preload("Job").Order("date ASC").Find(&rounds).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch interview rounds"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rounds": rounds,
	})
}

// CreateRound schedules an interview round for one of the user's jobs
func (h *InterviewHandler) CreateRound(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	type CreateRoundRequest struct {
		JobID   uint64             `json:"job_id" binding:"required"`
		Stage   string             `json:"stage" binding:"required"`
		Date    time.Time          `json:"date" binding:"required"`
		Time    string             `json:"time"`
		EndTime string             `json:"end_time"`
		Status  models.RoundStatus `json:"status"`
		Notes   string             `json:"notes"`
	}

	var req CreateRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// The round must reference one of the caller's own jobs
	var job models.Job
	if err := database.GetDB().
		Where("id = ? AND user_id = ?", req.JobID, userID).
		First(&job).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	status := req.Status
	if status == "" {
		status = models.RoundStatusScheduled
	}
	if status != models.RoundStatusScheduled && status != models.RoundStatusCompleted && status != models.RoundStatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	round := models.InterviewRound{
		UserID:  userID,
		JobID:   job.ID,
		Stage:   req.Stage,
		Date:    req.Date,
		Time:    req.Time,
		EndTime: req.EndTime,
		Status:  status,
		Notes:   req.Notes,
	}

	if err := database.GetDB().Create(&round).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create interview round"})
		return
	}

	c.JSON(http.StatusCreated, round)
}

// UpdateRound updates an interview round
func (h *InterviewHandler) UpdateRound(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	roundID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid round ID"})
		return
	}

	var round models.InterviewRound
	if err := database.GetDB().
		Where("id = ? AND user_id = ?", roundID, userID).
		First(&round).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Interview round not found"})
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if stage, ok := rawReq["stage"].(string); ok && stage != "" {
		round.Stage = stage
	}
	if dateStr, ok := rawReq["date"].(string); ok {
		if parsed := parseDateValue(dateStr); parsed != nil {
			round.Date = *parsed
		}
	}
	if timeStr, ok := rawReq["time"].(string); ok {
		round.Time = timeStr
	}
	if endTime, ok := rawReq["end_time"].(string); ok {
		round.EndTime = endTime
	}
	if notes, ok := rawReq["notes"].(string); ok {
		round.Notes = notes
	}
	if statusStr, ok := rawReq["status"].(string); ok {
		status := models.RoundStatus(statusStr)
		if status != models.RoundStatusScheduled && status != models.RoundStatusCompleted && status != models.RoundStatusCancelled {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		round.Status = status
	}

	if err := database.GetDB().Save(&round).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update interview round"})
		return
	}

	c.JSON(http.StatusOK, round)
}

// DeleteRound deletes an interview round
func (h *InterviewHandler) DeleteRound(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	roundID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid round ID"})
		return
	}

	var round models.InterviewRound
	if err := database.GetDB().
		Where("id = ? AND user_id = ?", roundID, userID).
		First(&round).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Interview round not found"})
		return
	}

	if err := database.GetDB().Delete(&round).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete interview round"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Interview round deleted successfully",
	})
}
