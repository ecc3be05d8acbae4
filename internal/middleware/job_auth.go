package middleware

import (
	"net/http"
	"strconv"

	"github.com/Chinmay2660/tracker-api/internal/database"
	"github.com/Chinmay2660/tracker-api/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireJobAccess checks if the user owns the job referenced in the URL
// and loads it into the context
func RequireJobAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get job ID from URL parameter
		jobIDStr := c.Param("id")
		jobID, err := strconv.ParseUint(jobIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid job ID",
			})
			c.Abort()
			return
		}

		// Get current user ID
		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		// Ownership check is part of the lookup: a job that exists but
		// belongs to someone else is indistinguishable from a missing one
		var job models.Job
		if err := database.GetDB().
			Preload("Column").
			Where("id = ? AND user_id = ?", jobID, userID).
			First(&job).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Job not found",
			})
			c.Abort()
			return
		}

		c.Set("job", job)
		c.Next()
	}
}
