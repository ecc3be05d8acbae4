package handlers

import (
	"net/http"
	"strconv"

	"github.com/Chinmay2660/tracker-api/internal/database"
	"github.com/Chinmay2660/tracker-api/internal/dto"
	"github.com/Chinmay2660/tracker-api/internal/middleware"
	"github.com/Chinmay2660/tracker-api/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ColumnHandler struct{}

func NewColumnHandler() *ColumnHandler {
	return &ColumnHandler{}
}

// CreateColumn creates a new pipeline column at the end of the board
func (h *ColumnHandler) CreateColumn(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	type CreateColumnRequest struct {
		Title string            `json:"title" binding:"required"`
		Role  models.ColumnRole `json:"role"`
		Color string            `json:"color"`
	}

	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	role := req.Role
	if role == "" {
		role = models.ColumnRoleGeneric
	}
	if role != models.ColumnRoleApplied && role != models.ColumnRoleGeneric {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column role"})
		return
	}

	// New columns land at the end of the board
	var max *int
	database.GetDB().Model(&models.Column{}).
		Where("user_id = ?", userID).
		Select("MAX(position)").
		Scan(&max)
	position := 0
	if max != nil {
		position = *max + 1
	}

	column := models.Column{
		UserID: userID,
		Title:  req.Title,
		Role:   role,
		Order:  position,
		Color:  req.Color,
	}

	if err := database.GetDB().Create(&column).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create column"})
		return
	}

	c.JSON(http.StatusCreated, column)
}

// ListColumns returns all of the user's columns in board order
func (h *ColumnHandler) ListColumns(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var columns []models.Column
	if err := database.GetDB().
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&columns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch columns"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"columns": columns,
	})
}

// GetBoard returns every column with its jobs, ready for board rendering
func (h *ColumnHandler) GetBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var columns []models.Column
	if err := database.GetDB().
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&columns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch columns"})
		return
	}

	var jobs []models.Job
	if err := database.GetDB().
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch jobs"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardResponse(columns, jobs))
}

// UpdateColumn updates a column's title, role, or color. Title changes do
// not rewrite past stage-history snapshots.
func (h *ColumnHandler) UpdateColumn(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	columnID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID"})
		return
	}

	var column models.Column
	if err := database.GetDB().
		Where("id = ? AND user_id = ?", columnID, userID).
		First(&column).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if title, ok := rawReq["title"].(string); ok && title != "" {
		column.Title = title
	}
	if color, ok := rawReq["color"].(string); ok {
		column.Color = color
	}
	if roleStr, ok := rawReq["role"].(string); ok {
		role := models.ColumnRole(roleStr)
		if role != models.ColumnRoleApplied && role != models.ColumnRoleGeneric {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column role"})
			return
		}
		column.Role = role
	}

	if err := database.GetDB().Save(&column).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update column"})
		return
	}

	c.JSON(http.StatusOK, column)
}

// DeleteColumn deletes a column and every job in it. The cascade is this
// handler's responsibility, not a database constraint.
func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	columnID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID"})
		return
	}

	var column models.Column
	if err := database.GetDB().
		Where("id = ? AND user_id = ?", columnID, userID).
		First(&column).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		return
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("column_id = ?", column.ID).Delete(&models.Job{}).Error; err != nil {
			return err
		}
		return tx.Delete(&column).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete column"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Column deleted successfully",
	})
}

// ReorderColumns rewrites the board positions of the user's columns to
// match the submitted id order. Unknown ids reject the whole request.
func (h *ColumnHandler) ReorderColumns(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	type ReorderRequest struct {
		ColumnIDs []uint64 `json:"column_ids" binding:"required"`
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(req.ColumnIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one column ID is required"})
		return
	}

	var count int64
	database.GetDB().Model(&models.Column{}).
		Where("id IN ? AND user_id = ?", req.ColumnIDs, userID).
		Count(&count)
	if int(count) != len(req.ColumnIDs) {
		c.JSON(http.StatusNotFound, gin.H{"error": "One or more columns not found"})
		return
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		for i, id := range req.ColumnIDs {
			if err := tx.Model(&models.Column{}).
				Where("id = ?", id).
				Update("position", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder columns"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Columns reordered successfully",
	})
}
