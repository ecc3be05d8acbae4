package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Chinmay2660/tracker-api/internal/constants"
	"github.com/Chinmay2660/tracker-api/internal/database"
	"github.com/Chinmay2660/tracker-api/internal/middleware"
	"github.com/Chinmay2660/tracker-api/internal/models"
	"github.com/Chinmay2660/tracker-api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ResumeHandler manages uploaded resume versions. Files live on disk under
// uploadDir; the database row keeps the generated file name.
type ResumeHandler struct {
	uploadDir string
}

func NewResumeHandler(uploadDir string) *ResumeHandler {
	return &ResumeHandler{
		uploadDir: uploadDir,
	}
}

// ListResumes returns the user's resume versions, newest first
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	params := utils.GetPaginationParams(c)

	var total int64
	if err := database.GetDB().Model(&models.ResumeVersion{}).
		Scopes(database.OwnedBy(userID)).
		Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch resumes"})
		return
	}

	var resumes []models.ResumeVersion
	if err := database.GetDB().
		Scopes(database.OwnedBy(userID), database.Paginate(params)).
		Order("created_at DESC").
		Find(&resumes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch resumes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resumes": resumes,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// UploadResume stores a resume file and records it as a new version
func (h *ResumeHandler) UploadResume(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required"})
		return
	}

	if file.Size > constants.MaxResumeSizeBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = file.Filename
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	storedName := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, storedName)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	resume := models.ResumeVersion{
		UserID:       userID,
		Name:         name,
		FileName:     storedName,
		OriginalName: file.Filename,
		Size:         file.Size,
		ContentType:  file.Header.Get("Content-Type"),
	}

	if err := database.GetDB().Create(&resume).Error; err != nil {
		os.Remove(filepath.Join(h.uploadDir, storedName))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save resume"})
		return
	}

	c.JSON(http.StatusCreated, resume)
}

// DownloadResume streams the stored file back to its owner
func (h *ResumeHandler) DownloadResume(c *gin.Context) {
	resume, ok := h.findOwnedResume(c)
	if !ok {
		return
	}

	path := filepath.Join(h.uploadDir, resume.FileName)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resume file missing"})
		return
	}

	c.FileAttachment(path, resume.OriginalName)
}

// RenameResume changes a resume version's display name
func (h *ResumeHandler) RenameResume(c *gin.Context) {
	resume, ok := h.findOwnedResume(c)
	if !ok {
		return
	}

	type RenameRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	resume.Name = req.Name
	if err := database.GetDB().Save(&resume).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rename resume"})
		return
	}

	c.JSON(http.StatusOK, resume)
}

// DeleteResume removes a resume version and its file
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	resume, ok := h.findOwnedResume(c)
	if !ok {
		return
	}

	if err := database.GetDB().Delete(&resume).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete resume"})
		return
	}

	// Best effort: the row is gone, a stray file is harmless
	os.Remove(filepath.Join(h.uploadDir, resume.FileName))

	c.JSON(http.StatusOK, gin.H{
		"message": "Resume deleted successfully",
	})
}

func (h *ResumeHandler) findOwnedResume(c *gin.Context) (models.ResumeVersion, bool) {
	var resume models.ResumeVersion

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return resume, false
	}

	resumeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resume ID"})
		return resume, false
	}

	if err := database.GetDB().
		Where("id = ? AND user_id = ?", resumeID, userID).
		First(&resume).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
		return resume, false
	}

	return resume, true
}
