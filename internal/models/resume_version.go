package models

import (
	"time"

	"gorm.io/gorm"
)

// ResumeVersion is an uploaded resume file owned by a user.
type ResumeVersion struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	UserID       uint64         `gorm:"not null;index" json:"user_id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	FileName     string         `gorm:"type:varchar(255);not null" json:"-"`
	OriginalName string         `gorm:"type:varchar(255)" json:"original_name"`
	Size         int64          `json:"size"`
	ContentType  string         `gorm:"type:varchar(100)" json:"content_type"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
