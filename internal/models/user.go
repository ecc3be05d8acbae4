package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name         string         `gorm:"type:varchar(255)" json:"name"`
	Picture      string         `gorm:"type:varchar(512)" json:"picture,omitempty"`
	PasswordHash string         `gorm:"type:varchar(255)" json:"-"`
	GoogleID     *string        `gorm:"type:varchar(255);uniqueIndex" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Columns []Column        `gorm:"foreignKey:UserID" json:"-"`
	Jobs    []Job           `gorm:"foreignKey:UserID" json:"-"`
	Resumes []ResumeVersion `gorm:"foreignKey:UserID" json:"-"`
}
