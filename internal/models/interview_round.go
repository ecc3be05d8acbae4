package models

import (
	"time"

	"gorm.io/gorm"
)

type RoundStatus string

const (
	RoundStatusScheduled RoundStatus = "scheduled"
	RoundStatusCompleted RoundStatus = "completed"
	RoundStatusCancelled RoundStatus = "cancelled"
)

// InterviewRound is a scheduling record for a single interview. It lives
// independently of the job's interview_stages snapshot.
type InterviewRound struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	UserID    uint64         `gorm:"not null;index" json:"user_id"`
	JobID     uint64         `gorm:"not null;index" json:"job_id"`
	Stage     string         `gorm:"type:varchar(255);not null" json:"stage"`
	Date      time.Time      `gorm:"not null" json:"date"`
	Time      string         `gorm:"type:varchar(10)" json:"time,omitempty"`
	EndTime   string         `gorm:"type:varchar(10)" json:"end_time,omitempty"`
	Status    RoundStatus    `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status"`
	Notes     string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Job Job `gorm:"foreignKey:JobID" json:"job,omitempty"`
}
