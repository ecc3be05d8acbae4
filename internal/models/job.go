package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StageStatus string

const (
	StageStatusPending   StageStatus = "Pending"
	StageStatusCompleted StageStatus = "Completed"
	StageStatusRejected  StageStatus = "Rejected"
)

// StageHistoryEntry records when a job first entered a column. At most one
// entry exists per column; re-entering a column updates it in place.
type StageHistoryEntry struct {
	ColumnID    uint64    `json:"column_id"`
	ColumnTitle string    `json:"column_title"`
	EnteredDate time.Time `json:"entered_date"`
}

// InterviewStage is a job-scoped snapshot of progress through the pipeline,
// distinct from the scheduling-oriented InterviewRound. At most one entry
// exists per stage; Order defines the user-visible progression.
type InterviewStage struct {
	StageID   uint64      `json:"stage_id"`
	StageName string      `json:"stage_name"`
	Status    StageStatus `json:"status"`
	Date      *time.Time  `json:"date"`
	Order     int         `json:"order"`
}

// Job is a tracked job application.
type Job struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	UserID      uint64     `gorm:"not null;index" json:"user_id"`
	ColumnID    uint64     `gorm:"not null;index" json:"column_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Company     string     `gorm:"type:varchar(255);not null" json:"company"`
	Location    string     `gorm:"type:varchar(255)" json:"location,omitempty"`
	JobURL      *string    `gorm:"type:varchar(1024)" json:"job_url,omitempty"`
	CtcMin      *float64   `json:"ctc_min,omitempty"`
	CtcMax      *float64   `json:"ctc_max,omitempty"`
	AppliedDate *time.Time `json:"applied_date,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
	Order       int        `gorm:"column:position;not null;default:0" json:"order"`

	StageHistory    datatypes.JSONSlice[StageHistoryEntry] `json:"stage_history"`
	InterviewStages datatypes.JSONSlice[InterviewStage]    `json:"interview_stages"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Column Column `gorm:"foreignKey:ColumnID" json:"column,omitempty"`
}
