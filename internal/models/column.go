package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type ColumnRole string

const (
	// ColumnRoleApplied tags the column whose entered date mirrors the
	// job's applied date.
	ColumnRoleApplied ColumnRole = "applied"
	ColumnRoleGeneric ColumnRole = "generic"
)

// Column is a user-defined pipeline stage on the board.
type Column struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	UserID    uint64         `gorm:"not null;index" json:"user_id"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	Role      ColumnRole     `gorm:"type:varchar(20);not null;default:'generic'" json:"role"`
	Order     int            `gorm:"column:position;not null;default:0" json:"order"`
	Color     string         `gorm:"type:varchar(20)" json:"color,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User User  `gorm:"foreignKey:UserID" json:"-"`
	Jobs []Job `gorm:"foreignKey:ColumnID" json:"jobs,omitempty"`
}

// IsApplied reports whether this column represents the "Applied" stage.
// Columns created before the role field existed rely on their title, so
// the case-insensitive title match is kept as a fallback.
func (c Column) IsApplied() bool {
	return c.Role == ColumnRoleApplied || strings.EqualFold(c.Title, "applied")
}
