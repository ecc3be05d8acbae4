package repository

import (
	"github.com/Chinmay2660/tracker-api/internal/models"
)

// JobRepository defines the interface for job data access
type JobRepository interface {
	// Create creates a new job
	Create(job *models.Job) error

	// FindOwned finds a job by ID scoped to its owner
	FindOwned(id, userID uint64, preload ...string) (*models.Job, error)

	// FindOwnedMany finds several jobs by ID scoped to their owner
	FindOwnedMany(ids []uint64, userID uint64) ([]models.Job, error)

	// List retrieves jobs with filtering and pagination
	List(filter JobFilter) ([]models.Job, int64, error)

	// Update saves a job (full replace)
	Update(job *models.Job) error

	// Delete soft deletes a job
	Delete(id uint64) error

	// MaxOrderInColumn returns the highest position among jobs in a column,
	// or -1 when the column holds no jobs
	MaxOrderInColumn(columnID uint64) (int, error)

	// UpdateOrders assigns each job id its index in the given list
	UpdateOrders(ids []uint64) error
}

// JobFilter holds filtering options for listing jobs
type JobFilter struct {
	UserID   uint64
	ColumnID *uint64
	Page     int
	PageSize int
}

// ColumnRepository defines the interface for pipeline column data access
type ColumnRepository interface {
	// Create creates a new column
	Create(column *models.Column) error

	// FindOwned finds a column by ID scoped to its owner
	FindOwned(id, userID uint64) (*models.Column, error)

	// FindOwnedMany finds several columns by ID scoped to their owner
	FindOwnedMany(ids []uint64, userID uint64) ([]models.Column, error)

	// ListByUser lists a user's columns in board order
	ListByUser(userID uint64) ([]models.Column, error)

	// Update saves a column
	Update(column *models.Column) error

	// Delete removes a column and the jobs it contains
	Delete(id uint64) error

	// MaxOrder returns the highest board position among a user's columns,
	// or -1 when the user has none
	MaxOrder(userID uint64) (int, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByGoogleID finds a user by OAuth subject id
	FindByGoogleID(googleID string) (*models.User, error)

	// Update saves a user
	Update(user *models.User) error
}
