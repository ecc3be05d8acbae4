package repository

import (
	"github.com/Chinmay2660/tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormJobRepository is a GORM implementation of JobRepository
type GormJobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &GormJobRepository{db: db}
}

// Create creates a new job
func (r *GormJobRepository) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

// FindOwned finds a job by ID scoped to its owner
func (r *GormJobRepository) FindOwned(id, userID uint64, preload ...string) (*models.Job, error) {
	var job models.Job
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("id = ? AND user_id = ?", id, userID).First(&job).Error; err != nil {
		return nil, err
	}

	return &job, nil
}

// FindOwnedMany finds several jobs by ID scoped to their owner
func (r *GormJobRepository) FindOwnedMany(ids []uint64, userID uint64) ([]models.Job, error) {
	var jobs []models.Job
	if err := r.db.Where("id IN ? AND user_id = ?", ids, userID).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// List retrieves jobs with filtering and pagination
func (r *GormJobRepository) List(filter JobFilter) ([]models.Job, int64, error) {
	var jobs []models.Job

	query := r.db.Model(&models.Job{}).Where("jobs.user_id = ?", filter.UserID)

	if filter.ColumnID != nil {
		query = query.Where("jobs.column_id = ?", *filter.ColumnID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("jobs.position ASC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Preload("Column").Find(&jobs).Error; err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// Update saves a job (full replace)
func (r *GormJobRepository) Update(job *models.Job) error {
	return r.db.Save(job).Error
}

// Delete soft deletes a job and its interview rounds
func (r *GormJobRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.InterviewRound{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Job{}, id).Error
	})
}

// MaxOrderInColumn returns the highest position among jobs in a column
func (r *GormJobRepository) MaxOrderInColumn(columnID uint64) (int, error) {
	var max *int
	err := r.db.Model(&models.Job{}).
		Where("column_id = ?", columnID).
		Select("MAX(position)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

// UpdateOrders assigns each job id its index in the given list
func (r *GormJobRepository) UpdateOrders(ids []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			if err := tx.Model(&models.Job{}).
				Where("id = ?", id).
				Update("position", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
