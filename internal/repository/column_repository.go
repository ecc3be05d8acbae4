package repository

import (
	"github.com/Chinmay2660/tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormColumnRepository is a GORM implementation of ColumnRepository
type GormColumnRepository struct {
	db *gorm.DB
}

// NewColumnRepository creates a new ColumnRepository
func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &GormColumnRepository{db: db}
}

// Create creates a new column
func (r *GormColumnRepository) Create(column *models.Column) error {
	return r.db.Create(column).Error
}

// FindOwned finds a column by ID scoped to its owner
func (r *GormColumnRepository) FindOwned(id, userID uint64) (*models.Column, error) {
	var column models.Column
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&column).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

// FindOwnedMany finds several columns by ID scoped to their owner
func (r *GormColumnRepository) FindOwnedMany(ids []uint64, userID uint64) ([]models.Column, error) {
	var columns []models.Column
	if err := r.db.Where("id IN ? AND user_id = ?", ids, userID).Find(&columns).Error; err != nil {
		return nil, err
	}
	return columns, nil
}

// ListByUser lists a user's columns in board order
func (r *GormColumnRepository) ListByUser(userID uint64) ([]models.Column, error) {
	var columns []models.Column
	if err := r.db.Where("user_id = ?", userID).Order("position ASC").Find(&columns).Error; err != nil {
		return nil, err
	}
	return columns, nil
}

// Update saves a column
func (r *GormColumnRepository) Update(column *models.Column) error {
	return r.db.Save(column).Error
}

// Delete removes a column and the jobs it contains. The cascade is a
// handler-level responsibility, not a database constraint, so both deletes
// run in one transaction.
func (r *GormColumnRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("column_id = ?", id).Delete(&models.Job{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Column{}, id).Error
	})
}

// MaxOrder returns the highest board position among a user's columns
func (r *GormColumnRepository) MaxOrder(userID uint64) (int, error) {
	var max *int
	err := r.db.Model(&models.Column{}).
		Where("user_id = ?", userID).
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
