package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database. The
// pg_indexes lookup is Postgres-only; other drivers cover these paths via
// the model tag indexes AutoMigrate creates.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Board rendering: jobs are fetched per column, sorted by position
		{"jobs", "idx_jobs_user_column", "user_id, column_id"},
		{"jobs", "idx_jobs_column_position", "column_id, position"},

		// Calendar queries filter rounds by owner and date
		{"interview_rounds", "idx_rounds_user_date", "user_id, date"},
		{"interview_rounds", "idx_rounds_job_id", "job_id"},

		{"columns", "idx_columns_user_position", "user_id, position"},
		{"resume_versions", "idx_resumes_user_id", "user_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Scan(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			log.Printf("Index %s already exists, skipping", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
