package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestGormJobRepository_MaxOrderInColumn(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewJobRepository(db)

	mock.ExpectQuery("SELECT MAX\\(position\\) FROM `jobs`").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"MAX(position)"}).AddRow(4))

	max, err := repo.MaxOrderInColumn(7)
	require.NoError(t, err)
	require.Equal(t, 4, max)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormJobRepository_MaxOrderInColumn_EmptyColumn(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewJobRepository(db)

	// MAX over no rows comes back NULL; an empty column reports -1 so the
	// first arrival lands at position 0
	mock.ExpectQuery("SELECT MAX\\(position\\) FROM `jobs`").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"MAX(position)"}).AddRow(nil))

	max, err := repo.MaxOrderInColumn(7)
	require.NoError(t, err)
	require.Equal(t, -1, max)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormJobRepository_UpdateOrders_RunsInOneTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewJobRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `jobs` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `jobs` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateOrders([]uint64{12, 3})
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormJobRepository_UpdateOrders_RollsBackOnFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewJobRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `jobs` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `jobs` SET").
		WillReturnError(gorm.ErrInvalidTransaction)
	mock.ExpectRollback()

	err := repo.UpdateOrders([]uint64{12, 3})
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}
