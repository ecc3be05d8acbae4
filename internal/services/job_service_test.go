package services

import (
	"testing"
	"time"

	"github.com/Chinmay2660/tracker-api/internal/models"
	"github.com/Chinmay2660/tracker-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type jobServiceTestEnv struct {
	db      *gorm.DB
	service *JobService
}

func setupJobServiceTestEnv(t *testing.T) jobServiceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Column{},
		&models.Job{},
		&models.InterviewRound{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	service := NewJobService(repository.NewJobRepository(db), repository.NewColumnRepository(db))

	return jobServiceTestEnv{db: db, service: service}
}

func (env jobServiceTestEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: "Test User"}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env jobServiceTestEnv) createColumn(t *testing.T, userID uint64, title string, order int) *models.Column {
	t.Helper()
	col := &models.Column{UserID: userID, Title: title, Role: models.ColumnRoleGeneric, Order: order}
	require.NoError(t, env.db.Create(col).Error)
	return col
}

func TestJobService_CreateJob_SeedsHistoryAndStages(t *testing.T) {
	env := setupJobServiceTestEnv(t)
	user := env.createUser(t, "create@example.com")
	col := env.createColumn(t, user.ID, "Applied", 0)

	job, err := env.service.CreateJob(CreateJobInput{
		UserID:   user.ID,
		ColumnID: col.ID,
		Title:    "Backend Engineer",
		Company:  "Acme",
	})
	require.NoError(t, err)

	require.Equal(t, col.ID, job.ColumnID)
	require.Equal(t, 0, job.Order)
	require.Len(t, job.StageHistory, 1)
	require.Equal(t, col.ID, job.StageHistory[0].ColumnID)
	require.Len(t, job.InterviewStages, 1)
	require.Equal(t, models.StageStatusPending, job.InterviewStages[0].Status)
}

func TestJobService_MoveJob_SequentialOrders(t *testing.T) {
	env := setupJobServiceTestEnv(t)
	user := env.createUser(t, "orders@example.com")
	source := env.createColumn(t, user.ID, "Applied", 0)
	target := env.createColumn(t, user.ID, "Interview", 1)

	var jobs []*models.Job
	for i := 0; i < 3; i++ {
		job, err := env.service.CreateJob(CreateJobInput{
			UserID:   user.ID,
			ColumnID: source.ID,
			Title:    "Job",
			Company:  "Acme",
		})
		require.NoError(t, err)
		jobs = append(jobs, job)
	}

	// Moving into an initially empty column yields 0, 1, 2 in move order
	for i, job := range jobs {
		moved, err := env.service.MoveJob(user.ID, job.ID, target.ID)
		require.NoError(t, err)
		require.Equal(t, i, moved.Order)
		require.Equal(t, target.ID, moved.ColumnID)
	}
}

func TestJobService_MoveJob_AppliedDateSubstitution(t *testing.T) {
	env := setupJobServiceTestEnv(t)
	user := env.createUser(t, "applied@example.com")
	interview := env.createColumn(t, user.ID, "Interview", 0)
	appliedCol := env.createColumn(t, user.ID, "applied", 1)

	appliedDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	job, err := env.service.CreateJob(CreateJobInput{
		UserID:      user.ID,
		ColumnID:    interview.ID,
		Title:       "Job",
		Company:     "Acme",
		AppliedDate: &appliedDate,
	})
	require.NoError(t, err)

	moved, err := env.service.MoveJob(user.ID, job.ID, appliedCol.ID)
	require.NoError(t, err)

	var entry *models.StageHistoryEntry
	for i := range moved.StageHistory {
		if moved.StageHistory[i].ColumnID == appliedCol.ID {
			entry = &moved.StageHistory[i]
		}
	}
	require.NotNil(t, entry)
	require.True(t, entry.EnteredDate.Equal(appliedDate))
}

func TestJobService_MoveJob_ForeignColumnNotFound(t *testing.T) {
	env := setupJobServiceTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	other := env.createUser(t, "other@example.com")
	ownCol := env.createColumn(t, owner.ID, "Applied", 0)
	foreignCol := env.createColumn(t, other.ID, "Applied", 0)

	job, err := env.service.CreateJob(CreateJobInput{
		UserID:   owner.ID,
		ColumnID: ownCol.ID,
		Title:    "Job",
		Company:  "Acme",
	})
	require.NoError(t, err)

	_, err = env.service.MoveJob(owner.ID, job.ID, foreignCol.ID)
	require.ErrorIs(t, err, ErrColumnNotFound)

	// No mutation occurred
	reloaded, err := env.service.GetJob(owner.ID, job.ID)
	require.NoError(t, err)
	require.Equal(t, ownCol.ID, reloaded.ColumnID)
	require.Len(t, reloaded.StageHistory, 1)
}

func TestJobService_UpdateJob_FurthestStageInference(t *testing.T) {
	env := setupJobServiceTestEnv(t)
	user := env.createUser(t, "furthest@example.com")
	applied := env.createColumn(t, user.ID, "Applied", 0)
	recruiter := env.createColumn(t, user.ID, "Recruiter Call", 1)

	appliedDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	job, err := env.service.CreateJob(CreateJobInput{
		UserID:      user.ID,
		ColumnID:    applied.ID,
		Title:       "Job",
		Company:     "Acme",
		AppliedDate: &appliedDate,
	})
	require.NoError(t, err)

	recruiterDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	stages := []models.InterviewStage{
		{StageID: applied.ID, StageName: "Applied", Status: models.StageStatusCompleted, Date: &appliedDate, Order: 0},
		{StageID: recruiter.ID, StageName: "Recruiter Call", Status: models.StageStatusPending, Date: &recruiterDate, Order: 1},
	}

	updated, err := env.service.UpdateJob(user.ID, job.ID, UpdateJobInput{
		InterviewStages:    stages,
		SetInterviewStages: true,
	})
	require.NoError(t, err)

	// Current column is inferred from the furthest submitted stage
	require.Equal(t, recruiter.ID, updated.ColumnID)

	require.Len(t, updated.StageHistory, 2)
	byColumn := map[uint64]models.StageHistoryEntry{}
	for _, entry := range updated.StageHistory {
		byColumn[entry.ColumnID] = entry
	}
	// The Applied entry keeps its original date; the new entry is not
	// substituted since Recruiter Call is not the Applied column
	require.True(t, byColumn[applied.ID].EnteredDate.Equal(appliedDate))
	require.False(t, byColumn[recruiter.ID].EnteredDate.Equal(appliedDate))
}

func TestJobService_UpdateJob_ReverseAppliedSync(t *testing.T) {
	env := setupJobServiceTestEnv(t)
	user := env.createUser(t, "reverse@example.com")
	applied := env.createColumn(t, user.ID, "Applied", 0)

	originalDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	job, err := env.service.CreateJob(CreateJobInput{
		UserID:      user.ID,
		ColumnID:    applied.ID,
		Title:       "Job",
		Company:     "Acme",
		AppliedDate: &originalDate,
	})
	require.NoError(t, err)

	correctedDate := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	updated, err := env.service.UpdateJob(user.ID, job.ID, UpdateJobInput{
		AppliedDate:    &correctedDate,
		SetAppliedDate: true,
	})
	require.NoError(t, err)

	// Editing the applied date retroactively corrects the Applied stage's
	// history timestamp; the column itself does not change
	require.Equal(t, applied.ID, updated.ColumnID)
	require.Len(t, updated.StageHistory, 1)
	require.True(t, updated.StageHistory[0].EnteredDate.Equal(correctedDate))
}

func TestJobService_UpdateJob_EmptyStageListRejected(t *testing.T) {
	env := setupJobServiceTestEnv(t)
	user := env.createUser(t, "empty@example.com")
	col := env.createColumn(t, user.ID, "Applied", 0)

	job, err := env.service.CreateJob(CreateJobInput{
		UserID:   user.ID,
		ColumnID: col.ID,
		Title:    "Job",
		Company:  "Acme",
	})
	require.NoError(t, err)

	_, err = env.service.UpdateJob(user.ID, job.ID, UpdateJobInput{
		InterviewStages:    []models.InterviewStage{},
		SetInterviewStages: true,
	})
	require.ErrorIs(t, err, ErrNoInterviewStages)
}

func TestJobService_UpdateJob_UnknownStageColumnRejected(t *testing.T) {
	env := setupJobServiceTestEnv(t)
	user := env.createUser(t, "unknown@example.com")
	col := env.createColumn(t, user.ID, "Applied", 0)

	job, err := env.service.CreateJob(CreateJobInput{
		UserID:   user.ID,
		ColumnID: col.ID,
		Title:    "Job",
		Company:  "Acme",
	})
	require.NoError(t, err)

	stages := []models.InterviewStage{
		{StageID: col.ID, StageName: "Applied", Order: 0},
		{StageID: 9999, StageName: "Ghost Stage", Order: 1},
	}

	_, err = env.service.UpdateJob(user.ID, job.ID, UpdateJobInput{
		InterviewStages:    stages,
		SetInterviewStages: true,
	})
	require.ErrorIs(t, err, ErrColumnNotFound)
}

func TestJobService_UpdateJob_RenumbersStageOrders(t *testing.T) {
	env := setupJobServiceTestEnv(t)
	user := env.createUser(t, "renumber@example.com")
	applied := env.createColumn(t, user.ID, "Applied", 0)
	interview := env.createColumn(t, user.ID, "Interview", 1)

	job, err := env.service.CreateJob(CreateJobInput{
		UserID:   user.ID,
		ColumnID: applied.ID,
		Title:    "Job",
		Company:  "Acme",
	})
	require.NoError(t, err)

	// Gappy orders from client-side reordering
	stages := []models.InterviewStage{
		{StageID: applied.ID, StageName: "Applied", Order: 4},
		{StageID: interview.ID, StageName: "Interview", Order: 12},
	}

	updated, err := env.service.UpdateJob(user.ID, job.ID, UpdateJobInput{
		InterviewStages:    stages,
		SetInterviewStages: true,
	})
	require.NoError(t, err)

	require.Len(t, updated.InterviewStages, 2)
	for i, s := range updated.InterviewStages {
		require.Equal(t, i, s.Order)
	}
	require.Equal(t, interview.ID, updated.ColumnID)
}

func TestJobService_ReorderJobs_AssignsIndexOrder(t *testing.T) {
	env := setupJobServiceTestEnv(t)
	user := env.createUser(t, "reorder@example.com")
	col := env.createColumn(t, user.ID, "Applied", 0)

	var ids []uint64
	for i := 0; i < 3; i++ {
		job, err := env.service.CreateJob(CreateJobInput{
			UserID:   user.ID,
			ColumnID: col.ID,
			Title:    "Job",
			Company:  "Acme",
		})
		require.NoError(t, err)
		ids = append(ids, job.ID)
	}

	// Reverse the board order
	reversed := []uint64{ids[2], ids[1], ids[0]}
	require.NoError(t, env.service.ReorderJobs(user.ID, reversed))

	for i, id := range reversed {
		job, err := env.service.GetJob(user.ID, id)
		require.NoError(t, err)
		require.Equal(t, i, job.Order)
	}
}

func TestJobService_ReorderJobs_MixedColumnsRejectedEntirely(t *testing.T) {
	env := setupJobServiceTestEnv(t)
	user := env.createUser(t, "mixed@example.com")
	colA := env.createColumn(t, user.ID, "Applied", 0)
	colB := env.createColumn(t, user.ID, "Interview", 1)

	jobA, err := env.service.CreateJob(CreateJobInput{UserID: user.ID, ColumnID: colA.ID, Title: "A", Company: "Acme"})
	require.NoError(t, err)
	jobB, err := env.service.CreateJob(CreateJobInput{UserID: user.ID, ColumnID: colB.ID, Title: "B", Company: "Acme"})
	require.NoError(t, err)

	err = env.service.ReorderJobs(user.ID, []uint64{jobB.ID, jobA.ID})
	require.ErrorIs(t, err, ErrMixedColumnReorder)

	// No job's order was altered
	reloadedA, err := env.service.GetJob(user.ID, jobA.ID)
	require.NoError(t, err)
	require.Equal(t, 0, reloadedA.Order)
	reloadedB, err := env.service.GetJob(user.ID, jobB.ID)
	require.NoError(t, err)
	require.Equal(t, 0, reloadedB.Order)
}

func TestJobService_ReorderJobs_ForeignJobRejected(t *testing.T) {
	env := setupJobServiceTestEnv(t)
	owner := env.createUser(t, "owner2@example.com")
	other := env.createUser(t, "other2@example.com")
	ownCol := env.createColumn(t, owner.ID, "Applied", 0)
	otherCol := env.createColumn(t, other.ID, "Applied", 0)

	ownJob, err := env.service.CreateJob(CreateJobInput{UserID: owner.ID, ColumnID: ownCol.ID, Title: "Mine", Company: "Acme"})
	require.NoError(t, err)
	foreignJob, err := env.service.CreateJob(CreateJobInput{UserID: other.ID, ColumnID: otherCol.ID, Title: "Theirs", Company: "Acme"})
	require.NoError(t, err)

	err = env.service.ReorderJobs(owner.ID, []uint64{ownJob.ID, foreignJob.ID})
	require.ErrorIs(t, err, ErrJobNotFound)
}
