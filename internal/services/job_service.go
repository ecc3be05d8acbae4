package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Chinmay2660/tracker-api/internal/models"
	"github.com/Chinmay2660/tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrJobNotFound        = errors.New("job not found")
	ErrColumnNotFound     = errors.New("column not found")
	ErrNoInterviewStages  = errors.New("at least one interview stage is required")
	ErrNoJobIDsProvided   = errors.New("at least one job ID is required")
	ErrMixedColumnReorder = errors.New("all jobs in a reorder request must share the same column")
)

// JobService handles job business logic, including the stage-history and
// interview-stage reconciliation that runs on moves and edits.
type JobService struct {
	jobRepo    repository.JobRepository
	columnRepo repository.ColumnRepository

	// mu serializes order assignment. Positions are derived from a
	// max+1 read at write time, so concurrent moves into the same column
	// would otherwise compute the same position.
	mu sync.Mutex
}

// NewJobService creates a new JobService
func NewJobService(jobRepo repository.JobRepository, columnRepo repository.ColumnRepository) *JobService {
	return &JobService{
		jobRepo:    jobRepo,
		columnRepo: columnRepo,
	}
}

// ListJobsInput represents filters for listing jobs
type ListJobsInput struct {
	UserID   uint64
	ColumnID *uint64
	Page     int
	PageSize int
}

// CreateJobInput represents input for creating a job
type CreateJobInput struct {
	UserID      uint64
	ColumnID    uint64
	Title       string
	Company     string
	Location    string
	JobURL      *string
	CtcMin      *float64
	CtcMax      *float64
	AppliedDate *time.Time
	Notes       string
}

// UpdateJobInput represents input for updating a job. Set* flags record
// which optional fields the request actually carried, so absent fields are
// left alone while explicit nulls clear them.
type UpdateJobInput struct {
	Title    *string
	Company  *string
	Location *string
	Notes    *string

	JobURL    *string
	SetJobURL bool

	CtcMin    *float64
	SetCtcMin bool

	CtcMax    *float64
	SetCtcMax bool

	AppliedDate    *time.Time
	SetAppliedDate bool

	InterviewStages    []models.InterviewStage
	SetInterviewStages bool
}

// ListJobs returns a user's jobs, optionally restricted to one column
func (s *JobService) ListJobs(input ListJobsInput) ([]models.Job, int64, error) {
	filter := repository.JobFilter{
		UserID:   input.UserID,
		ColumnID: input.ColumnID,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	jobs, total, err := s.jobRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, total, nil
}

// GetJob returns a job owned by the user
func (s *JobService) GetJob(userID, jobID uint64) (*models.Job, error) {
	job, err := s.jobRepo.FindOwned(jobID, userID, "Column")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return job, nil
}

// CreateJob creates a job in a column, seeding its stage history and
// interview stages with that column and placing it at the end of the
// column's list.
func (s *JobService) CreateJob(input CreateJobInput) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	column, err := s.columnRepo.FindOwned(input.ColumnID, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to find column: %w", err)
	}

	job := &models.Job{
		UserID:      input.UserID,
		ColumnID:    column.ID,
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		JobURL:      input.JobURL,
		CtcMin:      input.CtcMin,
		CtcMax:      input.CtcMax,
		AppliedDate: input.AppliedDate,
		Notes:       input.Notes,
	}

	now := time.Now()
	reconcileStageHistory(job, *column, now)
	ensureInterviewStage(job, *column, now)

	maxOrder, err := s.jobRepo.MaxOrderInColumn(column.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute job position: %w", err)
	}
	job.Order = maxOrder + 1

	if err := s.jobRepo.Create(job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	return job, nil
}

// MoveJob moves a job into a target column. The job's stage history gains
// or refreshes an entry for the column, its interview stages gain one if
// missing, and the job lands at the end of the target column's list.
func (s *JobService) MoveJob(userID, jobID, targetColumnID uint64) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, err := s.jobRepo.FindOwned(jobID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	column, err := s.columnRepo.FindOwned(targetColumnID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to find column: %w", err)
	}

	now := time.Now()
	reconcileStageHistory(job, *column, now)
	ensureInterviewStage(job, *column, now)

	maxOrder, err := s.jobRepo.MaxOrderInColumn(column.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute job position: %w", err)
	}
	job.Order = maxOrder + 1
	job.ColumnID = column.ID

	if err := s.jobRepo.Update(job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}

	return job, nil
}

// UpdateJob applies a partial edit to a job. When a full interview-stage
// list is submitted the job's current column is re-inferred from the
// furthest stage; when the applied date changes without a column
// transition the Applied stage's history timestamp is corrected in place.
func (s *JobService) UpdateJob(userID, jobID uint64, input UpdateJobInput) (*models.Job, error) {
	job, err := s.jobRepo.FindOwned(jobID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	if input.Title != nil {
		job.Title = *input.Title
	}
	if input.Company != nil {
		job.Company = *input.Company
	}
	if input.Location != nil {
		job.Location = *input.Location
	}
	if input.Notes != nil {
		job.Notes = *input.Notes
	}
	if input.SetJobURL {
		job.JobURL = input.JobURL
	}
	if input.SetCtcMin {
		job.CtcMin = input.CtcMin
	}
	if input.SetCtcMax {
		job.CtcMax = input.CtcMax
	}

	appliedChanged := false
	if input.SetAppliedDate && !equalTimePtr(job.AppliedDate, input.AppliedDate) {
		job.AppliedDate = input.AppliedDate
		appliedChanged = true
	}

	if input.SetInterviewStages {
		if err := s.applyStageList(job, input.InterviewStages, appliedChanged); err != nil {
			return nil, err
		}
	} else if appliedChanged {
		current, err := s.columnRepo.FindOwned(job.ColumnID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrColumnNotFound
			}
			return nil, fmt.Errorf("failed to find column: %w", err)
		}
		syncAppliedHistory(job, *current)
	}

	if err := s.jobRepo.Update(job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}

	return job, nil
}

// applyStageList replaces a job's interview stages with a submitted list
// and keeps column_id, stage history, and applied date consistent with it.
func (s *JobService) applyStageList(job *models.Job, stages []models.InterviewStage, appliedChanged bool) error {
	if len(stages) == 0 {
		return ErrNoInterviewStages
	}

	stages = dedupeStages(stages)

	stageIDs := make([]uint64, len(stages))
	for i, stage := range stages {
		stageIDs[i] = stage.StageID
	}

	columns, err := s.columnRepo.FindOwnedMany(stageIDs, job.UserID)
	if err != nil {
		return fmt.Errorf("failed to resolve stage columns: %w", err)
	}
	if len(columns) != len(stageIDs) {
		return ErrColumnNotFound
	}

	columnsByID := make(map[uint64]models.Column, len(columns))
	for _, col := range columns {
		columnsByID[col.ID] = col
	}

	// The current column is inferred from the furthest submitted stage,
	// judged on the order values as submitted.
	inferred := columnsByID[furthestStage(stages).StageID]

	renumberStages(stages)
	job.InterviewStages = stages

	if inferred.ID != job.ColumnID {
		reconcileStageHistory(job, inferred, time.Now())
		job.ColumnID = inferred.ID
	} else if appliedChanged {
		syncAppliedHistory(job, inferred)
	}

	return nil
}

// ReorderJobs assigns each job its index in the submitted list as its
// position. All jobs must exist, belong to the user, and share one column;
// otherwise nothing is changed.
func (s *JobService) ReorderJobs(userID uint64, jobIDs []uint64) error {
	if len(jobIDs) == 0 {
		return ErrNoJobIDsProvided
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := s.jobRepo.FindOwnedMany(jobIDs, userID)
	if err != nil {
		return fmt.Errorf("failed to find jobs: %w", err)
	}
	if len(jobs) != len(jobIDs) {
		return ErrJobNotFound
	}

	columnID := jobs[0].ColumnID
	for _, job := range jobs[1:] {
		if job.ColumnID != columnID {
			return ErrMixedColumnReorder
		}
	}

	if err := s.jobRepo.UpdateOrders(jobIDs); err != nil {
		return fmt.Errorf("failed to reorder jobs: %w", err)
	}

	return nil
}

// DeleteJob removes a job owned by the user
func (s *JobService) DeleteJob(userID, jobID uint64) error {
	job, err := s.jobRepo.FindOwned(jobID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobNotFound
		}
		return fmt.Errorf("failed to find job: %w", err)
	}

	if err := s.jobRepo.Delete(job.ID); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	return nil
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
