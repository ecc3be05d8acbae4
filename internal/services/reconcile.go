package services

import (
	"time"

	"github.com/Chinmay2660/tracker-api/internal/models"
)

// stageEntryDate returns the timestamp recorded when a job enters col.
// Entering the Applied column while the job already carries an applied date
// records that date instead of now.
func stageEntryDate(col models.Column, appliedDate *time.Time, now time.Time) time.Time {
	if col.IsApplied() && appliedDate != nil {
		return *appliedDate
	}
	return now
}

// reconcileStageHistory records that job entered col. History holds at most
// one entry per column: a revisited column has its entry updated in place
// (entered date and title snapshot refreshed), an unvisited one gets a new
// entry appended.
func reconcileStageHistory(job *models.Job, col models.Column, now time.Time) {
	entered := stageEntryDate(col, job.AppliedDate, now)

	for i := range job.StageHistory {
		if job.StageHistory[i].ColumnID == col.ID {
			job.StageHistory[i].EnteredDate = entered
			job.StageHistory[i].ColumnTitle = col.Title
			return
		}
	}

	job.StageHistory = append(job.StageHistory, models.StageHistoryEntry{
		ColumnID:    col.ID,
		ColumnTitle: col.Title,
		EnteredDate: entered,
	})
}

// ensureInterviewStage appends an interview-stage entry for col if the job
// has none, ordered after every existing stage. An existing entry is left
// untouched: a plain board move never overwrites a stage's date or status.
func ensureInterviewStage(job *models.Job, col models.Column, now time.Time) {
	for i := range job.InterviewStages {
		if job.InterviewStages[i].StageID == col.ID {
			return
		}
	}

	maxOrder := -1
	for _, s := range job.InterviewStages {
		if s.Order > maxOrder {
			maxOrder = s.Order
		}
	}

	date := now
	job.InterviewStages = append(job.InterviewStages, models.InterviewStage{
		StageID:   col.ID,
		StageName: col.Title,
		Status:    models.StageStatusPending,
		Date:      &date,
		Order:     maxOrder + 1,
	})
}

// dedupeStages drops all but the first occurrence of each stage id from a
// submitted stage list.
func dedupeStages(stages []models.InterviewStage) []models.InterviewStage {
	seen := make(map[uint64]bool, len(stages))
	out := stages[:0]
	for _, s := range stages {
		if seen[s.StageID] {
			continue
		}
		seen[s.StageID] = true
		out = append(out, s)
	}
	return out
}

// furthestStage returns the stage with the highest order value as submitted,
// before any renumbering.
func furthestStage(stages []models.InterviewStage) models.InterviewStage {
	furthest := stages[0]
	for _, s := range stages[1:] {
		if s.Order > furthest.Order {
			furthest = s
		}
	}
	return furthest
}

// renumberStages rewrites stage orders to 0..N-1 in submitted order,
// normalizing gaps left by client-side reordering.
func renumberStages(stages []models.InterviewStage) {
	for i := range stages {
		stages[i].Order = i
	}
}

// syncAppliedHistory retroactively corrects the current column's history
// timestamp after the applied date was edited without a column transition.
// Only the Applied column mirrors the applied date; the title snapshot is
// left as is.
func syncAppliedHistory(job *models.Job, current models.Column) {
	if !current.IsApplied() || job.AppliedDate == nil {
		return
	}

	for i := range job.StageHistory {
		if job.StageHistory[i].ColumnID == current.ID {
			job.StageHistory[i].EnteredDate = *job.AppliedDate
			return
		}
	}
}
