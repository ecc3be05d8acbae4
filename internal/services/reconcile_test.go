package services

import (
	"testing"
	"time"

	"github.com/Chinmay2660/tracker-api/internal/models"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReconcileStageHistory_AppendsNewEntry(t *testing.T) {
	job := &models.Job{}
	col := models.Column{ID: 2, Title: "Recruiter Call"}
	now := date(2024, 1, 15)

	reconcileStageHistory(job, col, now)

	require.Len(t, job.StageHistory, 1)
	require.Equal(t, uint64(2), job.StageHistory[0].ColumnID)
	require.Equal(t, "Recruiter Call", job.StageHistory[0].ColumnTitle)
	require.Equal(t, now, job.StageHistory[0].EnteredDate)
}

func TestReconcileStageHistory_NeverDuplicates(t *testing.T) {
	job := &models.Job{}
	colA := models.Column{ID: 1, Title: "Applied"}
	colB := models.Column{ID: 2, Title: "Interview"}

	// Bounce between two columns repeatedly
	for i := 0; i < 5; i++ {
		reconcileStageHistory(job, colA, date(2024, 1, 1+i))
		reconcileStageHistory(job, colB, date(2024, 2, 1+i))
	}

	require.Len(t, job.StageHistory, 2)

	seen := map[uint64]int{}
	for _, entry := range job.StageHistory {
		seen[entry.ColumnID]++
	}
	require.Equal(t, 1, seen[1])
	require.Equal(t, 1, seen[2])
}

func TestReconcileStageHistory_RevisitUpdatesInPlace(t *testing.T) {
	job := &models.Job{}
	col := models.Column{ID: 3, Title: "Interview"}

	reconcileStageHistory(job, col, date(2024, 1, 10))

	// Title edited between visits: the snapshot refreshes on re-entry
	col.Title = "Onsite Interview"
	reconcileStageHistory(job, col, date(2024, 1, 20))

	require.Len(t, job.StageHistory, 1)
	require.Equal(t, "Onsite Interview", job.StageHistory[0].ColumnTitle)
	require.Equal(t, date(2024, 1, 20), job.StageHistory[0].EnteredDate)
}

func TestReconcileStageHistory_AppliedDateSubstitution(t *testing.T) {
	applied := date(2024, 1, 10)
	job := &models.Job{AppliedDate: &applied}

	// Title match is case-insensitive
	col := models.Column{ID: 1, Title: "APPLIED"}
	reconcileStageHistory(job, col, date(2024, 3, 1))

	require.Len(t, job.StageHistory, 1)
	require.Equal(t, applied, job.StageHistory[0].EnteredDate)
}

func TestReconcileStageHistory_AppliedRoleSubstitution(t *testing.T) {
	applied := date(2024, 1, 10)
	job := &models.Job{AppliedDate: &applied}

	// A renamed column keeps applied semantics via its role tag
	col := models.Column{ID: 1, Title: "Sent Application", Role: models.ColumnRoleApplied}
	reconcileStageHistory(job, col, date(2024, 3, 1))

	require.Equal(t, applied, job.StageHistory[0].EnteredDate)
}

func TestReconcileStageHistory_NoSubstitutionWithoutAppliedDate(t *testing.T) {
	job := &models.Job{}
	now := date(2024, 3, 1)

	reconcileStageHistory(job, models.Column{ID: 1, Title: "Applied"}, now)

	require.Equal(t, now, job.StageHistory[0].EnteredDate)
}

func TestEnsureInterviewStage_AppendsAfterExisting(t *testing.T) {
	existing := date(2024, 1, 10)
	job := &models.Job{
		InterviewStages: []models.InterviewStage{
			{StageID: 1, StageName: "Applied", Status: models.StageStatusCompleted, Date: &existing, Order: 0},
		},
	}

	now := date(2024, 1, 15)
	ensureInterviewStage(job, models.Column{ID: 2, Title: "Recruiter Call"}, now)

	require.Len(t, job.InterviewStages, 2)
	added := job.InterviewStages[1]
	require.Equal(t, uint64(2), added.StageID)
	require.Equal(t, models.StageStatusPending, added.Status)
	require.Equal(t, 1, added.Order)
	require.NotNil(t, added.Date)
	require.Equal(t, now, *added.Date)
}

func TestEnsureInterviewStage_ExistingEntryUntouched(t *testing.T) {
	stageDate := date(2024, 1, 10)
	job := &models.Job{
		InterviewStages: []models.InterviewStage{
			{StageID: 2, StageName: "Interview", Status: models.StageStatusCompleted, Date: &stageDate, Order: 0},
		},
	}

	ensureInterviewStage(job, models.Column{ID: 2, Title: "Interview"}, date(2024, 5, 1))

	require.Len(t, job.InterviewStages, 1)
	require.Equal(t, models.StageStatusCompleted, job.InterviewStages[0].Status)
	require.Equal(t, stageDate, *job.InterviewStages[0].Date)
}

func TestFurthestStage_UsesSubmittedOrderValues(t *testing.T) {
	stages := []models.InterviewStage{
		{StageID: 5, Order: 3},
		{StageID: 9, Order: 7},
		{StageID: 2, Order: 0},
	}

	require.Equal(t, uint64(9), furthestStage(stages).StageID)
}

func TestRenumberStages_ClosesGaps(t *testing.T) {
	stages := []models.InterviewStage{
		{StageID: 1, Order: 2},
		{StageID: 2, Order: 9},
		{StageID: 3, Order: 40},
	}

	renumberStages(stages)

	for i, s := range stages {
		require.Equal(t, i, s.Order)
	}
}

func TestDedupeStages_KeepsFirstOccurrence(t *testing.T) {
	stages := []models.InterviewStage{
		{StageID: 1, StageName: "Applied", Order: 0},
		{StageID: 2, StageName: "Interview", Order: 1},
		{StageID: 1, StageName: "Applied again", Order: 2},
	}

	deduped := dedupeStages(stages)

	require.Len(t, deduped, 2)
	require.Equal(t, "Applied", deduped[0].StageName)
	require.Equal(t, uint64(2), deduped[1].StageID)
}

func TestSyncAppliedHistory_CorrectsEnteredDate(t *testing.T) {
	oldDate := date(2024, 1, 10)
	newDate := date(2024, 1, 5)
	job := &models.Job{
		AppliedDate: &newDate,
		StageHistory: []models.StageHistoryEntry{
			{ColumnID: 1, ColumnTitle: "Applied", EnteredDate: oldDate},
		},
	}

	syncAppliedHistory(job, models.Column{ID: 1, Title: "Applied"})

	require.Equal(t, newDate, job.StageHistory[0].EnteredDate)
	require.Equal(t, "Applied", job.StageHistory[0].ColumnTitle)
}

func TestSyncAppliedHistory_IgnoresGenericColumn(t *testing.T) {
	newDate := date(2024, 1, 5)
	entered := date(2024, 2, 1)
	job := &models.Job{
		AppliedDate: &newDate,
		StageHistory: []models.StageHistoryEntry{
			{ColumnID: 4, ColumnTitle: "Interview", EnteredDate: entered},
		},
	}

	syncAppliedHistory(job, models.Column{ID: 4, Title: "Interview"})

	require.Equal(t, entered, job.StageHistory[0].EnteredDate)
}
