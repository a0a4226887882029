package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/coveyrise/steward/internal/domain"
	"github.com/coveyrise/steward/internal/repository"
	"github.com/coveyrise/steward/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPractice(projectID string, practiceID *string, title string) *domain.ProjectPractice {
	now := time.Now().UTC()
	qty := 40.0
	rate := 150.0
	return &domain.ProjectPractice{
		ID:                   uuid.New().String(),
		ProjectID:            projectID,
		PracticeID:           practiceID,
		CustomTitle:          title,
		Quantity:             &qty,
		Unit:                 "ac",
		EstimatedPaymentRate: &rate,
		Status:               domain.PracticeResearching,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

func TestProjectPracticeCreateBatch(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	funding := repository.NewSQLiteFundingRepo(database)
	practices := repository.NewSQLiteProjectPracticeRepo(database)
	ctx := context.Background()

	proj := seedProject(t, projects)
	testutil.SeedReferenceData(t, funding)
	refs, err := funding.ListPractices(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, refs)

	resolved := newPractice(proj.ID, &refs[0].ID, "Early Successional Habitat")
	unresolved := newPractice(proj.ID, nil, "Mystery Practice")
	unresolved.Quantity = nil
	unresolved.EstimatedPaymentRate = nil
	require.NoError(t, practices.CreateBatch(ctx, []*domain.ProjectPractice{resolved, unresolved}))

	got, err := practices.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	byTitle := map[string]*domain.ProjectPractice{}
	for _, pp := range got {
		byTitle[pp.CustomTitle] = pp
	}

	r := byTitle["Early Successional Habitat"]
	require.NotNil(t, r)
	require.NotNil(t, r.PracticeID)
	assert.Equal(t, refs[0].ID, *r.PracticeID)
	require.NotNil(t, r.Quantity)
	assert.Equal(t, 40.0, *r.Quantity)

	u := byTitle["Mystery Practice"]
	require.NotNil(t, u)
	assert.Nil(t, u.PracticeID)
	assert.Nil(t, u.Quantity)
	assert.Nil(t, u.EstimatedPaymentRate)
}

func TestProjectPracticeCreateBatch_Empty(t *testing.T) {
	database := testutil.NewTestDB(t)
	practices := repository.NewSQLiteProjectPracticeRepo(database)

	assert.NoError(t, practices.CreateBatch(context.Background(), nil))
}

func TestProjectPracticeUpdate(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	practices := repository.NewSQLiteProjectPracticeRepo(database)
	ctx := context.Background()

	proj := seedProject(t, projects)
	pp := newPractice(proj.ID, nil, "Riparian Forest Buffer")
	require.NoError(t, practices.CreateBatch(ctx, []*domain.ProjectPractice{pp}))

	pp.Status = domain.PracticeApplied
	deadline := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	pp.Deadline = &deadline
	require.NoError(t, practices.Update(ctx, pp))

	got, err := practices.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.PracticeApplied, got[0].Status)
	require.NotNil(t, got[0].Deadline)
	assert.Equal(t, "2024-06-01", got[0].Deadline.Format("2006-01-02"))
}

func TestProjectPractice_ReferenceDeleteSetsNull(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	funding := repository.NewSQLiteFundingRepo(database)
	practices := repository.NewSQLiteProjectPracticeRepo(database)
	ctx := context.Background()

	proj := seedProject(t, projects)
	testutil.SeedReferenceData(t, funding)
	refs, err := funding.ListPractices(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, refs)

	pp := newPractice(proj.ID, &refs[0].ID, "Linked Practice")
	require.NoError(t, practices.CreateBatch(ctx, []*domain.ProjectPractice{pp}))

	// Removing the reference row detaches the project practice but keeps it.
	_, err = database.ExecContext(ctx, `DELETE FROM funding_practices WHERE id = ?`, refs[0].ID)
	require.NoError(t, err)

	got, err := practices.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].PracticeID)
	assert.Equal(t, "Linked Practice", got[0].CustomTitle)
}
