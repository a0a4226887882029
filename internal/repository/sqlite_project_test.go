package repository_test

import (
	"context"
	"testing"

	"github.com/coveyrise/steward/internal/domain"
	"github.com/coveyrise/steward/internal/repository"
	"github.com/coveyrise/steward/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRoundtrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProject("North Forty", testutil.WithAcreage(160))
	require.NoError(t, projects.Create(ctx, p))

	got, err := projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, p.Location, got.Location)
	assert.Equal(t, 160.0, got.Acreage)
	assert.Equal(t, domain.ProjectActive, got.Status)
	assert.Nil(t, got.ArchivedAt)
}

func TestProjectGetByID_Missing(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)

	_, err := projects.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectArchiveUnarchive(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProject("North Forty")
	require.NoError(t, projects.Create(ctx, p))

	require.NoError(t, projects.Archive(ctx, p.ID))
	got, err := projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectArchived, got.Status)
	assert.NotNil(t, got.ArchivedAt)

	require.NoError(t, projects.Unarchive(ctx, p.ID))
	got, err = projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectActive, got.Status)
	assert.Nil(t, got.ArchivedAt)
}

func TestProjectList_ArchiveFilter(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	ctx := context.Background()

	active := testutil.NewTestProject("Active Tract")
	require.NoError(t, projects.Create(ctx, active))
	archived := testutil.NewTestProject("Old Tract")
	require.NoError(t, projects.Create(ctx, archived))
	require.NoError(t, projects.Archive(ctx, archived.ID))

	list, err := projects.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)

	list, err = projects.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestProjectUpdate(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProject("North Forty")
	require.NoError(t, projects.Create(ctx, p))

	p.Title = "North Forty (Phase 2)"
	p.Status = domain.ProjectPaused
	require.NoError(t, projects.Update(ctx, p))

	got, err := projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "North Forty (Phase 2)", got.Title)
	assert.Equal(t, domain.ProjectPaused, got.Status)
}
