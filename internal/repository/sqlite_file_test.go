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

func TestFileRoundtrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	files := repository.NewSQLiteFileRepo(database)
	ctx := context.Background()

	proj := seedProject(t, projects)
	rec := &domain.FileRecord{
		ID:          uuid.New().String(),
		ProjectID:   proj.ID,
		Label:       "Burn plan",
		Key:         proj.ID + "/abc-burn-plan.pdf",
		ContentType: "application/pdf",
		SizeBytes:   1024,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, files.Create(ctx, rec))

	got, err := files.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Key, got.Key)
	assert.Equal(t, int64(1024), got.SizeBytes)
	assert.Equal(t, "Burn plan", got.DisplayName())

	list, err := files.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, files.Delete(ctx, rec.ID))
	_, err = files.GetByID(ctx, rec.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
