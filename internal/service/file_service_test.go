package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/coveyrise/steward/internal/blob"
	"github.com/coveyrise/steward/internal/repository"
	"github.com/coveyrise/steward/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileUploadAndOpen(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	store := blob.NewMemory()

	proj := testutil.NewTestProject("North Forty")
	require.NoError(t, r.projects.Create(ctx, proj))

	svc := NewFileService(r.files, r.projects, store)
	rec, err := svc.Upload(ctx, proj.ID, "Burn plan", "burn-plan.pdf", "application/pdf", strings.NewReader("%PDF-1.4 fake"))
	require.NoError(t, err)

	assert.Equal(t, proj.ID, rec.ProjectID)
	assert.Equal(t, "Burn plan", rec.Label)
	assert.Equal(t, int64(len("%PDF-1.4 fake")), rec.SizeBytes)
	assert.True(t, strings.HasPrefix(rec.Key, proj.ID+"/"))
	assert.True(t, strings.HasSuffix(rec.Key, "-burn-plan.pdf"))

	got, rc, err := svc.Open(ctx, rec.ID)
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, rec.ID, got.ID)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
}

func TestFileUpload_MissingProject(t *testing.T) {
	r := setupRepos(t)

	svc := NewFileService(r.files, r.projects, blob.NewMemory())
	_, err := svc.Upload(context.Background(), "nope", "Map", "map.png", "image/png", strings.NewReader("png"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFileUpload_RequiresFilename(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("North Forty")
	require.NoError(t, r.projects.Create(ctx, proj))

	svc := NewFileService(r.files, r.projects, blob.NewMemory())
	_, err := svc.Upload(ctx, proj.ID, "Map", "", "image/png", strings.NewReader("png"))
	assert.Error(t, err)
}

func TestFileDownloadURL_UnsupportedBackend(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("North Forty")
	require.NoError(t, r.projects.Create(ctx, proj))

	svc := NewFileService(r.files, r.projects, blob.NewMemory())
	rec, err := svc.Upload(ctx, proj.ID, "Map", "map.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)

	_, err = svc.DownloadURL(ctx, rec.ID)
	assert.ErrorIs(t, err, blob.ErrPresignUnsupported)
}

func TestFileDelete_RemovesRowAndBytes(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	store := blob.NewMemory()

	proj := testutil.NewTestProject("North Forty")
	require.NoError(t, r.projects.Create(ctx, proj))

	svc := NewFileService(r.files, r.projects, store)
	rec, err := svc.Upload(ctx, proj.ID, "Map", "map.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, rec.ID))

	_, _, err = svc.Open(ctx, rec.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, _, err = store.Get(ctx, rec.Key)
	assert.ErrorIs(t, err, blob.ErrNotExist)
}
