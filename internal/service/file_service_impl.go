package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/coveyrise/steward/internal/blob"
	"github.com/coveyrise/steward/internal/domain"
	"github.com/coveyrise/steward/internal/repository"
	"github.com/google/uuid"
)

const presignExpiry = 15 * time.Minute

type fileService struct {
	files    repository.FileRepo
	projects repository.ProjectRepo
	store    blob.Store
	observer UseCaseObserver
}

func NewFileService(
	files repository.FileRepo,
	projects repository.ProjectRepo,
	store blob.Store,
	observers ...UseCaseObserver,
) FileService {
	return &fileService{
		files:    files,
		projects: projects,
		store:    store,
		observer: observerOrNoop(observers),
	}
}

// Upload stores the file bytes in the blob store and records the attachment
// row. Keys are namespaced by project so blob listings group naturally.
func (s *fileService) Upload(ctx context.Context, projectID, label, filename, contentType string, r io.Reader) (rec *domain.FileRecord, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "upload-file",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Err:       err,
			Fields:    map[string]any{"project": projectID, "filename": filename},
		})
	}()

	if _, err = s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	if filename == "" {
		return nil, fmt.Errorf("filename is required")
	}

	id := uuid.New().String()
	key := path.Join(projectID, id+"-"+path.Base(filename))

	info, err := s.store.Put(ctx, key, r, blob.PutOptions{
		ContentType: contentType,
		Metadata:    map[string]string{"label": label},
	})
	if err != nil {
		return nil, fmt.Errorf("storing file: %w", err)
	}

	rec = &domain.FileRecord{
		ID:          id,
		ProjectID:   projectID,
		Label:       label,
		Key:         key,
		ContentType: contentType,
		SizeBytes:   info.Size,
		CreatedAt:   time.Now().UTC(),
	}
	if err = rec.Validate(); err != nil {
		return nil, err
	}
	if err = s.files.Create(ctx, rec); err != nil {
		// Orphaned blob without a row; best effort cleanup.
		_ = s.store.Delete(ctx, key)
		return nil, err
	}
	return rec, nil
}

func (s *fileService) Open(ctx context.Context, id string) (*domain.FileRecord, io.ReadCloser, error) {
	rec, err := s.files.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	_, rc, err := s.store.Get(ctx, rec.Key)
	if err != nil {
		return nil, nil, fmt.Errorf("opening file %s: %w", id, err)
	}
	return rec, rc, nil
}

// DownloadURL returns a presigned URL when the backend supports it, or
// blob.ErrPresignUnsupported so callers can fall back to streaming.
func (s *fileService) DownloadURL(ctx context.Context, id string) (string, error) {
	rec, err := s.files.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignURL(ctx, rec.Key, presignExpiry)
}

func (s *fileService) ListByProject(ctx context.Context, projectID string) ([]*domain.FileRecord, error) {
	return s.files.ListByProject(ctx, projectID)
}

func (s *fileService) Delete(ctx context.Context, id string) error {
	rec, err := s.files.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, rec.Key); err != nil {
		return fmt.Errorf("deleting file bytes: %w", err)
	}
	return s.files.Delete(ctx, id)
}
