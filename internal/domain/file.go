package domain

import (
	"fmt"
	"time"
)

// FileRecord is the database row for a project attachment. The bytes
// themselves live in the blob store under Key.
type FileRecord struct {
	ID          string
	ProjectID   string
	Label       string
	Key         string
	ContentType string
	SizeBytes   int64
	CreatedAt   time.Time
}

func (f *FileRecord) Validate() error {
	if f.ProjectID == "" {
		return fmt.Errorf("file project ID is required")
	}
	if f.Key == "" {
		return fmt.Errorf("file storage key is required")
	}
	return nil
}

// DisplayName prefers the user-supplied label over the storage key.
func (f *FileRecord) DisplayName() string {
	return CoalesceStr(f.Label, f.Key)
}
