package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Filesystem stores blobs under a local directory. Keys map to relative file
// paths; a sidecar file (key + ".meta") carries content type and metadata.
// Not safe for concurrent writers to the same key.
type Filesystem struct {
	root string
}

// NewFilesystem returns a filesystem store rooted at path, creating it if needed.
func NewFilesystem(root string) (*Filesystem, error) {
	if root == "" {
		root = "./blobdata"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Filesystem{root: root}, nil
}

func (f *Filesystem) Driver() Driver { return DriverFilesystem }

type sidecar struct {
	ContentType string            `json:"content_type,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

func (f *Filesystem) path(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(f.root, filepath.FromSlash(key)), nil
}

func (f *Filesystem) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	p, err := f.path(key)
	if err != nil {
		return Info{}, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return Info{}, err
	}
	out, err := os.Create(p)
	if err != nil {
		return Info{}, fmt.Errorf("creating blob file: %w", err)
	}
	size, err := io.Copy(out, r)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(p)
		return Info{}, fmt.Errorf("writing blob file: %w", err)
	}

	meta, err := json.Marshal(sidecar{ContentType: opts.ContentType, Metadata: opts.Metadata})
	if err == nil {
		err = os.WriteFile(p+".meta", meta, 0o644)
	}
	if err != nil {
		os.Remove(p)
		return Info{}, fmt.Errorf("writing blob sidecar: %w", err)
	}

	return Info{
		Key:          key,
		Size:         size,
		ContentType:  opts.ContentType,
		Metadata:     opts.Metadata,
		LastModified: time.Now().UTC(),
	}, nil
}

func (f *Filesystem) Get(ctx context.Context, key string) (Info, io.ReadCloser, error) {
	info, err := f.stat(key)
	if err != nil {
		return Info{}, nil, err
	}
	p, _ := f.path(key)
	file, err := os.Open(p)
	if err != nil {
		return Info{}, nil, fmt.Errorf("opening blob file: %w", err)
	}
	return info, file, nil
}

func (f *Filesystem) Delete(ctx context.Context, key string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotExist, key)
		}
		return err
	}
	_ = os.Remove(p + ".meta")
	return nil
}

func (f *Filesystem) List(ctx context.Context, prefix string) ([]Info, error) {
	var infos []Info
	err := filepath.WalkDir(f.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || strings.HasSuffix(path, ".meta") {
			return err
		}
		rel, relErr := filepath.Rel(f.root, path)
		if relErr != nil {
			return relErr
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, statErr := f.stat(key)
		if statErr != nil {
			return statErr
		}
		infos = append(infos, info)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func (f *Filesystem) PresignURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "", ErrPresignUnsupported
}

func (f *Filesystem) stat(key string) (Info, error) {
	p, err := f.path(key)
	if err != nil {
		return Info{}, err
	}
	st, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return Info{}, fmt.Errorf("%w: %s", ErrNotExist, key)
		}
		return Info{}, err
	}

	var sc sidecar
	if raw, err := os.ReadFile(p + ".meta"); err == nil {
		_ = json.Unmarshal(raw, &sc)
	}

	return Info{
		Key:          key,
		Size:         st.Size(),
		ContentType:  sc.ContentType,
		Metadata:     sc.Metadata,
		LastModified: st.ModTime().UTC(),
	}, nil
}
