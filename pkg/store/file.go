package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mhalvors/golevels/pkg/errors"
)

// FileStore keeps one JSON file per snapshot under a directory. It is the
// archive backend for local CLI usage.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Save writes the entry as <snapshot>.json, replacing any previous version.
func (s *FileStore) Save(ctx context.Context, e Entry) error {
	if e.Snapshot == "" {
		return errors.New(errors.ErrCodeInvalidInput, "entry has no snapshot hash")
	}
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	return os.WriteFile(s.path(e.Snapshot), data, 0644)
}

// Load reads the entry for a snapshot hash.
func (s *FileStore) Load(ctx context.Context, snapshot string) (*Entry, error) {
	data, err := os.ReadFile(s.path(snapshot))
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeNotFound, "no stored summary for snapshot %s", snapshot)
	}
	if err != nil {
		return nil, err
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode stored summary %s", snapshot)
	}
	return &e, nil
}

// List scans the directory and returns provenance for every entry,
// newest first.
func (s *FileStore) List(ctx context.Context) ([]Info, error) {
	dirents, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var infos []Info
	for _, d := range dirents {
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			continue
		}
		e, err := s.Load(ctx, strings.TrimSuffix(d.Name(), ".json"))
		if err != nil {
			continue
		}
		rows := 0
		if e.Table != nil {
			rows = e.Table.Len()
		}
		infos = append(infos, Info{
			Snapshot:    e.Snapshot,
			DataVersion: e.DataVersion,
			CreatedAt:   e.CreatedAt,
			Rows:        rows,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].CreatedAt.After(infos[j].CreatedAt) })
	return infos, nil
}

// Close does nothing for the file backend.
func (s *FileStore) Close(ctx context.Context) error {
	return nil
}

func (s *FileStore) path(snapshot string) string {
	return filepath.Join(s.dir, snapshot+".json")
}

var _ Store = (*FileStore)(nil)
