package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bferrors "github.com/matzehuels/blockfall/pkg/errors"
	"github.com/matzehuels/blockfall/pkg/observability"
)

// FileStore is a file-based save store for CLI applications.
// Records are stored as JSON files in a data directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based store.
// If baseDir is empty, defaults to DefaultDir().
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("get data dir: %w", err)
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, bferrors.Wrap(bferrors.ErrCodeStorage, err, "create save dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) recordPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Save(ctx context.Context, rec *Record) (err error) {
	size := 0
	defer func() { observability.Store().OnSave(ctx, BackendFile, rec.ID, size, err) }()

	if err := bferrors.ValidateSaveID(rec.ID); err != nil {
		return err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	size = len(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.recordPath(rec.ID), data, 0600); err != nil {
		return bferrors.Wrap(bferrors.ErrCodeStorage, err, "write save file")
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context, id string) (rec *Record, err error) {
	start := time.Now()
	defer func() { observability.Store().OnLoad(ctx, BackendFile, id, time.Since(start), err) }()

	if err := bferrors.ValidateSaveID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.recordPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, bferrors.Wrap(bferrors.ErrCodeStorage, err, "read save file")
	}

	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, bferrors.Wrap(bferrors.ErrCodeStorage, err, "parse save %s", id)
	}
	return &r, nil
}

func (s *FileStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, bferrors.Wrap(bferrors.ErrCodeStorage, err, "read save dir")
	}

	var out []Summary
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var r Record
		if err := json.Unmarshal(data, &r); err != nil {
			continue
		}
		out = append(out, r.Summary())
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) (err error) {
	defer func() { observability.Store().OnDelete(ctx, BackendFile, id, err) }()

	if err := bferrors.ValidateSaveID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.recordPath(id)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return bferrors.Wrap(bferrors.ErrCodeStorage, err, "remove save file")
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for save files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
