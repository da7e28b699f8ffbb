package index

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// FileStorage persists snapshots as a gob-encoded file. Writes go to a
// temp file in the same directory followed by a rename, so a crash never
// leaves a half-written snapshot. A flock on a sibling lock file
// serializes writers across processes.
type FileStorage struct {
	path string
	lock *flock.Flock
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Load reads the snapshot. A missing file surfaces as os.ErrNotExist;
// anything undecodable or out of lockstep surfaces as ErrCorrupt.
func (s *FileStorage) Load() (*Snapshot, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	var snap Snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(snap.Chunks) != len(snap.Vectors) {
		return nil, fmt.Errorf("%w: %d chunks but %d vectors",
			ErrCorrupt, len(snap.Chunks), len(snap.Vectors))
	}
	return &snap, nil
}

// Save writes the snapshot atomically under the file lock.
func (s *FileStorage) Save(snap *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("%w: acquiring lock: %v", ErrPersist, err)
	}
	defer func() { _ = s.lock.Unlock() }()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(snap); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}
