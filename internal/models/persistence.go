package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrNoSnapshot is returned by Adapter.Load when nothing has been saved.
var ErrNoSnapshot = errors.New("no snapshot")

// Adapter is durable storage for one serialized session snapshot.
type Adapter interface {
	Save(snapshot []byte) error
	Load() ([]byte, error)
	Clear() error
}

const snapshotFile = "session.yaml"

// FileAdapter keeps the snapshot at <Dir>/<Slot>/session.yaml.
type FileAdapter struct {
	Dir  string
	Slot string
}

// NewFileAdapter returns a FileAdapter for slot under dir.
func NewFileAdapter(dir, slot string) (*FileAdapter, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("save dir is required")
	}
	if strings.TrimSpace(slot) == "" || strings.ContainsAny(slot, `/\`) {
		return nil, fmt.Errorf("invalid save slot %q", slot)
	}
	return &FileAdapter{Dir: dir, Slot: slot}, nil
}

func (a *FileAdapter) path() string {
	return filepath.Join(a.Dir, a.Slot, snapshotFile)
}

// Save writes to a temporary file and renames it into place so a crash
// never leaves a half-written snapshot.
func (a *FileAdapter) Save(snapshot []byte) error {
	dir := filepath.Join(a.Dir, a.Slot)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp := a.path() + ".tmp"
	if err := os.WriteFile(tmp, snapshot, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, a.path())
}

func (a *FileAdapter) Load() ([]byte, error) {
	data, err := os.ReadFile(a.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (a *FileAdapter) Clear() error {
	err := os.Remove(a.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// ListSlots returns the slots under dir that hold a snapshot.
func ListSlots(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var slots []string
	for _, entry := range entries {
		if entry.IsDir() {
			if _, err := os.Stat(filepath.Join(dir, entry.Name(), snapshotFile)); err == nil {
				slots = append(slots, entry.Name())
			}
		}
	}
	return slots, nil
}

// MemoryAdapter keeps the snapshot in memory. Err, when set, is returned
// from every call.
type MemoryAdapter struct {
	Data  []byte
	Saves int
	Err   error
}

func (m *MemoryAdapter) Save(snapshot []byte) error {
	if m.Err != nil {
		return m.Err
	}
	m.Data = slices.Clone(snapshot)
	m.Saves++
	return nil
}

func (m *MemoryAdapter) Load() ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Data == nil {
		return nil, ErrNoSnapshot
	}
	return slices.Clone(m.Data), nil
}

func (m *MemoryAdapter) Clear() error {
	if m.Err != nil {
		return m.Err
	}
	m.Data = nil
	return nil
}
