package stagedef

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned when a named definition does not exist in a store.
var ErrNotFound = errors.New("stagedef: definition not found")

// Store is the interface for definition storage backends.
type Store interface {
	// Load returns the raw YAML of the named definition.
	Load(ctx context.Context, name string) ([]byte, error)

	// Save writes the raw YAML of the named definition.
	Save(ctx context.Context, name string, data []byte) error

	// List returns the names of every stored definition, sorted.
	List(ctx context.Context) ([]string, error)
}

const fileExt = ".yaml"

// DiskStore keeps definitions as <name>.yaml files in one directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the directory if needed and returns a store over it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("stagedef: create store dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Load implements Store.
func (s *DiskStore) Load(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name+fileExt))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return data, err
}

// Save implements Store.
func (s *DiskStore) Save(_ context.Context, name string, data []byte) error {
	return os.WriteFile(filepath.Join(s.dir, name+fileExt), data, 0o644)
}

// List implements Store.
func (s *DiskStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), fileExt))
	}
	sort.Strings(names)
	return names, nil
}
