package clientctx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const contextFileName = "context.json"

// FileStore keeps one directory per sender address with a context.json
// inside, so records survive between runs and can be inspected or
// hand-edited.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir. The directory is created
// lazily on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the store root.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(address string) string {
	return filepath.Join(s.dir, storeKey(address), contextFileName)
}

// Get implements Store.
func (s *FileStore) Get(address string) (*ClientContext, bool, error) {
	data, err := os.ReadFile(s.path(address))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading client context for %s: %w", address, err)
	}

	var record ClientContext
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, false, fmt.Errorf("parsing client context for %s: %w", address, err)
	}
	return &record, true, nil
}

// Put implements Store. The record is written atomically via a
// temporary file so a crashed run never leaves a truncated context.
func (s *FileStore) Put(address string, record *ClientContext) error {
	path := s.path(address)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating client context dir for %s: %w", address, err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding client context for %s: %w", address, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing client context for %s: %w", address, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing client context for %s: %w", address, err)
	}
	return nil
}
