// Package cache persists the output of expensive analysis passes ("stubs") so repeated runs on the same footage
// can skip recomputation.
package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
)

// Store is a path addressed blob store. A missing entry is not an error: callers check Exists first and
// compute the value themselves.
type Store interface {
	// Exists reports whether a stub is present at path.
	Exists(path string) bool
	// Load decodes the stub at path into v.
	Load(path string, v interface{}) error
	// Save encodes v and stores it at path, replacing any previous stub.
	Save(path string, v interface{}) error
}

// FileStore keeps stubs as CBOR files on the local filesystem.
type FileStore struct {
	enc cbor.EncMode
}

// NewFileStore returns a FileStore. Encoding is canonical, so saving the same value twice yields identical files.
func NewFileStore() (*FileStore, error) {
	enc, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("NewFileStore: Could not create encoder, got '%w'", err)
	}

	return &FileStore{enc: enc}, nil
}

// Exists reports whether a regular file is present at path.
func (s *FileStore) Exists(path string) bool {
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Load decodes the stub at path into v. A corrupt or foreign file is an error.
func (s *FileStore) Load(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Load: Could not read stub '%s', got '%w'", path, err)
	}

	if err := cbor.Unmarshal(data, v); err != nil {
		return fmt.Errorf("Load: Could not decode stub '%s', got '%w'", path, err)
	}

	return nil
}

// Save writes v next to path under a temporary name and renames it into place, so a reader never observes a
// partially written stub.
func (s *FileStore) Save(path string, v interface{}) error {
	data, err := s.enc.Marshal(v)
	if err != nil {
		return fmt.Errorf("Save: Could not encode stub '%s', got '%w'", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("Save: Could not create '%s', got '%w'", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("Save: Could not create temp file, got '%w'", err)
	}
	tmpName := tmp.Name()

	//from here on the temp file must not outlive a failure
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("Save: Could not write '%s', got '%w'", tmpName, err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("Save: Could not sync '%s', got '%w'", tmpName, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("Save: Could not close '%s', got '%w'", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("Save: Could not rename '%s' to '%s', got '%w'", tmpName, path, err)
	}

	return nil
}
