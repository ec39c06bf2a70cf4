package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = ".lock"

// File keeps every key in its own JSON file under a directory. Writes go to a
// temporary file that is renamed into place while holding an exclusive lock,
// so concurrent processes never observe a half-written value. There is no
// locking across keys: the last writer wins.
type File struct {
	dir  string
	lock *flock.Flock
}

// NewFile creates the directory if needed and returns a File store rooted at it.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory %q: %w", dir, err)
	}

	return &File{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, lockFileName)),
	}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *File) Get(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}

	return data, true, nil
}

func (f *File) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("lock store: %w", err)
	}
	defer f.lock.Unlock()

	target := f.path(key)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}

	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", key, err)
	}

	return nil
}

func (f *File) Remove(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("lock store: %w", err)
	}
	defer f.lock.Unlock()

	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}

	return nil
}
