package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
)

// Drivers accepted by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"

	sqliteFileName = "jobtracker.db"
)

var drivers = []string{DriverFile, DriverSQLite, DriverRedis, DriverMemory}

// Options selects and configures a backend.
type Options struct {
	Driver   string
	Path     string
	RedisURL string
	Prefix   string
}

func IsDriver(name string) bool {
	return slices.Contains(drivers, name)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the backend named by opts.Driver. The returned closer releases
// database or network handles and is never nil.
func Open(ctx context.Context, opts Options) (Store, io.Closer, error) {
	switch opts.Driver {
	case DriverFile, "":
		s, err := NewFile(opts.Path)
		return s, nopCloser{}, err
	case DriverSQLite:
		path, err := sqlitePath(opts.Path)
		if err != nil {
			return nil, nopCloser{}, err
		}
		s, err := NewSQLite(path)
		if err != nil {
			return nil, nopCloser{}, err
		}
		return s, s, nil
	case DriverRedis:
		if opts.RedisURL == "" {
			return nil, nopCloser{}, fmt.Errorf("redis driver requires a redis url")
		}
		s, err := NewRedis(ctx, opts.RedisURL, opts.Prefix)
		if err != nil {
			return nil, nopCloser{}, err
		}
		return s, s, nil
	case DriverMemory:
		return NewMemory(), nopCloser{}, nil
	default:
		return nil, nopCloser{}, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}

// sqlitePath treats a path without an extension as a directory holding the
// database file.
func sqlitePath(path string) (string, error) {
	if filepath.Ext(path) != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", fmt.Errorf("create store directory %q: %w", dir, err)
			}
		}
		return path, nil
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("create store directory %q: %w", path, err)
	}
	return filepath.Join(path, sqliteFileName), nil
}
