package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// File persists each key as a file under a state directory: the
// server-side analog of the browser's local storage slot.
type File struct {
	dir string
}

// NewFile creates the state directory if needed and returns the store.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &File{dir: dir}, nil
}

func (s *File) Write(_ context.Context, key, value string) error {
	return os.WriteFile(s.path(key), []byte(value), 0o644)
}

func (s *File) Read(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

func (s *File) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// path maps a slot key to a file. Keys are fixed identifiers rather than
// user input, but they are still sanitized to stay filesystem safe.
func (s *File) path(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(s.dir, safe+".json")
}
