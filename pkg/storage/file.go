package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrisonrobin/lockin/pkg/model"
)

// File keeps the task list as a JSON array in a single file.
type File struct {
	Path string
}

func NewFile(path string) *File {
	return &File{Path: path}
}

// Load returns an empty list if the file does not exist yet.
func (f *File) Load() ([]model.Task, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Task{}, nil
		}
		return []model.Task{}, fmt.Errorf("failed to read %s: %w", f.Path, err)
	}
	return decode(b)
}

// Save rewrites the file in full through a temp file in the same directory.
func (f *File) Save(tasks []model.Task) error {
	b, err := encode(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".lockin-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write tasks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.Path)
}
