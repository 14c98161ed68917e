// Package output writes rendered transcripts to disk without ever leaving a
// partially written file behind.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultPerm is the mode of newly written transcript files.
const DefaultPerm os.FileMode = 0o644

// File stages writes in a temporary file next to the target and moves it
// into place on Commit.
type File struct {
	path    string
	tmpPath string
	perm    os.FileMode
	tmp     *os.File
	done    bool
}

// Create starts an atomic write of path, creating parent directories.
func Create(path string, perm os.FileMode) (*File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".yttranscript-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	return &File{path: path, tmpPath: tmp.Name(), perm: perm, tmp: tmp}, nil
}

func (f *File) Write(p []byte) (int, error) {
	return f.tmp.Write(p)
}

// Commit syncs the staged data and renames it over the target.
func (f *File) Commit() error {
	if f.done {
		return errors.New("output: file already committed or aborted")
	}
	f.done = true

	if err := f.tmp.Chmod(f.perm); err != nil {
		f.discard()
		return fmt.Errorf("chmod: %w", err)
	}
	if err := f.tmp.Sync(); err != nil {
		f.discard()
		return fmt.Errorf("sync: %w", err)
	}
	if err := f.tmp.Close(); err != nil {
		_ = os.Remove(f.tmpPath)
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(f.tmpPath, f.path); err != nil {
		_ = os.Remove(f.tmpPath)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Abort drops the staged data. It is a no-op after Commit, so it can be
// deferred unconditionally.
func (f *File) Abort() error {
	if f.done {
		return nil
	}
	f.done = true
	return f.discard()
}

func (f *File) discard() error {
	_ = f.tmp.Close()
	return os.Remove(f.tmpPath)
}

// WriteFile atomically replaces path with data.
func WriteFile(path string, data []byte) error {
	return WriteWith(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteWith atomically replaces path with whatever fn writes. Nothing is
// written when fn fails.
func WriteWith(path string, fn func(io.Writer) error) error {
	f, err := Create(path, DefaultPerm)
	if err != nil {
		return err
	}
	defer f.Abort()

	if err := fn(f); err != nil {
		return err
	}
	return f.Commit()
}
