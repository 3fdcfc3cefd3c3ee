package attempt

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileSlot stores the value as the whole content of one file.
type FileSlot struct {
	fs   afero.Fs
	path string
}

func NewFileSlot(fs afero.Fs, path string) *FileSlot {
	return &FileSlot{fs: fs, path: path}
}

func (s *FileSlot) Get(context.Context) (string, bool, error) {
	contents, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("afero.ReadFile(%s) > %w", s.path, err)
	}
	return string(contents), true, nil
}

func (s *FileSlot) Set(_ context.Context, value string) error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("fs.MkdirAll(%s) > %w", dir, err)
	}
	if err := afero.WriteFile(s.fs, s.path, []byte(value), 0o644); err != nil {
		return fmt.Errorf("afero.WriteFile(%s) > %w", s.path, err)
	}
	return nil
}
