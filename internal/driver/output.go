package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"fmtguard/internal/check"
	"fmtguard/internal/source"
)

// ErrDestinationExists is returned by WriteOutput when the destination exists
// and overwriting was not requested.
var ErrDestinationExists = errors.New("destination already exists")

// Load reads path and analyses it; the rewrite commands start here.
func Load(ctx context.Context, path string, analysis check.Options) (*source.FileSet, *check.Analysis, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return fileSet, CheckSource(ctx, fileSet.Get(id), analysis), nil
}

// WriteOutput writes data to path. Without overwrite the file is created
// exclusively; with it, data replaces the file through a rename and keeps
// the previous permissions.
func WriteOutput(path string, data []byte, overwrite bool) error {
	if !overwrite {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if errors.Is(err, fs.ErrExist) {
				return fmt.Errorf("%s: %w", path, ErrDestinationExists)
			}
			return err
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".fmtguard-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err := os.Chmod(name, mode); err != nil {
		_ = os.Remove(name)
		return err
	}
	// Атомарная замена
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return err
	}
	return nil
}
