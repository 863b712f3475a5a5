package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/you-humble/pc-builder/internal/model"
)

const fileExt = ".json"

var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// repository keeps one file per key under dir. Writes go to a temp file
// in the same directory and are renamed into place.
type repository struct {
	dir string
}

func NewKVRepository(dir string) (*repository, error) {
	const op = "repository.file.NewKVRepository"

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &repository{dir: dir}, nil
}

func (r *repository) Get(ctx context.Context, key string) (string, bool, error) {
	const op = "repository.file.Get"

	path, err := r.path(key)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	if err := ctx.Err(); err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%s: %w", op, err)
	}

	return string(data), true, nil
}

func (r *repository) Set(ctx context.Context, key, value string) error {
	const op = "repository.file.Set"

	path, err := r.path(key)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp, err := os.CreateTemp(r.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s write: %w", op, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s close: %w", op, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s rename: %w", op, err)
	}

	return nil
}

func (r *repository) Remove(ctx context.Context, key string) error {
	const op = "repository.file.Remove"

	path, err := r.path(key)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("%w: invalid key %q", model.ErrInvalidArgument, key)
	}
	return filepath.Join(r.dir, key+fileExt), nil
}
