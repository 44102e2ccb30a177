// Package fileadapter keeps each vote set in its own file, named after the
// poll's storage key, inside a metadata directory.
package fileadapter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	domainerrors "doodle/contexts/community-scheduling/doodle-poll/domain/errors"
	"doodle/contexts/community-scheduling/doodle-poll/ports"
)

const Extension = ".doodle"

type Store struct {
	dir    string
	logger *slog.Logger
}

func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("file store directory is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create file store directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Path returns the file a key is stored in. Keys are already cleaned by the
// identity package; path separators are still refused here.
func (s *Store) Path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: invalid storage key %q", domainerrors.ErrStorage, key)
	}
	return filepath.Join(s.dir, key+Extension), nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	path, err := s.Path(key)
	if err != nil {
		return nil, false, err
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, s.logError("doodle_file_read_failed", err, "path", path)
	}
	return blob, true, nil
}

// Put writes to a temporary file and renames it over the target, so readers
// see either the old or the new vote set.
func (s *Store) Put(ctx context.Context, key string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return s.logError("doodle_file_create_failed", err, "path", path)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return s.logError("doodle_file_write_failed", err, "path", path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return s.logError("doodle_file_close_failed", err, "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return s.logError("doodle_file_rename_failed", err, "path", path)
	}
	return nil
}

func (s *Store) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "community-scheduling/doodle-poll",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	s.logger.Error("doodle file store operation failed", fields...)
	return fmt.Errorf("%w: %w", domainerrors.ErrStorage, err)
}

var _ ports.BlobStore = (*Store)(nil)
