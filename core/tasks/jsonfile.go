package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/m3rciful/taskbot/core/logger"
)

const lockTimeout = 5 * time.Second

// JSONFile persists the list as a single pretty-printed JSON array.
// Saves replace the file atomically; a sibling .lock file serializes
// access across processes.
type JSONFile struct {
	path string
	lock *flock.Flock
}

// NewJSONFile returns a persister for path. Nothing is touched on disk until Load or Save.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path, lock: flock.New(path + ".lock")}
}

func (f *JSONFile) Name() string { return "file" }

// Path returns the data file location.
func (f *JSONFile) Path() string { return f.path }

// Peek reads the file without touching the disk: no lock file and no
// .corrupt copy. Save renames over the target, so an unlocked read still
// sees a whole file. Corrupt content is only reported.
func (f *JSONFile) Peek(_ context.Context) ([]Task, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	list, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return list, nil
}

// Load reads the whole file. Corrupt content is copied to <path>.corrupt
// before ErrCorrupt is returned so the next save cannot destroy it silently.
func (f *JSONFile) Load(ctx context.Context) ([]Task, error) {
	if _, err := os.Stat(f.path); err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	var data []byte
	if err := f.withLock(ctx, func() error {
		var err error
		data, err = os.ReadFile(f.path)
		return err
	}); err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	list, err := Decode(data)
	if err != nil {
		backup := f.path + ".corrupt"
		if werr := os.WriteFile(backup, data, 0o600); werr != nil {
			logger.Store.Warn("corrupt backup failed",
				slog.String("event", "store.backup"),
				slog.String("path", backup),
				slog.String("err", werr.Error()),
			)
		} else {
			logger.Store.Warn("corrupt file copied aside",
				slog.String("event", "store.backup"),
				slog.String("path", backup),
			)
		}
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return list, nil
}

// Save encodes list and renames a temp file over the target.
func (f *JSONFile) Save(ctx context.Context, list []Task) error {
	data, err := Encode(list)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return f.withLock(ctx, func() error {
		return writeFileAtomic(f.path, data, 0o644)
	})
}

func (f *JSONFile) withLock(ctx context.Context, fn func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	locked, err := f.lock.TryLockContext(lockCtx, 50*time.Millisecond)
	if err != nil {
		return fmt.Errorf("lock %s: %w", f.lock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("lock %s: not acquired", f.lock.Path())
	}
	defer func() { _ = f.lock.Unlock() }()
	return fn()
}

func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp for %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp for %s: %w", path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fmt.Errorf("chmod temp for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp for %s: %w", path, err)
	}
	return nil
}
