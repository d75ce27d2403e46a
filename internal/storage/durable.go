package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
)

var (
	// ErrVerifyFailed means the freshly written temp file did not decode; the
	// primary file was left untouched.
	ErrVerifyFailed = errors.New("snapshot verification failed")
	// ErrNoSnapshot means neither the primary, temp nor backup file held a
	// readable snapshot.
	ErrNoSnapshot = errors.New("no readable snapshot")
)

const (
	backupSuffix     = ".bak"
	tempSuffix       = ".tmp"
	backupTempSuffix = ".bak.tmp"
)

// Source identifies which file a snapshot was recovered from.
type Source string

const (
	SourcePrimary  Source = "primary"
	SourceTemp     Source = "temp"
	SourceBackup   Source = "backup"
	SourceDefaults Source = "defaults"
)

// DurableWriter persists snapshots so that a crash at any step leaves a
// readable file behind: backup, write temp, verify temp, remove primary,
// rename temp over primary. Only the rename is assumed atomic.
type DurableWriter struct {
	path   string
	fs     FS
	logger *slog.Logger
}

// NewDurableWriter creates a writer for the primary file at path.
func NewDurableWriter(path string, fs FS, logger *slog.Logger) *DurableWriter {
	if fs == nil {
		fs = OSFS{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DurableWriter{path: path, fs: fs, logger: logger}
}

func (w *DurableWriter) Path() string       { return w.path }
func (w *DurableWriter) BackupPath() string { return w.path + backupSuffix }
func (w *DurableWriter) TempPath() string   { return w.path + tempSuffix }

// Save writes s to the primary path. On error the previous primary file (or
// its backup) remains readable.
func (w *DurableWriter) Save(s *domain.Snapshot) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}

	if w.fs.Exists(w.path) {
		if err := w.backup(); err != nil {
			w.logger.Warn("snapshot backup failed", "path", w.BackupPath(), "error", err)
		}
	}

	tmp := w.TempPath()
	if err := w.fs.WriteFile(tmp, data); err != nil {
		_ = w.fs.Remove(tmp)
		return fmt.Errorf("writing temp snapshot: %w", err)
	}

	written, err := w.fs.ReadFile(tmp)
	if err != nil {
		_ = w.fs.Remove(tmp)
		return fmt.Errorf("reading back temp snapshot: %w", err)
	}
	if _, err := Decode(written, time.Now()); err != nil {
		_ = w.fs.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrVerifyFailed, err)
	}

	if err := w.fs.Remove(w.path); err != nil {
		return fmt.Errorf("removing old snapshot: %w", err)
	}
	if err := w.fs.Rename(tmp, w.path); err != nil {
		return fmt.Errorf("renaming temp snapshot: %w", err)
	}
	return nil
}

// backup replaces .bak with the current primary, but only when the primary
// decodes. The copy goes through its own temp file so a failed write leaves
// the previous backup intact.
func (w *DurableWriter) backup() error {
	data, err := w.fs.ReadFile(w.path)
	if err != nil {
		return err
	}
	if _, err := Decode(data, time.Now()); err != nil {
		w.logger.Warn("primary snapshot corrupt, keeping previous backup", "path", w.path, "error", err)
		return nil
	}

	tmp := w.path + backupTempSuffix
	if err := w.fs.WriteFile(tmp, data); err != nil {
		_ = w.fs.Remove(tmp)
		return fmt.Errorf("writing backup: %w", err)
	}
	if err := w.fs.Rename(tmp, w.BackupPath()); err != nil {
		_ = w.fs.Remove(tmp)
		return fmt.Errorf("replacing backup: %w", err)
	}
	return nil
}

// Load recovers the newest readable snapshot: the primary file, then a
// verified temp file left by a crash between remove and rename, then the
// backup. It returns ErrNoSnapshot when none decode.
func (w *DurableWriter) Load(now time.Time) (*domain.Snapshot, Source, error) {
	candidates := []struct {
		path   string
		source Source
	}{
		{w.path, SourcePrimary},
		{w.TempPath(), SourceTemp},
		{w.BackupPath(), SourceBackup},
	}

	for _, c := range candidates {
		if c.source == SourceTemp && w.fs.Exists(w.path) {
			continue
		}
		data, err := w.fs.ReadFile(c.path)
		if err != nil {
			if w.fs.Exists(c.path) {
				w.logger.Warn("snapshot unreadable", "path", c.path, "error", err)
			}
			continue
		}
		s, err := Decode(data, now)
		if err != nil {
			w.logger.Warn("snapshot corrupt, trying fallback", "path", c.path, "error", err)
			continue
		}
		if c.source != SourcePrimary {
			w.logger.Warn("snapshot recovered from fallback", "source", string(c.source))
		}
		return s, c.source, nil
	}
	return nil, SourceDefaults, ErrNoSnapshot
}

// LoadOrDefault never fails: when no file decodes it returns a fresh
// snapshot stamped with today's date.
func (w *DurableWriter) LoadOrDefault(now time.Time) (*domain.Snapshot, Source) {
	s, src, err := w.Load(now)
	if err != nil {
		if w.fs.Exists(w.path) || w.fs.Exists(w.BackupPath()) {
			w.logger.Error("no readable snapshot, starting from defaults", "path", w.path)
		}
		return domain.NewSnapshot(now), SourceDefaults
	}
	return s, src
}
