package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// faultFS wraps OSFS and fails selected operations.
type faultFS struct {
	OSFS
	// failWriteSuffix makes WriteFile fail for paths with this suffix after
	// writing the first half of the data, like a full disk would.
	failWriteSuffix string
	// diskFull fails every WriteFile the same way.
	diskFull   bool
	failRename bool
	// corruptTemp replaces temp content with garbage before verification.
	corruptTemp bool
}

func (f *faultFS) WriteFile(name string, data []byte) error {
	if f.diskFull || (f.failWriteSuffix != "" && strings.HasSuffix(name, f.failWriteSuffix)) {
		_ = os.WriteFile(name, data[:len(data)/2], 0o644)
		return &os.PathError{Op: "write", Path: name, Err: syscall.ENOSPC}
	}
	if f.corruptTemp && strings.HasSuffix(name, tempSuffix) {
		data = []byte(`{"overall": {`)
	}
	return f.OSFS.WriteFile(name, data)
}

func (f *faultFS) Rename(oldpath, newpath string) error {
	if f.failRename {
		return errors.New("rename: injected failure")
	}
	return f.OSFS.Rename(oldpath, newpath)
}

func newSnapshot(correct int) *domain.Snapshot {
	s := domain.NewSnapshot(testNow)
	s.Overall.TotalCorrect = correct
	return s
}

func TestDurableWriter_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	w := NewDurableWriter(path, nil, nil)

	require.NoError(t, w.Save(newSnapshot(3)))

	got, src, err := w.Load(testNow)
	require.NoError(t, err)
	assert.Equal(t, SourcePrimary, src)
	assert.Equal(t, 3, got.Overall.TotalCorrect)
	assert.NoFileExists(t, w.TempPath())
	assert.NoFileExists(t, w.BackupPath(), "first save has nothing to back up")
}

func TestDurableWriter_SecondSaveBacksUpPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	w := NewDurableWriter(path, nil, nil)

	require.NoError(t, w.Save(newSnapshot(1)))
	require.NoError(t, w.Save(newSnapshot(2)))

	data, err := os.ReadFile(w.BackupPath())
	require.NoError(t, err)
	backup, err := Decode(data, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, backup.Overall.TotalCorrect)
}

func TestDurableWriter_DiskFullKeepsLastGoodSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	require.NoError(t, NewDurableWriter(path, nil, nil).Save(newSnapshot(5)))

	fs := &faultFS{failWriteSuffix: tempSuffix}
	w := NewDurableWriter(path, fs, nil)
	err := w.Save(newSnapshot(9))
	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.ENOSPC)
	assert.NoFileExists(t, w.TempPath(), "partial temp file is cleaned up")

	// A fresh process reading the same directory sees the last good save.
	got, src, err := NewDurableWriter(path, nil, nil).Load(testNow)
	require.NoError(t, err)
	assert.Equal(t, SourcePrimary, src)
	assert.Equal(t, 5, got.Overall.TotalCorrect)
}

func TestDurableWriter_VerificationFailureAbortsBeforeRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	require.NoError(t, NewDurableWriter(path, nil, nil).Save(newSnapshot(4)))

	w := NewDurableWriter(path, &faultFS{corruptTemp: true}, nil)
	err := w.Save(newSnapshot(8))
	require.ErrorIs(t, err, ErrVerifyFailed)

	got, src, err := w.Load(testNow)
	require.NoError(t, err)
	assert.Equal(t, SourcePrimary, src)
	assert.Equal(t, 4, got.Overall.TotalCorrect)
}

func TestDurableWriter_CrashBetweenRemoveAndRenameRecoversTemp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	require.NoError(t, NewDurableWriter(path, nil, nil).Save(newSnapshot(2)))

	w := NewDurableWriter(path, &faultFS{failRename: true}, nil)
	require.Error(t, w.Save(newSnapshot(6)))
	assert.NoFileExists(t, path)
	assert.FileExists(t, w.TempPath())

	got, src, err := NewDurableWriter(path, nil, nil).Load(testNow)
	require.NoError(t, err)
	assert.Equal(t, SourceTemp, src)
	assert.Equal(t, 6, got.Overall.TotalCorrect, "verified temp is newer than the backup")
}

func TestDurableWriter_CorruptPrimaryFallsBackToBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	w := NewDurableWriter(path, nil, nil)
	require.NoError(t, w.Save(newSnapshot(1)))
	require.NoError(t, w.Save(newSnapshot(2)))

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	got, src, err := w.Load(testNow)
	require.NoError(t, err)
	assert.Equal(t, SourceBackup, src)
	assert.Equal(t, 1, got.Overall.TotalCorrect)
}

func TestDurableWriter_DiskFullKeepsBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	w := NewDurableWriter(path, nil, nil)
	require.NoError(t, w.Save(newSnapshot(7)))
	require.NoError(t, w.Save(newSnapshot(8)))

	full := NewDurableWriter(path, &faultFS{diskFull: true}, nil)
	err := full.Save(newSnapshot(9))
	require.ErrorIs(t, err, syscall.ENOSPC)
	assert.NoFileExists(t, path+backupTempSuffix)

	data, err := os.ReadFile(w.BackupPath())
	require.NoError(t, err)
	backup, err := Decode(data, testNow)
	require.NoError(t, err, "failed save must not truncate the backup")
	assert.Equal(t, 7, backup.Overall.TotalCorrect)

	got, src, err := w.Load(testNow)
	require.NoError(t, err)
	assert.Equal(t, SourcePrimary, src)
	assert.Equal(t, 8, got.Overall.TotalCorrect)
}

func TestDurableWriter_CorruptPrimaryIsNotBackedUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	w := NewDurableWriter(path, nil, nil)
	require.NoError(t, w.Save(newSnapshot(7)))
	require.NoError(t, w.Save(newSnapshot(8)))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	got, src, err := w.Load(testNow)
	require.NoError(t, err)
	require.Equal(t, SourceBackup, src)
	require.Equal(t, 7, got.Overall.TotalCorrect)

	// Disk full while saving the recovered state: the backup still holds it.
	full := NewDurableWriter(path, &faultFS{diskFull: true}, nil)
	require.Error(t, full.Save(got))

	s, src := w.LoadOrDefault(testNow)
	assert.Equal(t, SourceBackup, src)
	assert.Equal(t, 7, s.Overall.TotalCorrect)

	// A successful save over a corrupt primary also leaves the backup alone.
	got.Overall.TotalCorrect = 10
	require.NoError(t, w.Save(got))
	data, err := os.ReadFile(w.BackupPath())
	require.NoError(t, err)
	backup, err := Decode(data, testNow)
	require.NoError(t, err)
	assert.Equal(t, 7, backup.Overall.TotalCorrect)
}

func TestDurableWriter_BothCorruptYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	w := NewDurableWriter(path, nil, nil)
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	require.NoError(t, os.WriteFile(w.BackupPath(), []byte(""), 0o644))

	_, _, err := w.Load(testNow)
	assert.ErrorIs(t, err, ErrNoSnapshot)

	s, src := w.LoadOrDefault(testNow)
	assert.Equal(t, SourceDefaults, src)
	assert.Equal(t, "2026-03-14", s.UserInfo.CreatedAt)
	assert.Equal(t, 0, s.Overall.TotalCorrect)
}

func TestDurableWriter_MissingFilesYieldDefaults(t *testing.T) {
	w := NewDurableWriter(filepath.Join(t.TempDir(), "nested", "progress.json"), nil, nil)
	s, src := w.LoadOrDefault(testNow)
	assert.Equal(t, SourceDefaults, src)
	require.NotNil(t, s)

	require.NoError(t, w.Save(s), "save creates missing parent directories")
	assert.FileExists(t, w.Path())
}
