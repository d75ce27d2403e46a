package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FS is the file-system surface the durable writer depends on. Tests swap
// it to inject failures at precise steps of the save protocol.
type FS interface {
	ReadFile(name string) ([]byte, error)
	// WriteFile creates or truncates name, writes data and syncs it to disk.
	WriteFile(name string, data []byte) error
	Remove(name string) error
	Rename(oldpath, newpath string) error
	Exists(name string) bool
}

// OSFS implements FS on the real file system.
type OSFS struct{}

func (OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (OSFS) WriteFile(name string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (OSFS) Remove(name string) error {
	err := os.Remove(name)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (OSFS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (OSFS) Exists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}
