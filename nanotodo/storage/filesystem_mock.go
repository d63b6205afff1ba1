package storage

import (
	"bytes"
	"io/fs"
	"sync"
	"testing/fstest"
	"time"
)

// MockFileSystem keeps files in an fstest.MapFS. Paths are relative and
// slash separated. A non-nil error field makes the matching call fail
// until it is cleared.
type MockFileSystem struct {
	mu    sync.RWMutex
	files fstest.MapFS

	ReadFileError  error
	WriteFileError error
	RenameError    error
	RemoveError    error
	MkdirAllError  error
}

func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{files: fstest.MapFS{}}
}

func (m *MockFileSystem) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fs.Stat(m.files, name)
}

func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	if m.ReadFileError != nil {
		return nil, m.ReadFileError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fs.ReadFile(m.files, name)
}

func (m *MockFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if m.WriteFileError != nil {
		return m.WriteFileError
	}
	m.put(name, data, perm)
	return nil
}

// Rename replaces newpath, as os.Rename does
func (m *MockFileSystem) Rename(oldpath, newpath string) error {
	if m.RenameError != nil {
		return m.RenameError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	file, ok := m.files[oldpath]
	if !ok {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: fs.ErrNotExist}
	}
	m.files[newpath] = file
	delete(m.files, oldpath)
	return nil
}

func (m *MockFileSystem) Remove(name string) error {
	if m.RemoveError != nil {
		return m.RemoveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[name]; !ok {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(m.files, name)
	return nil
}

// MkdirAll only reports the injected error; directories are implied by
// file paths.
func (m *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return m.MkdirAllError
}

// Exists reports whether name holds a file
func (m *MockFileSystem) Exists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[name]
	return ok
}

// Content returns a copy of the file at name
func (m *MockFileSystem) Content(name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	file, ok := m.files[name]
	if !ok {
		return nil, false
	}
	return bytes.Clone(file.Data), true
}

// Put seeds a file, bypassing the error fields
func (m *MockFileSystem) Put(name string, data []byte) {
	m.put(name, data, 0o644)
}

func (m *MockFileSystem) put(name string, data []byte, perm fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = &fstest.MapFile{Data: bytes.Clone(data), Mode: perm, ModTime: time.Now()}
}
