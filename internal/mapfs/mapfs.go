/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mapfs provides an in-memory filesystem implementation for testing.
package mapfs

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"testing/fstest"
	"time"
)

// MapFileSystem implements FileSystem using an in-memory fstest.MapFS.
// Directories are recorded as ".keep" entries so that empty directories
// survive until removed.
type MapFileSystem struct {
	mu        sync.RWMutex
	mapFS     fstest.MapFS
	modTime   time.Time
	tempSeq   int
	failWrite map[string]error
	failRmAll map[string]error
}

// New creates a new in-memory filesystem for testing.
func New() *MapFileSystem {
	return &MapFileSystem{
		mapFS:     make(fstest.MapFS),
		modTime:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		failWrite: make(map[string]error),
		failRmAll: make(map[string]error),
	}
}

// AddFile adds a file to the in-memory filesystem.
func (mfs *MapFileSystem) AddFile(p string, content string, mode fs.FileMode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.mapFS[mfs.cleanPath(p)] = &fstest.MapFile{
		Data:    []byte(content),
		Mode:    mode,
		ModTime: mfs.modTime,
	}
}

// FailWrite makes every subsequent WriteFile to p return err.
func (mfs *MapFileSystem) FailWrite(p string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.failWrite[mfs.cleanPath(p)] = err
}

// FailRemoveAll makes RemoveAll on any path under prefix return err.
func (mfs *MapFileSystem) FailRemoveAll(prefix string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.failRmAll[mfs.cleanPath(prefix)] = err
}

// WriteFile implements FileSystem.
func (mfs *MapFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = mfs.cleanPath(name)
	if err, ok := mfs.failWrite[name]; ok {
		return &fs.PathError{Op: "write", Path: name, Err: err}
	}
	if err := mfs.ensureParentDirLocked(name); err != nil {
		return err
	}

	mfs.mapFS[name] = &fstest.MapFile{
		Data:    append([]byte(nil), data...),
		Mode:    perm,
		ModTime: mfs.modTime,
	}
	return nil
}

// ReadFile implements FileSystem.
func (mfs *MapFileSystem) ReadFile(name string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	return fs.ReadFile(mfs.mapFS, mfs.cleanPath(name))
}

// Remove implements FileSystem.
func (mfs *MapFileSystem) Remove(name string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = mfs.cleanPath(name)
	if _, exists := mfs.mapFS[name]; exists {
		delete(mfs.mapFS, name)
		return nil
	}
	keep := name + "/.keep"
	if _, exists := mfs.mapFS[keep]; exists {
		for p := range mfs.mapFS {
			if p != keep && strings.HasPrefix(p, name+"/") {
				return &fs.PathError{Op: "remove", Path: name, Err: fmt.Errorf("directory not empty")}
			}
		}
		delete(mfs.mapFS, keep)
		return nil
	}
	return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
}

// MkdirAll implements FileSystem.
func (mfs *MapFileSystem) MkdirAll(p string, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	p = mfs.cleanPath(p)
	if p == "" || p == "." {
		return nil
	}
	if file, exists := mfs.mapFS[p]; exists && !file.Mode.IsDir() {
		return &fs.PathError{Op: "mkdir", Path: p, Err: fmt.Errorf("not a directory")}
	}

	mfs.mapFS[p+"/.keep"] = &fstest.MapFile{
		Data:    []byte(""),
		Mode:    perm.Perm(),
		ModTime: mfs.modTime,
	}
	return nil
}

// MkdirTemp implements FileSystem. Names are sequential so tests are
// deterministic.
func (mfs *MapFileSystem) MkdirTemp(dir, pattern string) (string, error) {
	mfs.mu.Lock()
	mfs.tempSeq++
	name := path.Join(dir, fmt.Sprintf("%s%d", strings.TrimSuffix(pattern, "*"), mfs.tempSeq))
	mfs.mu.Unlock()

	if err := mfs.MkdirAll(name, 0o700); err != nil {
		return "", err
	}
	return name, nil
}

// RemoveAll implements FileSystem.
func (mfs *MapFileSystem) RemoveAll(p string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	p = mfs.cleanPath(p)
	for prefix, err := range mfs.failRmAll {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return &fs.PathError{Op: "unlinkat", Path: p, Err: err}
		}
	}
	for name := range mfs.mapFS {
		if name == p || strings.HasPrefix(name, p+"/") {
			delete(mfs.mapFS, name)
		}
	}
	return nil
}

// Stat implements FileSystem.
func (mfs *MapFileSystem) Stat(name string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	return fs.Stat(mfs.mapFS, mfs.cleanPath(name))
}

// Exists implements FileSystem.
func (mfs *MapFileSystem) Exists(p string) bool {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	p = mfs.cleanPath(p)
	if _, exists := mfs.mapFS[p]; exists {
		return true
	}
	prefix := p + "/"
	for filePath := range mfs.mapFS {
		if strings.HasPrefix(filePath, prefix) {
			return true
		}
	}
	return false
}

// ReadDir implements FileSystem.
func (mfs *MapFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	return fs.ReadDir(mfs.mapFS, mfs.cleanPath(name))
}

// Files returns the sorted paths of every regular file, omitting
// directory markers.
func (mfs *MapFileSystem) Files() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	files := make([]string, 0, len(mfs.mapFS))
	for p := range mfs.mapFS {
		if p == ".keep" || strings.HasSuffix(p, "/.keep") {
			continue
		}
		files = append(files, "/"+p)
	}
	sort.Strings(files)
	return files
}

func (mfs *MapFileSystem) cleanPath(p string) string {
	cleaned := path.Clean(p)
	if !path.IsAbs(cleaned) {
		cleaned = "/" + cleaned
	}
	return strings.TrimPrefix(cleaned, "/")
}

func (mfs *MapFileSystem) ensureParentDirLocked(filePath string) error {
	dir := path.Dir(filePath)
	if dir == "." || dir == "/" || dir == "" {
		return nil
	}
	if file, exists := mfs.mapFS[dir]; exists && !file.Mode.IsDir() {
		return &fs.PathError{Op: "open", Path: filePath, Err: fmt.Errorf("not a directory")}
	}
	return nil
}
