package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory entries.
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// MemoryFileSystem implements Provider for in-memory testing. Paths use
// forward slashes; relative paths are resolved against the root.
type MemoryFileSystem struct {
	root  string
	files map[string][]byte
	dirs  map[string]bool
}

// NewMemoryFileSystem creates an empty in-memory filesystem rooted at root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))
	return &MemoryFileSystem{
		root:  root,
		files: make(map[string][]byte),
		dirs:  map[string]bool{root: true},
	}
}

// AddFile adds a file, creating parent directories implicitly.
func (m *MemoryFileSystem) AddFile(p string, content string) {
	abs := m.abs(p)
	m.files[abs] = []byte(content)
	for dir := path.Dir(abs); dir != "/" && dir != "."; dir = path.Dir(dir) {
		if m.dirs[dir] {
			break
		}
		m.dirs[dir] = true
	}
}

func (m *MemoryFileSystem) abs(p string) string {
	p = filepath.ToSlash(p)
	if !path.IsAbs(p) {
		p = path.Join(m.root, p)
	}
	return path.Clean(p)
}

func (m *MemoryFileSystem) ReadFile(p string) ([]byte, error) {
	abs := m.abs(p)
	content, ok := m.files[abs]
	if !ok {
		if m.dirs[abs] {
			return nil, fmt.Errorf("path is a directory, not a file: %s", p)
		}
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return content, nil
}

func (m *MemoryFileSystem) ReadDir(p string) ([]FileInfo, error) {
	abs := m.abs(p)
	if !m.dirs[abs] {
		return nil, &fs.PathError{Op: "readdir", Path: p, Err: fs.ErrNotExist}
	}

	var infos []FileInfo
	seen := make(map[string]bool)
	for filePath, content := range m.files {
		if path.Dir(filePath) == abs {
			infos = append(infos, &memoryFileInfo{
				name:    path.Base(filePath),
				size:    int64(len(content)),
				mode:    0644,
				modTime: time.Time{},
			})
			seen[path.Base(filePath)] = true
		}
	}
	for dirPath := range m.dirs {
		if path.Dir(dirPath) == abs && !seen[path.Base(dirPath)] {
			infos = append(infos, &memoryFileInfo{
				name:  path.Base(dirPath),
				mode:  0755 | fs.ModeDir,
				isDir: true,
			})
		}
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })
	return infos, nil
}

func (m *MemoryFileSystem) Stat(p string) (FileInfo, error) {
	abs := m.abs(p)
	if content, ok := m.files[abs]; ok {
		return &memoryFileInfo{
			name: path.Base(abs),
			size: int64(len(content)),
			mode: 0644,
		}, nil
	}
	if m.dirs[abs] {
		return &memoryFileInfo{
			name:  path.Base(abs),
			mode:  0755 | fs.ModeDir,
			isDir: true,
		}, nil
	}
	// Allow implicit directories referenced with a trailing component.
	prefix := abs + "/"
	for filePath := range m.files {
		if strings.HasPrefix(filePath, prefix) {
			return &memoryFileInfo{
				name:  path.Base(abs),
				mode:  0755 | fs.ModeDir,
				isDir: true,
			}, nil
		}
	}
	return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
}

var _ Provider = (*MemoryFileSystem)(nil)
