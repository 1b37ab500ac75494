package filesystem

import (
	"os"
)

// osProvider implements Provider using the real filesystem.
type osProvider struct{}

// NewOSFileSystem creates a Provider backed by the OS filesystem.
func NewOSFileSystem() Provider {
	return &osProvider{}
}

func (p *osProvider) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (p *osProvider) ReadDir(path string) ([]FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	infos := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (p *osProvider) Stat(path string) (FileInfo, error) {
	return os.Stat(path)
}
