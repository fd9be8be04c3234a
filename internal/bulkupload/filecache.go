package bulkupload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnknownFileCache is returned for tokens that do not name a cached file.
var ErrUnknownFileCache = errors.New("unknown file cache")

// FileCache holds extracted files between the upload and create steps.
type FileCache interface {
	Put(filename string, r io.Reader) (token string, err error)
	Filename(token string) (string, error)
}

// DiskFileCache stores cached files under dir as <uuid>/<filename>.
type DiskFileCache struct {
	dir string
}

func NewDiskFileCache(dir string) (*DiskFileCache, error) {
	if dir == "" {
		return nil, errors.New("file cache directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create file cache dir: %w", err)
	}
	return &DiskFileCache{dir: dir}, nil
}

func (c *DiskFileCache) Put(filename string, r io.Reader) (string, error) {
	token := uuid.NewString() + "/" + filepath.Base(filename)
	dest := filepath.Join(c.dir, filepath.FromSlash(token))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("create cache entry: %w", err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create cache entry: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write cache entry: %w", err)
	}
	return token, nil
}

// Filename resolves a token to the cached file's name. The name must be a
// single path element inside the token's directory.
func (c *DiskFileCache) Filename(token string) (string, error) {
	id, name, ok := strings.Cut(token, "/")
	if !ok || uuid.Validate(id) != nil || name == "" || name == "." || name == ".." || name != filepath.Base(name) {
		return "", ErrUnknownFileCache
	}
	if _, err := os.Stat(filepath.Join(c.dir, id, name)); err != nil {
		return "", ErrUnknownFileCache
	}
	return name, nil
}
