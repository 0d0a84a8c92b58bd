// Package media manages post media files on local disk.
package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mural/internal/observability"

	"github.com/google/uuid"
)

// URLPrefix is the public path under which stored files are served.
const URLPrefix = "/media/"

// Store persists uploaded media files under a single directory and maps
// them to server-relative URLs. Filenames embed epoch-millis and a UUID so
// concurrent uploads cannot collide.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the upload directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes content to a uniquely named file, keeping the original
// filename's extension, and returns the file's public URL.
func (s *Store) Save(originalName string, content []byte) (string, error) {
	name := uniqueName(originalName)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		observability.MediaFileOps.WithLabelValues("save", "error").Inc()
		return "", err
	}
	observability.MediaFileOps.WithLabelValues("save", "ok").Inc()
	return URLPrefix + name, nil
}

// Remove deletes the file behind url with delete-if-exists semantics:
// a missing file is not an error.
func (s *Store) Remove(url string) error {
	path, ok := s.Resolve(url)
	if !ok {
		return nil
	}
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		observability.MediaFileOps.WithLabelValues("remove", "error").Inc()
		return err
	}
	observability.MediaFileOps.WithLabelValues("remove", "ok").Inc()
	return nil
}

// Exists reports whether the file behind url is present on disk.
func (s *Store) Exists(url string) bool {
	path, ok := s.Resolve(url)
	if !ok {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Resolve maps a public URL back to an on-disk path. URLs that do not carry
// the media prefix, or whose name would escape the upload directory, resolve
// to false.
func (s *Store) Resolve(url string) (string, bool) {
	if !strings.HasPrefix(url, URLPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(url, URLPrefix)
	if name == "" || name != filepath.Base(name) {
		return "", false
	}
	return filepath.Join(s.dir, name), true
}

func uniqueName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}
