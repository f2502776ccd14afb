// Package uploads stores document payloads on local disk and maps them to the
// server-relative links saved on content records.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is the public path the upload directory is served under.
const URLPrefix = "/uploads"

// LocalFileStore writes uploads into dir.
type LocalFileStore struct {
	dir string
}

// NewLocalFileStore creates dir if needed.
func NewLocalFileStore(dir string) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &LocalFileStore{dir: dir}, nil
}

func (s *LocalFileStore) Dir() string {
	return s.dir
}

// Save copies r into a new file named after originalName's extension and
// returns its link. The file is fully written and closed before returning.
func (s *LocalFileStore) Save(r io.Reader, originalName string) (string, error) {
	name := "file-" + uuid.NewString() + strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	return URLPrefix + "/" + name, nil
}

// Remove deletes the file behind link. A file that is already gone is not an error.
func (s *LocalFileStore) Remove(link string) error {
	name := filepath.Base(strings.TrimPrefix(link, URLPrefix+"/"))
	if name == "." || name == "/" || name == "" {
		return fmt.Errorf("invalid upload link %q", link)
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
