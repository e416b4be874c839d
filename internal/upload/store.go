// Package upload stores user-supplied media under a fixed directory and
// hands back URL paths usable by content records.
package upload

import (
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	// Decoders for probing the dimensions of common upload formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ErrNoFile is returned when the request carried no file at all.
var ErrNoFile = errors.New("no file provided")

// SavedFile describes a stored upload.
type SavedFile struct {
	Name   string // final filename on disk
	Path   string // filesystem path
	URL    string // public URL path
	Width  int    // 0 when the file is not a decodable image
	Height int
}

// Store writes uploads into a single directory and serves them from a fixed
// URL prefix. Filenames are sanitized and never silently overwritten: a
// name collision gets a numeric suffix instead.
type Store struct {
	dir     string
	urlPath string
}

// NewStore creates a store rooted at dir, published under urlPath.
func NewStore(dir, urlPath string) *Store {
	return &Store{dir: dir, urlPath: strings.TrimRight(urlPath, "/")}
}

// Save persists the uploaded file and returns its stored reference.
// No type or size validation happens here; any bytes are accepted.
func (s *Store) Save(file *multipart.FileHeader) (*SavedFile, error) {
	if file == nil {
		return nil, ErrNoFile
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	name, err := s.reserveName(SanitizeFilename(file.Filename))
	if err != nil {
		return nil, err
	}

	dst := filepath.Join(s.dir, name)
	if err := copyUpload(file, dst); err != nil {
		return nil, err
	}

	saved := &SavedFile{
		Name: name,
		Path: dst,
		URL:  s.urlPath + "/" + name,
	}
	saved.Width, saved.Height = probeDimensions(dst)
	return saved, nil
}

// Remove deletes a previously stored file. Unknown paths are a no-op.
func (s *Store) Remove(storedPath string) error {
	if strings.TrimSpace(storedPath) == "" {
		return nil
	}
	if err := os.Remove(storedPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// PathForURL maps a public upload URL back to its filesystem path, or ""
// when the URL does not point into this store.
func (s *Store) PathForURL(url string) string {
	if s.urlPath == "" || !strings.HasPrefix(url, s.urlPath+"/") {
		return ""
	}
	name := strings.TrimPrefix(url, s.urlPath+"/")
	if name == "" || strings.Contains(name, "/") {
		return ""
	}
	return filepath.Join(s.dir, name)
}

// SanitizeFilename strips directory components and collapses anything
// outside [A-Za-z0-9._-] to underscores. Names that sanitize away entirely
// get a generated uuid instead.
func SanitizeFilename(name string) string {
	base := path.Base(filepath.ToSlash(strings.TrimSpace(name)))
	if base == "." || base == "/" || base == "" {
		base = ""
	}

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.Trim(b.String(), "._")
	if cleaned == "" {
		return uuid.NewString()
	}
	return cleaned
}

// reserveName finds a free filename, appending -1, -2, ... on collision.
func (s *Store) reserveName(name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := name
	for i := 1; ; i++ {
		_, err := os.Stat(filepath.Join(s.dir, candidate))
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("check upload name: %w", err)
		}
		candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}
}

func copyUpload(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("write upload: %w", err)
	}
	return nil
}

func probeDimensions(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
