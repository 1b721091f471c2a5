// Package storage keeps uploaded album covers on the local filesystem.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// URLPrefix is the path under which stored files are served.
const URLPrefix = "/uploads/images/"

const sniffLen = 3072

// ErrNotImage is returned when the sniffed content is not an accepted image format.
var ErrNotImage = errors.New("storage: content is not a supported image")

var sniffedImageTypes = []string{
	"image/png",
	"image/vnd.mozilla.apng",
	"image/jpeg",
	"image/gif",
	"image/webp",
	"image/avif",
}

type LocalStorage struct {
	dir     string
	baseURL string
	now     func() time.Time
}

// NewLocalStorage stores files in dir and links them under baseURL, which is an
// origin such as http://localhost:5000.
func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

func (s *LocalStorage) Dir() string { return s.dir }

// WriteFile sniffs the first bytes of r, rejects anything that is not an image,
// then writes the full stream to a new file named after the upload time and the
// original name. It returns the stored file name.
func (s *LocalStorage) WriteFile(r io.Reader, originalName string) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("storage: read: %w", err)
	}
	head = head[:n]

	if !isImage(mimetype.Detect(head)) {
		return "", ErrNotImage
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir: %w", err)
	}

	filename := strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + sanitizeName(originalName)
	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("storage: create: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.MultiReader(bytes.NewReader(head), r)); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("storage: write: %w", err)
	}
	return filename, nil
}

// URL is the public link to a stored file.
func (s *LocalStorage) URL(filename string) string {
	return s.baseURL + URLPrefix + filename
}

func (s *LocalStorage) Remove(filename string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(filename)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: remove: %w", err)
	}
	return nil
}

func isImage(m *mimetype.MIME) bool {
	for _, t := range sniffedImageTypes {
		if m.Is(t) {
			return true
		}
	}
	return false
}

func sanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "cover"
	}
	return out
}
