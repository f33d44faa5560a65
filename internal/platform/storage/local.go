package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const pdfSubdir = "books/pdf"

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)
var whitespace = regexp.MustCompile(`\s+`)

// LocalStorage places uploaded PDFs on local disk under a fixed relative
// uploads directory. Stored paths are relative and use forward slashes so
// the database rows stay portable across hosts.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage ensures the PDF directory exists and returns the store.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	dir := filepath.Join(baseDir, filepath.FromSlash(pdfSubdir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// SanitizeFilename makes an uploaded filename safe for disk and URLs:
// whitespace becomes dashes, anything outside [a-zA-Z0-9-_.] is dropped and
// the result is lower-cased. An empty input falls back to "book".
func SanitizeFilename(name string) string {
	if name == "" {
		name = "book"
	}
	safe := whitespace.ReplaceAllString(name, "-")
	safe = unsafeChars.ReplaceAllString(safe, "")
	safe = strings.ToLower(safe)
	if safe == "" || strings.Trim(safe, ".") == "" {
		safe = "book"
	}
	return safe
}

// TimestampedName builds the collision-resistant stored filename: the
// sanitized base plus a millisecond timestamp suffix before the extension.
func TimestampedName(originalName string, now time.Time) string {
	safe := SanitizeFilename(originalName)
	ext := filepath.Ext(safe)
	if ext == "" {
		ext = ".pdf"
	}
	base := strings.TrimSuffix(safe, ext)
	return fmt.Sprintf("%s-%d%s", base, now.UnixMilli(), ext)
}

// SavePDF writes the uploaded content to disk and returns the relative
// path to persist alongside the book metadata.
func (s *LocalStorage) SavePDF(originalName string, src io.Reader) (string, error) {
	fileName := TimestampedName(originalName, time.Now())
	relPath := strings.Join([]string{s.baseDir, pdfSubdir, fileName}, "/")

	dst, err := os.Create(filepath.FromSlash(relPath))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filepath.FromSlash(relPath))
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return relPath, nil
}

// Remove deletes a previously stored file. Used as compensating cleanup
// when the metadata insert fails after the file was placed on disk.
func (s *LocalStorage) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	return os.Remove(filepath.FromSlash(relPath))
}

// IsPDF reports whether the upload looks like a PDF, by declared content
// type or by file extension.
func IsPDF(filename, contentType string) bool {
	if contentType == "application/pdf" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}
