// Package upload stores multipart image files under a configured
// directory and hands back the generated filename. Only the filename
// string is ever persisted; the database never sees binary content.
package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type: use JPG, PNG, GIF or WebP")
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Saver validates and writes uploaded images.
type Saver struct {
	dir     string
	maxSize int64
}

func NewSaver(dir string, maxSize int64) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Saver{dir: dir, maxSize: maxSize}, nil
}

// Save validates the file and writes it under a generated unique
// filename. Returns the filename to persist.
func (s *Saver) Save(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > s.maxSize {
		return "", ErrFileTooLarge
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedTypes[strings.ToLower(contentType)] {
		return "", ErrUnsupportedType
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := fmt.Sprintf("img-%s%s", uuid.New().String(), ext)

	if err := c.SaveUploadedFile(file, filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}

	return name, nil
}

// SaveAll saves up to max files, stopping at the first failure.
func (s *Saver) SaveAll(c *gin.Context, files []*multipart.FileHeader, max int) ([]string, error) {
	if len(files) > max {
		files = files[:max]
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		name, err := s.Save(c, file)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// IsUploadError reports whether err is a client-side upload problem
// (wrong type or oversized), as opposed to a storage failure.
func IsUploadError(err error) bool {
	return errors.Is(err, ErrUnsupportedType) || errors.Is(err, ErrFileTooLarge)
}
