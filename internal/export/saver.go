// Package export provides keywords.Saver implementations for writing CSV
// documents to disk or keeping them in memory.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrInvalidName is returned for file names that would escape the output
// directory.
var ErrInvalidName = errors.New("invalid file name")

// ValidateName rejects empty names, "." and "..", and names containing path
// separators or NUL bytes.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

// DirSaver writes exports into a single directory. Files are written to a
// temporary name and renamed into place, replacing any existing file.
type DirSaver struct {
	dir string
}

// NewDirSaver creates a saver rooted at dir. The directory is created on
// first save.
func NewDirSaver(dir string) *DirSaver {
	return &DirSaver{dir: dir}
}

// Path returns where a file with the given name is saved.
func (s *DirSaver) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Save implements keywords.Saver.
func (s *DirSaver) Save(ctx context.Context, content []byte, name, mimeType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateName(name); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions on %s: %w", name, err)
	}
	if err := os.Rename(tmpName, s.Path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming %s: %w", name, err)
	}

	slog.Info("export saved",
		slog.String("path", s.Path(name)),
		slog.Int("bytes", len(content)),
		slog.String("mime_type", mimeType),
	)
	return nil
}

// File is a document captured by MemorySaver.
type File struct {
	Name     string
	MIMEType string
	Content  []byte
}

// MemorySaver keeps saved documents in memory, keyed by file name.
type MemorySaver struct {
	mu    sync.Mutex
	files map[string]File
}

// NewMemorySaver creates an empty in-memory saver.
func NewMemorySaver() *MemorySaver {
	return &MemorySaver{files: make(map[string]File)}
}

// Save implements keywords.Saver.
func (s *MemorySaver) Save(ctx context.Context, content []byte, name, mimeType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = File{
		Name:     name,
		MIMEType: mimeType,
		Content:  append([]byte(nil), content...),
	}
	return nil
}

// Get returns the file saved under name.
func (s *MemorySaver) Get(name string) (File, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[name]
	return f, ok
}

// Names returns the saved file names in sorted order.
func (s *MemorySaver) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
