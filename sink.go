package simplecsv

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// Sink receives a finished document for delivery, such as a file download.
type Sink interface {
	Save(doc []byte, filename, mimeType string) error
}

// SinkFunc adapts a function to [Sink].
type SinkFunc func(doc []byte, filename, mimeType string) error

// Save calls f.
func (f SinkFunc) Save(doc []byte, filename, mimeType string) error {
	return f(doc, filename, mimeType)
}

// SanitizeFilename replaces spaces with underscores and appends ".csv".
func SanitizeFilename(name string) string {
	return strings.ReplaceAll(name, " ", "_") + ".csv"
}

// WriterSink writes documents to W and ignores the file name.
type WriterSink struct {
	W io.Writer
}

// Save writes doc to s.W.
func (s WriterSink) Save(doc []byte, _, _ string) error {
	_, err := s.W.Write(doc)
	return err
}

// FileSink writes each document to Dir/filename on Fs.
type FileSink struct {
	// Fs defaults to the OS filesystem.
	Fs  afero.Fs
	Dir string
	// Perm defaults to 0o644.
	Perm os.FileMode
}

// NewFileSink returns a FileSink writing into dir on the OS filesystem.
func NewFileSink(dir string) *FileSink {
	return &FileSink{Fs: afero.NewOsFs(), Dir: dir}
}

// Save writes doc, creating Dir when missing.
func (s *FileSink) Save(doc []byte, filename, _ string) error {
	fs := s.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if filename == "" || filename != filepath.Base(filename) {
		return fmt.Errorf("file sink: invalid file name %q", filename)
	}
	perm := s.Perm
	if perm == 0 {
		perm = 0o644
	}
	if s.Dir != "" {
		if err := fs.MkdirAll(s.Dir, 0o755); err != nil {
			return fmt.Errorf("file sink: %w", err)
		}
	}
	path := filepath.Join(s.Dir, filename)
	if err := afero.WriteFile(fs, path, doc, perm); err != nil {
		return fmt.Errorf("file sink: %w", err)
	}
	return nil
}

// Path returns where filename would be written.
func (s *FileSink) Path(filename string) string {
	return filepath.Join(s.Dir, filename)
}

// HTTPSink serves documents as file downloads.
type HTTPSink struct {
	W http.ResponseWriter
}

// Save writes doc as an attachment response.
func (s HTTPSink) Save(doc []byte, filename, mimeType string) error {
	h := s.W.Header()
	h.Set("Content-Type", mimeType)
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	h.Set("Content-Length", strconv.Itoa(len(doc)))
	s.W.WriteHeader(http.StatusOK)
	_, err := s.W.Write(doc)
	return err
}
