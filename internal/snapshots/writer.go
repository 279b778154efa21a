package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/predictions"
)

// DocumentWriter persists a predictions document and reports the bytes on disk.
type DocumentWriter interface {
	WriteDocument(doc predictions.Document) (int64, error)
}

// Writer persists the predictions document to a single path.
type Writer struct {
	mu   sync.Mutex
	path string
}

// NewWriter constructs a writer targeting path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path exposes the target file (primarily for testing and CLI output).
func (w *Writer) Path() string {
	if w == nil {
		return ""
	}
	return w.path
}

// WriteDocument writes doc atomically (tmp + rename). Identical content is left untouched.
// Concurrent calls are serialized so the last caller's document wins.
func (w *Writer) WriteDocument(doc predictions.Document) (int64, error) {
	if w == nil || w.path == "" {
		return 0, errors.New("snapshot writer not configured")
	}
	if doc.Version == 0 {
		doc.Version = predictions.DocumentVersion
	}
	if doc.Predictions == nil {
		doc.Predictions = []predictions.Day{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode document: %w", err)
	}
	data = append(data, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()

	if existing, err := os.ReadFile(w.path); err == nil && bytes.Equal(existing, data) {
		return int64(len(data)), nil
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	if err := writeAtomic(dir, w.path, data); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

// writeAtomic writes data to a unique temp file in dir and renames it over path.
func writeAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
