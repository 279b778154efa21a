package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/predictions"
	"github.com/preston-bernstein/nhl-odds-service/internal/snapshots"
)

// NewTempWriter returns a document writer targeting a file in a temp dir.
func NewTempWriter(t *testing.T) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(filepath.Join(t.TempDir(), snapshots.DocumentFile))
}

// WriteDocument writes a document holding days, failing the test on error.
func WriteDocument(t *testing.T, w *snapshots.Writer, days ...predictions.Day) predictions.Document {
	t.Helper()
	doc := predictions.NewDocument("test-run", time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), days...)
	if err := writeDocumentPayload(w, doc); err != nil {
		t.Fatalf("failed to write document: %v", err)
	}
	return doc
}

func writeDocumentPayload(w *snapshots.Writer, doc predictions.Document) error {
	_, err := w.WriteDocument(doc)
	return err
}
