package snapshots

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/predictions"
)

// ErrUnsupportedVersion is returned for documents newer than this build understands.
var ErrUnsupportedVersion = errors.New("unsupported predictions document version")

// Load reads a predictions document from path.
func Load(path string) (predictions.Document, error) {
	if path == "" {
		return predictions.Document{}, errors.New("snapshot path required")
	}
	f, err := os.Open(path)
	if err != nil {
		return predictions.Document{}, err
	}
	defer f.Close()

	var doc predictions.Document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return predictions.Document{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if doc.Version > predictions.DocumentVersion {
		return predictions.Document{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	if doc.Predictions == nil {
		doc.Predictions = []predictions.Day{}
	}
	return doc, nil
}

// FindDay returns the entry for date, if the document has one.
func FindDay(doc predictions.Document, date string) (predictions.Day, bool) {
	for _, day := range doc.Predictions {
		if day.Date == date {
			return day, true
		}
	}
	return predictions.Day{}, false
}
