package snapshots

import "path/filepath"

// DocumentFile is the canonical predictions document name inside a data directory.
const DocumentFile = "predictions.json"

// DocumentPath builds the path to the predictions document under dataDir.
func DocumentPath(dataDir string) string {
	return filepath.Join(dataDir, DocumentFile)
}
