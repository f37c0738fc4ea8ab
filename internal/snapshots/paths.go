package snapshots

import (
	"fmt"
	"path/filepath"
)

const manifestFile = "manifest.json"

// GameSnapshotPath builds the path to a games snapshot for a given date.
func GameSnapshotPath(basePath, date string) string {
	return filepath.Join(basePath, string(kindGames), fmt.Sprintf("%s.json", date))
}

func manifestPath(basePath string) string {
	return filepath.Join(basePath, manifestFile)
}
