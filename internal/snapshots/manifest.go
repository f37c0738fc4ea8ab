package snapshots

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest tracks snapshot metadata.
type Manifest struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	Retention   Retention `json:"retention"`
	Games       GamesMeta `json:"games"`
}

type Retention struct {
	GamesDays int `json:"gamesDays"`
}

type GamesMeta struct {
	Dates         []string  `json:"dates"`
	LastRefreshed time.Time `json:"lastRefreshed"`
}

func defaultManifest(retentionDays int, now time.Time) Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: now.UTC(),
		Retention: Retention{
			GamesDays: retentionDays,
		},
		Games: GamesMeta{
			Dates: []string{},
		},
	}
}

// ReadManifest loads the manifest under basePath.
func ReadManifest(basePath string) (Manifest, error) {
	var m Manifest
	f, err := os.Open(manifestPath(basePath))
	if err != nil {
		return m, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest, now time.Time) error {
	m.GeneratedAt = now.UTC()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(manifestPath(basePath), data)
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
