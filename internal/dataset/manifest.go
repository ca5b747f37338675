package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const manifestFile = "manifest.json"

// ManifestEntry records freshness and size for one dataset. Timestamps are
// written only after a generation has been successfully published.
type ManifestEntry struct {
	DownloadedAt time.Time `json:"downloadedAt"`
	RowCount     int       `json:"rowCount,omitempty"`
	SDNCount     int       `json:"sdnCount,omitempty"`
	AliasCount   int       `json:"aliasCount,omitempty"`
}

// Manifest is the small persisted record used to decide staleness across
// process restarts.
type Manifest struct {
	Revocation *ManifestEntry `json:"revocationDataset,omitempty"`
	Sanctions  *ManifestEntry `json:"sanctionsDataset,omitempty"`
}

func loadManifest(dir string) (Manifest, error) {
	var m Manifest
	raw, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m, nil
		}
		return m, fmt.Errorf("read manifest: %w", err)
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		// A corrupt manifest means freshness is unknown; treat every
		// dataset as stale rather than failing startup.
		return Manifest{}, nil
	}
	return m, nil
}

func saveManifest(dir string, m Manifest) error {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	tmp := filepath.Join(dir, manifestFile+".tmp")
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(dir, manifestFile)); err != nil {
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}
