package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one render in the output manifest.
type ManifestEntry struct {
	Result
	Seconds float64 `json:"seconds"`
}

// WriteManifest writes the results as indented JSON to path.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{Result: r, Seconds: r.Elapsed.Seconds()}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
