package position

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"TrendSentry/internal/model"
)

type holdingsFile struct {
	Records []model.Position `json:"records"`
}

// Load reads a holdings file and returns its purchase lots.
// A missing or malformed file is treated as holding nothing.
func Load(path string) []model.Position {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARN] Failed to read holdings file %s: %v", path, err)
		}
		return nil
	}
	var f holdingsFile
	if err := json.Unmarshal(data, &f); err != nil {
		log.Printf("[WARN] Malformed holdings file %s: %v", path, err)
		return nil
	}
	return f.Records
}

// Save writes purchase lots back to a holdings file.
func Save(path string, records []model.Position) error {
	if records == nil {
		records = []model.Position{}
	}
	data, err := json.MarshalIndent(holdingsFile{Records: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode holdings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write holdings file: %w", err)
	}
	return nil
}
