// ABOUTME: Loading raw threat-actor profiles from JSON files
// ABOUTME: A missing file is an empty dataset, not an error
package ingestion

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/intelforge/threatscope/internal/models"
)

// LoadActors reads threat-actor profiles from a raw JSON file holding
// an array of records. A missing file yields an empty list.
func LoadActors(path string) ([]models.Actor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var actors []models.Actor
	if err := json.Unmarshal(data, &actors); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return actors, nil
}
