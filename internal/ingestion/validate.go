// ABOUTME: Validation of actor profiles before ingestion
// ABOUTME: Invalid records are skipped and counted, never fatal
package ingestion

import (
	"fmt"
	"log"

	"github.com/intelforge/threatscope/internal/models"
)

// ValidateActor checks that an actor profile is ingestible: id and
// name present and non-empty, list fields list-shaped, description a
// string when present.
func ValidateActor(actor models.Actor) error {
	id, ok := actor["id"].(string)
	if !ok || id == "" {
		return fmt.Errorf("missing or empty id")
	}
	name, ok := actor["name"].(string)
	if !ok || name == "" {
		return fmt.Errorf("missing or empty name")
	}

	for _, field := range listFields {
		if v, present := actor[field]; present {
			switch v.(type) {
			case []interface{}, []string:
			default:
				return fmt.Errorf("field %s is not a list", field)
			}
		}
	}

	if v, present := actor["description"]; present {
		if _, ok := v.(string); !ok {
			return fmt.Errorf("field description is not a string")
		}
	}
	return nil
}

// ValidateActors partitions actors into valid records and an invalid
// count, logging each rejection.
func ValidateActors(actors []models.Actor) ([]models.Actor, int) {
	var valid []models.Actor
	invalid := 0
	for _, actor := range actors {
		if err := ValidateActor(actor); err != nil {
			log.Printf("ingestion: skipping actor %s: %v", actor.ID(), err)
			invalid++
			continue
		}
		valid = append(valid, actor)
	}
	return valid, invalid
}
