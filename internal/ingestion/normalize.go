// ABOUTME: Normalization of actor profile fields before chunking
// ABOUTME: Coerces list fields to lists and trims name/description
package ingestion

import (
	"strings"

	"github.com/intelforge/threatscope/internal/models"
)

// listFields are the profile fields that must always be lists
var listFields = []string{"aliases", "ttps", "targets", "origins", "motivations"}

// NormalizeActor returns a normalized copy of an actor profile: a lone
// string in a list field becomes a one-item list, a missing list field
// an empty one, and name/description are trimmed. Other ill-typed list
// values are left in place for validation to reject.
func NormalizeActor(actor models.Actor) models.Actor {
	normalized := make(models.Actor, len(actor))
	for k, v := range actor {
		normalized[k] = v
	}

	for _, field := range listFields {
		switch v := normalized[field].(type) {
		case string:
			normalized[field] = []interface{}{v}
		case nil:
			normalized[field] = []interface{}{}
		}
	}

	if name, ok := normalized["name"].(string); ok && name != "" {
		normalized["name"] = strings.TrimSpace(name)
	}
	if desc, ok := normalized["description"].(string); ok && desc != "" {
		normalized["description"] = strings.TrimSpace(desc)
	}

	return normalized
}

// NormalizeActors normalizes a list of actor profiles
func NormalizeActors(actors []models.Actor) []models.Actor {
	normalized := make([]models.Actor, len(actors))
	for i, actor := range actors {
		normalized[i] = NormalizeActor(actor)
	}
	return normalized
}
