// ABOUTME: Actor represents a structured threat-actor profile record
// ABOUTME: Field access helpers for the loosely-typed JSON profile shape
package models

// Actor is a threat-actor profile: a mapping of field name to value as
// loaded from raw JSON. Field roles (atomic/list/text) are assigned by
// the chunking rules, not by the record itself.
type Actor map[string]interface{}

// ID returns the actor's id field, or "unknown" when absent.
func (a Actor) ID() string {
	if id, ok := a["id"].(string); ok && id != "" {
		return id
	}
	return "unknown"
}

// Name returns the actor's name field, or "" when absent.
func (a Actor) Name() string {
	name, _ := a["name"].(string)
	return name
}
