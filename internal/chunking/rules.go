// ABOUTME: Field-role table mapping actor profile fields to chunking strategies
// ABOUTME: Injected into the chunker as data so tests can supply alternative schemas
package chunking

import "github.com/intelforge/threatscope/internal/models"

// FieldRole is the chunking strategy assigned to a profile field
type FieldRole string

const (
	RoleAtomic  FieldRole = "atomic"
	RoleList    FieldRole = "list"
	RoleText    FieldRole = "text"
	RoleUnknown FieldRole = "unknown"
)

// FieldRoles maps field names to their chunking role
type FieldRoles map[string]FieldRole

// DefaultFieldRoles returns the role table for the threat-actor profile shape
func DefaultFieldRoles() FieldRoles {
	return FieldRoles{
		"id":          RoleAtomic,
		"name":        RoleAtomic,
		"first_seen":  RoleAtomic,
		"last_seen":   RoleAtomic,
		"aliases":     RoleList,
		"ttps":        RoleList,
		"targets":     RoleList,
		"origins":     RoleList,
		"motivations": RoleList,
		"description": RoleText,
	}
}

// RoleFor returns the role for a field name. Unknown fields get
// RoleUnknown and are skipped by the chunker rather than erroring.
func (r FieldRoles) RoleFor(field string) FieldRole {
	if role, ok := r[field]; ok {
		return role
	}
	return RoleUnknown
}

// ChunkType maps a role to the chunk type it emits
func (fr FieldRole) ChunkType() models.ChunkType {
	switch fr {
	case RoleList:
		return models.ChunkTypeList
	case RoleText:
		return models.ChunkTypeText
	default:
		return models.ChunkTypeAtomic
	}
}
