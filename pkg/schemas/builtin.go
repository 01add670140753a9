// Package schemas holds the built-in entity schemas of the registry
// portal and a loader for YAML schema files. Schemas are configuration,
// not code: a schema file can override or extend the built-ins without
// touching the pipeline.
package schemas

import "github.com/NSC-Rick/stjregistry/pkg/types"

// Initiative status options.
var initiativeStatuses = []string{"Proposed", "Active", "Paused", "Completed"}

// Initiatives returns the schema of the initiative registry grid.
func Initiatives() types.Schema {
	return types.Schema{
		Entity: "initiatives",
		SortBy: "initiative_name",
		Columns: []types.Column{
			{Name: "id", Kind: types.KindID, ReadOnly: true},
			{Name: "initiative_name", Kind: types.KindText, Required: true},
			{Name: "region", Kind: types.KindText},
			{Name: "status", Kind: types.KindEnum, Required: true, Options: initiativeStatuses},
			{Name: "lead_steward", Kind: types.KindText},
			{Name: "last_check_in", Kind: types.KindDate},
			{Name: "next_check_in", Kind: types.KindDate},
			{Name: "notes", Kind: types.KindText},
			{Name: "updated_at", Kind: types.KindText, ReadOnly: true},
		},
	}
}

// Members returns the schema of the membership directory.
func Members() types.Schema {
	return types.Schema{
		Entity: "members",
		SortBy: "name",
		Columns: []types.Column{
			{Name: "id", Kind: types.KindID, ReadOnly: true},
			{Name: "name", Kind: types.KindText, Required: true},
			{Name: "organization", Kind: types.KindText},
			{Name: "role", Kind: types.KindText},
			{Name: "region", Kind: types.KindText},
			{Name: "email", Kind: types.KindText},
			{Name: "status", Kind: types.KindEnum, Options: []string{"Active", "Inactive"}},
			{Name: "joined_on", Kind: types.KindDate},
			{Name: "notes", Kind: types.KindText},
			{Name: "updated_at", Kind: types.KindText, ReadOnly: true},
		},
	}
}

// Speakers returns the schema of the speaker directory.
func Speakers() types.Schema {
	return types.Schema{
		Entity: "speakers",
		SortBy: "name",
		Columns: []types.Column{
			{Name: "id", Kind: types.KindID, ReadOnly: true},
			{Name: "name", Kind: types.KindText, Required: true},
			{Name: "topics", Kind: types.KindText},
			{Name: "organization", Kind: types.KindText},
			{Name: "region", Kind: types.KindText},
			{Name: "email", Kind: types.KindText},
			{Name: "last_engagement", Kind: types.KindDate},
			{Name: "notes", Kind: types.KindText},
			{Name: "updated_at", Kind: types.KindText, ReadOnly: true},
		},
	}
}

// Builtin returns every built-in schema keyed by entity name.
func Builtin() map[string]types.Schema {
	out := make(map[string]types.Schema)
	for _, s := range []types.Schema{Initiatives(), Members(), Speakers()} {
		out[s.Entity] = s
	}
	return out
}

// Lookup returns the schema for an entity from the built-ins merged
// with the given extras. Extras win over built-ins of the same name.
func Lookup(entity string, extras map[string]types.Schema) (types.Schema, bool) {
	if s, ok := extras[entity]; ok {
		return s, true
	}
	s, ok := Builtin()[entity]
	return s, ok
}
