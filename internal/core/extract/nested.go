package extract

import (
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Nested Parameter Parsing
// =============================================================================
//
// Some step parameters carry serialized YAML lists as their values. Parsing
// them is total: a value that fails to parse, or parses to something other
// than a list, yields an empty collection. The error path is an internal
// concern, never part of the public contract.

// nameValue is one entry of a serialized env list.
type nameValue struct {
	Name  string
	Value string
}

// parseNameValueList parses a serialized list of {name, value} pairs into a
// map. Entries that are not mappings, or mappings missing both keys, are
// skipped. Never fails: malformed input yields an empty map.
func parseNameValueList(raw string) map[string]string {
	out := map[string]string{}
	if raw == "" {
		return out
	}
	var entries []yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &entries); err != nil {
		return out
	}
	for _, entry := range entries {
		if entry.Kind != yaml.MappingNode {
			continue
		}
		var nv nameValue
		for i := 0; i+1 < len(entry.Content); i += 2 {
			key := entry.Content[i]
			value := entry.Content[i+1]
			if value.Kind != yaml.ScalarNode {
				continue
			}
			switch key.Value {
			case "name":
				nv.Name = value.Value
			case "value":
				nv.Value = value.Value
			}
		}
		out[nv.Name] = nv.Value
	}
	return out
}

// parseStringList parses a serialized list of scalars into a string slice.
// Never fails: malformed input yields an empty slice.
func parseStringList(raw string) []string {
	out := []string{}
	if raw == "" {
		return out
	}
	var entries []yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &entries); err != nil {
		return out
	}
	for _, entry := range entries {
		if entry.Kind != yaml.ScalarNode {
			continue
		}
		out = append(out, entry.Value)
	}
	return out
}
