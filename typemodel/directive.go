package typemodel

import (
	"reflect"
	"strings"
)

// DirectiveKind enumerates the closed set of per-field directives. All
// attribute syntax is resolved into directives up front; nothing downstream
// re-parses struct tags.
type DirectiveKind int

const (
	// DirectiveRename overrides the resolved property name for one field.
	// Takes precedence over any rename-all transform.
	DirectiveRename DirectiveKind = iota

	// DirectiveDefault marks the field as carrying a default value, making
	// it not required even when it is not optional-wrapped.
	DirectiveDefault

	// DirectiveSkip removes the field from the model entirely.
	DirectiveSkip

	// DirectiveFlatten inlines the field's struct type into the parent's
	// property list.
	DirectiveFlatten

	// DirectiveDescription attaches a human-readable description.
	DirectiveDescription
)

// FieldDirective is one resolved directive with its optional value.
type FieldDirective struct {
	Kind  DirectiveKind
	Value string
}

// parseDirectives resolves a struct field's tags into the closed directive
// set. The json tag contributes rename ("name"), skip ("-"), and default
// ("omitempty"/"omitzero", matching how encoding/json treats absent
// values). The api tag contributes the remaining directives as
// comma-separated key[=value] entries: rename=..., default, skip, flatten,
// description=....
func parseDirectives(field reflect.StructField) []FieldDirective {
	var ds []FieldDirective

	jsonTag := field.Tag.Get("json")
	if jsonTag == "-" {
		return []FieldDirective{{Kind: DirectiveSkip}}
	}
	if jsonTag != "" {
		name, rest, _ := strings.Cut(jsonTag, ",")
		if name != "" {
			ds = append(ds, FieldDirective{Kind: DirectiveRename, Value: name})
		}
		if strings.Contains(rest, "omitempty") || strings.Contains(rest, "omitzero") {
			ds = append(ds, FieldDirective{Kind: DirectiveDefault})
		}
	}

	for part := range strings.SplitSeq(field.Tag.Get("api"), ",") {
		key, value, _ := strings.Cut(part, "=")
		switch strings.TrimSpace(key) {
		case "rename":
			ds = append(ds, FieldDirective{Kind: DirectiveRename, Value: strings.TrimSpace(value)})
		case "default":
			ds = append(ds, FieldDirective{Kind: DirectiveDefault})
		case "skip":
			ds = append(ds, FieldDirective{Kind: DirectiveSkip})
		case "flatten":
			ds = append(ds, FieldDirective{Kind: DirectiveFlatten})
		case "description":
			ds = append(ds, FieldDirective{Kind: DirectiveDescription, Value: strings.TrimSpace(value)})
		}
	}

	return ds
}
