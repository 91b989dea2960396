package typemodel

import (
	"fmt"
	"reflect"
)

// Options configure extraction.
type Options struct {
	// RenameAll is the default case style applied to field names. A type
	// implementing RenameAller overrides it, and a field-level rename
	// directive overrides both for that field only.
	RenameAll Case
}

// Extract resolves one type declaration into canonical metadata. The input
// must be a named enum (Enumer), tagged union (OneOfer), or struct type.
// Extraction is pure: calling it twice on the same type yields structurally
// identical metadata.
func Extract(t reflect.Type, opts Options) (*StructMetadata, error) {
	meta := &StructMetadata{
		Name: SchemaName(t),
		Decl: t.String(),
	}

	if t.Kind() != reflect.Interface {
		probe := reflect.New(t).Interface()
		if e, ok := probe.(Enumer); ok {
			meta.EnumValues = e.OpenAPIEnum()
			return meta, nil
		}
		if o, ok := probe.(OneOfer); ok {
			oneOf := o.OpenAPIOneOf()
			meta.Variants = oneOf.Variants
			meta.Tagging = oneOf.Tagging
			return meta, nil
		}
	}

	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("typemodel: cannot extract %s: not a struct, enum, or union", t)
	}

	renameAll := opts.RenameAll
	if ra, ok := reflect.New(t).Interface().(RenameAller); ok {
		renameAll = ParseCase(ra.OpenAPIRenameAll())
	}

	fields, err := extractFields(t, renameAll)
	if err != nil {
		return nil, err
	}
	meta.Fields = fields
	return meta, nil
}

func extractFields(t reflect.Type, renameAll Case) ([]FieldDescriptor, error) {
	var fields []FieldDescriptor

	for i := range t.NumField() {
		f := t.Field(i)
		// Anonymous fields of unexported struct types still promote their
		// exported fields, matching encoding/json.
		if !f.IsExported() && !(f.Anonymous && f.Type.Kind() == reflect.Struct) {
			continue
		}

		var (
			rename     string
			hasDefault bool
			skip       bool
			flatten    bool
			desc       string
		)
		for _, d := range parseDirectives(f) {
			switch d.Kind {
			case DirectiveRename:
				rename = d.Value
			case DirectiveDefault:
				hasDefault = true
			case DirectiveSkip:
				skip = true
			case DirectiveFlatten:
				flatten = true
			case DirectiveDescription:
				desc = d.Value
			}
		}
		if skip {
			continue
		}

		// An anonymous embedded field without an explicit name inlines its
		// fields, matching how encoding/json flattens embedded structs.
		if f.Anonymous && rename == "" {
			flatten = true
		}

		ft := f.Type
		required := true
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
			required = false
		}
		if hasDefault {
			required = false
		}

		if flatten && ft.Kind() != reflect.Struct {
			return nil, fmt.Errorf("typemodel: flatten directive on non-struct field %s.%s", t, f.Name)
		}

		name := rename
		if name == "" {
			name = Convert(f.Name, renameAll)
		}

		fields = append(fields, FieldDescriptor{
			SourceName:  f.Name,
			Name:        name,
			Type:        ft,
			Required:    required,
			Flatten:     flatten,
			Description: desc,
		})
	}

	return fields, nil
}
