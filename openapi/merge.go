package openapi

import (
	"encoding/json"
	"sort"
)

// Merge combines independently assembled documents into a new one. Paths
// and schema names are unioned: a key present in more than one document is
// permitted only when the definitions are structurally identical,
// otherwise the merge fails with a NamingCollisionError and no document is
// produced. Info and servers come from the first document. The inputs are
// not modified. Merging zero documents yields an empty document, never a
// nil one.
func Merge(docs ...*Document) (*Document, error) {
	if len(docs) == 0 {
		return &Document{OpenAPI: "3.1.0", Paths: make(map[string]*PathItem)}, nil
	}

	first := docs[0]
	out := &Document{
		OpenAPI: first.OpenAPI,
		Info:    first.Info,
		Servers: first.Servers,
		Paths:   make(map[string]*PathItem),
	}

	schemas := make(map[string]*Schema)
	tagSeen := make(map[string]Tag)

	for _, doc := range docs {
		for path, item := range doc.Paths {
			if prior, ok := out.Paths[path]; ok {
				same, err := structurallyEqual(prior, item)
				if err != nil {
					return nil, &SerializationError{Err: err}
				}
				if !same {
					return nil, &NamingCollisionError{Kind: "path", Name: path}
				}
				continue
			}
			out.Paths[path] = item
		}

		if doc.Components != nil {
			for name, s := range doc.Components.Schemas {
				if prior, ok := schemas[name]; ok {
					same, err := structurallyEqual(prior, s)
					if err != nil {
						return nil, &SerializationError{Err: err}
					}
					if !same {
						return nil, &NamingCollisionError{Kind: "schema", Name: name}
					}
					continue
				}
				schemas[name] = s
			}
		}

		for _, t := range doc.Tags {
			if _, ok := tagSeen[t.Name]; !ok {
				tagSeen[t.Name] = t
			}
		}
	}

	if len(schemas) > 0 {
		out.Components = &Components{Schemas: schemas}
	}

	if len(tagSeen) > 0 {
		names := make([]string, 0, len(tagSeen))
		for name := range tagSeen {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			out.Tags = append(out.Tags, tagSeen[name])
		}
	}

	return out, nil
}

// structurallyEqual compares two values by canonical JSON. Maps marshal
// with sorted keys and properties marshal in declaration order, so equal
// bytes mean equal structure.
func structurallyEqual(a, b any) (bool, error) {
	ab, err := json.Marshal(a)
	if err != nil {
		return false, err
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false, err
	}
	return string(ab) == string(bb), nil
}
