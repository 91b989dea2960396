package openapi

import (
	"net/http"
	"regexp"
	"sort"

	"github.com/quillapi/quill/router"
	"github.com/quillapi/quill/typemodel"
)

// pathVarRe matches {placeholder} tokens in a path template.
var pathVarRe = regexp.MustCompile(`\{([^}]+)\}`)

// pathPlaceholders returns the placeholder names of a path template in
// left-to-right order.
func pathPlaceholders(path string) []string {
	matches := pathVarRe.FindAllStringSubmatch(path, -1)
	if matches == nil {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// Spec assembles one document from a route declaration tree. It owns the
// schema compiler for the build; every registered type ends up in the
// document's components section.
type Spec struct {
	cfg      Config
	compiler *Compiler
}

// NewSpec validates the configuration and creates an assembler.
func NewSpec(cfg Config) (*Spec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Spec{
		cfg: cfg,
		compiler: NewCompiler(CompilerOptions{
			Policy:    cfg.Policy,
			RenameAll: typemodel.ParseCase(cfg.RenameAll),
		}),
	}, nil
}

// Compiler exposes the build's schema compiler so callers can register
// additional named types that no handler signature reaches.
func (s *Spec) Compiler() *Compiler {
	return s.compiler
}

// Build walks the router and assembles the document. Routes are processed
// in registration order; the first error aborts the build and no document
// is produced. Output ordering never depends on registration order: paths,
// schema names, and tags serialize sorted.
func (s *Spec) Build(r *router.Router) (*Document, error) {
	doc := &Document{
		OpenAPI: "3.1.0",
		Info: Info{
			Title:       s.cfg.Title,
			Summary:     s.cfg.Summary,
			Description: s.cfg.Description,
			Version:     s.cfg.Version,
		},
		Servers: s.cfg.Servers,
		Paths:   make(map[string]*PathItem),
	}

	seenIDs := make(map[string]string)

	err := r.Walk(func(fullPath string, rt *router.Route) error {
		op, err := buildOperation(s.compiler, fullPath, rt)
		if err != nil {
			return err
		}

		id, err := resolveOperationID(op.OperationID, fullPath, rt.Method(), s.cfg.Collisions, seenIDs)
		if err != nil {
			return err
		}
		op.OperationID = id

		item := doc.Paths[fullPath]
		if item == nil {
			item = &PathItem{}
			doc.Paths[fullPath] = item
		}
		return assignOperation(item, rt.Method(), fullPath, op)
	})
	if err != nil {
		return nil, err
	}

	if schemas := s.compiler.Schemas(); len(schemas) > 0 {
		doc.Components = &Components{Schemas: schemas}
	}
	doc.Tags = collectTags(doc.Paths)
	return doc, nil
}

// resolveOperationID enforces operation-id uniqueness under the configured
// policy. The suffix policy appends a path-derived suffix, then the method,
// both deterministic; if the id still collides the build fails.
func resolveOperationID(id, fullPath, method string, policy CollisionPolicy, seen map[string]string) (string, error) {
	location := method + " " + fullPath

	prior, taken := seen[id]
	if !taken {
		seen[id] = location
		return id, nil
	}

	if policy == CollisionError {
		return "", &NamingCollisionError{
			Kind:   "operation id",
			Name:   id,
			First:  prior,
			Second: location,
		}
	}

	for _, candidate := range []string{
		id + pathSuffix(fullPath),
		id + pathSuffix(fullPath) + typemodel.Convert(method, typemodel.CasePascal),
	} {
		if _, taken := seen[candidate]; !taken {
			seen[candidate] = location
			return candidate, nil
		}
	}
	return "", &NamingCollisionError{
		Kind:   "operation id",
		Name:   id,
		First:  prior,
		Second: location,
	}
}

// assignOperation stores an operation in its method slot. A second route
// with the same method and path is a collision, never an overwrite.
func assignOperation(item *PathItem, method, path string, op *Operation) error {
	var slot **Operation
	switch method {
	case http.MethodGet:
		slot = &item.Get
	case http.MethodPut:
		slot = &item.Put
	case http.MethodPost:
		slot = &item.Post
	case http.MethodDelete:
		slot = &item.Delete
	case http.MethodOptions:
		slot = &item.Options
	case http.MethodHead:
		slot = &item.Head
	case http.MethodPatch:
		slot = &item.Patch
	case http.MethodTrace:
		slot = &item.Trace
	default:
		return &DiscoveryError{Location: method + " " + path, Err: errUnsupportedMethod}
	}

	if *slot != nil {
		return &NamingCollisionError{Kind: "path", Name: method + " " + path}
	}
	*slot = op
	return nil
}

// collectTags gathers the distinct operation tags into the document-level
// tag list, sorted lexicographically.
func collectTags(paths map[string]*PathItem) []Tag {
	seen := make(map[string]bool)
	for _, item := range paths {
		for _, op := range item.operations() {
			for _, t := range op.Tags {
				seen[t] = true
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	tags := make([]Tag, 0, len(names))
	for _, name := range names {
		tags = append(tags, Tag{Name: name})
	}
	return tags
}

// operations returns the non-nil operations of a path item.
func (pi *PathItem) operations() []*Operation {
	var ops []*Operation
	for _, op := range []*Operation{
		pi.Get, pi.Put, pi.Post, pi.Delete,
		pi.Options, pi.Head, pi.Patch, pi.Trace,
	} {
		if op != nil {
			ops = append(ops, op)
		}
	}
	return ops
}
