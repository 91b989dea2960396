package openapi

import (
	"net/http"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quillapi/quill/router"
	"github.com/quillapi/quill/typemodel"
)

// HeaderNamer is implemented by header binding types that document a
// single named header, e.g. an Authorization token wrapper.
type HeaderNamer interface {
	OpenAPIHeaderName() string
}

// extractSignature classifies every parameter of a handler signature and
// produces the operation's parameter list and request body. Parameters
// keep signature order within each location; locations are ordered path,
// query, header. At most one body binding is permitted.
func extractSignature(c *Compiler, fn reflect.Type, route string, placeholders []string) ([]*Parameter, *RequestBody, error) {
	var (
		params []*Parameter
		body   *RequestBody
	)

	for i := range fn.NumIn() {
		kind, inner := router.KindOf(fn.In(i))
		switch kind {
		case router.KindPath:
			ps, err := pathParameters(c, inner, route, placeholders)
			if err != nil {
				return nil, nil, err
			}
			params = append(params, ps...)

		case router.KindQuery:
			ps, err := queryParameters(c, inner)
			if err != nil {
				return nil, nil, err
			}
			params = append(params, ps...)

		case router.KindHeader:
			ps, err := headerParameters(c, inner)
			if err != nil {
				return nil, nil, err
			}
			params = append(params, ps...)

		case router.KindJSONBody, router.KindFormBody:
			if body != nil {
				return nil, nil, &DiscoveryError{
					Location: route,
					Err:      errSecondBody,
				}
			}
			b, err := requestBody(c, inner, kind)
			if err != nil {
				return nil, nil, err
			}
			body = b

		case router.KindIgnored, router.KindUnknown:
			// Unknown degrades to ignored so an unrecognized parameter
			// never aborts route processing.
		}
	}

	// Stable: signature order survives within each location.
	rank := map[string]int{"path": 0, "query": 1, "header": 2}
	sort.SliceStable(params, func(i, j int) bool {
		return rank[params[i].In] < rank[params[j].In]
	})
	return params, body, nil
}

// pathParameters documents a path binding. A single-value binding consumes
// the route's one placeholder; a struct binding matches its fields to the
// placeholders positionally, in declaration order. Either way the value
// count must equal the placeholder count.
func pathParameters(c *Compiler, inner reflect.Type, route string, placeholders []string) ([]*Parameter, error) {
	var types []reflect.Type
	if isScalar(inner) {
		types = []reflect.Type{inner}
	} else if inner.Kind() == reflect.Struct {
		meta, err := typemodel.Extract(inner, typemodel.Options{RenameAll: c.opts.RenameAll})
		if err != nil {
			return nil, err
		}
		for _, f := range meta.Fields {
			types = append(types, f.Type)
		}
	} else {
		types = []reflect.Type{inner}
	}

	if len(types) != len(placeholders) {
		return nil, &ArityError{
			Route:        route,
			Placeholders: len(placeholders),
			Values:       len(types),
		}
	}

	params := make([]*Parameter, 0, len(types))
	for i, t := range types {
		s, err := c.Compile(t)
		if err != nil {
			return nil, err
		}
		// Path parameters are always required per the OpenAPI spec.
		params = append(params, &Parameter{
			Name:     placeholders[i],
			In:       "path",
			Required: true,
			Schema:   s,
		})
	}
	return params, nil
}

// queryParameters documents a query binding. A struct expands to one
// parameter per field; a map binding captures arbitrary keys and is not
// documentable, so it contributes nothing.
func queryParameters(c *Compiler, inner reflect.Type) ([]*Parameter, error) {
	if inner.Kind() != reflect.Struct {
		return nil, nil
	}

	meta, err := typemodel.Extract(inner, typemodel.Options{RenameAll: c.opts.RenameAll})
	if err != nil {
		return nil, err
	}

	params := make([]*Parameter, 0, len(meta.Fields))
	for _, f := range meta.Fields {
		s, err := c.Compile(f.Type)
		if err != nil {
			return nil, err
		}
		params = append(params, &Parameter{
			Name:        f.Name,
			In:          "query",
			Description: f.Description,
			Required:    f.Required,
			Schema:      s,
		})
	}
	return params, nil
}

// headerParameters documents a header binding. A type naming its own
// header produces one parameter; a struct expands to one parameter per
// field with the field name folded to canonical header form. Anything else
// contributes nothing.
func headerParameters(c *Compiler, inner reflect.Type) ([]*Parameter, error) {
	required := true
	if inner.Kind() == reflect.Pointer {
		inner = inner.Elem()
		required = false
	}

	if inner.Kind() != reflect.Interface {
		if n, ok := reflect.New(inner).Interface().(HeaderNamer); ok {
			s, err := c.Compile(inner)
			if err != nil {
				return nil, err
			}
			return []*Parameter{{
				Name:     n.OpenAPIHeaderName(),
				In:       "header",
				Required: required,
				Schema:   s,
			}}, nil
		}
	}

	if inner.Kind() != reflect.Struct {
		return nil, nil
	}

	meta, err := typemodel.Extract(inner, typemodel.Options{RenameAll: c.opts.RenameAll})
	if err != nil {
		return nil, err
	}

	params := make([]*Parameter, 0, len(meta.Fields))
	for _, f := range meta.Fields {
		s, err := c.Compile(f.Type)
		if err != nil {
			return nil, err
		}
		params = append(params, &Parameter{
			Name:        headerName(f.Name),
			In:          "header",
			Description: f.Description,
			Required:    f.Required,
			Schema:      s,
		})
	}
	return params, nil
}

// requestBody documents a body binding with the media type implied by the
// binding kind.
func requestBody(c *Compiler, inner reflect.Type, kind router.ParamKind) (*RequestBody, error) {
	s, err := c.Compile(inner)
	if err != nil {
		return nil, err
	}

	mediaType := "application/json"
	if kind == router.KindFormBody {
		mediaType = "application/x-www-form-urlencoded"
	}

	required := true
	if inner.Kind() == reflect.Pointer {
		required = false
	}

	return &RequestBody{
		Required: required,
		Content:  map[string]*MediaType{mediaType: {Schema: s}},
	}, nil
}

// headerName folds a resolved field name to canonical header form:
// "x_request_id" and "X_Request_Id" both become "X-Request-Id".
func headerName(name string) string {
	return http.CanonicalHeaderKey(strings.ReplaceAll(name, "_", "-"))
}

// isScalar reports types that bind a single path value: primitives plus
// the struct leaves that compile to scalar string schemas.
func isScalar(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	switch t {
	case reflect.TypeOf(time.Time{}), reflect.TypeOf(uuid.UUID{}):
		return true
	}
	return false
}
