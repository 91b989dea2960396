package router

import (
	"context"
	"net/http"
	"reflect"
	"strings"
)

// ParamKind classifies a handler parameter by the extractor wrapper around
// its type. The kind decides where (if anywhere) the parameter is documented.
type ParamKind int

const (
	// KindUnknown marks an unrecognized parameter type. Unknown parameters
	// contribute nothing to the document and never fail route processing.
	KindUnknown ParamKind = iota

	// KindPath documents the wrapped value as path parameters.
	KindPath

	// KindQuery documents the wrapped struct's fields as query parameters.
	KindQuery

	// KindJSONBody documents the wrapped value as an application/json
	// request body.
	KindJSONBody

	// KindFormBody documents the wrapped value as an
	// application/x-www-form-urlencoded request body.
	KindFormBody

	// KindHeader documents the wrapped struct's fields as header parameters.
	KindHeader

	// KindIgnored marks internal plumbing (context, raw request, state)
	// that is deliberately absent from the document.
	KindIgnored
)

// String returns the kind name for diagnostics.
func (k ParamKind) String() string {
	switch k {
	case KindPath:
		return "path"
	case KindQuery:
		return "query"
	case KindJSONBody:
		return "json-body"
	case KindFormBody:
		return "form-body"
	case KindHeader:
		return "header"
	case KindIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Path wraps a handler parameter bound from path placeholders. A struct's
// fields are matched positionally to the {placeholder} tokens of the route
// path; a primitive requires exactly one placeholder.
type Path[T any] struct{ Value T }

// Query wraps a handler parameter bound from the query string. The wrapped
// type must be a struct; each field becomes one query parameter.
type Query[T any] struct{ Value T }

// JSON wraps a handler parameter bound from an application/json request body.
type JSON[T any] struct{ Value T }

// Form wraps a handler parameter bound from an
// application/x-www-form-urlencoded request body.
type Form[T any] struct{ Value T }

// Header wraps a handler parameter bound from request headers. The wrapped
// type must be a struct; each field becomes one header parameter.
type Header[T any] struct{ Value T }

// State wraps shared application state injected into a handler. State never
// appears in the generated document.
type State[T any] struct{ Value T }

// wrapperPkgPath is the import path the extractor wrappers live in, used to
// recognize them by type name.
var wrapperPkgPath = reflect.TypeOf(Path[int]{}).PkgPath()

var (
	contextType        = reflect.TypeOf((*context.Context)(nil)).Elem()
	requestType        = reflect.TypeOf((*http.Request)(nil))
	responseWriterType = reflect.TypeOf((*http.ResponseWriter)(nil)).Elem()
	httpHeaderType     = reflect.TypeOf(http.Header{})
)

// KindOf classifies a handler parameter type and returns the wrapped inner
// type for kinds that carry one. Generic wrapper instantiations are
// recognized by their type name ("Path[...]", "Query[...]", ...), matching
// how instantiated generic type names are surfaced by the reflect package.
func KindOf(t reflect.Type) (ParamKind, reflect.Type) {
	switch t {
	case contextType, requestType, httpHeaderType:
		return KindIgnored, nil
	case responseWriterType:
		return KindIgnored, nil
	}

	if t.Kind() != reflect.Struct || t.PkgPath() != wrapperPkgPath {
		return KindUnknown, nil
	}

	base, _, ok := strings.Cut(t.Name(), "[")
	if !ok {
		return KindUnknown, nil
	}

	var kind ParamKind
	switch base {
	case "Path":
		kind = KindPath
	case "Query":
		kind = KindQuery
	case "JSON":
		kind = KindJSONBody
	case "Form":
		kind = KindFormBody
	case "Header":
		kind = KindHeader
	case "State":
		return KindIgnored, nil
	default:
		return KindUnknown, nil
	}

	return kind, t.Field(0).Type
}
