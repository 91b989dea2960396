package openapi

import (
	"net/http"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/quillapi/quill/router"
	"github.com/quillapi/quill/typemodel"
)

// CollisionPolicy decides what happens when two routes produce the same
// operation id.
type CollisionPolicy int

const (
	// CollisionSuffix disambiguates deterministically by appending a
	// suffix derived from the route path.
	CollisionSuffix CollisionPolicy = iota

	// CollisionError fails the build with a NamingCollisionError.
	CollisionError
)

// buildOperation documents one route: its handler signature becomes the
// parameter list, request body, and responses; route metadata fills in
// tags, summary, and deprecation.
func buildOperation(c *Compiler, fullPath string, rt *router.Route) (*Operation, error) {
	handler := rt.Handler()
	fn := reflect.TypeOf(handler)
	if fn == nil || fn.Kind() != reflect.Func {
		return nil, &DiscoveryError{
			Location: rt.Method() + " " + fullPath,
			Err:      errNotAFunction,
		}
	}

	placeholders := pathPlaceholders(fullPath)

	params, body, err := extractSignature(c, fn, rt.Method()+" "+fullPath, placeholders)
	if err != nil {
		return nil, err
	}

	responses, err := extractResponses(c, fn)
	if err != nil {
		return nil, err
	}
	for _, code := range rt.ErrorStatuses() {
		key := strconv.Itoa(code)
		if _, ok := responses[key]; !ok {
			responses[key] = &Response{Description: http.StatusText(code)}
		}
	}

	op := &Operation{
		Tags:        rt.RouteTags(),
		Summary:     rt.RouteSummary(),
		Description: rt.RouteDescription(),
		OperationID: operationID(rt),
		Parameters:  params,
		RequestBody: body,
		Responses:   responses,
		Deprecated:  rt.IsDeprecated(),
	}
	return op, nil
}

// operationID resolves a route's operation id: the explicit route name
// when set, otherwise the handler's function name.
func operationID(rt *router.Route) string {
	if name := rt.OperationName(); name != "" {
		return name
	}
	return handlerName(rt.Handler())
}

// handlerName derives an id from a handler's runtime function name,
// trimming the package path and the method-value suffix. Anonymous
// functions yield names like "func1"; routes using them should set an
// explicit name.
func handlerName(handler any) string {
	v := reflect.ValueOf(handler)
	fn := runtime.FuncForPC(v.Pointer())
	if fn == nil {
		return ""
	}

	name := strings.TrimSuffix(fn.Name(), "-fm")
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.TrimSuffix(name, ")")
	if name == "" {
		return ""
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// pathSuffix folds a route path into a CamelCase disambiguation suffix:
// "/users/{id}" becomes "UsersById".
func pathSuffix(path string) string {
	var b strings.Builder
	for seg := range strings.SplitSeq(path, "/") {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			b.WriteString("By")
			seg = seg[1 : len(seg)-1]
		}
		b.WriteString(typemodel.Convert(seg, typemodel.CasePascal))
	}
	return b.String()
}
