package router

import (
	"fmt"
	"net/http"
	"strings"
)

// httpMethods is the set of HTTP methods a route may declare.
var httpMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
	http.MethodTrace:   true,
}

// IsHTTPMethod reports whether s names a supported HTTP method
// (case-insensitive).
func IsHTTPMethod(s string) bool {
	return httpMethods[strings.ToUpper(s)]
}

// Router is the root of a route declaration tree. Routes are never served by
// this package; the tree only records method, path, and handler signature
// metadata for document generation. Walk visits routes in registration order.
type Router struct {
	root *Group
}

// New creates an empty router.
func New() *Router {
	return &Router{root: &Group{}}
}

// Group creates a nested group under the router root. The prefix becomes the
// logical path prefix of every route declared through the group.
func (r *Router) Group(prefix string) *Group {
	return r.root.Group(prefix)
}

// Handle declares a route at the router root.
func (r *Router) Handle(method, path string, handler any) *Route {
	return r.root.Handle(method, path, handler)
}

// Get declares a GET route at the router root.
func (r *Router) Get(path string, handler any) *Route {
	return r.root.Get(path, handler)
}

// Post declares a POST route at the router root.
func (r *Router) Post(path string, handler any) *Route {
	return r.root.Post(path, handler)
}

// Put declares a PUT route at the router root.
func (r *Router) Put(path string, handler any) *Route {
	return r.root.Put(path, handler)
}

// Patch declares a PATCH route at the router root.
func (r *Router) Patch(path string, handler any) *Route {
	return r.root.Patch(path, handler)
}

// Delete declares a DELETE route at the router root.
func (r *Router) Delete(path string, handler any) *Route {
	return r.root.Delete(path, handler)
}

// WalkFunc is called once per declared route with the route's full path
// (group prefixes joined with the route's own path suffix).
type WalkFunc func(fullPath string, route *Route) error

// Walk visits every route in the tree in registration order: a group's own
// routes first, then its child groups. Returning an error stops the walk.
func (r *Router) Walk(fn WalkFunc) error {
	return r.root.walk("", fn)
}

// Group is a named nesting level in the declaration tree. A route declared
// with an empty path suffix (the group's index route) maps to the group's
// own prefix.
type Group struct {
	prefix   string
	routes   []*Route
	children []*Group
}

// Group creates a nested child group.
func (g *Group) Group(prefix string) *Group {
	child := &Group{prefix: prefix}
	g.children = append(g.children, child)
	return child
}

// Handle declares a route in this group. The method is normalized to upper
// case; unsupported methods panic at declaration time since they are always
// a programming error.
func (g *Group) Handle(method, path string, handler any) *Route {
	method = strings.ToUpper(method)
	if !httpMethods[method] {
		panic(fmt.Sprintf("router: unsupported HTTP method %q", method))
	}
	rt := &Route{method: method, path: path, handler: handler}
	g.routes = append(g.routes, rt)
	return rt
}

// Get declares a GET route in this group.
func (g *Group) Get(path string, handler any) *Route {
	return g.Handle(http.MethodGet, path, handler)
}

// Post declares a POST route in this group.
func (g *Group) Post(path string, handler any) *Route {
	return g.Handle(http.MethodPost, path, handler)
}

// Put declares a PUT route in this group.
func (g *Group) Put(path string, handler any) *Route {
	return g.Handle(http.MethodPut, path, handler)
}

// Patch declares a PATCH route in this group.
func (g *Group) Patch(path string, handler any) *Route {
	return g.Handle(http.MethodPatch, path, handler)
}

// Delete declares a DELETE route in this group.
func (g *Group) Delete(path string, handler any) *Route {
	return g.Handle(http.MethodDelete, path, handler)
}

func (g *Group) walk(parent string, fn WalkFunc) error {
	base := JoinPath(parent, g.prefix)
	for _, rt := range g.routes {
		if err := fn(JoinPath(base, rt.path), rt); err != nil {
			return err
		}
	}
	for _, child := range g.children {
		if err := child.walk(base, fn); err != nil {
			return err
		}
	}
	return nil
}

// Route records one declared method+path+handler triple along with the
// metadata attached through the fluent setters.
type Route struct {
	method      string
	path        string
	handler     any
	name        string
	tags        []string
	summary     string
	description string
	errorStatus []int
	deprecated  bool
}

// Name sets an explicit operation id, overriding the handler function name.
func (rt *Route) Name(name string) *Route {
	rt.name = name
	return rt
}

// Tags appends tags to the route.
func (rt *Route) Tags(tags ...string) *Route {
	rt.tags = append(rt.tags, tags...)
	return rt
}

// Summary sets the operation summary.
func (rt *Route) Summary(s string) *Route {
	rt.summary = s
	return rt
}

// Description sets the operation description.
func (rt *Route) Description(d string) *Route {
	rt.description = d
	return rt
}

// ErrorStatus declares additional documented error status codes for the
// route, beyond what the handler's return type implies.
func (rt *Route) ErrorStatus(codes ...int) *Route {
	rt.errorStatus = append(rt.errorStatus, codes...)
	return rt
}

// Deprecated marks the route as deprecated.
func (rt *Route) Deprecated() *Route {
	rt.deprecated = true
	return rt
}

// Method returns the route's HTTP method.
func (rt *Route) Method() string { return rt.method }

// Path returns the route's declared path suffix (not including group prefixes).
func (rt *Route) Path() string { return rt.path }

// Handler returns the declared handler value.
func (rt *Route) Handler() any { return rt.handler }

// OperationName returns the explicit route name, or "" when the operation id
// should be derived from the handler function name.
func (rt *Route) OperationName() string { return rt.name }

// RouteTags returns the route's tags.
func (rt *Route) RouteTags() []string { return rt.tags }

// RouteSummary returns the operation summary.
func (rt *Route) RouteSummary() string { return rt.summary }

// RouteDescription returns the operation description.
func (rt *Route) RouteDescription() string { return rt.description }

// ErrorStatuses returns the declared additional error status codes.
func (rt *Route) ErrorStatuses() []int { return rt.errorStatus }

// IsDeprecated reports whether the route is marked deprecated.
func (rt *Route) IsDeprecated() bool { return rt.deprecated }

// JoinPath joins two path fragments with a single slash, normalizing empty
// fragments. An empty suffix yields the base itself (index route), and an
// entirely empty result yields "/".
func JoinPath(base, suffix string) string {
	base = strings.TrimRight(base, "/")
	suffix = strings.Trim(suffix, "/")
	switch {
	case base == "" && suffix == "":
		return "/"
	case suffix == "":
		return base
	default:
		return base + "/" + suffix
	}
}
