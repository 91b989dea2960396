// Package router declares routes for OpenAPI document generation.
//
// The package records a declaration tree only: groups with logical path
// prefixes, routes with an HTTP method, a path suffix, and a handler
// function whose signature is analyzed statically. Handlers are never
// invoked and no requests are served here -- binding declared routes to a
// real HTTP framework is the host application's concern.
//
//	r := router.New()
//	users := r.Group("/users")
//	users.Get("", listUsers).Tags("users")
//	users.Get("/{id}", getUser).Tags("users")
//
// Handler parameters are classified by extractor wrapper:
//
//	func getUser(ctx context.Context, p router.Path[UserID]) (User, error)
//	func listUsers(q router.Query[ListFilter]) ([]User, error)
//	func createUser(body router.JSON[CreateUser]) (User, APIError)
//
// Path, Query, JSON, Form, and Header wrappers are documented as path,
// query, body, and header inputs respectively. context.Context,
// *http.Request, http.ResponseWriter, http.Header, and State values are
// ignored. Anything else is treated as unknown and skipped rather than
// failing the build.
package router
