// Package openapi generates OpenAPI v3.1.0 documents from route
// declarations using Go reflection and struct tags.
//
// The package targets the OpenAPI Specification v3.1.0 and JSON Schema
// Draft 2020-12. It produces a complete document from declared routes with
// zero external schema files, and the output is byte-identical across
// runs: paths, schema names, and tags serialize sorted, while object
// properties keep declaration order.
//
// See: https://spec.openapis.org/oas/v3.1.0
// See: https://json-schema.org/draft/2020-12/json-schema-core
//
// # Declaring Routes
//
// Routes are declared on a router tree; handler signatures carry binding
// wrappers that classify each parameter:
//
//	r := router.New()
//	users := r.Group("users")
//	users.Get("", listUsers).Tags("users").Summary("List users")
//	users.Get("{id}", getUser).Tags("users")
//	users.Post("", createUser).Tags("users")
//
//	func getUser(ctx context.Context, id router.Path[uuid.UUID]) (User, error)
//	func listUsers(ctx context.Context, q router.Query[ListFilter]) (Page[User], error)
//	func createUser(ctx context.Context, body router.JSON[CreateUser]) (User, *APIError)
//
// Path values match the route's {placeholder} tokens positionally; query
// and header structs expand to one parameter per field; JSON and Form
// wrappers become the request body. context.Context, *http.Request, and
// router.State are ignored; an unrecognized parameter type contributes
// nothing and never fails the build.
//
// # Building the Document
//
//	spec, err := openapi.NewSpec(openapi.Config{
//	    Title:   "User Service",
//	    Version: "1.0.0",
//	    Servers: []openapi.Server{{URL: "https://api.example.com"}},
//	})
//	doc, err := spec.Build(r)
//
// # Schema Generation
//
// Go types are converted via reflection:
//
//   - bool -> {type: "boolean"}
//   - int/uint variants -> {type: "integer"} with int32/int64 format
//   - float32/float64 -> {type: "number"}
//   - string -> {type: "string"}
//   - []byte -> {type: "string", format: "byte"}
//   - time.Time -> {type: "string", format: "date-time"}
//   - uuid.UUID -> {type: "string", format: "uuid"}
//   - *T -> schema(T), and the field is no longer required
//   - []T -> {type: "array", items: schema(T)}
//   - map[K]V -> {type: "object", additionalProperties: schema(V)}
//   - struct -> {type: "object", properties: {...}, required: [...]}
//
// Named struct types are deduplicated into #/components/schemas/{TypeName}
// and referenced via $ref. Self-referential and mutually recursive types
// terminate: a re-entrant compilation resolves to the reference instead of
// inlining forever. Generic instantiations produce distinct schemas with
// sanitized names ("Page[User]" becomes "PageUser").
//
// Enum and union types opt in through the typemodel.Enumer and
// typemodel.OneOfer interfaces; typemodel.RenameAller, the api struct tag,
// and Config.RenameAll control property naming.
//
// # Merging
//
// Documents built by independent sub-applications combine with Merge.
// Duplicate paths or schema names are allowed only when structurally
// identical; anything else fails with a NamingCollisionError rather than
// silently overwriting.
//
// # Output
//
// Document.JSON, Document.YAML, and Document.WriteFiles serialize the
// document; Document.Handler serves it along with an interactive docs UI
// (Swagger UI, RapiDoc, or Redoc).
package openapi
