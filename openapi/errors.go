package openapi

import (
	"errors"
	"fmt"
)

// errSecondBody rejects a handler binding more than one request body.
var errSecondBody = errors.New("handler binds more than one request body")

// errNotAFunction rejects a route whose handler is not a func value.
var errNotAFunction = errors.New("route handler is not a function")

// errUnsupportedMethod rejects a route method with no path-item slot.
var errUnsupportedMethod = errors.New("unsupported HTTP method")

// ConfigurationError reports a malformed configuration option, such as an
// invalid server URL. Configuration is validated up front, before any
// route or type analysis runs.
type ConfigurationError struct {
	Option string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("openapi: invalid %s %q: %s", e.Option, e.Value, e.Reason)
}

// DiscoveryError reports a failure while walking registered routes or
// inspecting a handler signature. Location identifies the route or handler
// that triggered the failure.
type DiscoveryError struct {
	Location string
	Err      error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("openapi: discovery failed at %s: %v", e.Location, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// NamingCollisionError reports that one name was bound to two structurally
// different definitions: a schema name registered twice with differing
// shapes, two routes producing the same operation id under the error
// collision policy, or a merge where both documents define the same path
// or schema differently.
type NamingCollisionError struct {
	// Kind is what collided: "schema", "operation id", or "path".
	Kind string
	Name string
	// First and Second locate the two definitions when derivable.
	First  string
	Second string
}

func (e *NamingCollisionError) Error() string {
	if e.First != "" && e.Second != "" {
		return fmt.Sprintf("openapi: %s %q defined with different shapes at %s and %s",
			e.Kind, e.Name, e.First, e.Second)
	}
	return fmt.Sprintf("openapi: %s %q defined with different shapes", e.Kind, e.Name)
}

// ArityError reports a mismatch between the number of path placeholders in
// a route template and the number of values the handler's path parameter
// provides.
type ArityError struct {
	Route        string
	Placeholders int
	Values       int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("openapi: route %s declares %d path placeholder(s) but the handler binds %d value(s)",
		e.Route, e.Placeholders, e.Values)
}

// SerializationError reports a failure while encoding the final document
// or writing it to a configured output path.
type SerializationError struct {
	Path string
	Err  error
}

func (e *SerializationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("openapi: serialization failed: %v", e.Err)
	}
	return fmt.Sprintf("openapi: writing %s: %v", e.Path, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// typeResolutionError drives the lenient degradation path for types the
// compiler cannot model. Under PolicyLenient it is swallowed and the type
// degrades to a generic object schema; under PolicyStrict it surfaces
// wrapped in a DiscoveryError. It is never a fatal error by itself.
type typeResolutionError struct {
	Decl   string
	Reason string
}

func (e *typeResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve type %s: %s", e.Decl, e.Reason)
}
