package openapi

import (
	"net/http"
	"reflect"
	"strconv"
)

// StatusCoder is implemented by return types that document a specific
// HTTP status code instead of the 200/500 defaults.
type StatusCoder interface {
	StatusCode() int
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// extractResponses documents a handler's return values. No results or a
// bare error yields a single no-content response; a value type yields a
// success response with its schema; a (value, error) pair with a concrete
// error type additionally documents the error arm.
func extractResponses(c *Compiler, fn reflect.Type) (map[string]*Response, error) {
	responses := make(map[string]*Response)

	var value, errArm reflect.Type
	switch fn.NumOut() {
	case 0:
	case 1:
		if fn.Out(0).Implements(errorType) {
			errArm = fn.Out(0)
		} else {
			value = fn.Out(0)
		}
	default:
		value = fn.Out(0)
		if last := fn.Out(fn.NumOut() - 1); last.Implements(errorType) {
			errArm = last
		}
	}

	if err := addSuccess(c, responses, value); err != nil {
		return nil, err
	}
	if err := addError(c, responses, errArm); err != nil {
		return nil, err
	}
	return responses, nil
}

func addSuccess(c *Compiler, responses map[string]*Response, t reflect.Type) error {
	if t == nil || isUnit(t) {
		code := strconv.Itoa(http.StatusNoContent)
		responses[code] = &Response{Description: http.StatusText(http.StatusNoContent)}
		return nil
	}

	s, err := c.Compile(t)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if sc, ok := statusOf(t); ok {
		status = sc
	}
	responses[strconv.Itoa(status)] = &Response{
		Description: http.StatusText(status),
		Content:     map[string]*MediaType{"application/json": {Schema: s}},
	}
	return nil
}

// addError documents the error arm. The plain error interface carries no
// static shape and contributes nothing; a concrete error type documents
// its status code and body schema.
func addError(c *Compiler, responses map[string]*Response, t reflect.Type) error {
	if t == nil || t == errorType {
		return nil
	}

	s, err := c.Compile(t)
	if err != nil {
		return err
	}

	status := http.StatusInternalServerError
	if sc, ok := statusOf(t); ok {
		status = sc
	}
	responses[strconv.Itoa(status)] = &Response{
		Description: http.StatusText(status),
		Content:     map[string]*MediaType{"application/json": {Schema: s}},
	}
	return nil
}

// statusOf probes a type for a StatusCode method on its zero value.
func statusOf(t reflect.Type) (int, bool) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Interface {
		return 0, false
	}
	if sc, ok := reflect.New(t).Interface().(StatusCoder); ok {
		return sc.StatusCode(), true
	}
	return 0, false
}

// isUnit reports types with no serializable content.
func isUnit(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.NumField() == 0 && t.Name() == ""
}
