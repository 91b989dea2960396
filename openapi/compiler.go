package openapi

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quillapi/quill/typemodel"
)

// refPrefix is the location of reusable schemas inside the document.
const refPrefix = "#/components/schemas/"

// Policy controls how the compiler treats types it cannot model (channels,
// functions, non-empty interfaces).
type Policy int

const (
	// PolicyLenient degrades an unresolvable type to a generic object
	// schema carrying a human-readable note. The build continues.
	PolicyLenient Policy = iota

	// PolicyStrict turns an unresolvable type into a fatal error.
	PolicyStrict
)

// Exampler is implemented by types that provide an example value for
// their generated schema.
type Exampler interface {
	OpenAPIExample() any
}

// Descriptioner is implemented by types that provide a description for
// their generated schema.
type Descriptioner interface {
	OpenAPIDescription() string
}

// CompilerOptions configure a schema compiler.
type CompilerOptions struct {
	// Policy selects strict or lenient handling of unresolvable types.
	Policy Policy

	// RenameAll is the default property-name case style. Types implementing
	// typemodel.RenameAller override it per type.
	RenameAll typemodel.Case
}

// Compiler turns Go types into JSON Schema objects, maintaining a shared
// name-to-schema registry for reuse through $ref. A compiler is owned by
// one document build; it is safe for concurrent use.
type Compiler struct {
	opts CompilerOptions

	mu sync.Mutex

	// schemas is the registry read out by the document assembler.
	schemas map[string]*Schema

	// fingerprints holds the canonical JSON of each registered schema body,
	// used to detect same-name-different-shape collisions.
	fingerprints map[string]string

	// typeNames and nameTypes map between Go types and their registry keys
	// so repeat compilations of one type short-circuit to a reference.
	typeNames map[reflect.Type]string
	nameTypes map[string]reflect.Type

	// visiting maps each currently-compiling name to the type being
	// compiled. A re-entrant encounter of the same type resolves to a
	// reference instead of recursing, which terminates compilation of
	// cyclic type graphs; a same-named type from another package seen
	// mid-compilation is disambiguated like a registered namesake.
	visiting map[string]reflect.Type
}

// NewCompiler creates an empty compiler.
func NewCompiler(opts CompilerOptions) *Compiler {
	return &Compiler{
		opts:         opts,
		schemas:      make(map[string]*Schema),
		fingerprints: make(map[string]string),
		typeNames:    make(map[reflect.Type]string),
		nameTypes:    make(map[string]reflect.Type),
		visiting:     make(map[string]reflect.Type),
	}
}

// Schemas returns the registry contents. The returned map is a copy; the
// schemas themselves are shared and must not be mutated.
func (c *Compiler) Schemas() map[string]*Schema {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]*Schema, len(c.schemas))
	for name, s := range c.schemas {
		out[name] = s
	}
	return out
}

// Compile resolves a Go type to a schema. Named struct, enum, and union
// types are registered in the compiler and returned as a $ref; primitives,
// collections, and maps are returned inline. Compiling the same type twice
// yields structurally identical output.
func (c *Compiler) Compile(t reflect.Type) (*Schema, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compile(t)
}

// CompileNamed registers pre-extracted type metadata under a name and
// returns a reference to it. Registering the same name twice with a
// structurally identical definition is a no-op; with a differing
// definition it fails with a NamingCollisionError.
func (c *Compiler) CompileNamed(name string, meta *typemodel.StructMetadata) (*Schema, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.register(name, meta, nil)
}

// compile dispatches on type kind. Caller holds the lock.
func (c *Compiler) compile(t reflect.Type) (*Schema, error) {
	if t == nil {
		return &Schema{}, nil
	}

	// Well-known leaf types compile to string schemas with a format, not
	// to object schemas of their internals.
	switch t {
	case reflect.TypeOf(time.Time{}):
		return &Schema{Type: TypeString("string"), Format: "date-time"}, nil
	case reflect.TypeOf(uuid.UUID{}):
		return &Schema{Type: TypeString("string"), Format: "uuid"}, nil
	case reflect.TypeOf(time.Duration(0)):
		return &Schema{Type: TypeString("string"), Format: "duration"}, nil
	}

	if name := typemodel.SchemaName(t); name != "" && c.isNamed(t) {
		return c.compileNamed(name, t)
	}

	switch t.Kind() {
	case reflect.Bool:
		return &Schema{Type: TypeString("boolean")}, nil
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return &Schema{Type: TypeString("integer"), Format: "int64"}, nil
	case reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return &Schema{Type: TypeString("integer"), Format: "int32"}, nil
	case reflect.Float32:
		return &Schema{Type: TypeString("number"), Format: "float"}, nil
	case reflect.Float64:
		return &Schema{Type: TypeString("number"), Format: "double"}, nil
	case reflect.String:
		return &Schema{Type: TypeString("string")}, nil

	case reflect.Pointer:
		return c.compile(t.Elem())

	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return &Schema{Type: TypeString("string"), Format: "byte"}, nil
		}
		items, err := c.compile(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: TypeString("array"), Items: items}, nil

	case reflect.Array:
		items, err := c.compile(t.Elem())
		if err != nil {
			return nil, err
		}
		n := t.Len()
		return &Schema{
			Type:     TypeString("array"),
			Items:    items,
			MinItems: &n,
			MaxItems: &n,
		}, nil

	case reflect.Map:
		// Map keys are serialized as object keys and are not represented
		// in the schema; only the value type matters.
		values, err := c.compile(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: TypeString("object"), AdditionalProperties: values}, nil

	case reflect.Interface:
		if t.NumMethod() == 0 {
			// any: no constraint.
			return &Schema{}, nil
		}
		return c.degrade(t, "non-empty interface")

	case reflect.Struct:
		// Unnamed struct literal: compile inline without registering.
		meta, err := typemodel.Extract(t, typemodel.Options{RenameAll: c.opts.RenameAll})
		if err != nil {
			return nil, err
		}
		return c.compileBody(meta, t)

	default:
		return c.degrade(t, fmt.Sprintf("unsupported kind %s", t.Kind()))
	}
}

// isNamed reports whether a type is registered by name rather than
// compiled inline: structs, and any type opting in through the Enumer or
// OneOfer interfaces.
func (c *Compiler) isNamed(t reflect.Type) bool {
	if t.Kind() == reflect.Struct {
		return true
	}
	if t.Kind() == reflect.Interface {
		return false
	}
	probe := reflect.New(t).Interface()
	if _, ok := probe.(typemodel.Enumer); ok {
		return true
	}
	_, ok := probe.(typemodel.OneOfer)
	return ok
}

// compileNamed registers a named type and returns a reference to it.
// Caller holds the lock.
func (c *Compiler) compileNamed(name string, t reflect.Type) (*Schema, error) {
	if known, ok := c.typeNames[t]; ok {
		return refSchema(known), nil
	}

	// Two packages may declare types with the same simple name; the second
	// one gets a package-derived prefix. The namesake may be fully
	// registered or still mid-compilation.
	if prior, taken := c.nameTypes[name]; taken && prior != t {
		name = typemodel.PkgPrefix(t.PkgPath()) + name
	} else if mid, ok := c.visiting[name]; ok && mid != t {
		name = typemodel.PkgPrefix(t.PkgPath()) + name
	}

	if mid, ok := c.visiting[name]; ok {
		if mid == t {
			return refSchema(name), nil
		}
		return nil, &NamingCollisionError{
			Kind:   "schema",
			Name:   name,
			First:  declOf(mid),
			Second: t.String(),
		}
	}

	meta, err := typemodel.Extract(t, typemodel.Options{RenameAll: c.opts.RenameAll})
	if err != nil {
		return nil, err
	}
	return c.register(name, meta, t)
}

// register compiles metadata into a schema body and inserts it into the
// registry under name, returning a reference. Insert-or-conflict is one
// atomic operation: a structurally identical re-registration is a no-op, a
// differing one fails. Caller holds the lock.
func (c *Compiler) register(name string, meta *typemodel.StructMetadata, t reflect.Type) (*Schema, error) {
	if _, ok := c.visiting[name]; ok {
		return refSchema(name), nil
	}
	c.visiting[name] = t
	defer delete(c.visiting, name)

	body, err := c.compileBody(meta, t)
	if err != nil {
		return nil, err
	}

	fp, err := fingerprint(body)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}

	if existing, ok := c.fingerprints[name]; ok {
		if existing != fp {
			return nil, &NamingCollisionError{
				Kind:   "schema",
				Name:   name,
				First:  declOf(c.nameTypes[name]),
				Second: meta.Decl,
			}
		}
		return refSchema(name), nil
	}

	c.schemas[name] = body
	c.fingerprints[name] = fp
	if t != nil {
		c.typeNames[t] = name
		c.nameTypes[name] = t
	}
	return refSchema(name), nil
}

// compileBody produces the schema body for one extracted type: a string
// enum, a tagged union, or an object with properties. Caller holds the
// lock.
func (c *Compiler) compileBody(meta *typemodel.StructMetadata, t reflect.Type) (*Schema, error) {
	var s *Schema
	switch {
	case meta.EnumValues != nil:
		s = enumSchema(meta.EnumValues)
	case meta.Variants != nil:
		var err error
		s, err = c.oneOfSchema(meta.Variants, meta.Tagging)
		if err != nil {
			return nil, err
		}
	default:
		var err error
		s, err = c.objectSchema(meta)
		if err != nil {
			return nil, err
		}
	}

	if meta.Description != "" {
		s.Description = meta.Description
	}
	if t != nil && t.Kind() != reflect.Interface {
		probe := reflect.New(t).Interface()
		if d, ok := probe.(Descriptioner); ok {
			s.Description = d.OpenAPIDescription()
		}
		if e, ok := probe.(Exampler); ok {
			s.Example = e.OpenAPIExample()
		}
	}
	return s, nil
}

// objectSchema compiles struct metadata into an object schema. Properties
// keep declaration order; flattened fields inline their struct's
// properties into the parent.
func (c *Compiler) objectSchema(meta *typemodel.StructMetadata) (*Schema, error) {
	s := &Schema{
		Type:       TypeString("object"),
		Properties: NewProperties(),
	}
	if err := c.addFields(s, meta.Fields); err != nil {
		return nil, err
	}
	if s.Properties.Len() == 0 {
		// A zero-field struct must serialize identically in JSON and YAML;
		// an allocated-but-empty map would appear in one and not the other.
		s.Properties = nil
	}
	return s, nil
}

func (c *Compiler) addFields(s *Schema, fields []typemodel.FieldDescriptor) error {
	for _, f := range fields {
		if f.Flatten {
			inner, err := typemodel.Extract(f.Type, typemodel.Options{RenameAll: c.opts.RenameAll})
			if err != nil {
				return err
			}
			if err := c.addFields(s, inner.Fields); err != nil {
				return err
			}
			continue
		}

		prop, err := c.compile(f.Type)
		if err != nil {
			return err
		}
		if f.Description != "" {
			// $ref siblings are legal in OpenAPI 3.1, so descriptions
			// attach directly even when the property is a reference.
			prop.Description = f.Description
		}
		s.Properties.Set(f.Name, prop)
		if f.Required {
			s.Required = append(s.Required, f.Name)
		}
	}
	return nil
}

// enumSchema compiles a closed string-value set. Values keep declaration
// order.
func enumSchema(values []string) *Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return &Schema{Type: TypeString("string"), Enum: enum}
}

// oneOfSchema compiles a tagged union. The tagging shape applies
// identically to every variant.
func (c *Compiler) oneOfSchema(variants []typemodel.VariantDescriptor, tagging typemodel.Tagging) (*Schema, error) {
	out := &Schema{OneOf: make([]*Schema, 0, len(variants))}
	for _, v := range variants {
		vs, err := c.variantSchema(v, tagging)
		if err != nil {
			return nil, err
		}
		if v.Description != "" {
			vs.Description = v.Description
		}
		out.OneOf = append(out.OneOf, vs)
	}
	return out, nil
}

func (c *Compiler) variantSchema(v typemodel.VariantDescriptor, tagging typemodel.Tagging) (*Schema, error) {
	tag := tagging.TagName()

	// Unit variants carry no payload: externally tagged they are bare
	// strings, otherwise an object holding only the tag.
	if v.Type == nil {
		if tagging.Mode == typemodel.TaggingExternal {
			return &Schema{Type: TypeString("string"), Const: v.Name}, nil
		}
		return taggedObject(tag, v.Name), nil
	}

	payload, err := c.compile(v.Type)
	if err != nil {
		return nil, err
	}

	switch tagging.Mode {
	case typemodel.TaggingExternal:
		props := NewProperties()
		props.Set(v.Name, payload)
		return &Schema{
			Type:       TypeString("object"),
			Properties: props,
			Required:   []string{v.Name},
		}, nil

	case typemodel.TaggingInternal:
		// The tag lives inside the payload object, so the variant is the
		// intersection of the tag constraint and the payload schema.
		return &Schema{AllOf: []*Schema{taggedObject(tag, v.Name), payload}}, nil

	case typemodel.TaggingAdjacent:
		content := tagging.ContentName()
		props := NewProperties()
		props.Set(tag, constString(v.Name))
		props.Set(content, payload)
		return &Schema{
			Type:       TypeString("object"),
			Properties: props,
			Required:   []string{tag, content},
		}, nil

	default:
		return nil, fmt.Errorf("openapi: unknown tagging mode %d", tagging.Mode)
	}
}

func taggedObject(tag, value string) *Schema {
	props := NewProperties()
	props.Set(tag, constString(value))
	return &Schema{
		Type:       TypeString("object"),
		Properties: props,
		Required:   []string{tag},
	}
}

func constString(value string) *Schema {
	return &Schema{Type: TypeString("string"), Const: value}
}

// degrade applies the unresolvable-type policy: lenient compiles a generic
// object schema with a note, strict fails. Caller holds the lock.
func (c *Compiler) degrade(t reflect.Type, reason string) (*Schema, error) {
	resErr := &typeResolutionError{Decl: t.String(), Reason: reason}
	if c.opts.Policy == PolicyStrict {
		return nil, &DiscoveryError{Location: t.String(), Err: resErr}
	}
	return &Schema{
		Type:        TypeString("object"),
		Description: fmt.Sprintf("unresolved: %s", resErr),
	}, nil
}

func refSchema(name string) *Schema {
	return &Schema{Ref: refPrefix + name}
}

func declOf(t reflect.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}

// fingerprint returns the canonical JSON of a schema. encoding/json sorts
// map keys and Properties marshals in insertion order, so structurally
// identical schemas always produce identical bytes.
func fingerprint(s *Schema) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
