package typemodel

import "reflect"

// FieldDescriptor is the canonical, directive-resolved description of one
// struct field. Schema compilation consumes descriptors only and never
// inspects raw struct tags.
type FieldDescriptor struct {
	// SourceName is the Go field name as declared.
	SourceName string

	// Name is the resolved property name after rename directives.
	Name string

	// Type is the field's type with one level of optional (pointer)
	// wrapping removed.
	Type reflect.Type

	// Required is false for optional-wrapped fields and fields carrying a
	// default directive.
	Required bool

	// Flatten inlines the field's struct type into the parent's property
	// list instead of nesting it.
	Flatten bool

	// Description is the field's documented description, if any.
	Description string
}

// VariantDescriptor describes one variant of a data-carrying enum.
type VariantDescriptor struct {
	// SourceName is the variant name as declared.
	SourceName string

	// Name is the resolved variant name after rename directives.
	Name string

	// Type is the variant's payload type; nil for unit variants.
	Type reflect.Type

	// Description is the variant's documented description, if any.
	Description string
}

// StructMetadata is the registry-level record for one distinct declared
// type: its (generics-disambiguated) name, its raw declaration text kept
// for diagnostics, and the ordered descriptor list. Exactly one of Fields,
// Variants, or EnumValues is populated.
type StructMetadata struct {
	Name        string
	Decl        string
	Description string

	Fields []FieldDescriptor

	Variants []VariantDescriptor
	Tagging  Tagging

	EnumValues []string
}

// TaggingMode selects how data-carrying enum variants are keyed in their
// serialized form. The mode applies identically to every variant.
type TaggingMode int

const (
	// TaggingExternal wraps each variant payload in an object keyed by the
	// variant name: {"VariantName": <payload>}.
	TaggingExternal TaggingMode = iota

	// TaggingInternal stores the variant name in a tag property inside the
	// payload object: {"type": "VariantName", ...payload fields}.
	TaggingInternal

	// TaggingAdjacent stores tag and payload side by side:
	// {"type": "VariantName", "data": <payload>}.
	TaggingAdjacent
)

// Tagging configures the variant tagging shape of a data-carrying enum.
// Tag and Content name the tag and payload properties for the internal and
// adjacent modes; both default sensibly when empty.
type Tagging struct {
	Mode    TaggingMode
	Tag     string
	Content string
}

// TagName returns the configured tag property name, defaulting to "type".
func (t Tagging) TagName() string {
	if t.Tag == "" {
		return "type"
	}
	return t.Tag
}

// ContentName returns the configured payload property name for adjacent
// tagging, defaulting to "content".
func (t Tagging) ContentName() string {
	if t.Content == "" {
		return "content"
	}
	return t.Content
}

// OneOf describes a data-carrying enum: an ordered variant list plus the
// tagging shape shared by all variants.
type OneOf struct {
	Tagging  Tagging
	Variants []VariantDescriptor
}

// Enumer is implemented by types whose schema is a closed set of string
// values. The returned values appear in the enum list in declaration order.
//
//	func (Status) OpenAPIEnum() []string { return []string{"active", "disabled"} }
type Enumer interface {
	OpenAPIEnum() []string
}

// OneOfer is implemented by types whose schema is a tagged union of
// variant payloads.
type OneOfer interface {
	OpenAPIOneOf() OneOf
}

// RenameAller is implemented by types that carry a type-level rename-all
// case style, overriding the extractor's default. The returned value is a
// case style name such as "camelCase" or "snake_case".
type RenameAller interface {
	OpenAPIRenameAll() string
}
