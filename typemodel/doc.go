// Package typemodel resolves Go type declarations into canonical field and
// variant descriptors for schema compilation.
//
// Struct tags are parsed exactly once into a closed directive set (rename,
// default, skip, flatten, description); downstream schema synthesis consumes
// resolved FieldDescriptor values and never inspects tag syntax. Enum and
// tagged-union types opt in through the Enumer and OneOfer interfaces.
package typemodel
