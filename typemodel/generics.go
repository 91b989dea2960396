package typemodel

import (
	"reflect"
	"strings"
)

// SchemaName returns the registry key for a named type. Generic
// instantiations are keyed by base name plus the ordered argument names, so
// Page[User] and Page[Group] are distinct entries even though they share a
// declaration. Unnamed types return "".
func SchemaName(t reflect.Type) string {
	if t.Name() == "" || t.PkgPath() == "" {
		return ""
	}
	return SanitizeName(t.Name())
}

// SanitizeName folds a Go type name into a schema key: "Page[User]"
// becomes "PageUser", "Page[[]User]" becomes "PageUserList", and package
// paths inside type arguments are stripped. Multiple type arguments are
// appended in order.
func SanitizeName(name string) string {
	idx := strings.IndexByte(name, '[')
	if idx < 0 {
		return name
	}

	base := name[:idx]
	if dot := strings.LastIndexByte(base, '.'); dot >= 0 {
		base = base[dot+1:]
	}
	inner := name[idx+1 : len(name)-1]

	var b strings.Builder
	b.WriteString(base)
	for _, arg := range splitTypeArgs(inner) {
		b.WriteString(argName(arg))
	}
	return b.String()
}

// splitTypeArgs splits a generic argument list on top-level commas,
// leaving nested instantiations intact.
func splitTypeArgs(s string) []string {
	var args []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, s[start:i])
				start = i + 1
			}
		}
	}
	args = append(args, s[start:])
	return args
}

func argName(arg string) string {
	arg = strings.TrimSpace(arg)

	var suffix string
	for strings.HasPrefix(arg, "[]") {
		arg = arg[2:]
		suffix += "List"
	}
	arg = strings.TrimPrefix(arg, "*")

	if strings.IndexByte(arg, '[') >= 0 {
		return SanitizeName(arg) + suffix
	}

	// Strip package path: "github.com/foo/bar.User" -> "User".
	if dot := strings.LastIndexByte(arg, '.'); dot >= 0 {
		arg = arg[dot+1:]
	}
	if arg == "" {
		return suffix
	}
	return strings.ToUpper(arg[:1]) + arg[1:] + suffix
}

// PkgPrefix extracts the last segment of a package path and capitalizes it
// for use as a schema name prefix when two packages declare types with the
// same simple name (e.g., "net/http" -> "Http").
func PkgPrefix(pkgPath string) string {
	if idx := strings.LastIndexByte(pkgPath, '/'); idx >= 0 {
		pkgPath = pkgPath[idx+1:]
	}
	if len(pkgPath) == 0 {
		return ""
	}
	pkgPath = strings.ReplaceAll(pkgPath, "-", "_")
	pkgPath = strings.ReplaceAll(pkgPath, ".", "_")
	return strings.ToUpper(pkgPath[:1]) + pkgPath[1:]
}
