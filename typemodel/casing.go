package typemodel

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Case names a rename-all case style.
type Case string

const (
	CaseNone           Case = ""
	CaseCamel          Case = "camelCase"
	CasePascal         Case = "PascalCase"
	CaseSnake          Case = "snake_case"
	CaseScreamingSnake Case = "SCREAMING_SNAKE_CASE"
	CaseKebab          Case = "kebab-case"
	CaseLower          Case = "lowercase"
	CaseUpper          Case = "UPPERCASE"
)

// ParseCase maps a case style name to a Case. Unknown names map to
// CaseNone, leaving names untouched.
func ParseCase(s string) Case {
	switch Case(s) {
	case CaseCamel, CasePascal, CaseSnake, CaseScreamingSnake, CaseKebab, CaseLower, CaseUpper:
		return Case(s)
	default:
		return CaseNone
	}
}

var titleCaser = cases.Title(language.Und)

// Convert applies a case style to an identifier. The identifier is split
// into words on underscores, hyphens, and camel humps first, so the result
// is independent of the source convention.
func Convert(name string, style Case) string {
	if style == CaseNone {
		return name
	}
	words := splitWords(name)
	if len(words) == 0 {
		return name
	}

	switch style {
	case CaseCamel:
		var b strings.Builder
		b.WriteString(words[0])
		for _, w := range words[1:] {
			b.WriteString(titleCaser.String(w))
		}
		return b.String()
	case CasePascal:
		var b strings.Builder
		for _, w := range words {
			b.WriteString(titleCaser.String(w))
		}
		return b.String()
	case CaseSnake:
		return strings.Join(words, "_")
	case CaseScreamingSnake:
		return strings.ToUpper(strings.Join(words, "_"))
	case CaseKebab:
		return strings.Join(words, "-")
	case CaseLower:
		return strings.Join(words, "")
	case CaseUpper:
		return strings.ToUpper(strings.Join(words, ""))
	default:
		return name
	}
}

// splitWords breaks an identifier into lowercase words. Acronym runs are
// kept together: "HTTPStatus" splits into "http", "status".
func splitWords(name string) []string {
	var words []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			words = append(words, strings.ToLower(cur.String()))
			cur.Reset()
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				if unicode.IsLower(prev) || unicode.IsDigit(prev) {
					flush()
				} else if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
					flush()
				}
			}
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return words
}
