package typemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		style Case
		want  string
	}{
		{"camel from pascal", "UserName", CaseCamel, "userName"},
		{"camel keeps acronym run", "HTTPStatus", CaseCamel, "httpStatus"},
		{"camel from snake", "created_at", CaseCamel, "createdAt"},
		{"pascal from snake", "created_at", CasePascal, "CreatedAt"},
		{"snake from pascal", "CreatedAt", CaseSnake, "created_at"},
		{"screaming snake", "CreatedAt", CaseScreamingSnake, "CREATED_AT"},
		{"kebab", "CreatedAt", CaseKebab, "created-at"},
		{"lower", "CreatedAt", CaseLower, "createdat"},
		{"upper", "CreatedAt", CaseUpper, "CREATEDAT"},
		{"none leaves untouched", "CreatedAt", CaseNone, "CreatedAt"},
		{"digit boundary", "Line2Total", CaseSnake, "line2_total"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Convert(tt.in, tt.style))
		})
	}
}

func TestParseCase(t *testing.T) {
	assert.Equal(t, CaseCamel, ParseCase("camelCase"))
	assert.Equal(t, CaseSnake, ParseCase("snake_case"))
	assert.Equal(t, CaseNone, ParseCase("bogus"))
	assert.Equal(t, CaseNone, ParseCase(""))
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"User", "User"},
		{"Page[main.User]", "PageUser"},
		{"Page[[]main.User]", "PageUserList"},
		{"Pair[main.User,main.Group]", "PairUserGroup"},
		{"Page[main.Page[main.User]]", "PagePageUser"},
		{"Page[int]", "PageInt"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.in))
		})
	}
}

func TestPkgPrefix(t *testing.T) {
	assert.Equal(t, "Http", PkgPrefix("net/http"))
	assert.Equal(t, "Models", PkgPrefix("github.com/acme/app/models"))
	assert.Equal(t, "", PkgPrefix(""))
}
