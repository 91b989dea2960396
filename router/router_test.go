package router

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop() {}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		suffix string
		want   string
	}{
		{"both empty", "", "", "/"},
		{"index route keeps base", "/users", "", "/users"},
		{"join", "/users", "{id}", "/users/{id}"},
		{"redundant slashes", "/users/", "/{id}/", "/users/{id}"},
		{"root base", "", "users", "/users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinPath(tt.base, tt.suffix))
		})
	}
}

func TestWalkOrder(t *testing.T) {
	r := New()
	r.Get("health", noop)

	users := r.Group("users")
	users.Get("", noop)
	users.Get("{id}", noop)

	admin := users.Group("admin")
	admin.Post("ban", noop)

	var visited []string
	err := r.Walk(func(fullPath string, rt *Route) error {
		visited = append(visited, rt.Method()+" "+fullPath)
		return nil
	})
	require.NoError(t, err)

	// Registration order: a group's own routes before its children.
	assert.Equal(t, []string{
		"GET /health",
		"GET /users",
		"GET /users/{id}",
		"POST /users/admin/ban",
	}, visited)
}

func TestHandlePanicsOnBadMethod(t *testing.T) {
	r := New()
	assert.Panics(t, func() {
		r.Handle("FETCH", "/x", noop)
	})
}

func TestRouteMetadata(t *testing.T) {
	r := New()
	rt := r.Get("users", noop).
		Name("listUsers").
		Tags("users", "public").
		Summary("List users").
		Description("Returns all users.").
		ErrorStatus(http.StatusNotFound).
		Deprecated()

	assert.Equal(t, http.MethodGet, rt.Method())
	assert.Equal(t, "listUsers", rt.OperationName())
	assert.Equal(t, []string{"users", "public"}, rt.RouteTags())
	assert.Equal(t, "List users", rt.RouteSummary())
	assert.Equal(t, "Returns all users.", rt.RouteDescription())
	assert.Equal(t, []int{http.StatusNotFound}, rt.ErrorStatuses())
	assert.True(t, rt.IsDeprecated())
}

func TestKindOf(t *testing.T) {
	type filter struct{ Q string }

	tests := []struct {
		name  string
		typ   reflect.Type
		kind  ParamKind
		inner reflect.Kind
	}{
		{"path", reflect.TypeOf(Path[int]{}), KindPath, reflect.Int},
		{"query", reflect.TypeOf(Query[filter]{}), KindQuery, reflect.Struct},
		{"json body", reflect.TypeOf(JSON[filter]{}), KindJSONBody, reflect.Struct},
		{"form body", reflect.TypeOf(Form[filter]{}), KindFormBody, reflect.Struct},
		{"header", reflect.TypeOf(Header[filter]{}), KindHeader, reflect.Struct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, inner := KindOf(tt.typ)
			assert.Equal(t, tt.kind, kind)
			require.NotNil(t, inner)
			assert.Equal(t, tt.inner, inner.Kind())
		})
	}

	t.Run("ignored plumbing", func(t *testing.T) {
		for _, typ := range []reflect.Type{
			reflect.TypeOf((*context.Context)(nil)).Elem(),
			reflect.TypeOf(&http.Request{}),
			reflect.TypeOf(http.Header{}),
			reflect.TypeOf(State[int]{}),
		} {
			kind, _ := KindOf(typ)
			assert.Equal(t, KindIgnored, kind, typ.String())
		}
	})

	t.Run("unknown degrades", func(t *testing.T) {
		kind, _ := KindOf(reflect.TypeOf(filter{}))
		assert.Equal(t, KindUnknown, kind)
	})
}
