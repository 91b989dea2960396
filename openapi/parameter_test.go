package openapi

import (
	"context"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillapi/quill/router"
)

type pFilter struct {
	Search string `json:"search,omitempty" api:"description=Free-text search"`
	Limit  int    `json:"limit"`
}

type pIDPair struct {
	OrgID  uuid.UUID
	UserID uuid.UUID
}

type pAuth struct {
	Token string
}

func (pAuth) OpenAPIHeaderName() string { return "Authorization" }

type pHeaders struct {
	XRequestID string  `json:"x_request_id"`
	Trace      *string `json:"trace"`
}

type pBody struct {
	Name string `json:"name"`
}

func extract(t *testing.T, handler any, route string, placeholders []string) ([]*Parameter, *RequestBody, error) {
	t.Helper()
	fn := reflect.TypeOf(handler)
	require.Equal(t, reflect.Func, fn.Kind())
	return extractSignature(newTestCompiler(), fn, route, placeholders)
}

func TestExtractPathParameters(t *testing.T) {
	t.Run("scalar binds the single placeholder", func(t *testing.T) {
		params, _, err := extract(t,
			func(_ router.Path[uuid.UUID]) {},
			"GET /users/{id}", []string{"id"})
		require.NoError(t, err)
		require.Len(t, params, 1)
		assert.Equal(t, "id", params[0].Name)
		assert.Equal(t, "path", params[0].In)
		assert.True(t, params[0].Required)
		assert.Equal(t, "uuid", params[0].Schema.Format)
	})

	t.Run("struct matches placeholders positionally", func(t *testing.T) {
		params, _, err := extract(t,
			func(_ router.Path[pIDPair]) {},
			"GET /orgs/{org}/users/{user}", []string{"org", "user"})
		require.NoError(t, err)
		require.Len(t, params, 2)
		assert.Equal(t, "org", params[0].Name)
		assert.Equal(t, "user", params[1].Name)
	})

	t.Run("arity mismatch fails", func(t *testing.T) {
		_, _, err := extract(t,
			func(_ router.Path[pIDPair]) {},
			"GET /users/{id}", []string{"id"})
		var arity *ArityError
		require.ErrorAs(t, err, &arity)
		assert.Equal(t, 1, arity.Placeholders)
		assert.Equal(t, 2, arity.Values)
	})
}

func TestExtractQueryParameters(t *testing.T) {
	t.Run("struct expands per field", func(t *testing.T) {
		params, _, err := extract(t, func(_ router.Query[pFilter]) {}, "GET /users", nil)
		require.NoError(t, err)
		require.Len(t, params, 2)

		assert.Equal(t, "search", params[0].Name)
		assert.Equal(t, "query", params[0].In)
		assert.False(t, params[0].Required)
		assert.Equal(t, "Free-text search", params[0].Description)

		assert.Equal(t, "limit", params[1].Name)
		assert.True(t, params[1].Required)
	})

	t.Run("map capture contributes nothing", func(t *testing.T) {
		params, _, err := extract(t, func(_ router.Query[map[string]string]) {}, "GET /users", nil)
		require.NoError(t, err)
		assert.Empty(t, params)
	})
}

func TestExtractHeaderParameters(t *testing.T) {
	t.Run("named header type", func(t *testing.T) {
		params, _, err := extract(t, func(_ router.Header[pAuth]) {}, "GET /me", nil)
		require.NoError(t, err)
		require.Len(t, params, 1)
		assert.Equal(t, "Authorization", params[0].Name)
		assert.Equal(t, "header", params[0].In)
		assert.True(t, params[0].Required)
	})

	t.Run("struct folds field names to header form", func(t *testing.T) {
		params, _, err := extract(t, func(_ router.Header[pHeaders]) {}, "GET /me", nil)
		require.NoError(t, err)
		require.Len(t, params, 2)
		assert.Equal(t, "X-Request-Id", params[0].Name)
		assert.Equal(t, "Trace", params[1].Name)
		assert.False(t, params[1].Required)
	})
}

func TestExtractRequestBody(t *testing.T) {
	t.Run("json body", func(t *testing.T) {
		params, body, err := extract(t, func(_ router.JSON[pBody]) {}, "POST /users", nil)
		require.NoError(t, err)
		assert.Empty(t, params)
		require.NotNil(t, body)
		require.Contains(t, body.Content, "application/json")
		assert.True(t, body.Required)
		assert.Equal(t, refPrefix+"pBody", body.Content["application/json"].Schema.Ref)
	})

	t.Run("form body media type", func(t *testing.T) {
		_, body, err := extract(t, func(_ router.Form[pBody]) {}, "POST /users", nil)
		require.NoError(t, err)
		require.NotNil(t, body)
		assert.Contains(t, body.Content, "application/x-www-form-urlencoded")
	})

	t.Run("second body fails", func(t *testing.T) {
		_, _, err := extract(t,
			func(_ router.JSON[pBody], _ router.Form[pFilter]) {},
			"POST /users", nil)
		var disc *DiscoveryError
		require.ErrorAs(t, err, &disc)
		assert.ErrorIs(t, err, errSecondBody)
	})
}

func TestExtractOrdering(t *testing.T) {
	// Query declared before path in the signature; the document still
	// orders path before query before header.
	params, _, err := extract(t,
		func(_ context.Context, _ router.Query[pFilter], _ router.Header[pAuth], _ router.Path[uuid.UUID]) {},
		"GET /users/{id}", []string{"id"})
	require.NoError(t, err)

	locations := make([]string, 0, len(params))
	for _, p := range params {
		locations = append(locations, p.In)
	}
	assert.Equal(t, []string{"path", "query", "query", "header"}, locations)
}

func TestExtractIgnoredAndUnknown(t *testing.T) {
	params, body, err := extract(t,
		func(_ context.Context, _ router.State[int], _ pFilter, _ string) {},
		"GET /users", nil)
	require.NoError(t, err)
	assert.Empty(t, params)
	assert.Nil(t, body)
}
