package openapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillapi/quill/router"
	"github.com/quillapi/quill/typemodel"
)

type aUser struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func aListUsers(_ context.Context) ([]aUser, error)               { return nil, nil }
func aGetUser(_ context.Context, _ router.Path[uuid.UUID]) (aUser, error) {
	return aUser{}, nil
}
func aCreateUser(_ context.Context, _ router.JSON[aUser]) (aUser, error) {
	return aUser{}, nil
}

func testConfig() Config {
	return Config{
		Title:     "Test API",
		Version:   "0.1.0",
		RenameAll: string(typemodel.CaseCamel),
	}
}

func buildTestDoc(t *testing.T, r *router.Router) *Document {
	t.Helper()
	spec, err := NewSpec(testConfig())
	require.NoError(t, err)
	doc, err := spec.Build(r)
	require.NoError(t, err)
	return doc
}

func TestBuildDocument(t *testing.T) {
	r := router.New()
	users := r.Group("users")
	users.Get("", aListUsers).Tags("users")
	users.Post("", aCreateUser).Tags("users")
	users.Get("{id}", aGetUser).Tags("users").ErrorStatus(http.StatusNotFound)

	doc := buildTestDoc(t, r)

	t.Run("document header", func(t *testing.T) {
		assert.Equal(t, "3.1.0", doc.OpenAPI)
		assert.Equal(t, "Test API", doc.Info.Title)
	})

	t.Run("methods share one path item", func(t *testing.T) {
		require.Contains(t, doc.Paths, "/users")
		item := doc.Paths["/users"]
		assert.NotNil(t, item.Get)
		assert.NotNil(t, item.Post)
	})

	t.Run("operation ids derive from handler names", func(t *testing.T) {
		assert.Equal(t, "aListUsers", doc.Paths["/users"].Get.OperationID)
		assert.Equal(t, "aCreateUser", doc.Paths["/users"].Post.OperationID)
	})

	t.Run("path parameter documented", func(t *testing.T) {
		op := doc.Paths["/users/{id}"].Get
		require.Len(t, op.Parameters, 1)
		assert.Equal(t, "id", op.Parameters[0].Name)
		assert.Equal(t, "path", op.Parameters[0].In)
	})

	t.Run("declared error status added", func(t *testing.T) {
		op := doc.Paths["/users/{id}"].Get
		require.Contains(t, op.Responses, "404")
		assert.Equal(t, http.StatusText(http.StatusNotFound), op.Responses["404"].Description)
	})

	t.Run("schemas registered", func(t *testing.T) {
		require.NotNil(t, doc.Components)
		assert.Contains(t, doc.Components.Schemas, "aUser")
	})

	t.Run("tags collected sorted", func(t *testing.T) {
		require.Len(t, doc.Tags, 1)
		assert.Equal(t, "users", doc.Tags[0].Name)
	})
}

func TestBuildPathOrderLexicographic(t *testing.T) {
	// Register in reverse order; serialization must still sort.
	r := router.New()
	r.Get("/users/{id}", aGetUser)
	r.Get("/users", aListUsers)

	doc := buildTestDoc(t, r)
	data, err := doc.JSON()
	require.NoError(t, err)

	var decoded struct {
		Paths json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	dec := json.NewDecoder(bytes.NewReader(decoded.Paths))
	_, err = dec.Token() // {
	require.NoError(t, err)

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		require.NoError(t, err)
		if key, ok := tok.(string); ok {
			keys = append(keys, key)
		}
		var skip json.RawMessage
		require.NoError(t, dec.Decode(&skip))
	}
	assert.Equal(t, []string{"/users", "/users/{id}"}, keys)
}

func TestBuildGroupPrefixes(t *testing.T) {
	r := router.New()
	api := r.Group("api")
	v1 := api.Group("v1")
	v1.Get("", aListUsers) // index route maps to the group prefix
	v1.Get("users/{id}", aGetUser)

	doc := buildTestDoc(t, r)
	assert.Contains(t, doc.Paths, "/api/v1")
	assert.Contains(t, doc.Paths, "/api/v1/users/{id}")
}

func TestBuildOperationIDCollisions(t *testing.T) {
	t.Run("suffix policy disambiguates deterministically", func(t *testing.T) {
		r := router.New()
		r.Get("/users", aListUsers)
		r.Get("/admins", aListUsers)

		doc := buildTestDoc(t, r)
		assert.Equal(t, "aListUsers", doc.Paths["/users"].Get.OperationID)
		assert.Equal(t, "aListUsersAdmins", doc.Paths["/admins"].Get.OperationID)
	})

	t.Run("error policy fails", func(t *testing.T) {
		r := router.New()
		r.Get("/users", aListUsers)
		r.Get("/admins", aListUsers)

		cfg := testConfig()
		cfg.Collisions = CollisionError
		spec, err := NewSpec(cfg)
		require.NoError(t, err)

		_, err = spec.Build(r)
		var collision *NamingCollisionError
		require.ErrorAs(t, err, &collision)
		assert.Equal(t, "operation id", collision.Kind)
	})

	t.Run("explicit names avoid collisions", func(t *testing.T) {
		r := router.New()
		r.Get("/users", aListUsers).Name("listUsers")
		r.Get("/admins", aListUsers).Name("listAdmins")

		doc := buildTestDoc(t, r)
		assert.Equal(t, "listAdmins", doc.Paths["/admins"].Get.OperationID)
	})
}

func TestBuildDuplicateRouteFails(t *testing.T) {
	r := router.New()
	r.Get("/users", aListUsers).Name("a")
	r.Get("/users", aListUsers).Name("b")

	spec, err := NewSpec(testConfig())
	require.NoError(t, err)

	_, err = spec.Build(r)
	var collision *NamingCollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, "path", collision.Kind)
}

func TestPathPlaceholders(t *testing.T) {
	assert.Nil(t, pathPlaceholders("/users"))
	assert.Equal(t, []string{"id"}, pathPlaceholders("/users/{id}"))
	assert.Equal(t, []string{"org", "user"}, pathPlaceholders("/orgs/{org}/users/{user}"))
}

func TestPathSuffix(t *testing.T) {
	assert.Equal(t, "Users", pathSuffix("/users"))
	assert.Equal(t, "UsersById", pathSuffix("/users/{id}"))
	assert.Equal(t, "ApiV1Users", pathSuffix("/api/v1/users"))
}
