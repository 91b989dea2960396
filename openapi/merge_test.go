package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docWithPath(path string, schemas map[string]*Schema) *Document {
	return &Document{
		OpenAPI: "3.1.0",
		Info:    Info{Title: "Test", Version: "1"},
		Paths: map[string]*PathItem{
			path: {Get: &Operation{OperationID: "op" + path}},
		},
		Components: &Components{Schemas: schemas},
	}
}

func TestMergeDisjoint(t *testing.T) {
	a := docWithPath("/users", map[string]*Schema{"User": {Type: TypeString("object")}})
	b := docWithPath("/groups", map[string]*Schema{"Group": {Type: TypeString("object")}})

	merged, err := Merge(a, b)
	require.NoError(t, err)

	assert.Len(t, merged.Paths, 2)
	assert.Len(t, merged.Components.Schemas, 2)
	assert.Equal(t, "Test", merged.Info.Title)
}

func TestMergeIdenticalDuplicates(t *testing.T) {
	a := docWithPath("/users", map[string]*Schema{"User": {Type: TypeString("object")}})
	b := docWithPath("/users", map[string]*Schema{"User": {Type: TypeString("object")}})

	merged, err := Merge(a, b)
	require.NoError(t, err)
	assert.Len(t, merged.Paths, 1)
	assert.Len(t, merged.Components.Schemas, 1)
}

func TestMergeConflictingSchema(t *testing.T) {
	a := docWithPath("/users", map[string]*Schema{"User": {Type: TypeString("object")}})
	b := docWithPath("/groups", map[string]*Schema{"User": {Type: TypeString("string")}})

	_, err := Merge(a, b)
	var collision *NamingCollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, "schema", collision.Kind)
	assert.Equal(t, "User", collision.Name)
}

func TestMergeConflictingPath(t *testing.T) {
	a := docWithPath("/users", nil)
	b := &Document{
		Paths: map[string]*PathItem{
			"/users": {Get: &Operation{OperationID: "different"}},
		},
	}

	_, err := Merge(a, b)
	var collision *NamingCollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, "path", collision.Kind)
}

func TestMergeTagsUnionSorted(t *testing.T) {
	a := docWithPath("/users", nil)
	a.Tags = []Tag{{Name: "users"}}
	b := docWithPath("/groups", nil)
	b.Tags = []Tag{{Name: "groups"}, {Name: "users"}}

	merged, err := Merge(a, b)
	require.NoError(t, err)
	require.Len(t, merged.Tags, 2)
	assert.Equal(t, "groups", merged.Tags[0].Name)
	assert.Equal(t, "users", merged.Tags[1].Name)
}

func TestMergeEmpty(t *testing.T) {
	merged, err := Merge()
	require.NoError(t, err)
	require.NotNil(t, merged)
	assert.Equal(t, "3.1.0", merged.OpenAPI)
	assert.Empty(t, merged.Paths)
}
