package openapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func orderedProps() *Properties {
	p := NewProperties()
	p.Set("zebra", &Schema{Type: TypeString("string")})
	p.Set("alpha", &Schema{Type: TypeString("integer")})
	p.Set("mid", &Schema{Type: TypeString("boolean")})
	return p
}

func TestPropertiesInsertionOrder(t *testing.T) {
	p := orderedProps()
	assert.Equal(t, []string{"zebra", "alpha", "mid"}, p.Keys())

	t.Run("replace keeps position", func(t *testing.T) {
		p.Set("alpha", &Schema{Type: TypeString("string")})
		assert.Equal(t, []string{"zebra", "alpha", "mid"}, p.Keys())
		s, ok := p.Get("alpha")
		require.True(t, ok)
		assert.Equal(t, TypeString("string"), s.Type)
	})
}

func TestPropertiesJSONRoundTrip(t *testing.T) {
	p := orderedProps()

	data, err := json.Marshal(p)
	require.NoError(t, err)
	// Insertion order, not sorted.
	assert.Equal(t,
		`{"zebra":{"type":"string"},"alpha":{"type":"integer"},"mid":{"type":"boolean"}}`,
		string(data))

	var back Properties
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p.Keys(), back.Keys())
}

func TestPropertiesYAMLRoundTrip(t *testing.T) {
	p := orderedProps()

	data, err := yaml.Marshal(p)
	require.NoError(t, err)

	var back Properties
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, p.Keys(), back.Keys())

	s, ok := back.Get("mid")
	require.True(t, ok)
	assert.Equal(t, TypeString("boolean"), s.Type)
}

func TestPropertiesNilSafety(t *testing.T) {
	var p *Properties
	assert.Equal(t, 0, p.Len())
	assert.Nil(t, p.Keys())
	assert.True(t, p.IsZero())
	_, ok := p.Get("x")
	assert.False(t, ok)
}
