package openapi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	valid := Config{
		Title:   "API",
		Version: "1.0.0",
		Servers: []Server{
			{URL: "https://api.example.com"},
			{URL: "http://localhost:8080"},
			{URL: "https://127.0.0.1:9090"},
			{URL: "https://bücher.example"},
		},
		DocsPath:    "/docs",
		OutputPaths: []string{"openapi.json", "dist/openapi.yaml"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing title", func(c *Config) { c.Title = "" }},
		{"missing version", func(c *Config) { c.Version = "" }},
		{"relative server url", func(c *Config) { c.Servers = []Server{{URL: "api.example.com"}} }},
		{"bad scheme", func(c *Config) { c.Servers = []Server{{URL: "ftp://example.com"}} }},
		{"missing host", func(c *Config) { c.Servers = []Server{{URL: "https://"}} }},
		{"malformed host", func(c *Config) { c.Servers = []Server{{URL: "https://exa mple.com"}} }},
		{"relative docs path", func(c *Config) { c.DocsPath = "docs" }},
		{"unknown output extension", func(c *Config) { c.OutputPaths = []string{"openapi.toml"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			var confErr *ConfigurationError
			require.ErrorAs(t, err, &confErr)
		})
	}
}

func TestNewSpecRejectsBadConfig(t *testing.T) {
	_, err := NewSpec(Config{})
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
title: API
version: 1.0.0
servers:
  - url: https://api.example.com
    description: production
output_paths:
  - openapi.json
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "API", cfg.Title)
	require.Len(t, cfg.Servers, 1)
	assert.Equal(t, "production", cfg.Servers[0].Description)

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		var confErr *ConfigurationError
		require.ErrorAs(t, err, &confErr)
	})
}
