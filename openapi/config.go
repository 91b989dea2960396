package openapi

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"

	"golang.org/x/net/idna"
	"gopkg.in/yaml.v3"
)

// Config carries the document-level options of one build.
type Config struct {
	// Title and Version populate the document info object. Both are
	// required.
	Title   string `yaml:"title" json:"title"`
	Version string `yaml:"version" json:"version"`

	// Summary and Description are optional info fields.
	Summary     string `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Servers lists the server entries of the document.
	Servers []Server `yaml:"servers,omitempty" json:"servers,omitempty"`

	// DocsPath, when set, is the path the documentation UI handler is
	// mounted at (see Document.Handler).
	DocsPath string `yaml:"docs_path,omitempty" json:"docs_path,omitempty"`

	// OutputPaths lists the files the document is written to. Each file
	// receives an identical serialization; the extension selects JSON or
	// YAML.
	OutputPaths []string `yaml:"output_paths,omitempty" json:"output_paths,omitempty"`

	// Policy selects strict or lenient handling of unresolvable types.
	Policy Policy `yaml:"-" json:"-"`

	// Collisions selects the operation-id collision policy.
	Collisions CollisionPolicy `yaml:"-" json:"-"`

	// RenameAll is the default property-name case style.
	RenameAll string `yaml:"rename_all,omitempty" json:"rename_all,omitempty"`
}

// LoadConfig reads a YAML configuration file and validates it.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, &ConfigurationError{Option: "config file", Value: path, Reason: err.Error()}
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigurationError{Option: "config file", Value: path, Reason: err.Error()}
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration before any analysis runs. Server URLs
// must parse and carry a scheme and a registrable host; hosts are checked
// through IDNA lookup rules so internationalized names are accepted and
// malformed ones rejected up front.
func (c Config) Validate() error {
	if c.Title == "" {
		return &ConfigurationError{Option: "title", Reason: "must not be empty"}
	}
	if c.Version == "" {
		return &ConfigurationError{Option: "version", Reason: "must not be empty"}
	}

	for _, srv := range c.Servers {
		if err := validateServerURL(srv.URL); err != nil {
			return err
		}
	}

	if c.DocsPath != "" && !strings.HasPrefix(c.DocsPath, "/") {
		return &ConfigurationError{
			Option: "docs path",
			Value:  c.DocsPath,
			Reason: "must start with /",
		}
	}

	for _, p := range c.OutputPaths {
		switch {
		case strings.HasSuffix(p, ".json"), strings.HasSuffix(p, ".yaml"), strings.HasSuffix(p, ".yml"):
		default:
			return &ConfigurationError{
				Option: "output path",
				Value:  p,
				Reason: "extension must be .json, .yaml, or .yml",
			}
		}
	}

	return nil
}

func validateServerURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return &ConfigurationError{Option: "server url", Value: raw, Reason: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ConfigurationError{
			Option: "server url",
			Value:  raw,
			Reason: fmt.Sprintf("unsupported scheme %q", u.Scheme),
		}
	}
	host := u.Hostname()
	if host == "" {
		return &ConfigurationError{Option: "server url", Value: raw, Reason: "missing host"}
	}
	if ip := net.ParseIP(host); ip != nil {
		return nil
	}
	if _, err := idna.Lookup.ToASCII(host); err != nil {
		return &ConfigurationError{
			Option: "server url",
			Value:  raw,
			Reason: fmt.Sprintf("invalid host: %v", err),
		}
	}
	return nil
}
