package openapi

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"sort"
	"strings"
	"sync"
)

// DocsUI selects which interactive documentation UI to serve.
type DocsUI int

const (
	DocsSwaggerUI DocsUI = iota
	DocsRapiDoc
	DocsRedoc
)

// HandleConfig configures the endpoints registered by Handler.
type HandleConfig struct {
	// UI selects the interactive docs UI (default: DocsSwaggerUI).
	UI DocsUI

	// Title overrides the HTML page title (default: document info.title).
	Title string

	// JSONFilename is the path for the JSON document endpoint
	// (default: "schema.json"). Set to "-" to disable.
	//
	// Relative paths are joined with the base path; absolute paths
	// (starting with "/") are used as-is.
	JSONFilename string

	// YAMLFilename is the path for the YAML document endpoint
	// (default: "schema.yaml"). Set to "-" to disable.
	// Follows the same absolute/relative rules as JSONFilename.
	YAMLFilename string

	// DisableDocs disables the interactive HTML docs UI endpoint.
	DisableDocs bool

	// SwaggerUIConfig provides additional SwaggerUIBundle configuration
	// options, rendered as JavaScript object properties alongside the url
	// and dom_id defaults. Only used when UI is DocsSwaggerUI.
	//
	// See: https://swagger.io/docs/open-source-tools/swagger-ui/usage/configuration/
	SwaggerUIConfig map[string]any
}

func (cfg HandleConfig) jsonFilename() string {
	if cfg.JSONFilename == "" {
		return "schema.json"
	}
	return cfg.JSONFilename
}

func (cfg HandleConfig) yamlFilename() string {
	if cfg.YAMLFilename == "" {
		return "schema.yaml"
	}
	return cfg.YAMLFilename
}

// resolvePath returns the full route path for a filename. Absolute
// filenames (starting with "/") are returned as-is; relative filenames are
// joined under basePath.
func resolvePath(basePath, filename string) string {
	if strings.HasPrefix(filename, "/") {
		return filename
	}
	if basePath == "" {
		return "/" + filename
	}
	return basePath + "/" + filename
}

// Handler serves the document under the given base path. Depending on
// config, the following routes are registered:
//
//	<basePath>/            - interactive HTML docs (unless DisableDocs)
//	<JSONFilename path>    - document as JSON  (unless JSONFilename is "-")
//	<YAMLFilename path>    - document as YAML  (unless YAMLFilename is "-")
//
// The config parameter is optional; pass nil for defaults:
//
//	http.Handle("/docs/", doc.Handler("/docs", nil))
//
// Both <basePath> and <basePath>/ serve the docs UI. Serializations are
// produced once on first request and cached.
func (d *Document) Handler(basePath string, cfg *HandleConfig) http.Handler {
	if cfg == nil {
		cfg = &HandleConfig{}
	}
	basePath = strings.TrimRight(basePath, "/")

	mux := http.NewServeMux()

	var jsonPath, yamlPath string

	if f := cfg.jsonFilename(); f != "-" {
		jsonPath = resolvePath(basePath, f)
		registerJSON(mux, jsonPath, d)
	}
	if f := cfg.yamlFilename(); f != "-" {
		yamlPath = resolvePath(basePath, f)
		registerYAML(mux, yamlPath, d)
	}

	if !cfg.DisableDocs {
		// The docs UI references the JSON or YAML endpoint; without either
		// there is nothing to render.
		specURL := jsonPath
		if specURL == "" {
			specURL = yamlPath
		}
		if specURL != "" {
			registerDocs(mux, basePath, cfg, d, specURL)
		}
	}

	return mux
}

func registerJSON(mux *http.ServeMux, path string, d *Document) {
	var (
		once     sync.Once
		data     []byte
		buildErr error
	)
	mux.HandleFunc(path, func(w http.ResponseWriter, _ *http.Request) {
		once.Do(func() {
			data, buildErr = d.JSON()
		})
		if buildErr != nil {
			http.Error(w, "failed to serialize document as JSON", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	})
}

func registerYAML(mux *http.ServeMux, path string, d *Document) {
	var (
		once     sync.Once
		data     []byte
		buildErr error
	)
	mux.HandleFunc(path, func(w http.ResponseWriter, _ *http.Request) {
		once.Do(func() {
			data, buildErr = d.YAML()
		})
		if buildErr != nil {
			http.Error(w, "failed to serialize document as YAML", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/x-yaml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	})
}

func registerDocs(mux *http.ServeMux, basePath string, cfg *HandleConfig, d *Document, specURL string) {
	var (
		once sync.Once
		data []byte
	)
	handler := func(w http.ResponseWriter, _ *http.Request) {
		once.Do(func() {
			title := cfg.Title
			if title == "" {
				title = d.Info.Title
			}

			var page string
			switch cfg.UI {
			case DocsRapiDoc:
				page = rapidocTemplate(title, specURL)
			case DocsRedoc:
				page = redocTemplate(title, specURL)
			default:
				page = swaggerUITemplate(title, specURL, cfg.SwaggerUIConfig)
			}
			data = []byte(page)
		})
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
	if basePath == "" {
		// Root base path: register only "/" to avoid empty pattern "".
		mux.HandleFunc("/", handler)
	} else {
		mux.HandleFunc(basePath, handler)
		mux.HandleFunc(basePath+"/", handler)
	}
}

func swaggerUITemplate(title, specPath string, config map[string]any) string {
	var extra string
	if len(config) > 0 {
		keys := make([]string, 0, len(config))
		for k := range config {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var buf strings.Builder
		for _, k := range keys {
			v, err := json.Marshal(config[k])
			if err != nil {
				continue
			}
			fmt.Fprintf(&buf, ", %s: %s", k, v)
		}
		extra = buf.String()
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: %q, dom_id: "#swagger-ui"%s});
</script>
</body>
</html>`, html.EscapeString(title), specPath, extra)
}

func rapidocTemplate(title, specPath string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<script type="module" src="https://unpkg.com/rapidoc/dist/rapidoc-min.js"></script>
</head>
<body>
<rapi-doc spec-url=%q></rapi-doc>
</body>
</html>`, html.EscapeString(title), specPath)
}

func redocTemplate(title, specPath string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
</head>
<body>
<redoc spec-url=%q></redoc>
<script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
</body>
</html>`, html.EscapeString(title), specPath)
}
