package openapi

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// WriteFiles persists the document to every path, each file receiving an
// identical serialization in the format its extension selects. Files are
// written to a temporary sibling and renamed into place, so a failed write
// never leaves a partial document; the first failure aborts all writes.
func (d *Document) WriteFiles(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	jsonData, err := d.JSON()
	if err != nil {
		return err
	}
	var yamlData []byte
	for _, p := range paths {
		if isYAMLPath(p) {
			yamlData, err = d.YAML()
			if err != nil {
				return err
			}
			break
		}
	}

	var g errgroup.Group
	for _, path := range paths {
		g.Go(func() error {
			data := jsonData
			if isYAMLPath(path) {
				data = yamlData
			}
			return writeAtomic(path, data)
		})
	}
	return g.Wait()
}

func isYAMLPath(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &SerializationError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return &SerializationError{Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &SerializationError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &SerializationError{Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &SerializationError{Path: path, Err: err}
	}
	return nil
}
