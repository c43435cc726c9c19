// Package exporters serializes an archive to disk and reads it back.
// Three encodings are supported and all of them round-trip the full
// document, including null optional fields.
package exporters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ljexport/lib/archive"
)

// Format selects the on-disk encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// ExportError wraps a failure to write or read an archive file.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// DetectFormat picks a format from the file extension. ".yml" and
// ".yaml" both mean YAML.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".xml":
		return FormatXML, nil
	}
	return "", fmt.Errorf("cannot detect format from extension of %q", path)
}

type codec interface {
	Marshal(e *archive.Export) ([]byte, error)
	Unmarshal(data []byte, e *archive.Export) error
}

func codecFor(format Format) (codec, error) {
	switch format {
	case FormatYAML:
		return yamlCodec{}, nil
	case FormatJSON:
		return jsonCodec{}, nil
	case FormatXML:
		return xmlCodec{}, nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// Save writes the archive to path in the given format. Counts are
// recomputed first so the metadata always matches the collections.
func Save(e *archive.Export, path string, format Format) error {
	c, err := codecFor(format)
	if err != nil {
		return &ExportError{Path: path, Err: err}
	}
	e.UpdateCounts()
	data, err := c.Marshal(e)
	if err != nil {
		return &ExportError{Path: path, Err: err}
	}
	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return &ExportError{Path: path, Err: err}
	}
	return nil
}

// Load reads an archive back from path in the given format.
func Load(path string, format Format) (*archive.Export, error) {
	c, err := codecFor(format)
	if err != nil {
		return nil, &ExportError{Path: path, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ExportError{Path: path, Err: err}
	}
	var e archive.Export
	err = c.Unmarshal(data, &e)
	if err != nil {
		return nil, &ExportError{Path: path, Err: err}
	}
	return &e, nil
}
