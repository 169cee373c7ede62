package graph

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/graphsvg/pkg/errors"
)

// =============================================================================
// Document Serialization API
// =============================================================================

// Marshal converts a document to indented JSON bytes.
func Marshal(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes a document as JSON to w.
func Write(d *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	return nil
}

// WriteFile writes a document to a JSON file with 0644 permissions.
func WriteFile(d *Document, path string) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// Unmarshal decodes a JSON or TOML document and validates it. Input whose
// first non-blank byte is '{' is read as JSON, anything else as TOML.
func Unmarshal(data []byte) (*Document, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return UnmarshalJSON(data)
	}
	return UnmarshalTOML(data)
}

// UnmarshalJSON decodes and validates a JSON document.
func UnmarshalJSON(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON document")
	}
	return validated(&d)
}

// UnmarshalTOML decodes and validates a TOML document.
func UnmarshalTOML(data []byte) (*Document, error) {
	var d Document
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode TOML document")
	}
	return validated(&d)
}

// Read decodes a document from r. See [Unmarshal].
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read document")
	}
	return Unmarshal(data)
}

// ReadFile reads a document from path. Files ending in .toml are read as
// TOML, files ending in .json as JSON; other names are detected from the
// content.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return UnmarshalTOML(data)
	case ".json":
		return UnmarshalJSON(data)
	}
	return Unmarshal(data)
}

func validated(d *Document) (*Document, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
