// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files that are neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("format not supported")

// Decode parses data as YAML or JSON, chosen by the extension of filePath,
// into a plain JSON value tree with numbers kept as json.Number.
func Decode(data []byte, filePath string) (any, error) {
	switch {
	case strings.HasSuffix(filePath, ".yaml") || strings.HasSuffix(filePath, ".yml"):
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		// Re-encode so YAML ints and floats end up as json.Number like JSON input.
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("yaml document is not representable as JSON: %w", err)
		}
		return jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	case strings.HasSuffix(filePath, ".json"):
		return jsonschema.UnmarshalJSON(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filePath)
	}
}

// Loader loads documents from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile loads and decodes a schema or field-rule document.
// The format is determined from the file extension.
func (l *Loader) LoadFile(filePath string) (any, error) {
	f, err := l.fsys.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	doc, err := Decode(data, filePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return doc, nil
}

// IsDocument reports whether name has an extension LoadFile understands.
func IsDocument(name string) bool {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// LoadDir loads every document directly inside dir, keyed by file name
// without extension.
func (l *Loader) LoadDir(dir string) (map[string]any, error) {
	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		return nil, err
	}

	docs := make(map[string]any)
	for _, e := range entries {
		if e.IsDir() || !IsDocument(e.Name()) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), pathExt(e.Name()))
		if _, dup := docs[name]; dup {
			return nil, fmt.Errorf("duplicate document name %q in %s", name, dir)
		}
		doc, err := l.LoadFile(joinPath(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		docs[name] = doc
	}
	return docs, nil
}

func pathExt(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i:]
	}
	return ""
}

func joinPath(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	return strings.TrimSuffix(dir, "/") + "/" + name
}
