// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jschema provides document loading and a typed view of JSON Schema
// documents for inspection.
package jschema

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// Schema is the typed JSON Schema representation used for inspection.
type Schema = jsonschema.Schema

// Typed converts a plain JSON Schema document into its typed form.
// Draft-04 boolean exclusiveMinimum/exclusiveMaximum are rewritten to the
// numeric form of later drafts; the input document is not modified.
func Typed(doc any) (*Schema, error) {
	raw, err := json.Marshal(numericBounds(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to serialize schema: %w", err)
	}
	var s Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return &s, nil
}

// numericBounds returns a copy of v in which every draft-04 boolean
// exclusiveMinimum/exclusiveMaximum is folded into its numeric bound:
// true moves minimum into exclusiveMinimum, false is dropped.
func numericBounds(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = numericBounds(child)
		}
		foldBound(out, "exclusiveMinimum", "minimum")
		foldBound(out, "exclusiveMaximum", "maximum")
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = numericBounds(child)
		}
		return out
	default:
		return v
	}
}

func foldBound(m map[string]any, exclusive, inclusive string) {
	flag, ok := m[exclusive].(bool)
	if !ok {
		return
	}
	delete(m, exclusive)
	if bound, has := m[inclusive]; flag && has {
		m[exclusive] = bound
		delete(m, inclusive)
	}
}

// TypeOf returns the declared type of s, joining multiple types with "|".
func TypeOf(s *Schema) string {
	if s.Type != "" {
		return s.Type
	}
	out := ""
	for i, t := range s.Types {
		if i > 0 {
			out += "|"
		}
		out += t
	}
	return out
}

// Constraints returns the validation keywords set on s in a fixed order,
// formatted as "keyword=value".
func Constraints(s *Schema) []string {
	var out []string
	add := func(name string, v any) {
		out = append(out, fmt.Sprintf("%s=%v", name, v))
	}
	if s.Format != "" {
		add("format", s.Format)
	}
	if s.Pattern != "" {
		add("pattern", s.Pattern)
	}
	if s.MinLength != nil {
		add("minLength", *s.MinLength)
	}
	if s.MaxLength != nil {
		add("maxLength", *s.MaxLength)
	}
	if s.MinItems != nil {
		add("minItems", *s.MinItems)
	}
	if s.MaxItems != nil {
		add("maxItems", *s.MaxItems)
	}
	if s.Minimum != nil {
		add("minimum", *s.Minimum)
	}
	if s.Maximum != nil {
		add("maximum", *s.Maximum)
	}
	if s.ExclusiveMinimum != nil {
		add("exclusiveMinimum", *s.ExclusiveMinimum)
	}
	if s.ExclusiveMaximum != nil {
		add("exclusiveMaximum", *s.ExclusiveMaximum)
	}
	if len(s.Enum) > 0 {
		add("enum", s.Enum)
	}
	return out
}
