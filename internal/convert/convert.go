// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package convert compiles field-rule documents into JSON Schema documents.
//
// Each field's rule list is folded left to right into one schema fragment.
// Rule features with no JSON Schema equivalent are dropped and reported as
// diagnostics; they never fail the conversion.
package convert

import (
	"fmt"

	"github.com/dacolabs/ruleschema/internal/rules"
)

// Outcome is the result of one conversion.
type Outcome struct {
	// Schema is a JSON Schema document built from map[string]any, []any and scalars.
	Schema map[string]any
	// Diagnostics lists dropped rule features in field order.
	Diagnostics []Diagnostic
}

// ConversionError reports a nested fields document that could not be parsed.
type ConversionError struct {
	// Path is the dotted path of the field owning the nested document.
	Path string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("field %q: invalid nested fields: %v", e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Document parses and converts a decoded field-rule document.
func Document(doc any) (*Outcome, error) {
	set, err := rules.Parse(doc)
	if err != nil {
		return nil, err
	}
	return Convert(set)
}

// Convert compiles a parsed rule set into a JSON Schema object schema.
func Convert(set rules.Set) (*Outcome, error) {
	return convertSet(set, "")
}

func convertSet(set rules.Set, prefix string) (*Outcome, error) {
	properties := make(map[string]any, len(set))
	var required []any
	var diags []Diagnostic

	for _, name := range set.Fields() {
		f, err := foldField(joinPath(prefix, name), set[name])
		if err != nil {
			return nil, err
		}
		properties[name] = f.schema
		if f.required {
			required = append(required, name)
		}
		diags = append(diags, f.diags...)
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return &Outcome{Schema: schema, Diagnostics: diags}, nil
}

type field struct {
	path     string
	schema   map[string]any
	required bool
	typed    bool
	diags    []Diagnostic
}

func foldField(path string, list []rules.Rule) (*field, error) {
	f := &field{path: path, schema: make(map[string]any)}
	for i := range list {
		if err := f.apply(&list[i]); err != nil {
			return nil, err
		}
	}
	if _, ok := f.schema["type"]; !ok && f.typed {
		f.schema["type"] = "string"
	}
	return f, nil
}

func (f *field) apply(r *rules.Rule) error {
	if r.Kind != nil {
		f.applyKind(*r.Kind)
	}
	if r.Fields != nil {
		if err := f.applyFields(r); err != nil {
			return err
		}
	}
	if r.Required != nil && *r.Required {
		f.required = true
	}
	if r.Min != nil {
		f.schema[f.bound(true)] = r.Min
	}
	if r.Max != nil {
		f.schema[f.bound(false)] = r.Max
	}
	if r.Len != nil {
		switch f.resolvedType() {
		case "string":
			f.schema["minLength"] = r.Len
			f.schema["maxLength"] = r.Len
		case "array":
			f.schema["minItems"] = r.Len
			f.schema["maxItems"] = r.Len
		default:
			f.report(rules.KeyLen, SeverityUnsupported, "len rule only supported for string and array types")
		}
	}
	if r.Pattern != nil {
		f.schema["pattern"] = *r.Pattern
	}
	if r.Enum != nil {
		f.schema["enum"] = r.Enum
	}
	f.reportUnsupported(r)
	return nil
}

func (f *field) applyKind(kind rules.Kind) {
	if kind != rules.KindAny {
		f.typed = true
	}
	switch kind {
	case rules.KindString, rules.KindNumber, rules.KindInteger, rules.KindBoolean,
		rules.KindObject, rules.KindArray:
		f.schema["type"] = string(kind)
	case rules.KindMethod:
		f.schema["type"] = "object"
		f.schema["instanceof"] = "Function"
	case rules.KindRegexp:
		f.schema["type"] = "string"
	case rules.KindDate:
		f.schema["type"] = "string"
		f.schema["format"] = "date-time"
	case rules.KindEmail:
		f.schema["type"] = "string"
		f.schema["format"] = "email"
	case rules.KindURL:
		f.schema["type"] = "string"
		f.schema["format"] = "uri"
	case rules.KindHex:
		f.schema["type"] = "string"
		f.schema["pattern"] = "^[0-9a-fA-F]+$"
	case rules.KindAny:
	default:
		f.report(rules.KeyType, SeverityUnsupported, fmt.Sprintf("unsupported type '%s'", kind))
	}
}

// applyFields recurses into a nested fields document. The rule's own kind
// decides the shape; a rule without a kind uses the type resolved so far.
func (f *field) applyFields(r *rules.Rule) error {
	kind := rules.Kind(f.resolvedType())
	if r.Kind != nil {
		kind = *r.Kind
	}
	switch kind {
	case rules.KindObject:
		out, err := f.nested(r.Fields, f.path)
		if err != nil {
			return err
		}
		f.schema["properties"] = out.Schema["properties"]
		if req, ok := out.Schema["required"]; ok {
			f.schema["required"] = req
		} else {
			delete(f.schema, "required")
		}
	case rules.KindArray:
		out, err := f.nested(r.Fields, f.path+"[]")
		if err != nil {
			return err
		}
		f.schema["items"] = out.Schema
	default:
		f.report(rules.KeyFields, SeverityUnsupported, "fields rule only supported for object and array types")
	}
	return nil
}

// nested converts a fields sub-document. Its diagnostics are appended to f.
func (f *field) nested(doc any, prefix string) (*Outcome, error) {
	set, err := rules.Parse(doc)
	if err != nil {
		return nil, &ConversionError{Path: f.path, Err: err}
	}
	out, err := convertSet(set, prefix)
	if err != nil {
		return nil, err
	}
	f.diags = append(f.diags, out.Diagnostics...)
	return out, nil
}

func (f *field) resolvedType() string {
	t, _ := f.schema["type"].(string)
	return t
}

// bound returns the schema keyword for min (lower=true) or max given the
// type resolved so far.
func (f *field) bound(lower bool) string {
	switch f.resolvedType() {
	case "string":
		if lower {
			return "minLength"
		}
		return "maxLength"
	case "array":
		if lower {
			return "minItems"
		}
		return "maxItems"
	default:
		if lower {
			return "minimum"
		}
		return "maximum"
	}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
