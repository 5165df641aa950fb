// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package detect classifies a decoded document as a JSON Schema or a
// field-rule document.
//
// Classification is a heuristic evaluated as an ordered decision list. The
// first decision that returns a verdict wins; if none does, the document is a
// JSON Schema. JSON-Schema-shaped signals are always checked before field-rule
// signals.
package detect

import "sort"

// Format is the source format of a schema-like document.
type Format int

const (
	// JSONSchema is a native JSON Schema document.
	JSONSchema Format = iota
	// FieldRules is a document mapping field names to rule objects.
	FieldRules
)

func (f Format) String() string {
	switch f {
	case FieldRules:
		return "field-rules"
	default:
		return "json-schema"
	}
}

// Decision names, in evaluation order.
const (
	DecisionNotObject     = "not-object"
	DecisionContainerKeys = "container-keys"
	DecisionTypedSchema   = "typed-schema"
	DecisionRuleValues    = "rule-values"
	DecisionDefault       = "default"
)

type decision struct {
	name   string
	decide func(doc any) (Format, bool)
}

var decisions = []decision{
	{DecisionNotObject, notObject},
	{DecisionContainerKeys, containerKeys},
	{DecisionTypedSchema, typedSchema},
	{DecisionRuleValues, ruleValues},
}

// Classify returns the format of doc. It never fails.
func Classify(doc any) Format {
	f, _ := Explain(doc)
	return f
}

// Explain returns the format of doc and the name of the decision that chose it.
func Explain(doc any) (Format, string) {
	for _, d := range decisions {
		if f, ok := d.decide(doc); ok {
			return f, d.name
		}
	}
	return JSONSchema, DecisionDefault
}

// Top-level keys that only JSON Schema documents carry.
var schemaContainerKeys = []string{
	"properties", "items", "definitions", "additionalProperties", "patternProperties",
	"$schema", "$id", "$ref", "$defs", "allOf", "anyOf", "oneOf",
}

var schemaTypeNames = map[string]bool{
	"object": true, "array": true, "string": true, "number": true,
	"integer": true, "boolean": true, "null": true,
}

// Keywords that appear in JSON Schema fragments but never in rule objects.
var schemaOnlyKeywords = []string{
	"minLength", "maxLength", "minItems", "maxItems", "minimum", "maximum",
	"exclusiveMinimum", "exclusiveMaximum", "multipleOf", "format",
	"uniqueItems", "minProperties", "maxProperties", "properties", "items",
	"additionalProperties", "patternProperties", "const", "$ref",
	"allOf", "anyOf", "oneOf", "not", "contains",
}

// Keywords of rule objects.
var ruleKeywords = []string{
	"type", "required", "min", "max", "len", "pattern", "enum",
	"whitespace", "fields", "message",
	"validator", "asyncValidator", "trigger", "transform",
}

func notObject(doc any) (Format, bool) {
	if _, ok := doc.(map[string]any); !ok {
		return JSONSchema, true
	}
	return 0, false
}

func containerKeys(doc any) (Format, bool) {
	if hasAny(doc.(map[string]any), schemaContainerKeys) {
		return JSONSchema, true
	}
	return 0, false
}

func typedSchema(doc any) (Format, bool) {
	obj := doc.(map[string]any)
	t, ok := obj["type"].(string)
	if !ok || !schemaTypeNames[t] {
		return 0, false
	}
	if _, ok := obj["properties"]; ok {
		return JSONSchema, true
	}
	if _, ok := obj["items"]; ok {
		return JSONSchema, true
	}
	return 0, false
}

func ruleValues(doc any) (Format, bool) {
	obj := doc.(map[string]any)
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		candidate, ok := firstCandidate(obj[k])
		if ok && IsRuleObject(candidate) {
			return FieldRules, true
		}
	}
	return 0, false
}

// firstCandidate returns the object to test for a top-level value: the value
// itself, or the first element of a non-empty array of objects.
func firstCandidate(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case []any:
		if len(t) == 0 {
			return nil, false
		}
		obj, ok := t[0].(map[string]any)
		return obj, ok
	}
	return nil, false
}

// IsRuleObject reports whether obj looks like a rule object. Any JSON-Schema-only
// keyword rules it out; otherwise any rule keyword, or simply being non-empty,
// rules it in.
func IsRuleObject(obj map[string]any) bool {
	if hasAny(obj, schemaOnlyKeywords) {
		return false
	}
	if hasAny(obj, ruleKeywords) {
		return true
	}
	return len(obj) > 0
}

func hasAny(obj map[string]any, keys []string) bool {
	for _, k := range keys {
		if _, ok := obj[k]; ok {
			return true
		}
	}
	return false
}
