// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package rules provides the typed model and parser for field-rule documents.
//
// A field-rule document maps field names to one rule object or a list of rule
// objects, in the style of form-validation libraries:
//
//	{
//	  "username": {"type": "string", "required": true, "min": 3},
//	  "tags": [{"type": "array", "required": true}, {"min": 1, "max": 5}]
//	}
package rules

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind is the declared type of a rule.
type Kind string

// Kinds understood by the converter.
const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindInteger Kind = "integer"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindMethod  Kind = "method"
	KindRegexp  Kind = "regexp"
	KindDate    Kind = "date"
	KindEmail   Kind = "email"
	KindURL     Kind = "url"
	KindHex     Kind = "hex"
	KindAny     Kind = "any"
)

// Rule keys with a dedicated field on Rule.
const (
	KeyType           = "type"
	KeyRequired       = "required"
	KeyMin            = "min"
	KeyMax            = "max"
	KeyLen            = "len"
	KeyPattern        = "pattern"
	KeyEnum           = "enum"
	KeyMessage        = "message"
	KeyWhitespace     = "whitespace"
	KeyValidator      = "validator"
	KeyAsyncValidator = "asyncValidator"
	KeyTrigger        = "trigger"
	KeyFields         = "fields"
)

// Rule is a single validation constraint for a field.
// Pointer and nil-able fields are unset when the key is absent or null.
type Rule struct {
	Kind     *Kind
	Required *bool
	Min      any
	Max      any
	Len      any
	Pattern  *string
	Enum     []any
	Message  *string

	Whitespace     any
	Validator      any
	AsyncValidator any
	Trigger        any

	// Fields is the nested field-rule document of an object or array rule.
	Fields any

	// Extra holds every key not listed above.
	Extra map[string]any
}

// ExtraKeys returns the keys of Extra in sorted order.
func (r *Rule) ExtraKeys() []string {
	keys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DecodeRule builds a Rule from a decoded rule object.
// Unknown keys are collected into Extra. A known key holding a value of the
// wrong shape returns a *ParseError without Field or Index set; keys are
// checked in sorted order so the reported key is stable.
func DecodeRule(obj map[string]any) (Rule, error) {
	var r Rule
	for _, key := range sortedKeys(obj) {
		value := obj[key]
		if value == nil {
			continue
		}
		if err := r.set(key, value); err != nil {
			return Rule{}, &ParseError{Index: -1, Key: key, Err: err}
		}
	}
	return r, nil
}

func (r *Rule) set(key string, value any) error {
	switch key {
	case KeyType:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %s", typeName(value))
		}
		k := Kind(s)
		r.Kind = &k
	case KeyRequired:
		b, err := toBool(value)
		if err != nil {
			return err
		}
		r.Required = &b
	case KeyMin, KeyMax, KeyLen:
		if !isScalar(value) {
			return fmt.Errorf("expected number, got %s", typeName(value))
		}
		switch key {
		case KeyMin:
			r.Min = value
		case KeyMax:
			r.Max = value
		default:
			r.Len = value
		}
	case KeyPattern:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %s", typeName(value))
		}
		r.Pattern = &s
	case KeyEnum:
		values, ok := value.([]any)
		if !ok {
			return fmt.Errorf("expected array, got %s", typeName(value))
		}
		r.Enum = values
	case KeyMessage:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %s", typeName(value))
		}
		r.Message = &s
	case KeyWhitespace:
		r.Whitespace = value
	case KeyValidator:
		r.Validator = value
	case KeyAsyncValidator:
		r.AsyncValidator = value
	case KeyTrigger:
		r.Trigger = value
	case KeyFields:
		r.Fields = value
	default:
		if r.Extra == nil {
			r.Extra = make(map[string]any)
		}
		r.Extra[key] = value
	}
	return nil
}

// toBool accepts booleans and their string spellings.
func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, fmt.Errorf("expected boolean, got %q", b)
		}
		return parsed, nil
	default:
		return false, fmt.Errorf("expected boolean, got %s", typeName(v))
	}
}

// isScalar reports whether v is a number or a string.
func isScalar(v any) bool {
	switch v.(type) {
	case json.Number, string,
		float32, float64,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	if isScalar(v) {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
