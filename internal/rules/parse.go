// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package rules

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotObject indicates the rule document itself is not an object.
var ErrNotObject = errors.New("rule document is not an object")

// ParseError reports a known rule key holding a malformed value.
type ParseError struct {
	Field string
	// Index is the position in the field's rule list, or -1 for a single rule object.
	Index int
	Key   string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("field %q: rule %d: key %q: %v", e.Field, e.Index, e.Key, e.Err)
	}
	return fmt.Sprintf("field %q: key %q: %v", e.Field, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// InvalidRuleShapeError reports a field whose value is neither a rule object
// nor a non-empty list of rule objects.
type InvalidRuleShapeError struct {
	Field string
	// Index is the offending list element, or -1 when the value itself is wrong.
	Index int
}

func (e *InvalidRuleShapeError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("field %q: rule %d is not an object", e.Field, e.Index)
	}
	return fmt.Sprintf("field %q: invalid rule format, expected an object or a non-empty array of objects", e.Field)
}

// Set maps field names to their ordered rule lists.
type Set map[string][]Rule

// Fields returns the field names in sorted order.
func (s Set) Fields() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse builds a Set from a decoded field-rule document.
// Every field is parsed; failures are joined so all bad fields are reported.
func Parse(doc any) (Set, error) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}

	set := make(Set, len(obj))
	var errs []error
	for _, field := range sortedKeys(obj) {
		list, err := parseField(field, obj[field])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		set[field] = list
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return set, nil
}

func parseField(field string, value any) ([]Rule, error) {
	switch v := value.(type) {
	case map[string]any:
		r, err := DecodeRule(v)
		if err != nil {
			return nil, withLocation(err, field, -1)
		}
		return []Rule{r}, nil
	case []any:
		if len(v) == 0 {
			return nil, &InvalidRuleShapeError{Field: field, Index: -1}
		}
		list := make([]Rule, 0, len(v))
		for i, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, &InvalidRuleShapeError{Field: field, Index: i}
			}
			r, err := DecodeRule(obj)
			if err != nil {
				return nil, withLocation(err, field, i)
			}
			list = append(list, r)
		}
		return list, nil
	default:
		return nil, &InvalidRuleShapeError{Field: field, Index: -1}
	}
}

func withLocation(err error, field string, index int) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Field = field
		pe.Index = index
		return pe
	}
	return err
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
