// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package ruleschema

import (
	"encoding/json"
	"strings"

	"github.com/dacolabs/ruleschema/engine"
)

// LocatorKey is the JSON key an ErrorEntry uses for its location.
type LocatorKey string

// Locator keys.
const (
	// LocatorField locates errors by dotted field path, e.g. "user.name".
	LocatorField LocatorKey = "field"
	// LocatorInstancePath locates errors by JSON Pointer, e.g. "/user/name".
	LocatorInstancePath LocatorKey = "instancePath"
	// LocatorNone is used for errors not tied to the data, such as compile failures.
	LocatorNone LocatorKey = ""
)

// Outcome is the result of validating one data document.
type Outcome struct {
	Valid  bool         `json:"isValid"`
	Errors []ErrorEntry `json:"errors"`
}

// ErrorEntry is one validation failure.
type ErrorEntry struct {
	Message string
	Key     LocatorKey
	Locator string
}

// MarshalJSON renders the entry as {"message": ..., <Key>: <Locator>}.
// Entries with LocatorNone carry only the message.
func (e ErrorEntry) MarshalJSON() ([]byte, error) {
	m := map[string]string{"message": e.Message}
	if e.Key != LocatorNone {
		m[string(e.Key)] = e.Locator
	}
	return json.Marshal(m)
}

// Map returns the entry in the same shape as its JSON form.
func (e ErrorEntry) Map() map[string]any {
	m := map[string]any{"message": e.Message}
	if e.Key != LocatorNone {
		m[string(e.Key)] = e.Locator
	}
	return m
}

// LocatorKeyFor returns the locator key used for errors of the given format.
func LocatorKeyFor(f Format) LocatorKey {
	if f == FieldRules {
		return LocatorField
	}
	return LocatorInstancePath
}

func newOutcome(f Format, violations []engine.Violation) Outcome {
	if len(violations) == 0 {
		return Outcome{Valid: true, Errors: []ErrorEntry{}}
	}
	key := LocatorKeyFor(f)
	entries := make([]ErrorEntry, 0, len(violations))
	for _, v := range violations {
		entry := ErrorEntry{Message: v.Message, Key: key}
		if key == LocatorField {
			entry.Locator = fieldPath(v)
		} else {
			entry.Locator = instancePath(v.Location)
		}
		entries = append(entries, entry)
	}
	return Outcome{Errors: entries}
}

// fieldPath joins the location with dots; a missing required property is
// located at the property itself.
func fieldPath(v engine.Violation) string {
	tokens := v.Location
	if v.Property != "" {
		tokens = append(tokens[:len(tokens):len(tokens)], v.Property)
	}
	return strings.Join(tokens, ".")
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func instancePath(tokens []string) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(t))
	}
	return b.String()
}
