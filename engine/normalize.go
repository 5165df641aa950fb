// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package engine

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Normalize returns v as a plain JSON value tree: map[string]any, []any,
// string, bool, nil and json.Number. Values that already have that shape are
// returned as is; anything else (Go ints, typed slices, structs) goes through
// a JSON round trip.
func Normalize(v any) (any, error) {
	if isPlain(v) {
		return v, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("value is not representable as JSON: %w", err)
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}

func isPlain(v any) bool {
	switch t := v.(type) {
	case nil, bool, string, json.Number:
		return true
	case map[string]any:
		for _, e := range t {
			if !isPlain(e) {
				return false
			}
		}
		return true
	case []any:
		for _, e := range t {
			if !isPlain(e) {
				return false
			}
		}
		return true
	}
	return false
}
