// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package rules

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, src string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestParse_SingleRuleObject(t *testing.T) {
	set, err := Parse(decode(t, `{"username": {"type": "string", "required": true, "min": 3, "message": "too short"}}`))
	require.NoError(t, err)
	require.Len(t, set["username"], 1)

	r := set["username"][0]
	require.NotNil(t, r.Kind)
	assert.Equal(t, KindString, *r.Kind)
	require.NotNil(t, r.Required)
	assert.True(t, *r.Required)
	assert.Equal(t, json.Number("3"), r.Min)
	require.NotNil(t, r.Message)
	assert.Equal(t, "too short", *r.Message)
	assert.Empty(t, r.Extra)
}

func TestParse_RuleListKeepsOrder(t *testing.T) {
	set, err := Parse(decode(t, `{"tags": [{"type": "array", "required": true}, {"min": 1, "max": 5}]}`))
	require.NoError(t, err)
	require.Len(t, set["tags"], 2)

	assert.Equal(t, KindArray, *set["tags"][0].Kind)
	assert.Nil(t, set["tags"][0].Min)
	assert.Nil(t, set["tags"][1].Kind)
	assert.Equal(t, json.Number("1"), set["tags"][1].Min)
	assert.Equal(t, json.Number("5"), set["tags"][1].Max)
}

func TestParse_UnknownKeysGoToExtra(t *testing.T) {
	set, err := Parse(decode(t, `{"name": {"type": "string", "transform": "trim", "minimum": 0}}`))
	require.NoError(t, err)

	r := set["name"][0]
	assert.Equal(t, []string{"minimum", "transform"}, r.ExtraKeys())
}

func TestParse_UnsupportedMarkers(t *testing.T) {
	set, err := Parse(decode(t, `{"name": {"whitespace": true, "validator": "fn", "asyncValidator": "fn", "trigger": "blur"}}`))
	require.NoError(t, err)

	r := set["name"][0]
	assert.Equal(t, true, r.Whitespace)
	assert.Equal(t, "fn", r.Validator)
	assert.Equal(t, "fn", r.AsyncValidator)
	assert.Equal(t, "blur", r.Trigger)
}

func TestParse_NullValuesAreAbsent(t *testing.T) {
	set, err := Parse(decode(t, `{"name": {"type": null, "required": null, "min": null}}`))
	require.NoError(t, err)

	r := set["name"][0]
	assert.Nil(t, r.Kind)
	assert.Nil(t, r.Required)
	assert.Nil(t, r.Min)
}

func TestParse_RequiredBooleanLike(t *testing.T) {
	set, err := Parse(decode(t, `{"a": {"required": "true"}, "b": {"required": "false"}}`))
	require.NoError(t, err)
	assert.True(t, *set["a"][0].Required)
	assert.False(t, *set["b"][0].Required)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantShape bool
		wantField string
		wantKey   string
	}{
		{name: "required not boolean", doc: `{"age": {"required": 5}}`, wantField: "age", wantKey: "required"},
		{name: "type not string", doc: `{"age": {"type": 5}}`, wantField: "age", wantKey: "type"},
		{name: "enum not array", doc: `{"age": {"enum": "a"}}`, wantField: "age", wantKey: "enum"},
		{name: "min is object", doc: `{"age": {"min": {}}}`, wantField: "age", wantKey: "min"},
		{name: "pattern not string", doc: `{"age": [{"type": "string"}, {"pattern": 1}]}`, wantField: "age", wantKey: "pattern"},
		{name: "scalar value", doc: `{"age": "string"}`, wantShape: true, wantField: "age"},
		{name: "empty list", doc: `{"age": []}`, wantShape: true, wantField: "age"},
		{name: "list with scalar", doc: `{"age": [{"type": "string"}, 3]}`, wantShape: true, wantField: "age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(decode(t, tt.doc))
			require.Error(t, err)

			if tt.wantShape {
				var shapeErr *InvalidRuleShapeError
				require.ErrorAs(t, err, &shapeErr)
				assert.Equal(t, tt.wantField, shapeErr.Field)
				return
			}
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.wantField, parseErr.Field)
			assert.Equal(t, tt.wantKey, parseErr.Key)
		})
	}
}

func TestParse_FirstMalformedKeyIsStable(t *testing.T) {
	for i := 0; i < 100; i++ {
		_, err := Parse(decode(t, `{"a": {"required": 5, "type": 5, "pattern": 1}}`))
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		require.Equal(t, "pattern", parseErr.Key)
	}
}

func TestDecodeRule_FirstMalformedKeyIsStable(t *testing.T) {
	obj := map[string]any{"type": 5, "required": 5, "enum": "x"}
	for i := 0; i < 100; i++ {
		_, err := DecodeRule(obj)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		require.Equal(t, "enum", parseErr.Key)
	}
}

func TestParse_ReportsEveryFailedField(t *testing.T) {
	_, err := Parse(decode(t, `{"a": 1, "b": {"required": []}, "c": {"type": "string"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "a"`)
	assert.Contains(t, err.Error(), `field "b"`)
	assert.NotContains(t, err.Error(), `field "c"`)
}

func TestParse_NotObject(t *testing.T) {
	_, err := Parse(decode(t, `["a"]`))
	assert.True(t, errors.Is(err, ErrNotObject))
}

func TestSet_FieldsSorted(t *testing.T) {
	set := Set{"b": nil, "a": nil, "c": nil}
	assert.Equal(t, []string{"a", "b", "c"}, set.Fields())
}
