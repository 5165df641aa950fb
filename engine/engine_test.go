// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package engine

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, src string) any {
	t.Helper()
	v, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
	require.NoError(t, err)
	return v
}

func compile(t *testing.T, opts Options, src string) Schema {
	t.Helper()
	c, err := New(opts)
	require.NoError(t, err)
	s, err := c.Compile(decode(t, src))
	require.NoError(t, err)
	return s
}

func TestCompile_RejectsInvalidSchemas(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)

	for _, src := range []string{`"invalid schema"`, `42`, `{"type": "nope"}`, `{"minLength": "three"}`} {
		_, err := c.Compile(decode(t, src))
		assert.Error(t, err, src)
	}
}

func TestEvaluate_Valid(t *testing.T) {
	s := compile(t, Options{}, `{"type": "object", "properties": {"name": {"type": "string", "minLength": 3}}}`)
	assert.Empty(t, s.Evaluate(decode(t, `{"name": "john"}`)))
}

func TestEvaluate_CollectsEveryViolation(t *testing.T) {
	s := compile(t, Options{AssertFormat: true}, `{
		"type": "object",
		"properties": {
			"username": {"type": "string", "minLength": 3},
			"email": {"type": "string", "format": "email"},
			"users": {"type": "array", "items": {"type": "object", "properties": {"age": {"minimum": 0}}}}
		},
		"required": ["username", "email", "id"]
	}`)

	violations := s.Evaluate(decode(t, `{"username": "jo", "email": "invalid-email", "users": [{"age": 1}, {"age": -1}]}`))

	locations := map[string]Violation{}
	for _, v := range violations {
		key := strings.Join(v.Location, "/")
		if v.Property != "" {
			key += "#" + v.Property
		}
		locations[key] = v
		assert.NotEmpty(t, v.Message)
	}
	assert.Contains(t, locations, "username")
	assert.Contains(t, locations, "email")
	assert.Contains(t, locations, "users/1/age")
	require.Contains(t, locations, "#id")
	assert.Empty(t, locations["#id"].Location)
	assert.Equal(t, "missing property 'id'", locations["#id"].Message)
}

func TestEvaluate_FormatAssertionOption(t *testing.T) {
	// From 2019-09 on, format is an annotation unless assertion is requested.
	src := `{"type": "string", "format": "email"}`
	assert.Empty(t, compile(t, Options{Draft: Draft2020}, src).Evaluate("invalid-email"))
	assert.NotEmpty(t, compile(t, Options{Draft: Draft2020, AssertFormat: true}, src).Evaluate("invalid-email"))
}

func TestParseDraft(t *testing.T) {
	for _, name := range []string{"", "draft4", "draft6", "draft7", "2019-09", "2020-12", "draft-07"} {
		_, err := ParseDraft(name)
		assert.NoError(t, err, name)
	}
	_, err := ParseDraft("draft3")
	assert.Error(t, err)

	_, err = New(Options{Draft: "draft3"})
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	plain := map[string]any{"a": []any{json.Number("1"), "x", true, nil}}
	got, err := Normalize(plain)
	require.NoError(t, err)
	assert.Equal(t, plain, got)

	got, err = Normalize(map[string]any{"min": 3, "tags": []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"min": json.Number("3"), "tags": []any{"a"}}, got)

	_, err = Normalize(map[string]any{"f": func() {}})
	assert.Error(t, err)
}
