// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dacolabs/ruleschema/internal/config"
	"github.com/dacolabs/ruleschema/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userRules = `username:
  type: string
  required: true
  min: 3
email:
  type: email
  trigger: blur
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestDetect(t *testing.T) {
	dir := t.TempDir()
	rules := writeFile(t, dir, "rules.yaml", userRules)
	schema := writeFile(t, dir, "schema.json", `{"type": "object", "properties": {"a": {"type": "string"}}}`)

	out, _, err := execute(t, "detect", rules)
	require.NoError(t, err)
	assert.Equal(t, "field-rules\n", out)

	out, _, err = execute(t, "detect", schema, "--explain")
	require.NoError(t, err)
	assert.Contains(t, out, "json-schema (")
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	rules := writeFile(t, dir, "rules.yaml", userRules)

	out, logs, err := execute(t, "convert", rules)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"email": {"type": "string", "format": "email"},
			"username": {"type": "string", "minLength": 3}
		},
		"required": ["username"]
	}`, out)
	assert.Contains(t, logs, "trigger option not supported")
}

func TestConvert_YAMLToFile(t *testing.T) {
	dir := t.TempDir()
	rules := writeFile(t, dir, "rules.json", `{"age": {"type": "integer", "min": 18}}`)
	target := filepath.Join(dir, "out.yaml")

	_, _, err := execute(t, "convert", rules, "--format", "yaml", "--output", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "minimum: 18\n")
	assert.Contains(t, string(data), "type: integer\n")
}

func TestConvert_JSONSchemaPassesThrough(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.json", `{"type": "object", "required": ["a"]}`)

	out, _, err := execute(t, "convert", schema)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "object", "required": ["a"]}`, out)
}

func TestConvert_BadFormat(t *testing.T) {
	dir := t.TempDir()
	rules := writeFile(t, dir, "rules.yaml", userRules)

	_, _, err := execute(t, "convert", rules, "--format", "xml")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	rules := writeFile(t, dir, "rules.yaml", userRules)
	good := writeFile(t, dir, "good.json", `{"username": "alice", "email": "alice@example.com"}`)
	bad := writeFile(t, dir, "bad.json", `{"email": "alice@example.com"}`)

	out, _, err := execute(t, "check", "--schema", rules, good)
	require.NoError(t, err)
	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, true, results[0]["isValid"])

	out, _, err = execute(t, "check", "--schema", rules, good, bad)
	require.ErrorIs(t, err, ErrInvalidData)
	assert.ErrorContains(t, err, "1 of 2 documents invalid")

	results = nil
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, bad, results[1]["file"])
	assert.Equal(t, []any{map[string]any{"field": "username", "message": "missing property 'username'"}}, results[1]["errors"])
}

func TestCheck_MissingSchemaNonInteractive(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.json", `{}`)

	_, _, err := execute(t, "check", "--non-interactive", data)
	assert.ErrorContains(t, err, "--schema is required")
}

func TestCheck_MissingSchemaWithoutTerminal(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.json", `{}`)

	f, err := os.Open(data)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck
	assert.False(t, isTerminal(f))

	_, _, err = execute(t, "check", data)
	assert.ErrorContains(t, err, "--schema is required")
}

func TestCheck_MissingDataFile(t *testing.T) {
	dir := t.TempDir()
	rules := writeFile(t, dir, "rules.yaml", userRules)

	_, _, err := execute(t, "check", "--schema", rules, filepath.Join(dir, "nope.json"))
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	dir := t.TempDir()
	rules := writeFile(t, dir, "rules.yaml", userRules+`address:
  type: object
  fields:
    city:
      type: string
      required: true
`)

	out, _, err := execute(t, "describe", rules)
	require.NoError(t, err)
	assert.Contains(t, out, "address (object)")
	assert.Contains(t, out, "address.city (string) required")
	assert.Contains(t, out, "username (string) required [minLength=3]")
	assert.Contains(t, out, "field-rules")
	assert.Contains(t, out, "email")

	out, _, err = execute(t, "describe", rules, "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"minLength": 3`)

	out, _, err = execute(t, "describe", rules, "-o", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# rules\n")
	assert.Contains(t, out, "| `address.city` | string | yes | - |")
}

func TestDescribe_Draft04Schema(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "ruleschema.yaml", "version: 1\nengine:\n  draft: draft4\n")
	schema := writeFile(t, dir, "schema.json",
		`{"properties": {"n": {"type": "number", "minimum": 0, "exclusiveMinimum": true}}}`)
	data := writeFile(t, dir, "data.json", `{"n": 1}`)

	_, _, err := execute(t, "check", "--config", cfg, "--schema", schema, data)
	require.NoError(t, err)

	out, _, err := execute(t, "describe", "--config", cfg, schema)
	require.NoError(t, err)
	assert.Contains(t, out, "n (number) [exclusiveMinimum=0]")
}

func TestServe_LoadsSchemas(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "user.yaml", userRules)
	writeFile(t, dir, "order.json", `{"type": "object"}`)
	writeFile(t, dir, "README.md", "ignored")

	s, err := session.New(session.Options{Dir: dir, LogOutput: io.Discard})
	require.NoError(t, err)

	cmd := newServeCmd()
	cmd.SetContext(context.Background())

	srv, err := newServer(cmd, s, &serveOptions{schemas: "."})
	require.NoError(t, err)
	assert.Equal(t, []string{"order", "user"}, srv.Names())

	_, err = newServer(cmd, s, &serveOptions{schemas: "missing"})
	assert.ErrorContains(t, err, "failed to load schemas")
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	out, _, err := execute(t, "init", "--non-interactive", "--draft", "2020-12", "--assert-format=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialization completed")

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "2020-12", cfg.Engine.Draft)
	assert.False(t, cfg.AssertFormat())

	_, _, err = execute(t, "init", "--non-interactive")
	assert.ErrorContains(t, err, "already exists")
}

func TestInit_InvalidDraft(t *testing.T) {
	dir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	_, _, err = execute(t, "init", "--non-interactive", "--draft", "draft99")
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ruleschema version")
}

func TestInvalidLogLevel(t *testing.T) {
	dir := t.TempDir()
	rules := writeFile(t, dir, "rules.yaml", userRules)

	_, _, err := execute(t, "detect", rules, "--log-level", "loud")
	assert.Error(t, err)
}
