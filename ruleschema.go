// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package ruleschema validates JSON documents against either a JSON Schema or
// a field-rule document.
//
// Field-rule documents map field names to rule objects in the style of common
// form-validation libraries:
//
//	{
//	  "username": {"type": "string", "required": true, "min": 3},
//	  "email":    {"type": "email", "required": true}
//	}
//
// Compile detects the format of a document, compiles field rules into an
// equivalent JSON Schema, and hands the result to the validation engine.
// Rule features without a JSON Schema equivalent are logged as warnings and
// dropped. Check validates data against the compiled artifact and reports
// errors keyed by "field" for field-rule documents and by "instancePath" for
// JSON Schema documents.
//
// Basic usage:
//
//	artifact, err := ruleschema.Compile(doc)
//	if err != nil {
//	    return err
//	}
//	outcome := ruleschema.Check(artifact, data)
//	if !outcome.Valid {
//	    for _, e := range outcome.Errors {
//	        fmt.Println(e.Locator, e.Message)
//	    }
//	}
package ruleschema

import (
	"fmt"
	"log/slog"

	"github.com/dacolabs/ruleschema/internal/convert"
	"github.com/dacolabs/ruleschema/internal/detect"
	"github.com/dacolabs/ruleschema/engine"
)

// Format is the source format of a compiled document.
type Format = detect.Format

// Source formats.
const (
	JSONSchema = detect.JSONSchema
	FieldRules = detect.FieldRules
)

// Diagnostic describes a rule feature dropped during conversion.
type Diagnostic = convert.Diagnostic

// Conversion is the JSON Schema produced from a field-rule document together
// with its diagnostics.
type Conversion = convert.Outcome

// Artifact is a compiled document. It is immutable and safe for concurrent use.
type Artifact struct {
	format Format
	schema any
	engine engine.Schema
}

// Format returns the format the artifact was compiled from.
func (a *Artifact) Format() Format { return a.format }

// Schema returns the JSON Schema document the engine compiled. For field-rule
// documents this is the converted schema. Callers must not modify it.
func (a *Artifact) Schema() any { return a.schema }

// Detect classifies doc as JSON Schema or field rules.
func Detect(doc any) Format {
	return detect.Classify(doc)
}

// Convert compiles a field-rule document into JSON Schema without invoking
// the validation engine.
func Convert(doc any) (*Conversion, error) {
	doc, err := engine.Normalize(doc)
	if err != nil {
		return nil, err
	}
	return convert.Document(doc)
}

// Compile detects the format of doc, converts field rules when needed and
// compiles the resulting JSON Schema.
func Compile(doc any, opts ...Option) (*Artifact, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	doc, err = engine.Normalize(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	format := detect.Classify(doc)
	schema := doc
	if format == FieldRules {
		out, err := convert.Document(doc)
		if err != nil {
			return nil, err
		}
		logDiagnostics(cfg.logger, out.Diagnostics)
		schema = out.Schema
	}

	compiled, err := cfg.compiler.Compile(schema)
	if err != nil {
		return nil, &CompileError{Format: format, Err: err}
	}
	return &Artifact{format: format, schema: schema, engine: compiled}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(doc any, opts ...Option) *Artifact {
	a, err := Compile(doc, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Check validates data against a compiled artifact. It never fails; invalid
// data yields an Outcome with Valid false and one entry per violation. A nil
// artifact yields a single entry without a locator.
func Check(a *Artifact, data any) Outcome {
	if a == nil {
		return Outcome{Errors: []ErrorEntry{{Message: ErrNoArtifact.Error()}}}
	}
	data, err := engine.Normalize(data)
	if err != nil {
		return Outcome{Errors: []ErrorEntry{{Message: err.Error()}}}
	}
	return newOutcome(a.format, a.engine.Evaluate(data))
}

// Validate compiles doc and checks data in one call. A compile failure is
// returned as an invalid Outcome with a single entry that has no locator.
func Validate(doc, data any, opts ...Option) Outcome {
	a, err := Compile(doc, opts...)
	if err != nil {
		return Outcome{Errors: []ErrorEntry{{Message: err.Error()}}}
	}
	return Check(a, data)
}

func logDiagnostics(logger *slog.Logger, diags []Diagnostic) {
	for _, d := range diags {
		logger.Warn(d.String(),
			"field", d.Field,
			"key", d.Key,
			"severity", d.Severity.String())
	}
}
