// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package ruleschema

import (
	"errors"
	"fmt"

	"github.com/dacolabs/ruleschema/internal/convert"
	"github.com/dacolabs/ruleschema/internal/rules"
)

// Errors returned by Compile and Convert. Use errors.As to inspect them.
type (
	// ParseError reports a rule key holding a malformed value.
	ParseError = rules.ParseError
	// InvalidRuleShapeError reports a field whose value is not a rule object
	// or a non-empty list of rule objects.
	InvalidRuleShapeError = rules.InvalidRuleShapeError
	// ConversionError reports a malformed nested fields document.
	ConversionError = convert.ConversionError
)

// ErrNotObject indicates a field-rule document that is not an object.
var ErrNotObject = rules.ErrNotObject

// ErrNoArtifact is reported by Check when called without a compiled artifact.
var ErrNoArtifact = errors.New("no compiled artifact")

// CompileError reports a schema rejected by the validation engine.
type CompileError struct {
	Format Format
	Err    error
}

func (e *CompileError) Error() string {
	if e.Format == FieldRules {
		return fmt.Sprintf("failed to compile converted schema: %v", e.Err)
	}
	return fmt.Sprintf("failed to compile schema: %v", e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }
