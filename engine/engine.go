// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package engine is the JSON Schema validation engine used by ruleschema.
//
// The facade depends only on Compiler and Schema; the default implementation
// wraps github.com/santhosh-tekuri/jsonschema/v6. Other engines plug in
// through ruleschema.WithCompiler by implementing both interfaces.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Violation is one failed assertion found while evaluating an instance.
type Violation struct {
	// Message is a human readable description of the failure.
	Message string
	// Location is the path of the failing instance, one element per token.
	Location []string
	// Property is set for a missing required property; Location then points
	// at the object that lacks it.
	Property string
}

// Schema is a compiled schema.
// Implementations must be safe for concurrent Evaluate calls.
type Schema interface {
	Evaluate(instance any) []Violation
}

// Compiler compiles JSON Schema documents.
type Compiler interface {
	Compile(doc any) (Schema, error)
}

// Draft names accepted by Options.Draft.
const (
	Draft4    = "draft4"
	Draft6    = "draft6"
	Draft7    = "draft7"
	Draft2019 = "2019-09"
	Draft2020 = "2020-12"
)

// Options configures the default compiler.
type Options struct {
	// Draft is used for documents without $schema. Defaults to draft7.
	Draft string
	// AssertFormat makes the format keyword an assertion instead of an annotation.
	AssertFormat bool
}

// ParseDraft maps a draft name to the engine draft.
func ParseDraft(name string) (*jsonschema.Draft, error) {
	switch strings.ToLower(name) {
	case "", Draft7, "draft-07", "7":
		return jsonschema.Draft7, nil
	case Draft4, "draft-04", "4":
		return jsonschema.Draft4, nil
	case Draft6, "draft-06", "6":
		return jsonschema.Draft6, nil
	case Draft2019, "draft2019-09", "2019":
		return jsonschema.Draft2019, nil
	case Draft2020, "draft2020-12", "2020":
		return jsonschema.Draft2020, nil
	default:
		return nil, fmt.Errorf("unknown draft %q", name)
	}
}

type compiler struct {
	draft        *jsonschema.Draft
	assertFormat bool
}

// New returns the default Compiler.
func New(opts Options) (Compiler, error) {
	draft, err := ParseDraft(opts.Draft)
	if err != nil {
		return nil, err
	}
	return &compiler{draft: draft, assertFormat: opts.AssertFormat}, nil
}

// resourceURL names the in-memory document inside a compile call.
const resourceURL = "mem://ruleschema/schema.json"

func (c *compiler) Compile(doc any) (Schema, error) {
	// A fresh jsonschema.Compiler per call keeps compilations independent.
	jc := jsonschema.NewCompiler()
	jc.DefaultDraft(c.draft)
	if c.assertFormat {
		jc.AssertFormat()
	}
	if err := jc.AddResource(resourceURL, doc); err != nil {
		return nil, err
	}
	sch, err := jc.Compile(resourceURL)
	if err != nil {
		return nil, err
	}
	return &schema{sch: sch}, nil
}

type schema struct {
	sch *jsonschema.Schema
}

var printer = message.NewPrinter(language.English)

func (s *schema) Evaluate(instance any) []Violation {
	err := s.sch.Validate(instance)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []Violation{{Message: err.Error()}}
	}
	var out []Violation
	collect(verr, &out)
	return out
}

// collect flattens the leaves of a validation error tree.
func collect(e *jsonschema.ValidationError, out *[]Violation) {
	if len(e.Causes) > 0 {
		for _, c := range e.Causes {
			collect(c, out)
		}
		return
	}

	msg := e.ErrorKind.LocalizedString(printer)
	if req, ok := e.ErrorKind.(*kind.Required); ok {
		for _, name := range req.Missing {
			*out = append(*out, Violation{
				Message:  fmt.Sprintf("missing property '%s'", name),
				Location: e.InstanceLocation,
				Property: name,
			})
		}
		return
	}
	*out = append(*out, Violation{Message: msg, Location: e.InstanceLocation})
}
