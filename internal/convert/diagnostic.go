// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package convert

import (
	"fmt"

	"github.com/dacolabs/ruleschema/internal/rules"
)

// Severity classifies a dropped rule feature.
type Severity int

const (
	// SeverityUnsupported marks a recognized rule feature with no JSON Schema equivalent.
	SeverityUnsupported Severity = iota
	// SeverityUnknown marks a key the converter does not recognize.
	SeverityUnknown
)

func (s Severity) String() string {
	if s == SeverityUnknown {
		return "unknown"
	}
	return "unsupported"
}

// Diagnostic describes one rule feature dropped during conversion.
type Diagnostic struct {
	// Field is the dotted path of the field; array items appear as "name[]".
	Field    string
	Key      string
	Severity Severity
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("Field '%s': %s", d.Field, d.Message)
}

// unsupportedKeys is the closed set of recognized rule keys that cannot be
// expressed in JSON Schema, mapped to their diagnostic text.
var unsupportedKeys = map[string]string{
	rules.KeyWhitespace:     "whitespace rule not supported in JSON Schema",
	rules.KeyValidator:      "validator function not supported",
	rules.KeyAsyncValidator: "asyncValidator function not supported",
	rules.KeyTrigger:        "trigger option not supported",
	"transform":             "transform function not supported",
}

// IsUnsupportedKey reports whether key is a recognized but unsupported rule key.
func IsUnsupportedKey(key string) bool {
	_, ok := unsupportedKeys[key]
	return ok
}

func (f *field) report(key string, sev Severity, msg string) {
	f.diags = append(f.diags, Diagnostic{Field: f.path, Key: key, Severity: sev, Message: msg})
}

func (f *field) reportUnsupported(r *rules.Rule) {
	for _, m := range []struct {
		key   string
		value any
	}{
		{rules.KeyWhitespace, r.Whitespace},
		{rules.KeyValidator, r.Validator},
		{rules.KeyAsyncValidator, r.AsyncValidator},
		{rules.KeyTrigger, r.Trigger},
	} {
		if m.value != nil {
			f.report(m.key, SeverityUnsupported, unsupportedKeys[m.key])
		}
	}

	for _, key := range r.ExtraKeys() {
		if msg, ok := unsupportedKeys[key]; ok {
			f.report(key, SeverityUnsupported, msg)
			continue
		}
		f.report(key, SeverityUnknown, fmt.Sprintf("unsupported rule '%s'", key))
	}
}
