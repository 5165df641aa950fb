// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"github.com/charmbracelet/huh"
)

// Drafts offered by RunInitForm, in display order.
var Drafts = []string{"draft7", "2020-12", "2019-09", "draft6", "draft4"}

// RunInitForm runs the interactive form for the init command.
// It fills the provided pointers with user input.
func RunInitForm(draft *string, assertFormat *bool, schemasDir *string) error {
	draftOptions := make([]huh.Option[string], 0, len(Drafts))
	for _, d := range Drafts {
		draftOptions = append(draftOptions, huh.NewOption(d, d))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("JSON Schema draft").
				Options(draftOptions...).
				Value(draft),
			huh.NewConfirm().
				Title("Assert string formats (email, uri, date-time)?").
				Affirmative("Yes").
				Negative("No").
				Value(assertFormat),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Directory served by 'ruleschema serve'").
				Placeholder("./schemas").
				Validate(requiredValidator("schemas directory")).
				Value(schemasDir),
		),
	).WithTheme(Theme()).Run()
}

// RunSchemaPathForm asks for the schema or field-rule document to check against.
func RunSchemaPathForm(schemaPath *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Schema or rule file").
				Placeholder("./schemas/user.yaml").
				Validate(requiredValidator("schema path")).
				Value(schemaPath),
		),
	).WithTheme(Theme()).Run()
}
