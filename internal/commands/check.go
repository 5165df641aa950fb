// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/dacolabs/ruleschema"
	"github.com/dacolabs/ruleschema/internal/prompts"
	"github.com/dacolabs/ruleschema/internal/session"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// ErrInvalidData is returned by check when any data document fails validation.
var ErrInvalidData = errors.New("validation failed")

type checkOptions struct {
	schema         string
	concurrency    int
	nonInteractive bool
}

// checkResult is the outcome for one data file.
type checkResult struct {
	File string `json:"file"`
	ruleschema.Outcome
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check --schema FILE DATA...",
		Short: "Validate data documents against a schema or field rules",
		Long: `Compile the schema once and validate each data document against it.
Results are printed as JSON. The command fails if any document is invalid.`,
		Example: `  ruleschema check --schema user.rules.yaml alice.json bob.json

  # Prompt for the schema path
  ruleschema check alice.json`,
		Args:              cobra.MinimumNArgs(1),
		PersistentPreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			if opts.schema == "" {
				if opts.nonInteractive || !isTerminal(os.Stdin) {
					return errors.New("--schema is required")
				}
				if err := prompts.RunSchemaPathForm(&opts.schema); err != nil {
					return err
				}
			}
			return runCheck(cmd, ctx, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.schema, "schema", "s", "", "Schema or field-rule document")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", 8, "Maximum documents validated at once")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Fail instead of prompting for missing input")

	return cmd
}

func runCheck(cmd *cobra.Command, ctx *session.Context, files []string, opts *checkOptions) error {
	artifact, err := ctx.Compile(opts.schema)
	if err != nil {
		return err
	}

	results := make([]checkResult, len(files))
	g, _ := errgroup.WithContext(cmd.Context())
	if opts.concurrency > 0 {
		g.SetLimit(opts.concurrency)
	}
	for i, file := range files {
		g.Go(func() error {
			data, err := ctx.LoadDocument(file)
			if err != nil {
				return err
			}
			results[i] = checkResult{File: file, Outcome: ruleschema.Check(artifact, data)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := writeDocument(cmd.OutOrStdout(), results, "json"); err != nil {
		return err
	}

	invalid := 0
	for _, r := range results {
		if !r.Valid {
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d documents invalid", ErrInvalidData, invalid, len(files))
	}
	ctx.Logger.Info("all documents valid", "count", len(files))
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}
