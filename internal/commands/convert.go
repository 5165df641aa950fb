// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dacolabs/ruleschema"
	"github.com/dacolabs/ruleschema/internal/session"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	output string
	format string
}

func newConvertCmd() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Compile a field-rule document to JSON Schema",
		Long: `Compile a field-rule document to JSON Schema and print it. JSON Schema input
is printed unchanged. Dropped rule features are logged as warnings.`,
		Example: `  ruleschema convert user.yaml
  ruleschema convert user.yaml --format yaml --output user.schema.yaml`,
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runConvert(cmd, ctx, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the schema to a file instead of stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "Output format (json or yaml)")

	return cmd
}

func runConvert(cmd *cobra.Command, ctx *session.Context, path string, opts *convertOptions) error {
	doc, err := ctx.LoadDocument(path)
	if err != nil {
		return err
	}

	schema := doc
	if ruleschema.Detect(doc) == ruleschema.FieldRules {
		conv, err := ruleschema.Convert(doc)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, d := range conv.Diagnostics {
			ctx.Logger.Warn(d.String(), "field", d.Field, "key", d.Key, "severity", d.Severity.String())
		}
		schema = conv.Schema
	}

	var buf bytes.Buffer
	if err := writeDocument(&buf, schema, opts.format); err != nil {
		return err
	}

	if opts.output == "" {
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(ctx.Resolve(opts.output), buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.output, err)
	}
	ctx.Logger.Info("schema written", "path", opts.output)
	return nil
}
