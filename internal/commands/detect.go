// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"

	"github.com/dacolabs/ruleschema/internal/detect"
	"github.com/dacolabs/ruleschema/internal/session"
	"github.com/spf13/cobra"
)

type detectOptions struct {
	explain bool
}

func newDetectCmd() *cobra.Command {
	opts := &detectOptions{}

	cmd := &cobra.Command{
		Use:   "detect FILE",
		Short: "Report whether a document is JSON Schema or field rules",
		Example: `  ruleschema detect user.yaml

  # Show which rule decided the format
  ruleschema detect user.yaml --explain`,
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			doc, err := ctx.LoadDocument(args[0])
			if err != nil {
				return err
			}

			format, reason := detect.Explain(doc)
			out := cmd.OutOrStdout()
			if opts.explain {
				_, err = fmt.Fprintf(out, "%s (%s)\n", format, reason)
				return err
			}
			_, err = fmt.Fprintln(out, format)
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.explain, "explain", false, "Print the decision that selected the format")

	return cmd
}
