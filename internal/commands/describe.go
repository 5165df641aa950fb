// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dacolabs/ruleschema"
	"github.com/dacolabs/ruleschema/internal/jschema"
	"github.com/dacolabs/ruleschema/internal/prompts"
	"github.com/dacolabs/ruleschema/internal/session"
	"github.com/spf13/cobra"
)

type describeOptions struct {
	output string // output format: text, json, yaml
}

func newDescribeCmd() *cobra.Command {
	opts := &describeOptions{}

	cmd := &cobra.Command{
		Use:   "describe FILE",
		Short: "Show the effective JSON Schema of a document",
		Long:  `Compile a schema or field-rule document and display the property tree of the JSON Schema that validation uses.`,
		Example: `  # Show the property tree
  ruleschema describe user.yaml

  # Show the effective schema as YAML
  ruleschema describe user.yaml -o yaml

  # Render a markdown table for documentation
  ruleschema describe user.yaml -o markdown`,
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			artifact, err := ctx.Compile(args[0])
			if err != nil {
				return err
			}
			return runDescribe(cmd.OutOrStdout(), documentName(args[0]), artifact, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "Output format (text, markdown, json, yaml)")

	return cmd
}

func runDescribe(w io.Writer, name string, artifact *ruleschema.Artifact, opts *describeOptions) error {
	switch opts.output {
	case "text", "markdown":
	default:
		return writeDocument(w, artifact.Schema(), opts.output)
	}

	schema, err := jschema.Typed(artifact.Schema())
	if err != nil {
		return err
	}

	if opts.output == "markdown" {
		md, err := jschema.Markdown(name, artifact.Format().String(), schema)
		if err != nil {
			return err
		}
		_, err = w.Write(md)
		return err
	}

	_, _ = fmt.Fprintln(w, "Properties:")
	for n := range jschema.Walk(schema) {
		line := fmt.Sprintf("  %s%s", n.Indent(), n.Path)
		if t := jschema.TypeOf(n.Schema); t != "" {
			line += " (" + t + ")"
		}
		if n.Required {
			line += " required"
		}
		if c := jschema.Constraints(n.Schema); len(c) > 0 {
			line += " [" + strings.Join(c, ", ") + "]"
		}
		_, _ = fmt.Fprintln(w, line)
	}

	total, required := jschema.Count(schema)
	formats := jschema.Formats(schema)
	formatList := "(none)"
	if len(formats) > 0 {
		formatList = strings.Join(formats, ", ")
	}

	prompts.PrintResult(w, []prompts.ResultField{
		{Label: "Source format", Value: artifact.Format().String()},
		{Label: "Properties", Value: strconv.Itoa(total)},
		{Label: "Required", Value: strconv.Itoa(required)},
		{Label: "String formats", Value: formatList},
	}, "")
	return nil
}

// documentName returns the file name of path without its extension.
func documentName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
