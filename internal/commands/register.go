// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/dacolabs/ruleschema/internal/session"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ruleschema",
		Short: "Validate JSON documents against JSON Schema or field rules",
		Long: `ruleschema validates JSON and YAML documents against either a JSON Schema
or a field-rule document. Field rules are compiled to JSON Schema first; rule
features JSON Schema cannot express are reported as warnings.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String(session.FlagConfig, "", "Path to ruleschema.yaml (default: ./ruleschema.yaml if present)")
	rootCmd.PersistentFlags().String(session.FlagLogLevel, "", "Log level override (debug, info, warn, error)")

	rootCmd.AddCommand(
		newDetectCmd(),
		newConvertCmd(),
		newCheckCmd(),
		newDescribeCmd(),
		newServeCmd(),
		newInitCmd(),
		newVersionCmd(),
	)

	return rootCmd
}
