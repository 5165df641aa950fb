// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dacolabs/ruleschema/internal/config"
	"github.com/dacolabs/ruleschema/internal/prompts"
	"github.com/spf13/cobra"
)

type initOptions struct {
	draft          string
	assertFormat   bool
	schemas        string
	nonInteractive bool
}

func newInitCmd() *cobra.Command {
	defaults := config.Default()
	opts := &initOptions{
		draft:        defaults.Engine.Draft,
		assertFormat: defaults.AssertFormat(),
		schemas:      defaults.Server.Schemas,
	}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a ruleschema.yaml configuration file",
		Example: `  # Interactive mode
  ruleschema init

  # Non-interactive
  ruleschema init --draft 2020-12 --non-interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.draft, "draft", "d", opts.draft, "JSON Schema draft (draft4, draft6, draft7, 2019-09, 2020-12)")
	cmd.Flags().BoolVar(&opts.assertFormat, "assert-format", opts.assertFormat, "Treat format keywords as assertions")
	cmd.Flags().StringVar(&opts.schemas, "schemas", opts.schemas, "Directory served by 'ruleschema serve'")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfgPath := filepath.Join(cwd, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return errors.New(config.FileName + " already exists; project already initialized")
	}

	if !opts.nonInteractive {
		if err := prompts.RunInitForm(&opts.draft, &opts.assertFormat, &opts.schemas); err != nil {
			return err
		}
	}

	cfg := config.Default()
	cfg.Engine.Draft = opts.draft
	cfg.Engine.AssertFormat = &opts.assertFormat
	cfg.Server.Schemas = opts.schemas

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Draft", Value: cfg.Engine.Draft},
		{Label: "Schemas", Value: cfg.Server.Schemas},
	}, "Initialization completed")
	return nil
}
