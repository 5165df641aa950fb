// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/dacolabs/ruleschema/internal/commands"
	"github.com/dacolabs/ruleschema/internal/session"
)

// Environment variables providing defaults for the persistent flags.
const (
	EnvConfig   = "RULESCHEMA_CONFIG"
	EnvLogLevel = "RULESCHEMA_LOG_LEVEL"
)

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, args, env lookup).
func Run(ctx context.Context, args []string, getenv func(string) string) error {
	rootCmd := commands.NewRootCmd()
	rootCmd.SilenceErrors = true
	rootCmd.SetArgs(args)

	flags := rootCmd.PersistentFlags()
	for flag, env := range map[string]string{
		session.FlagConfig:   EnvConfig,
		session.FlagLogLevel: EnvLogLevel,
	} {
		if v := getenv(env); v != "" {
			if err := flags.Set(flag, v); err != nil {
				return err
			}
		}
	}

	return rootCmd.ExecuteContext(ctx)
}
