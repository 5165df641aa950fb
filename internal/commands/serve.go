// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dacolabs/ruleschema/internal/jschema"
	"github.com/dacolabs/ruleschema/internal/server"
	"github.com/dacolabs/ruleschema/internal/session"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	addr    string
	schemas string
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve validation over HTTP",
		Long: `Compile every .json, .yaml and .yml document in the schemas directory and
serve them over HTTP. Each document is addressed by its file name without
extension.

Endpoints:
  GET  /health
  GET  /schemas
  GET  /schemas/{name}
  POST /schemas/{name}/validate`,
		Example: `  ruleschema serve
  ruleschema serve --addr :9000 --schemas ./rules`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runServe(cmd, ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&opts.schemas, "schemas", "", "Schemas directory (default from config)")

	return cmd
}

func newServer(cmd *cobra.Command, ctx *session.Context, opts *serveOptions) (*server.Server, error) {
	dir := opts.schemas
	if dir == "" {
		dir = ctx.Config.Server.Schemas
	}
	docs, err := jschema.NewLoader(os.DirFS(ctx.Resolve(dir))).LoadDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load schemas from %s: %w", dir, err)
	}
	return server.New(cmd.Context(), docs, ctx.Logger, ctx.CompileOptions()...)
}

func runServe(cmd *cobra.Command, ctx *session.Context, opts *serveOptions) error {
	srv, err := newServer(cmd, ctx, opts)
	if err != nil {
		return err
	}

	addr := opts.addr
	if addr == "" {
		addr = ctx.Config.Server.Addr
	}

	sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(sigCtx, addr)
}
