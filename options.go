// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package ruleschema

import (
	"log/slog"

	"github.com/dacolabs/ruleschema/engine"
)

// Option configures Compile.
type Option func(*compileConfig)

type compileConfig struct {
	logger       *slog.Logger
	draft        string
	assertFormat bool
	compiler     engine.Compiler
}

// WithLogger sets the logger that receives unsupported-feature warnings.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *compileConfig) {
		c.logger = logger
	}
}

// WithDraft sets the JSON Schema draft used for documents without $schema:
// "draft4", "draft6", "draft7" (default), "2019-09" or "2020-12".
func WithDraft(draft string) Option {
	return func(c *compileConfig) {
		c.draft = draft
	}
}

// WithFormatAssertion controls whether the format keyword is enforced.
// Defaults to true so email, url and date rules are checked.
func WithFormatAssertion(assert bool) Option {
	return func(c *compileConfig) {
		c.assertFormat = assert
	}
}

// WithCompiler replaces the validation engine.
func WithCompiler(compiler engine.Compiler) Option {
	return func(c *compileConfig) {
		c.compiler = compiler
	}
}

func newConfig(opts []Option) (*compileConfig, error) {
	cfg := &compileConfig{
		draft:        engine.Draft7,
		assertFormat: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.compiler == nil {
		c, err := engine.New(engine.Options{Draft: cfg.draft, AssertFormat: cfg.assertFormat})
		if err != nil {
			return nil, err
		}
		cfg.compiler = c
	}
	return cfg, nil
}
