// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides configuration loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dacolabs/ruleschema"
	"github.com/dacolabs/ruleschema/internal/config"
	"github.com/dacolabs/ruleschema/internal/jschema"
)

var (
	// ErrConfigNotFound indicates an explicitly requested config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Options selects how the session is loaded.
type Options struct {
	// ConfigPath is an explicit config file. Empty means ruleschema.yaml in Dir,
	// which may be absent.
	ConfigPath string
	// Dir is the working directory. Empty means the process working directory.
	Dir string
	// LogLevel overrides the configured level when set.
	LogLevel string
	// LogOutput receives log records. Defaults to os.Stderr.
	LogOutput io.Writer
}

// Context holds the resolved configuration and logger for a command.
type Context struct {
	Config *config.Config
	Logger *slog.Logger
	// Dir is the directory relative paths are resolved against.
	Dir string
}

// Load loads the session and returns a new context.Context with it stored.
func Load(ctx context.Context, opts Options) (context.Context, error) {
	s, err := New(opts)
	if err != nil {
		return nil, err
	}
	return context.WithValue(ctx, contextKey{}, s), nil
}

// New resolves configuration and builds the logger.
func New(opts Options) (*Context, error) {
	dir := opts.Dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = cwd
	}

	cfg, err := loadConfig(dir, opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, validateErr)
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))

	return &Context{Config: cfg, Logger: logger, Dir: dir}, nil
}

func loadConfig(dir, explicit string) (*config.Config, error) {
	path := explicit
	if path == "" {
		path = filepath.Join(dir, config.FileName)
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return config.Default(), nil
		}
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// CompileOptions returns the ruleschema options described by the config.
func (c *Context) CompileOptions() []ruleschema.Option {
	return []ruleschema.Option{
		ruleschema.WithLogger(c.Logger),
		ruleschema.WithDraft(c.Config.Engine.Draft),
		ruleschema.WithFormatAssertion(c.Config.AssertFormat()),
	}
}

// Resolve returns path made absolute against the session directory.
func (c *Context) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// LoadDocument reads a YAML or JSON document.
func (c *Context) LoadDocument(path string) (any, error) {
	abs := c.Resolve(path)
	return jschema.NewLoader(os.DirFS(filepath.Dir(abs))).LoadFile(filepath.Base(abs))
}

// Compile loads the document at path and compiles it.
func (c *Context) Compile(path string) (*ruleschema.Artifact, error) {
	doc, err := c.LoadDocument(path)
	if err != nil {
		return nil, err
	}
	a, err := ruleschema.Compile(doc, c.CompileOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// From extracts the session Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if s, ok := ctx.Value(contextKey{}).(*Context); ok {
		return s
	}
	return nil
}
