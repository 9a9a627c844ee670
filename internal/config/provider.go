// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"fmt"
	"log/slog"
)

type (
	// LoadOptions defines explicit configuration loading inputs.
	LoadOptions struct {
		// ConfigFilePath forces loading from a specific config file when set.
		ConfigFilePath string
		// Overrides are the explicit per-field values (highest priority).
		Overrides Overrides
		// Getenv is the environment snapshot. Nil means an empty environment.
		Getenv func(string) string
	}

	// Resolution is the outcome of Provider.Load.
	Resolution struct {
		// Config is always fully populated.
		Config Config
		// Path is the config file that was consulted (it may not exist).
		Path string
		// Warning is the non-fatal problem encountered with the file layer, if any.
		Warning error
	}

	// Provider loads configuration from explicit options.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (Resolution, error)
	}

	fileProvider struct {
		logger *slog.Logger
	}
)

// NewProvider creates a configuration provider. File warnings are logged to
// logger; a nil logger discards them.
func NewProvider(logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &fileProvider{logger: logger}
}

// Load locates and reads the config file, then resolves the configuration.
// Problems with the file never fail the load; they are reported in
// Resolution.Warning and logged. The only error is context cancellation.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (Resolution, error) {
	select {
	case <-ctx.Done():
		return Resolution{}, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	res := Resolution{Path: opts.ConfigFilePath}

	var file FileValues
	if res.Path == "" {
		path, err := FilePath(opts.Getenv)
		if err != nil {
			res.Warning = fmt.Errorf("failed to locate config file: %w", err)
		}
		res.Path = path
	}

	if res.Path != "" {
		values, err := LoadFile(res.Path)
		if err != nil {
			res.Warning = err
		}
		file = values
	}

	if res.Warning != nil {
		p.logger.Warn("ignoring config file", "path", res.Path, "error", res.Warning)
	}

	res.Config = Resolve(Sources{
		Overrides: opts.Overrides,
		Getenv:    opts.Getenv,
		File:      file,
	})
	return res, nil
}
