// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukex/flowalert/pkg/composer"
	"github.com/dukex/flowalert/pkg/registry"
)

// NewRegistry builds a registry with the native default composer and every
// composer plugin found under pluginsPath.
func NewRegistry(ctx context.Context, log *slog.Logger, pluginsPath string, opts ...composer.Option) (*registry.Registry, error) {
	reg := registry.NewRegistry(log, composer.NewDefault(opts...))

	if pluginsPath == "" {
		return reg, nil
	}

	plugins, err := reg.LoadComposerPlugins(ctx, pluginsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load composer plugins: %w", err)
	}

	for _, plugin := range plugins {
		reg.Register(plugin.Name, plugin.Composer)
	}

	return reg, nil
}
