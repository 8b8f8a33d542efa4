package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/vk/nodegrid/internal/ctxlog"
	"github.com/vk/nodegrid/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	fs       afero.Fs
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registry. Scripts
// are read from fs and file nodes write to it; a nil fs selects the OS
// filesystem. Without modules the core modules are registered.
//
// NewApp panics when the registered nodes disagree with their manifests,
// since that is a build defect rather than a user error.
func NewApp(outW io.Writer, cfg *Config, fs afero.Fs, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if fs == nil {
		fs = afero.NewOsFs()
	}

	reg := registry.New(logger)
	if len(modules) == 0 {
		modules = coreModules(fs)
	}
	reg.RegisterModules(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules))

	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		fs:       fs,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
