package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dop251/goja"
	"github.com/spf13/afero"
	"github.com/vk/nodegrid/internal/ctxlog"
	"github.com/vk/nodegrid/internal/host"
	"github.com/vk/nodegrid/internal/jsbind"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if cfg.ListNodes {
		return a.ListNodes()
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	if err := a.RunScript(ctx, cfg.ScriptPath); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// ListNodes writes a table of the registered node types and their ports.
func (a *App) ListNodes() error {
	tw := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	for _, d := range a.registry.Descriptors() {
		fmt.Fprintf(tw, "%s\t%s\n", d.Name, d.Description)
		for _, p := range d.Inputs {
			fmt.Fprintf(tw, "  in  %s\t%s\t%s\n", p.Name, p.Type, p.Description)
		}
		for _, p := range d.Outputs {
			fmt.Fprintf(tw, "  out %s\t%s\t%s\n", p.Name, p.Type, p.Description)
		}
	}
	return tw.Flush()
}

// RunScript executes the JavaScript file at path against a fresh graph. The
// script is interrupted when ctx is done.
func (a *App) RunScript(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx).With("script", path)

	src, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	prog, err := goja.Compile(path, string(src), true)
	if err != nil {
		return fmt.Errorf("failed to compile script: %w", err)
	}

	session := host.NewSession(a.registry, nil, logger)
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("Failed to release node resources.", "error", err)
		}
	}()

	vm := goja.New()
	if err := jsbind.Install(vm, session, logger); err != nil {
		return err
	}
	if err := vm.Set("console", map[string]any{"log": a.consoleLog}); err != nil {
		return fmt.Errorf("failed to install console: %w", err)
	}

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
			logger.Debug("Script execution context canceled.")
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	logger.Info("Running script.")
	start := time.Now()
	_, err = vm.RunProgram(prog)
	close(done)
	<-stopped

	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return fmt.Errorf("script interrupted: %w", ctx.Err())
		}
		var ex *goja.Exception
		if errors.As(err, &ex) {
			return fmt.Errorf("script failed: %s", ex.Error())
		}
		return fmt.Errorf("script failed: %w", err)
	}

	logger.Info("Script finished.", "duration", time.Since(start))
	return nil
}

// consoleLog prints its arguments separated by spaces, like console.log.
func (a *App) consoleLog(call goja.FunctionCall) goja.Value {
	parts := make([]string, len(call.Arguments))
	for i, arg := range call.Arguments {
		parts[i] = arg.String()
	}
	fmt.Fprintln(a.outW, strings.Join(parts, " "))
	return goja.Undefined()
}
