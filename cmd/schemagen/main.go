// Command schemagen generates node schema functions from an HCL manifest.
//
// Modules invoke it through go:generate:
//
//	//go:generate go run ../../cmd/schemagen -manifest nodes.hcl -package math -out zz_generated_schema.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/vk/nodegrid/internal/ctxlog"
	"github.com/vk/nodegrid/internal/schemagen"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	if err := run(ctx, os.Args[1:], os.Stderr, afero.NewOsFs()); err != nil {
		fmt.Fprintln(os.Stderr, "schemagen:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, errW io.Writer, fs afero.Fs) error {
	flagSet := flag.NewFlagSet("schemagen", flag.ContinueOnError)
	flagSet.SetOutput(errW)
	manifestPath := flagSet.String("manifest", "nodes.hcl", "Path to the node manifest.")
	pkg := flagSet.String("package", os.Getenv("GOPACKAGE"), "Package name of the generated file.")
	outPath := flagSet.String("out", "zz_generated_schema.go", "Output file.")

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if *pkg == "" {
		return errors.New("-package is required outside go:generate")
	}

	src, err := schemagen.GenerateFile(ctx, fs, *manifestPath, *pkg)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fs, *outPath, src, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *outPath, err)
	}
	ctxlog.FromContext(ctx).Info("Schema source written.", "manifest", *manifestPath, "out", *outPath)
	return nil
}
