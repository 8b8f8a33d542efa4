// Package schemagen turns node manifests into Go source that builds each
// node's schema. It backs the schemagen command, which modules run through
// go:generate so that a manifest error stops the build instead of surfacing
// at runtime.
package schemagen

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/vk/nodegrid/internal/ctxlog"
	"github.com/vk/nodegrid/internal/manifest"
	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/param"
)

const (
	nodeImport  = "github.com/vk/nodegrid/internal/node"
	paramImport = "github.com/vk/nodegrid/internal/param"
)

var nodeNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Generator writes schema functions for one package.
type Generator struct {
	buf    bytes.Buffer
	indent int
}

// GenerateFile loads the manifest at path on fs and returns formatted Go
// source for package pkg.
func GenerateFile(ctx context.Context, fs afero.Fs, path, pkg string) ([]byte, error) {
	schemas, err := manifest.Load(ctx, fs, path)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Generating schema source.", "manifest", path, "nodes", len(schemas))
	return Generate(filepath.Base(path), pkg, schemas)
}

// Generate returns formatted Go source declaring one <name>Schema function per
// schema. source names the manifest in the generated header.
func Generate(source, pkg string, schemas []node.Schema) ([]byte, error) {
	g := &Generator{}

	g.writeLine("// Code generated by schemagen from %s. DO NOT EDIT.", source)
	g.writeLine("")
	g.writeLine("package %s", pkg)
	g.writeLine("")
	g.writeLine("import (")
	g.indent++
	g.writeLine("%q", nodeImport)
	g.writeLine("%q", paramImport)
	g.indent--
	g.writeLine(")")

	for _, s := range schemas {
		if err := g.generateSchema(s); err != nil {
			return nil, fmt.Errorf("failed to generate schema for node %q: %w", s.Name, err)
		}
	}

	formatted, err := format.Source(g.buf.Bytes())
	if err != nil {
		return g.buf.Bytes(), fmt.Errorf("failed to format code: %w", err)
	}
	return formatted, nil
}

func (g *Generator) generateSchema(s node.Schema) error {
	if !nodeNameRegex.MatchString(s.Name) {
		return fmt.Errorf("node name must match %s", nodeNameRegex)
	}
	fn := FuncName(s.Name)

	g.writeLine("")
	g.writeLine("// %s returns the schema of the %q node.", fn, s.Name)
	g.writeLine("func %s() node.Schema {", fn)
	g.indent++
	g.writeLine("return node.Schema{")
	g.indent++
	g.writeLine("Name: %s,", strconv.Quote(s.Name))
	g.writeLine("Description: %s,", strconv.Quote(s.Description))
	if err := g.generatePorts("Inputs", s.Inputs); err != nil {
		return err
	}
	if err := g.generatePorts("Outputs", s.Outputs); err != nil {
		return err
	}
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
	return nil
}

func (g *Generator) generatePorts(field string, ports []param.Descriptor) error {
	if len(ports) == 0 {
		g.writeLine("%s: []param.Descriptor{},", field)
		return nil
	}
	g.writeLine("%s: []param.Descriptor{", field)
	g.indent++
	for _, p := range ports {
		if !p.Type.Valid() {
			return fmt.Errorf("port %q has invalid type %s", p.Name, p.Type)
		}
		g.writeLine("param.NewDescriptor(%s, %s, param.%s),", strconv.Quote(p.Name), strconv.Quote(p.Description), p.Type.GoName())
	}
	g.indent--
	g.writeLine("},")
	return nil
}

// FuncName returns the generated function name for a node, e.g.
// "format_number" becomes "formatNumberSchema".
func FuncName(nodeName string) string {
	parts := strings.Split(nodeName, "_")
	var sb strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 {
			sb.WriteString(p)
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	sb.WriteString("Schema")
	return sb.String()
}

func (g *Generator) write(tmpl string, args ...any) {
	fmt.Fprintf(&g.buf, tmpl, args...)
}

func (g *Generator) writeLine(tmpl string, args ...any) {
	g.write(strings.Repeat("\t", g.indent)+tmpl+"\n", args...)
}
