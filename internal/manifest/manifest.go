// Package manifest reads node manifests: HCL files that declare the schema of
// one or more node types.
//
//	node "add" {
//	  description = "Adds two numbers."
//	  input "first" {
//	    type        = number
//	    description = "The first input value"
//	  }
//	  output "value" {
//	    type = number
//	  }
//	}
//
// Port types are bare keywords (number, string, bool, int_array,
// float_array, node, empty). The constructor forms list(number) and
// list(int) are accepted as aliases of float_array and int_array. Any other
// token is rejected, so a manifest with a typo never produces a schema.
package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"
	"github.com/vk/nodegrid/internal/ctxlog"
	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/param"
)

type fileRoot struct {
	Nodes []*nodeBlock `hcl:"node,block"`
}

type nodeBlock struct {
	Name        string       `hcl:"name,label"`
	Description string       `hcl:"description,optional"`
	Inputs      []*portBlock `hcl:"input,block"`
	Outputs     []*portBlock `hcl:"output,block"`
}

type portBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
}

// Load reads and parses the manifest file at path on fs.
func Load(ctx context.Context, fs afero.Fs, path string) ([]node.Schema, error) {
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return Parse(ctx, path, src)
}

// Parse decodes manifest source. filename is used in diagnostics only.
func Parse(ctx context.Context, filename string, src []byte) ([]node.Schema, error) {
	logger := ctxlog.FromContext(ctx).With("manifest", filename)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}

	var errs *multierror.Error
	seen := make(map[string]bool)
	schemas := make([]node.Schema, 0, len(root.Nodes))

	for _, nb := range root.Nodes {
		if seen[nb.Name] {
			errs = multierror.Append(errs, fmt.Errorf("node %q declared more than once", nb.Name))
			continue
		}
		seen[nb.Name] = true

		inputs, err := decodePorts(nb.Name, "input", nb.Inputs)
		if err != nil {
			errs = multierror.Append(errs, err)
		}
		outputs, err := decodePorts(nb.Name, "output", nb.Outputs)
		if err != nil {
			errs = multierror.Append(errs, err)
		}

		schemas = append(schemas, node.Schema{
			Name:        nb.Name,
			Description: nb.Description,
			Inputs:      inputs,
			Outputs:     outputs,
		})
		logger.Debug("Decoded node manifest.", "node", nb.Name, "inputs", len(inputs), "outputs", len(outputs))
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", filename, err)
	}
	return schemas, nil
}

func decodePorts(nodeName, kind string, blocks []*portBlock) ([]param.Descriptor, error) {
	var errs *multierror.Error
	seen := make(map[string]bool)
	ports := make([]param.Descriptor, 0, len(blocks))

	for _, pb := range blocks {
		if seen[pb.Name] {
			errs = multierror.Append(errs, fmt.Errorf("node %q: %s %q declared more than once", nodeName, kind, pb.Name))
			continue
		}
		seen[pb.Name] = true

		t, err := typeFromExpr(pb.Type)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("node %q: %s %q: %w", nodeName, kind, pb.Name, err))
			continue
		}
		ports = append(ports, param.NewDescriptor(pb.Name, pb.Description, t))
	}
	return ports, errs.ErrorOrNil()
}
