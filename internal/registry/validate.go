package registry

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/vk/nodegrid/internal/ctxlog"
	"github.com/vk/nodegrid/internal/manifest"
	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/param"
)

// Validate performs a strict parity check between manifests and registered
// descriptors. Every declared node must be registered with an identical
// schema, and every registered node must be declared in some manifest.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs *multierror.Error
	declared := make(map[string]string)

	for _, m := range r.manifests {
		schemas, err := manifest.Parse(ctx, m.name, m.src)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		for _, want := range schemas {
			if other, dup := declared[want.Name]; dup {
				errs = multierror.Append(errs, fmt.Errorf("node '%s': declared in both %s and %s", want.Name, other, m.name))
				continue
			}
			declared[want.Name] = m.name

			desc, ok := r.descriptors[want.Name]
			if !ok {
				errs = multierror.Append(errs, fmt.Errorf("node '%s': declared in %s but not registered", want.Name, m.name))
				continue
			}
			for _, err := range compareSchemas(want, desc.Schema) {
				errs = multierror.Append(errs, fmt.Errorf("node '%s': %w", want.Name, err))
			}
		}
	}

	for _, name := range r.Names() {
		if _, ok := declared[name]; !ok {
			errs = multierror.Append(errs, fmt.Errorf("node '%s': registered but not declared in any manifest", name))
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}
	logger.Debug("Registry validation passed.", "nodes", len(r.descriptors), "manifests", len(r.manifests))
	return nil
}

func compareSchemas(manifestSchema, registered node.Schema) []error {
	var errs []error
	if manifestSchema.Description != registered.Description {
		errs = append(errs, fmt.Errorf("description differs from manifest"))
	}
	errs = append(errs, comparePorts("input", manifestSchema.Inputs, registered.Inputs)...)
	errs = append(errs, comparePorts("output", manifestSchema.Outputs, registered.Outputs)...)
	return errs
}

func comparePorts(kind string, want, got []param.Descriptor) []error {
	if len(want) != len(got) {
		return []error{fmt.Errorf("manifest declares %d %ss, descriptor has %d", len(want), kind, len(got))}
	}
	var errs []error
	for i := range want {
		if want[i] != got[i] {
			errs = append(errs, fmt.Errorf("%s %d: manifest declares %s %q, descriptor has %s %q",
				kind, i, want[i].Type, want[i].Name, got[i].Type, got[i].Name))
		}
	}
	return errs
}
