package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/ngen/manifest"
	"github.com/ardnew/ngen/pkg"
)

// Dump prints the manifest that reproduces the generated build file.
// All conditions are resolved: the output contains only the statements
// selected for the target platform and parameters.
type Dump struct {
	Source `embed:""`

	Format string `default:"yaml" enum:"yaml,json,hcl" help:"Output format (${enum})." short:"f"`
}

// Run executes the dump command.
func (d *Dump) Run(ctx context.Context) error {
	format, err := manifest.ParseFormat(d.Format)
	if err != nil {
		return err
	}

	doc, err := d.generate(ctx)
	if err != nil {
		return err
	}

	data, err := manifest.Marshal(ctx, manifest.FromDocument(doc), format)
	if err != nil {
		return ErrDump.With(slog.String("format", d.Format)).Wrap(err)
	}

	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	if _, err := outputFrom(ctx).Write(data); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}
