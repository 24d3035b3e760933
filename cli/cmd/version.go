package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/ngen/pkg"
)

// Version prints the program version.
type Version struct {
	Short bool `help:"Print only the version number." short:"s"`
}

// Run executes the version command.
func (v *Version) Run(ctx context.Context) error {
	var err error

	if v.Short {
		_, err = fmt.Fprintln(outputFrom(ctx), pkg.Version())
	} else {
		_, err = fmt.Fprintf(outputFrom(ctx), "%s %s (%s)\n", pkg.Name, pkg.Version(), pkg.Description)
	}

	if err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}
