package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/ngen/ninja"
	"github.com/ardnew/ngen/pkg"
)

// Escape prints each argument escaped for a ninja build file.
type Escape struct {
	Path bool `help:"Escape for a path position (also escapes spaces and colons)."`

	Strings []string `arg:"" help:"Strings to escape." name:"string"`
}

// Run executes the escape command.
func (e *Escape) Run(ctx context.Context) error {
	w := outputFrom(ctx)

	for _, s := range e.Strings {
		var (
			out string
			err error
		)

		if e.Path {
			out, err = ninja.EscapePath(s), ninja.ValidatePath(s)
		} else {
			out, err = ninja.Escape(s), ninja.ValidateText(s)
		}

		if err != nil {
			return ErrEscape.
				With(slog.String("input", s), slog.Bool("path", e.Path)).
				Wrap(err)
		}

		if _, err := fmt.Fprintln(w, out); err != nil {
			return pkg.ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
