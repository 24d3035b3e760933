package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/ngen/log"
	"github.com/ardnew/ngen/pkg"
)

// Gen renders manifests into a ninja build file.
type Gen struct {
	Source `embed:""`

	Output string `default:"-"    help:"Output file, or '-' for standard output." short:"o" type:"path"`
	Color  string `default:"auto" enum:"auto,always,never"                          help:"Highlight output written to a terminal (${enum})."`
}

// Run executes the gen command.
func (g *Gen) Run(ctx context.Context) error {
	doc, err := g.generate(ctx)
	if err != nil {
		return err
	}

	if g.Output != "-" {
		if err := writeFile(ctx, g.Output, doc); err != nil {
			return err
		}

		log.InfoContext(ctx, "wrote build file",
			slog.String("path", g.Output),
			slog.Int("statements", doc.Len()),
		)

		return nil
	}

	w := outputFrom(ctx)

	if _, err := io.WriteString(w, newHighlighter(w, g.Color).highlight(doc.Render())); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}
