package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/ngen/log"
	"github.com/ardnew/ngen/manifest"
	"github.com/ardnew/ngen/ninja"
	"github.com/ardnew/ngen/pkg"
)

// Source holds the flags shared by every command that reads manifests.
type Source struct {
	Params   []string `help:"Set a condition parameter."                         placeholder:"KEY=VALUE" sep:"none" short:"D"`
	OS       string   `help:"Target operating system (default: host)."           name:"os"               placeholder:"GOOS"`
	Arch     string   `help:"Target architecture (default: host)."                                       placeholder:"GOARCH"`
	Grouping bool     `help:"Render consecutive statements of one kind as a block."`

	Manifests []string `arg:"" help:"Manifest files (.yaml, .yml, .json, .hcl)." name:"manifest" type:"existingfile"`
}

// params parses the -D flags into a map. Later keys override earlier ones.
func (s *Source) params() (map[string]string, error) {
	m := make(map[string]string, len(s.Params))

	for _, kv := range s.Params {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, pkg.ErrInvalidParam.Wrapf("%q is not of the form KEY=VALUE", kv)
		}

		m[strings.TrimSpace(k)] = v
	}

	return m, nil
}

func (s *Source) loader() (*manifest.Loader, error) {
	params, err := s.params()
	if err != nil {
		return nil, err
	}

	return manifest.NewLoader(
		manifest.WithParams(params),
		manifest.WithPlatform(s.OS, s.Arch),
	), nil
}

// generate loads the manifests and renders them into a new document.
func (s *Source) generate(ctx context.Context) (*ninja.Document, error) {
	l, err := s.loader()
	if err != nil {
		return nil, err
	}

	var opts []ninja.Option
	if s.Grouping {
		opts = append(opts, ninja.WithGrouping())
	}

	doc := ninja.New(opts...)

	if err := l.Generate(ctx, doc, s.Manifests...); err != nil {
		return nil, ErrGenerate.
			With(slog.Any("manifests", s.Manifests)).
			Wrap(err)
	}

	log.DebugContext(ctx, "generated document",
		slog.Int("statements", doc.Len()),
		slog.String("platform", l.Env().Platform()),
		slog.String("arch", l.Env().Arch()),
	)

	return doc, nil
}

// writeFile replaces path with the rendered document. The file is written
// to a temporary sibling first and renamed into place, so readers never
// see a partial build file.
func writeFile(ctx context.Context, path string, doc *ninja.Document) (err error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = doc.Format(ctx, tmp); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	if err = tmp.Chmod(0o644); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	if err = tmp.Close(); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}
