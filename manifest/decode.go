package manifest

import (
	"context"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/ngen/log"
	"github.com/ardnew/ngen/pkg"
)

// Decode decodes a manifest encoded in format. Path is used in error
// messages and recorded in the result.
func (l *Loader) Decode(ctx context.Context, format Format, path string, data []byte) (*Manifest, error) {
	var (
		m   *Manifest
		err error
	)

	switch format {
	case FormatYAML, FormatJSON:
		m, err = decodeYAML(ctx, path, data)
	case FormatHCL:
		m, err = decodeHCL(l.env, path, data)
	default:
		return nil, pkg.ErrInvalidFormat.Wrapf("%v", format)
	}

	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "decoded manifest",
		slog.String("path", path),
		slog.Any("format", format),
		slog.Int("vars", len(m.Vars)),
		slog.Int("statements", len(m.Statements)),
	)

	return m, nil
}

// ReadFile reads and decodes the manifest at path. The format is chosen by
// the file extension.
func (l *Loader) ReadFile(ctx context.Context, path string) (*Manifest, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkg.ErrReadManifest.Wrap(err)
	}

	return l.Decode(ctx, format, path, data)
}

// decodeYAML decodes YAML or JSON. Unknown fields are rejected.
func decodeYAML(ctx context.Context, path string, data []byte) (*Manifest, error) {
	var m Manifest

	if err := yaml.UnmarshalContext(ctx, data, &m, yaml.DisallowUnknownField()); err != nil {
		return nil, pkg.ErrDecodeManifest.Wrapf("%s", path).Wrap(err)
	}

	m.Path = path

	return &m, nil
}
