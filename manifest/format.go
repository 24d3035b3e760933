package manifest

import (
	"iter"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ardnew/ngen/pkg"
)

//go:generate go tool stringer --linecomment --type Format --output format_string.go

// Format identifies the encoding of a manifest file.
type Format int

// Supported manifest encodings.
const (
	FormatYAML Format = iota // yaml
	FormatJSON               // json
	FormatHCL                // hcl
)

// Formats returns the names of all supported formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for f := FormatYAML; f <= FormatHCL; f++ {
			if !yield(f.String()) {
				return
			}
		}
	}
}

// ParseFormat returns the Format with the given name.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	for f := FormatYAML; f <= FormatHCL; f++ {
		if f.String() == s {
			return f, nil
		}
	}

	if s == "yml" {
		return FormatYAML, nil
	}

	return 0, pkg.ErrInvalidFormat.Wrapf("%q", s)
}

// FormatOf returns the Format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")

	f, err := ParseFormat(ext)
	if err != nil {
		return 0, pkg.ErrInvalidFormat.Wrapf("unrecognized extension %q", filepath.Ext(path))
	}

	return f, nil
}

// LogValue implements slog.LogValuer.
func (f Format) LogValue() slog.Value { return slog.StringValue(f.String()) }
