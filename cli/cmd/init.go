package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/ngen/log"
	"github.com/ardnew/ngen/profile"
)

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	errWrite := ErrWriteConfig.With(slog.String("file", confPath))

	_, err := os.Stat(confPath)
	if err == nil && !i.Force {
		return errWrite.Wrap(ErrFileExists)
	}

	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errWrite.Wrap(err)
	}

	data, err := yaml.MarshalWithOptions(i.values(ctx), yaml.Indent(2))
	if err != nil {
		return errWrite.Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(confPath), 0o755); err != nil {
		return errWrite.Wrap(err)
	}

	if err := os.WriteFile(confPath, data, 0o644); err != nil {
		return errWrite.Wrap(err)
	}

	log.InfoContext(ctx, "initialized configuration file", slog.String("path", confPath))

	return nil
}

// values collects the application-level flags and their current values
// in declaration order.
func (i *Init) values(ctx context.Context) yaml.MapSlice {
	ktx := kongContextFrom(ctx)

	var out yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || flag.Name == "help" || strings.HasPrefix(flag.Name, profile.Tag) {
			continue
		}

		if v, ok := configValue(ktx.FlagValue(flag)); ok {
			out = append(out, yaml.MapItem{Key: flag.Name, Value: v})
		}
	}

	return out
}

// configValue converts a flag value to something the configuration
// resolver can read back. Empty strings and lists are omitted.
func configValue(v any) (any, bool) {
	switch v := v.(type) {
	case nil:
		return nil, false
	case bool:
		return v, true
	case string:
		return v, v != ""
	case []string:
		return v, len(v) > 0
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return v, true
	case fmt.Stringer:
		s := v.String()

		return s, s != ""
	default:
		s := fmt.Sprint(v)

		return s, s != ""
	}
}
