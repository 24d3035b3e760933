package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/ngen/log"
)

// resolve returns a [kong.ConfigurationLoader] for YAML configuration files
// whose top-level keys are flag names:
//
//	log-level: debug
//	log-format: json
//	log-pretty: false
//
// Keys may use underscores in place of hyphens. A file that cannot be parsed is reported and ignored, so a
// broken configuration never prevents the command from running.
// Command-line flags override configuration values.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var raw map[string]any

		err := yaml.NewDecoder(r).DecodeContext(ctx, &raw)
		if err != nil && !errors.Is(err, io.EOF) {
			log.WarnContext(ctx, "ignoring configuration file", slog.Any("error", err))

			return config{}, nil
		}

		cfg := make(config, len(raw))
		for k, v := range raw {
			cfg[k] = configString(v)
		}

		return cfg, nil
	}
}

// config implements [kong.Resolver].
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	if v, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return v, nil
	}

	return nil, nil //nolint:nilnil
}

// configString converts decoded YAML scalars to the forms kong parses.
// Booleans are kept; kong's bool mapper accepts them directly.
func configString(v any) any {
	switch v := v.(type) {
	case nil, bool, string:
		return v
	case []any:
		s := make([]any, len(v))
		for i, e := range v {
			s[i] = fmt.Sprint(configString(e))
		}

		return s
	default:
		return fmt.Sprint(v)
	}
}
