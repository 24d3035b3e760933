package cli

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ngen/log"
)

// logFormat configures the logger format as a side effect of parsing, so
// errors reported during parsing already use it.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level as a side effect of parsing.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"text"    enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"RFC3339"                         help:"Set timestamp format."`
	Caller     bool      `default:"false"                           help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                            help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":  join(log.Levels()),
		"logFormatEnum": join(log.Formats()),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan applies logger flags found in args before kong parses them, so the
// logger is configured regardless of where the flags appear. Boolean flags
// never reach UnmarshalText, which is why they are handled here too.
func (f *logConfig) scan(args []string) {
	boolFlag := func(set func(bool)) func(value string, assigned bool) {
		return func(value string, assigned bool) {
			if !assigned {
				set(true)

				return
			}

			if v, err := strconv.ParseBool(value); err == nil {
				set(v)
			}
		}
	}

	flags := map[string]struct {
		takesValue bool
		apply      func(value string, assigned bool)
	}{
		"--log-level": {true, func(v string, _ bool) { _ = f.Level.UnmarshalText([]byte(v)) }},
		"--log-format": {true, func(v string, _ bool) { _ = f.Format.UnmarshalText([]byte(v)) }},
		"--log-pretty": {false, boolFlag(func(b bool) {
			f.Pretty = b
			log.Config(log.WithPretty(b))
		})},
		"--no-log-pretty": {false, boolFlag(func(b bool) {
			f.Pretty = !b
			log.Config(log.WithPretty(!b))
		})},
		"--log-caller": {false, boolFlag(func(b bool) {
			f.Caller = b
			log.Config(log.WithCaller(b))
		})},
		"--no-log-caller": {false, boolFlag(func(b bool) {
			f.Caller = !b
			log.Config(log.WithCaller(!b))
		})},
	}

	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			return
		}

		name, value, assigned := strings.Cut(args[i], "=")

		flag, ok := flags[name]
		if !ok {
			continue
		}

		// Flags with a value consume the next argument unless assigned.
		if flag.takesValue && !assigned {
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
				continue
			}

			i++
			value = args[i]
		}

		flag.apply(value, assigned)
	}
}
