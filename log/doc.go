// Package log wraps [log/slog] with the handful of settings ngen exposes on
// its command line: level, format, timestamp layout, caller information and
// terminal styling.
//
// A [Logger] is made with functional options and reconfigured with
// [Logger.Wrap], which returns a new Logger and leaves the original alone:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("kitchen"))
//	logger.Info("wrote build file", slog.String("path", "build.ninja"))
//
// Every method takes [slog.Attr] values rather than alternating keys and
// values. Methods without a context use [DefaultContextProvider].
//
// # Default logger
//
// The package-level functions ([Info], [DebugContext], ...) write through a
// default logger on standard error. [Config] reconfigures it; the CLI calls
// Config while parsing flags so errors reported during parsing already use
// the requested format.
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and is used for per-statement detail
// when applying manifests. Guard expensive attributes with [Enabled]:
//
//	if log.Enabled(ctx, log.LevelTrace) {
//		log.TraceContext(ctx, "applied statement", slog.String("text", st.String()))
//	}
//
// # Formats
//
// [FormatText] (the default) and [FormatJSON]. With [WithPretty], output to a
// terminal is colored with lipgloss styles; other writers get plain output.
//
// # Time layouts
//
// [WithTimeLayout] accepts the names of the [time] package layouts in any
// case and punctuation ("RFC3339", "rfc-3339-nano", "Kitchen"), the short
// names "ms", "us" and "ns", or a custom layout. An empty layout or "none"
// drops timestamps.
package log
