package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/ngen/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithTimeLayout("none"),
		log.WithPretty(false),
	)

	logger.Info("wrote build file", slog.String("path", "build.ninja"), slog.Int("statements", 12))
	// Output:
	// level=INFO msg="wrote build file" path=build.ninja statements=12
}

func ExampleLogger_With() {
	logger := log.Make(os.Stdout,
		log.WithTimeLayout("none"),
		log.WithPretty(false),
		log.WithFormat(log.FormatJSON),
	).With(slog.String("manifest", "build.yaml"))

	logger.Warn("skipped statement", slog.Int("index", 3))
	// Output:
	// {"level":"WARN","msg":"skipped statement","manifest":"build.yaml","index":3}
}

func ExampleEnabled() {
	log.Config(log.WithLevel(log.LevelInfo))

	ctx := context.Background()

	// Rendering a statement for a trace message costs more than the message.
	if log.Enabled(ctx, log.LevelTrace) {
		log.TraceContext(ctx, "statement", slog.String("text", "build a.o: cc a.c"))
	}
}
