package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func withDefault(t *testing.T, l Logger) {
	t.Helper()

	defaultMu.Lock()
	original := defaultLog
	defaultLog = l
	defaultMu.Unlock()

	t.Cleanup(func() {
		defaultMu.Lock()
		defaultLog = original
		defaultMu.Unlock()
	})
}

func TestPackage_LogFunctions_UseDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	withDefault(t, Make(&buf, WithLevel(LevelDebug), WithFormat(FormatJSON), WithPretty(false)))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		ctxFn func(context.Context, string, ...slog.Attr)
		level string
	}{
		{"Debug", Debug, DebugContext, "DEBUG"},
		{"Info", Info, InfoContext, "INFO"},
		{"Warn", Warn, WarnContext, "WARN"},
		{"Error", Error, ErrorContext, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("plain", slog.String("key", "value"))
			tt.ctxFn(t.Context(), "with context")

			output := buf.String()
			for _, want := range []string{"plain", "with context", `"level":"` + tt.level + `"`, `"key":"value"`} {
				if !strings.Contains(output, want) {
					t.Errorf("expected output to contain %q, got: %s", want, output)
				}
			}
		})
	}
}

func TestPackage_Config_WrapsDefault(t *testing.T) {
	var buf bytes.Buffer
	withDefault(t, Make(&buf, WithPretty(false)))

	Debug("hidden")
	Config(WithLevel(LevelDebug), WithCaller(true))
	Debug("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") || !strings.Contains(output, "shown") {
		t.Errorf("unexpected output: %s", output)
	}

	if !strings.Contains(output, "pkg_test.go") {
		t.Errorf("expected caller to be the test file, got: %s", output)
	}

	With(slog.String("k", "v")).Info("attrs")

	if !strings.Contains(buf.String(), "k=v") {
		t.Errorf("With did not add attributes: %s", buf.String())
	}
}

func TestPackage_TraceGatedByEnabled(t *testing.T) {
	var buf bytes.Buffer
	withDefault(t, Make(&buf, WithPretty(false)))

	ctx := context.Background()

	if Enabled(ctx, LevelTrace) {
		t.Fatal("trace enabled at default level")
	}

	TraceContext(ctx, "hidden")

	Config(WithLevel(LevelTrace))

	if !Enabled(ctx, LevelTrace) {
		t.Fatal("trace disabled after WithLevel(LevelTrace)")
	}

	TraceContext(ctx, "shown")

	output := buf.String()
	if strings.Contains(output, "hidden") || !strings.Contains(output, "level=TRACE") {
		t.Errorf("unexpected output: %s", output)
	}
}
