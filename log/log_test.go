package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level Info, got %v", logger.Level())
	}

	if logger.config.caller {
		t.Error("expected caller disabled by default")
	}

	if logger.Format() != FormatText {
		t.Errorf("expected default format text, got %v", logger.Format())
	}

	if !logger.config.pretty {
		t.Error("expected pretty output by default")
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelDebug))

	logger.Debug("debug message")
	if !strings.Contains(buf.String(), "debug message") {
		t.Error("debug message not logged after setting level to Debug")
	}

	buf.Reset()
	logger2 := Make(&buf, WithLevel(LevelError))
	logger2.Info("info message")
	if buf.Len() > 0 {
		t.Error("info message logged when level is Error")
	}

	logger2.Error("error message")
	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at Error level")
	}
}

func TestLogger_Make_WithTimeLayout(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		contains string
	}{
		{"rfc3339 named", "RFC3339", "T"},
		{"rfc3339 nano named", "RFC3339Nano", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := Make(&buf, WithTimeLayout(tt.layout), WithPretty(false))
			logger.Info("test")

			if output := buf.String(); !strings.Contains(output, tt.contains) {
				t.Errorf("expected time to contain %q, got: %s", tt.contains, output)
			}
		})
	}

	var buf bytes.Buffer
	Make(&buf, WithTimeLayout("none"), WithPretty(false)).Info("test")

	if strings.Contains(buf.String(), "time=") {
		t.Errorf("expected no timestamp, got: %s", buf.String())
	}
}

func TestLogger_Make_WithCaller(t *testing.T) {
	var buf bytes.Buffer
	Make(&buf, WithCaller(true), WithPretty(false)).Info("test message")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("caller not included when enabled: %s", buf.String())
	}

	buf.Reset()
	Make(&buf, WithCaller(false), WithPretty(false)).Info("test message")

	if strings.Contains(buf.String(), "source=") {
		t.Error("caller included when disabled")
	}
}

func TestLogger_Make_WithFormat_SetsOutputFormat(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithFormat(FormatJSON), WithPretty(false))
		logger.Info("test message", slog.String("key", "value"))

		var result map[string]any
		if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("failed to parse JSON output: %v", err)
		}

		if result["msg"] != "test message" {
			t.Errorf("expected msg=test message, got %v", result["msg"])
		}

		if result["key"] != "value" {
			t.Errorf("expected key=value, got %v", result["key"])
		}

		if result["level"] != "INFO" {
			t.Errorf("expected level=INFO, got %v", result["level"])
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithFormat(FormatText), WithPretty(false))
		logger.Info("test message", slog.String("key", "value"))

		output := buf.String()
		if !strings.Contains(output, "test message") {
			t.Error("message not found in text output")
		}

		if !strings.Contains(output, "key=value") {
			t.Error("key=value not found in text output")
		}
	})
}

func TestLogger_Pretty(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithTimeLayout("none"), WithLevel(LevelTrace)).
			With(slog.String("component", "gen"))
		logger.Trace("rendered", slog.Int("statements", 3), slog.Group("file", slog.String("path", "build.ninja")))

		// A bytes.Buffer is not a terminal, so no color codes are written.
		want := "level=TRACE msg=rendered component=gen statements=3 file.path=build.ninja\n"
		if got := buf.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithTimeLayout("none"), WithFormat(FormatJSON))
		logger.Warn("slow", slog.Bool("cached", false))

		want := "{\n  level: WARN,\n  msg: slow,\n  cached: false\n}\n"
		if got := buf.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestLogger_LogMethods_RespectLevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(Logger, string, ...slog.Attr)
		minLevel Level
		logged   bool
	}{
		{"trace at debug", (Logger).Trace, LevelDebug, false},
		{"debug at debug", (Logger).Debug, LevelDebug, true},
		{"debug at info", (Logger).Debug, LevelInfo, false},
		{"info at info", (Logger).Info, LevelInfo, true},
		{"info at warn", (Logger).Info, LevelWarn, false},
		{"warn at warn", (Logger).Warn, LevelWarn, true},
		{"warn at error", (Logger).Warn, LevelError, false},
		{"error at error", (Logger).Error, LevelError, true},
		{"error at debug", (Logger).Error, LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := Make(&buf, WithLevel(tt.minLevel))
			tt.logFunc(logger, "test message")

			if hasOutput := buf.Len() > 0; hasOutput != tt.logged {
				t.Errorf("expected logged=%v, got output length=%d", tt.logged, buf.Len())
			}
		})
	}
}

func TestLogger_ConcurrentCalls_ThreadSafe(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("concurrent message", slog.Int("id", i))
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 100 {
		t.Errorf("expected 100 log lines, got %d", len(lines))
	}
}

func TestLogger_Wrap_KeepsBase(t *testing.T) {
	var buf bytes.Buffer
	base := Make(&buf, WithLevel(LevelWarn))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelWarn || wrapped.Level() != LevelDebug {
		t.Errorf("levels = %v, %v; want warn, debug", base.Level(), wrapped.Level())
	}
}

func TestLogger_ZeroValue_Safety(t *testing.T) {
	var logger Logger

	logger.Info("dropped")
	logger.ErrorContext(context.Background(), "dropped")

	if logger.Level() != DefaultLevel {
		t.Errorf("zero Logger level = %v", logger.Level())
	}

	if got := logger.With(slog.String("k", "v")); got.Logger != nil {
		t.Error("With on zero Logger created a handler")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"trace":   LevelTrace,
		"TRACE":   LevelTrace,
		"debug":   LevelDebug,
		" info ":  LevelInfo,
		"WARN":    LevelWarn,
		"error":   LevelError,
		"bogus":   DefaultLevel,
		"error+2": Level(slog.LevelError + 2),
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("JSON") != FormatJSON || ParseFormat("text") != FormatText {
		t.Error("ParseFormat did not recognize known formats")
	}

	if ParseFormat("xml") != DefaultFormat {
		t.Error("ParseFormat did not fall back to the default")
	}

	var got []string
	for f := range Formats() {
		got = append(got, f)
	}

	if strings.Join(got, ",") != "text,json" {
		t.Errorf("Formats() = %v", got)
	}
}
