package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  config
	}{
		{name: "empty", input: "", want: config{}},
		{
			name:  "scalars",
			input: "log-level: debug\nlog_pretty: false\ndebounce: 250\n",
			want:  config{"log-level": "debug", "log_pretty": false, "debounce": "250"},
		},
		{
			name:  "list",
			input: "params:\n  - a=1\n  - b=2\n",
			want:  config{"params": []any{"a=1", "b=2"}},
		},
		{name: "malformed", input: "log-level: [debug\n", want: config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := resolve(context.Background())(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("resolve() error = %v", err)
			}

			if diff := cmp.Diff(tt.want, r.(config)); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfig_Resolve(t *testing.T) {
	c := config{"log-level": "warn", "log_format": "json"}

	tests := []struct {
		flag string
		want any
	}{
		{flag: "log-level", want: "warn"},
		{flag: "log-format", want: "json"},
		{flag: "log-caller", want: nil},
	}

	for _, tt := range tests {
		got, err := c.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: tt.flag}})
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", tt.flag, err)
		}

		if got != tt.want {
			t.Errorf("Resolve(%q) = %v, want %v", tt.flag, got, tt.want)
		}
	}
}

func TestLogConfig_Scan(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "separate values",
			args: []string{"--log-level", "debug", "--log-format", "json"},
			want: logConfig{Level: "debug", Format: "json"},
		},
		{
			name: "assigned values",
			args: []string{"gen", "--log-level=warn", "--log-caller", "--no-log-pretty"},
			want: logConfig{Level: "warn", Caller: true},
		},
		{
			name: "explicit booleans",
			args: []string{"--log-pretty=true", "--no-log-caller=false"},
			want: logConfig{Pretty: true, Caller: true},
		},
		{
			name: "missing value",
			args: []string{"--log-level", "--log-caller"},
			want: logConfig{Caller: true},
		},
		{
			name: "stops at terminator",
			args: []string{"--", "--log-level", "debug"},
			want: logConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got logConfig

			got.scan(tt.args)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("scan() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
