package manifest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/ngen/ninja"
	"github.com/ardnew/ngen/pkg"
)

const sampleYAML = `vars:
  cflags: -Wall
statements:
  - pool: {name: link, depth: 1}
  - rule:
      name: cc
      command: gcc $cflags -c $in -o $out
      vars:
        description: CC $out
        depfile: $out.d
        deps: gcc
  - build:
      rule: cc
      outputs: [foo.o]
      inputs: [foo.c]
      implicit: [config.h]
      order_only: [gen]
      vars:
        cflags: $cflags -O2
  - build:
      rule: cc
      outputs: [win.o]
      inputs: [win.c]
    when: platform == "windows"
  - default: [foo.o]
`

const sampleJSON = `{
  "vars": {"cflags": "-Wall"},
  "statements": [
    {"pool": {"name": "link", "depth": 1}},
    {"rule": {
      "name": "cc",
      "command": "gcc $cflags -c $in -o $out",
      "vars": {"description": "CC $out", "depfile": "$out.d", "deps": "gcc"}
    }},
    {"build": {
      "rule": "cc",
      "outputs": ["foo.o"],
      "inputs": ["foo.c"],
      "implicit": ["config.h"],
      "order_only": ["gen"],
      "vars": {"cflags": "$cflags -O2"}
    }},
    {"build": {"rule": "cc", "outputs": ["win.o"], "inputs": ["win.c"]},
     "when": "platform == \"windows\""},
    {"default": ["foo.o"]}
  ]
}
`

const sampleHCL = `variable "cflags" {
  value = "-Wall"
}

pool "link" {
  depth = 1
}

rule "cc" {
  command = "gcc $cflags -c $in -o $out"
  vars {
    description = "CC $out"
    depfile     = "$out.d"
    deps        = "gcc"
  }
}

build "cc" {
  outputs    = ["foo.o"]
  inputs     = ["foo.c"]
  implicit   = ["config.h"]
  order_only = ["gen"]
  vars {
    cflags = "$cflags -O2"
  }
}

build "cc" {
  outputs = ["win.o"]
  inputs  = ["win.c"]
  when    = platform == "windows"
}

default {
  targets = ["foo.o"]
}
`

const sampleNinja = `cflags = -Wall

pool link
  depth = 1

rule cc
  command = gcc $cflags -c $in -o $out
  description = CC $out
  depfile = $out.d
  deps = gcc

build foo.o: cc foo.c | config.h || gen
  cflags = $cflags -O2

default foo.o
`

func testLoader(opts ...Option) *Loader {
	return NewLoader(append([]Option{
		WithPlatform("linux", "amd64"),
		WithEnviron([]string{}),
	}, opts...)...)
}

func TestLoader_DecodeApply(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		source string
	}{
		{name: "yaml", format: FormatYAML, source: sampleYAML},
		{name: "json", format: FormatJSON, source: sampleJSON},
		{name: "hcl", format: FormatHCL, source: sampleHCL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			l := testLoader()

			m, err := l.Decode(ctx, tt.format, "build."+tt.format.String(), []byte(tt.source))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			doc := ninja.New()
			if err := l.Apply(ctx, doc, m); err != nil {
				t.Fatalf("Apply() error = %v", err)
			}

			if diff := cmp.Diff(sampleNinja, doc.Render()); diff != "" {
				t.Errorf("Render() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoader_ConditionSelectsPlatform(t *testing.T) {
	ctx := context.Background()
	l := testLoader(WithPlatform("windows", ""))

	for _, tt := range []struct {
		format Format
		source string
	}{
		{FormatYAML, sampleYAML},
		{FormatHCL, sampleHCL},
	} {
		m, err := l.Decode(ctx, tt.format, "build", []byte(tt.source))
		if err != nil {
			t.Fatalf("%v: Decode() error = %v", tt.format, err)
		}

		doc := ninja.New()
		if err := l.Apply(ctx, doc, m); err != nil {
			t.Fatalf("%v: Apply() error = %v", tt.format, err)
		}

		if got := doc.Len(); got != 6 {
			t.Errorf("%v: Len() = %d, want 6", tt.format, got)
		}
	}
}

func TestLoader_ApplyErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr error
	}{
		{
			name:    "no kind",
			source:  "statements:\n  - when: \"true\"\n",
			wantErr: pkg.ErrInvalidManifest,
		},
		{
			name:    "two kinds",
			source:  "statements:\n  - include: a.ninja\n    subninja: b.ninja\n",
			wantErr: pkg.ErrInvalidManifest,
		},
		{
			name:    "unreserved rule var",
			source:  "statements:\n  - rule: {name: cc, command: cc, vars: {cflags: -O2}}\n",
			wantErr: ninja.ErrUnexpectedRuleVar,
		},
		{
			name:    "bad path",
			source:  "statements:\n  - build: {rule: cc, outputs: [\"a|b\"]}\n",
			wantErr: ninja.ErrBadPath,
		},
		{
			name:    "no outputs",
			source:  "statements:\n  - build: {rule: cc, outputs: []}\n",
			wantErr: ninja.ErrNoOutputs,
		},
		{
			name:    "empty default",
			source:  "statements:\n  - default: []\n",
			wantErr: ninja.ErrNoTargets,
		},
		{
			name:    "bad variable name",
			source:  "vars:\n  \"a b\": x\n",
			wantErr: ninja.ErrInvalidInput,
		},
		{
			name:    "bad template",
			source:  "vars:\n  pct: \"50%$\"\n",
			wantErr: ninja.ErrBadEscape,
		},
		{
			name:    "nested map value",
			source:  "vars:\n  x: {a: b}\n",
			wantErr: pkg.ErrInvalidManifest,
		},
		{
			name:    "condition not bool",
			source:  "statements:\n  - include: a.ninja\n    when: platform\n",
			wantErr: pkg.ErrEvaluateCondition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			l := testLoader()

			m, err := l.Decode(ctx, FormatYAML, "bad.yaml", []byte(tt.source))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			err = l.Apply(ctx, ninja.New(), m)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Apply() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoader_DecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		source string
	}{
		{name: "yaml unknown field", format: FormatYAML, source: "rules: []\n"},
		{name: "yaml syntax", format: FormatYAML, source: "statements: [\n"},
		{name: "hcl syntax", format: FormatHCL, source: "rule \"cc\" {\n"},
		{name: "hcl unknown block", format: FormatHCL, source: "target \"x\" {}\n"},
		{name: "hcl top-level attribute", format: FormatHCL, source: "cflags = \"-O2\"\n"},
		{name: "hcl missing label", format: FormatHCL, source: "rule {\n  command = \"cc\"\n}\n"},
		{name: "hcl missing attribute", format: FormatHCL, source: "build \"cc\" {\n  inputs = [\"a\"]\n}\n"},
		{name: "hcl unknown param", format: FormatHCL, source: "include {\n  path = params.nope\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testLoader().Decode(context.Background(), tt.format, "bad", []byte(tt.source))
			if !errors.Is(err, pkg.ErrDecodeManifest) {
				t.Fatalf("Decode() error = %v, want ErrDecodeManifest", err)
			}
		})
	}
}

func TestLoader_HCLExpressions(t *testing.T) {
	const source = `variable "mode" {
  value = param("mode", "release")
}

variable "flags" {
  value = ["-Wall", upper(arch)]
}

variable "cc" {
  value = env.CC
}

variable "ver" {
  value = 3
}

variable "tpl" {
  value = "$${out}"
}

include {
  path = format("%s.ninja", target)
  when = params.extra == "1"
}
`

	ctx := context.Background()
	l := testLoader(
		WithParams(map[string]string{"extra": "1"}),
		WithEnviron([]string{"CC=clang"}),
	)

	m, err := l.Decode(ctx, FormatHCL, "expr.hcl", []byte(source))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	doc := ninja.New(ninja.WithGrouping())
	if err := l.Apply(ctx, doc, m); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	want := "mode = release\nflags = -Wall AMD64\ncc = clang\nver = 3\ntpl = ${out}\n\ninclude x86_64-linux.ninja\n"
	if diff := cmp.Diff(want, doc.Render()); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestStatement_Kind(t *testing.T) {
	tests := []struct {
		name    string
		stmt    Statement
		want    ninja.Kind
		wantErr bool
	}{
		{name: "variable", stmt: Statement{Variable: &Variable{}}, want: ninja.KindVariable},
		{name: "pool", stmt: Statement{Pool: &Pool{}}, want: ninja.KindPool},
		{name: "rule", stmt: Statement{Rule: &Rule{}}, want: ninja.KindRule},
		{name: "build", stmt: Statement{Build: &Build{}}, want: ninja.KindBuild},
		{name: "empty default", stmt: Statement{Default: []string{}}, want: ninja.KindDefault},
		{name: "include", stmt: Statement{Include: "a"}, want: ninja.KindInclude},
		{name: "subninja", stmt: Statement{Subninja: "a"}, want: ninja.KindSubninja},
		{name: "none", stmt: Statement{When: "true"}, wantErr: true},
		{name: "two", stmt: Statement{Rule: &Rule{}, Pool: &Pool{}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.stmt.Kind()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Kind() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err == nil && got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueOf(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{in: nil, want: ""},
		{in: "$in -o $out", want: "$in -o $out"},
		{in: true, want: "true"},
		{in: uint64(4), want: "4"},
		{in: int64(-1), want: "-1"},
		{in: 1.5, want: "1.5"},
		{in: 1e6, want: "1000000"},
		{in: []any{"-I", "$root", uint64(2)}, want: "-I $root 2"},
	}

	for _, tt := range tests {
		got, err := valueOf(tt.in)
		if err != nil {
			t.Fatalf("valueOf(%v) error = %v", tt.in, err)
		}

		if got.String() != tt.want {
			t.Errorf("valueOf(%v) = %q, want %q", tt.in, got.String(), tt.want)
		}
	}

	if _, err := valueOf(map[string]any{}); err == nil {
		t.Error("valueOf(map) error = nil")
	}
}

func TestLoader_NumericScalars(t *testing.T) {
	const source = `vars:
  quoted: "1.10"
  bare: 1.10
  hex: 0x10
`

	const want = "quoted = 1.10\nbare = 1.1\nhex = 16\n"

	ctx := context.Background()
	l := testLoader()

	m, err := l.Decode(ctx, FormatYAML, "build.yaml", []byte(source))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	doc := ninja.New(ninja.WithGrouping())
	if err := l.Apply(ctx, doc, m); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if diff := cmp.Diff(want, doc.Render()); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}
