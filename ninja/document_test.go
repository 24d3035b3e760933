package ninja

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustRule(t *testing.T, d *Document, name, command string) *Rule {
	t.Helper()

	r, err := d.AddRule(name, Template(command))
	if err != nil {
		t.Fatalf("AddRule(%q): %v", name, err)
	}

	return r
}

func mustBuild(t *testing.T, d *Document, out, rule string, in ...string) *Build {
	t.Helper()

	b, err := d.AddBuild([]string{out}, rule, in...)
	if err != nil {
		t.Fatalf("AddBuild(%q): %v", out, err)
	}

	return b
}

func TestDocument_RuleAndBuild(t *testing.T) {
	d := New()
	mustRule(t, d, "cc", "$in -o $out")
	mustBuild(t, d, "main.o", "cc", "main.c")

	want := "rule cc\n" +
		"  command = $in -o $out\n" +
		"\n" +
		"build main.o: cc main.c\n"

	if diff := cmp.Diff(want, d.Render()); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestDocument_PathWithSpace(t *testing.T) {
	d := New()
	mustBuild(t, d, "my file.o", "cc", "my file.c")

	want := "build my$ file.o: cc my$ file.c\n"
	if got := d.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestDocument_Default(t *testing.T) {
	d := New()

	if _, err := d.AddDefault("a.o", "b.o"); err != nil {
		t.Fatalf("AddDefault: %v", err)
	}

	if got, want := d.Render(), "default a.o b.o\n"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestDocument_Empty(t *testing.T) {
	d := New()

	if got := d.Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}

	if d.Len() != 0 {
		t.Errorf("Len() = %d, want 0", d.Len())
	}
}

func TestDocument_AllStatements(t *testing.T) {
	d := New()

	if _, err := d.AddVariable("ninja_required_version", Literal("1.10")); err != nil {
		t.Fatal(err)
	}

	if _, err := d.AddVariable("cflags", List("-Wall", "-O2")); err != nil {
		t.Fatal(err)
	}

	if _, err := d.AddPool("link", 1); err != nil {
		t.Fatal(err)
	}

	cc := mustRule(t, d, "cc", "gcc $cflags -MMD -MF $out.d -c $in -o $out")
	for _, err := range []error{
		cc.Description("CC $out"),
		cc.Depfile("$out.d"),
		cc.DepsGCC(),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}

	link := mustRule(t, d, "link", "gcc -o $out @$out.rsp")
	if err := link.Rspfile("$out.rsp", "$in"); err != nil {
		t.Fatal(err)
	}

	if err := link.Pool("link"); err != nil {
		t.Fatal(err)
	}

	obj := mustBuild(t, d, "foo.o", "cc", "foo.c")
	for _, err := range []error{
		obj.AddImplicitOutputs("foo.o.d"),
		obj.AddImplicitInputs("config.h"),
		obj.AddOrderOnly("gen"),
		obj.AddValidations("lint"),
		obj.Set("cflags", Concat(Ref("cflags"), Literal(" -DFOO"))),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}

	mustBuild(t, d, "app", "link", "foo.o")

	if _, err := d.AddPhony("all", "app"); err != nil {
		t.Fatal(err)
	}

	if _, err := d.AddDefault("all"); err != nil {
		t.Fatal(err)
	}

	if _, err := d.AddInclude("rules.ninja"); err != nil {
		t.Fatal(err)
	}

	if _, err := d.AddSubninja("sub dir/build.ninja"); err != nil {
		t.Fatal(err)
	}

	want := `ninja_required_version = 1.10

cflags = -Wall -O2

pool link
  depth = 1

rule cc
  command = gcc $cflags -MMD -MF $out.d -c $in -o $out
  description = CC $out
  depfile = $out.d
  deps = gcc

rule link
  command = gcc -o $out @$out.rsp
  rspfile = $out.rsp
  rspfile_content = $in
  pool = link

build foo.o | foo.o.d: cc foo.c | config.h || gen |@ lint
  cflags = $cflags -DFOO

build app: link foo.o

build all: phony app

default all

include rules.ninja

subninja sub$ dir/build.ninja
`

	if diff := cmp.Diff(want, d.Render()); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}

	if d.Len() != 11 {
		t.Errorf("Len() = %d, want 11", d.Len())
	}
}

func TestDocument_Grouping(t *testing.T) {
	d := New(WithGrouping())

	for _, name := range []string{"a", "b"} {
		if _, err := d.AddVariable(name, Literal("1")); err != nil {
			t.Fatal(err)
		}
	}

	mustRule(t, d, "r", "c")
	mustRule(t, d, "s", "d")
	mustBuild(t, d, "x", "r")
	mustBuild(t, d, "y", "s")

	if _, err := d.AddDefault("x"); err != nil {
		t.Fatal(err)
	}

	want := "a = 1\nb = 1\n\n" +
		"rule r\n  command = c\n\n" +
		"rule s\n  command = d\n\n" +
		"build x: r\nbuild y: s\n\n" +
		"default x\n"

	if diff := cmp.Diff(want, d.Render()); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestDocument_Order(t *testing.T) {
	d := New()

	var want []string

	for i := range 20 {
		out := fmt.Sprintf("out%02d", i)
		mustBuild(t, d, out, "r")
		want = append(want, "build "+out+": r\n")

		if got := d.Render(); got != strings.Join(want, "\n") {
			t.Fatalf("after %d adds: Render() = %q", i+1, got)
		}
	}

	for i, s := range d.Statements() {
		b, ok := s.(*Build)
		if !ok {
			t.Fatalf("Statements()[%d] is %T, want *Build", i, s)
		}

		if got := b.Outputs()[0]; got != fmt.Sprintf("out%02d", i) {
			t.Errorf("Statements()[%d] output = %q", i, got)
		}
	}
}

func TestDocument_ScopeOrder(t *testing.T) {
	d := New()
	b := mustBuild(t, d, "o", "r")

	for _, name := range []string{"c", "a", "b", "a"} {
		if err := b.Set(name, Literal(name+"v")); err != nil {
			t.Fatal(err)
		}
	}

	want := "build o: r\n  c = cv\n  a = av\n  b = bv\n  a = av\n"
	if got := d.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}

	if v, ok := b.Lookup("a"); !ok || v.String() != "av" {
		t.Errorf("Lookup(a) = %q, %v", v, ok)
	}

	if _, ok := b.Lookup("missing"); ok {
		t.Error("Lookup(missing) found a binding")
	}
}

func TestDocument_RenderIsPure(t *testing.T) {
	d := New()
	mustRule(t, d, "cc", "cc $in")
	mustBuild(t, d, "a", "cc", "b")

	first := d.Render()
	if second := d.Render(); first != second {
		t.Errorf("Render() not repeatable:\n%q\n%q", first, second)
	}

	var buf bytes.Buffer

	n, err := d.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	if buf.String() != first || n != int64(len(first)) {
		t.Errorf("WriteTo wrote %d bytes %q, want %q", n, buf.String(), first)
	}

	buf.Reset()

	if err := d.Format(context.Background(), &buf); err != nil {
		t.Fatalf("Format: %v", err)
	}

	if buf.String() != first {
		t.Errorf("Format() = %q, want %q", buf.String(), first)
	}
}

func TestDocument_MutationAfterRender(t *testing.T) {
	d := New()
	r := mustRule(t, d, "cc", "cc $in")
	_ = d.Render()

	if err := r.SetCommand(Template("clang $in")); err != nil {
		t.Fatal(err)
	}

	if err := r.Restat(); err != nil {
		t.Fatal(err)
	}

	want := "rule cc\n  command = clang $in\n  restat = 1\n"
	if got := d.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestDocument_FormatCanceled(t *testing.T) {
	d := New()
	mustBuild(t, d, "a", "r")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	if err := d.Format(ctx, &buf); !errors.Is(err, context.Canceled) {
		t.Errorf("Format() = %v, want context.Canceled", err)
	}

	if buf.Len() != 0 {
		t.Errorf("Format() wrote %q after cancel", buf.String())
	}
}

func TestDocument_Errors(t *testing.T) {
	d := New()

	tests := []struct {
		name    string
		add     func() error
		wantErr error
	}{
		{
			name:    "empty rule name",
			add:     func() error { _, err := d.AddRule("", Template("x")); return err },
			wantErr: ErrEmptyName,
		},
		{
			name:    "empty pool name",
			add:     func() error { _, err := d.AddPool("", 1); return err },
			wantErr: ErrEmptyName,
		},
		{
			name:    "negative depth",
			add:     func() error { _, err := d.AddPool("p", -1); return err },
			wantErr: ErrNegativeDepth,
		},
		{
			name:    "variable name with space",
			add:     func() error { _, err := d.AddVariable("a b", Literal("x")); return err },
			wantErr: ErrBadIdentifier,
		},
		{
			name:    "variable newline",
			add:     func() error { _, err := d.AddVariable("a", Literal("x\ny")); return err },
			wantErr: ErrBadText,
		},
		{
			name:    "command bad escape",
			add:     func() error { _, err := d.AddRule("r", Template("echo $")); return err },
			wantErr: ErrBadEscape,
		},
		{
			name:    "build without outputs",
			add:     func() error { _, err := d.AddBuild(nil, "r"); return err },
			wantErr: ErrNoOutputs,
		},
		{
			name:    "build empty rule",
			add:     func() error { _, err := d.AddBuild([]string{"o"}, ""); return err },
			wantErr: ErrEmptyName,
		},
		{
			name:    "build pipe in output",
			add:     func() error { _, err := d.AddBuild([]string{"a|b"}, "r"); return err },
			wantErr: ErrBadPath,
		},
		{
			name:    "build newline in input",
			add:     func() error { _, err := d.AddBuild([]string{"o"}, "r", "a\nb"); return err },
			wantErr: ErrBadPath,
		},
		{
			name:    "default without targets",
			add:     func() error { _, err := d.AddDefault(); return err },
			wantErr: ErrNoTargets,
		},
		{
			name:    "default empty target",
			add:     func() error { _, err := d.AddDefault("a", ""); return err },
			wantErr: ErrBadPath,
		},
		{
			name:    "include empty path",
			add:     func() error { _, err := d.AddInclude(""); return err },
			wantErr: ErrBadPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.add()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}

			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("got %v, want ErrInvalidInput", err)
			}
		})
	}

	if d.Len() != 0 {
		t.Errorf("failed adds appended %d statements", d.Len())
	}
}

func TestDocument_KeywordVariable(t *testing.T) {
	for _, name := range []string{"build", "rule", "pool", "default", "include", "subninja"} {
		t.Run(name, func(t *testing.T) {
			d := New()

			_, err := d.AddVariable(name, Literal("x"))
			if !errors.Is(err, ErrReservedName) {
				t.Fatalf("got %v, want ErrReservedName", err)
			}

			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("got %v, want ErrInvalidInput", err)
			}

			if d.Len() != 0 {
				t.Fatalf("failed add appended %d statements", d.Len())
			}

			// Indented edge bindings never start a statement.
			mustRule(t, d, "cc", "cc $in")
			b := mustBuild(t, d, "a.o", "cc", "a.c")

			if err := b.Set(name, Literal("x")); err != nil {
				t.Fatalf("build binding %q: %v", name, err)
			}
		})
	}

	if _, err := New().AddVariable("builder", Literal("x")); err != nil {
		t.Errorf("keyword prefix rejected: %v", err)
	}
}

func TestDocument_Sync(t *testing.T) {
	d := New(WithSync())
	r := mustRule(t, d, "cc", "cc $in")

	const workers = 16

	var wg sync.WaitGroup

	for i := range workers {
		b := mustBuild(t, d, fmt.Sprintf("o%d", i), "cc")

		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := range 10 {
				if err := b.AddInputs(fmt.Sprintf("i%d", j)); err != nil {
					t.Error(err)
				}

				_ = d.Render()
			}

			if _, err := d.AddVariable(fmt.Sprintf("v%d", i), Literal("x")); err != nil {
				t.Error(err)
			}

			if err := r.Set("description", Literal("CC")); err != nil {
				t.Error(err)
			}
		}()
	}

	wg.Wait()

	if got, want := d.Len(), 1+2*workers; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}

	if got := len(r.Bindings()); got != 1+workers {
		t.Errorf("rule has %d bindings, want %d", got, 1+workers)
	}

	for _, s := range d.Statements() {
		if b, ok := s.(*Build); ok && len(b.Inputs()) != 10 {
			t.Errorf("%s has %d inputs, want 10", b.Outputs()[0], len(b.Inputs()))
		}
	}
}
