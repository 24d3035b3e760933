package ninja

import (
	"context"
	"io"
	"strings"
	"sync"
)

// Document is an ordered, append-only sequence of ninja statements.
//
// Statements are rendered in the order they were added, separated by one
// blank line. The Add methods validate their arguments and return a handle
// that can be configured further; later changes to a handle show up the next
// time the document is rendered.
//
// A Document created without [WithSync] must not be used from more than one
// goroutine at a time.
type Document struct {
	mu       sync.Locker
	grouping bool
	stmts    []Statement
}

// Option configures a [Document].
type Option func(*Document)

// WithSync makes the document and every handle it returns safe for
// concurrent use. All of them share a single mutex.
func WithSync() Option {
	return func(d *Document) {
		d.mu = &sync.Mutex{}
	}
}

// WithGrouping drops the blank line between consecutive statements of the
// same kind, so runs of variables, builds, pools, defaults or includes are
// rendered as one block. Rules are always separated.
func WithGrouping() Option {
	return func(d *Document) {
		d.grouping = true
	}
}

// New returns an empty Document.
func New(opts ...Option) *Document {
	d := &Document{mu: nopLocker{}}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Document) push(s Statement) {
	defer d.lock()()

	d.stmts = append(d.stmts, s)
}

func (d *Document) lock() func() {
	d.mu.Lock()

	return d.mu.Unlock
}

// AddVariable appends a top-level variable binding.
func (d *Document) AddVariable(name string, value Value) (*Variable, error) {
	v, err := newVariable(d.mu, name, value)
	if err != nil {
		return nil, err
	}

	d.push(v)

	return v, nil
}

// AddRule appends a rule with the given command.
func (d *Document) AddRule(name string, command Value) (*Rule, error) {
	r, err := newRule(d.mu, name, command)
	if err != nil {
		return nil, err
	}

	d.push(r)

	return r, nil
}

// AddBuild appends a build edge producing outputs from inputs with rule.
func (d *Document) AddBuild(outputs []string, rule string, inputs ...string) (*Build, error) {
	b, err := newBuild(d.mu, outputs, rule, inputs)
	if err != nil {
		return nil, err
	}

	d.push(b)

	return b, nil
}

// AddPhony appends a build edge using the built-in phony rule, making
// output an alias for inputs.
func (d *Document) AddPhony(output string, inputs ...string) (*Build, error) {
	return d.AddBuild([]string{output}, PhonyRule, inputs...)
}

// AddPool appends a pool declaration.
func (d *Document) AddPool(name string, depth int) (*Pool, error) {
	p, err := newPool(d.mu, name, depth)
	if err != nil {
		return nil, err
	}

	d.push(p)

	return p, nil
}

// AddDefault appends a default statement.
func (d *Document) AddDefault(targets ...string) (*Default, error) {
	def, err := newDefault(d.mu, targets)
	if err != nil {
		return nil, err
	}

	d.push(def)

	return def, nil
}

// AddInclude appends an include statement.
func (d *Document) AddInclude(path string) (*Include, error) {
	return d.addInclude(KindInclude, path)
}

// AddSubninja appends a subninja statement.
func (d *Document) AddSubninja(path string) (*Include, error) {
	return d.addInclude(KindSubninja, path)
}

func (d *Document) addInclude(kind Kind, path string) (*Include, error) {
	i, err := newInclude(d.mu, kind, path)
	if err != nil {
		return nil, err
	}

	d.push(i)

	return i, nil
}

// Len returns the number of statements.
func (d *Document) Len() int {
	defer d.lock()()

	return len(d.stmts)
}

// Statements returns a snapshot of the statements in insertion order. The
// handles are shared with the document.
func (d *Document) Statements() []Statement {
	defer d.lock()()

	return append([]Statement(nil), d.stmts...)
}

// Render returns the text of the document.
func (d *Document) Render() string {
	defer d.lock()()

	var sb strings.Builder

	d.render(&sb)

	return sb.String()
}

// String is an alias for [Document.Render].
func (d *Document) String() string { return d.Render() }

// WriteTo writes the rendered document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.Render())

	return int64(n), err
}

// Format writes the rendered document to w one statement at a time,
// stopping early if ctx is canceled.
func (d *Document) Format(ctx context.Context, w io.Writer) error {
	stmts := d.Statements()

	var sb strings.Builder

	for i, s := range stmts {
		if err := ctx.Err(); err != nil {
			return err
		}

		sb.Reset()

		if i > 0 && d.separate(stmts[i-1], s) {
			sb.WriteByte('\n')
		}

		sb.WriteString(s.String())

		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}

	return nil
}

func (d *Document) render(sb *strings.Builder) {
	for i, s := range d.stmts {
		if i > 0 && d.separate(d.stmts[i-1], s) {
			sb.WriteByte('\n')
		}

		s.render(sb)
	}
}

// separate reports whether a blank line goes between prev and next.
func (d *Document) separate(prev, next Statement) bool {
	if !d.grouping {
		return true
	}

	return prev.Kind() != next.Kind() || next.Kind() == KindRule
}
