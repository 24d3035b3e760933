package manifest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/ngen/log"
	"github.com/ardnew/ngen/ninja"
	"github.com/ardnew/ngen/pkg"
)

// Loader reads manifests and applies them to ninja documents.
// It is safe for concurrent use.
type Loader struct {
	env *Env

	host    host
	params  map[string]string
	environ []string
	limit   int
}

// Option configures a Loader.
type Option func(*Loader)

// WithParams sets the parameters visible to conditions as params.
func WithParams(params map[string]string) Option {
	return func(l *Loader) { l.params = params }
}

// WithEnviron replaces the process environment seen by env() in
// conditions. Entries have the form KEY=VALUE.
func WithEnviron(environ []string) Option {
	return func(l *Loader) { l.environ = environ }
}

// WithPlatform sets the target platform using Go names (GOOS, GOARCH).
// Empty strings keep the host value.
func WithPlatform(goos, goarch string) Option {
	return func(l *Loader) {
		if goos != "" {
			l.host.OS = goos
		}

		if goarch != "" {
			l.host.Arch = goarch
		}
	}
}

// WithLimit bounds the number of manifests decoded at once.
// Values less than 1 mean GOMAXPROCS.
func WithLimit(n int) Option {
	return func(l *Loader) { l.limit = n }
}

// NewLoader returns a Loader with all options applied.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{host: hostPlatform()}

	for _, opt := range opts {
		opt(l)
	}

	if l.environ == nil {
		l.environ = os.Environ()
	}

	if l.limit < 1 {
		l.limit = runtime.GOMAXPROCS(0)
	}

	l.env = newEnv(l.host, l.params, environMap(l.environ))

	return l
}

// Env returns the condition environment of l.
func (l *Loader) Env() *Env { return l.env }

// Load reads the manifests at paths concurrently. The result has the same
// order as paths. The first error cancels the remaining reads.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*Manifest, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.limit)

	out := make([]*Manifest, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			m, err := l.ReadFile(ctx, path)
			if err != nil {
				return err
			}

			out[i] = m

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// Generate loads the manifests at paths and applies them to doc in order.
func (l *Loader) Generate(ctx context.Context, doc *ninja.Document, paths ...string) error {
	ms, err := l.Load(ctx, paths...)
	if err != nil {
		return err
	}

	return l.Apply(ctx, doc, ms...)
}

// Apply appends the statements of each manifest to doc, in order.
// Statements whose condition does not hold are skipped.
//
// On error doc may hold the statements applied before the failure, and
// possibly a partially configured statement. Discard it.
func (l *Loader) Apply(ctx context.Context, doc *ninja.Document, ms ...*Manifest) error {
	for _, m := range ms {
		if err := l.apply(ctx, doc, m); err != nil {
			return err
		}
	}

	return nil
}

func (l *Loader) apply(ctx context.Context, doc *ninja.Document, m *Manifest) error {
	src := m.Path
	if src == "" {
		src = "<manifest>"
	}

	vars, err := bindings(m.Vars)
	if err != nil {
		return pkg.ErrInvalidManifest.Wrapf("%s: vars", src).Wrap(err)
	}

	for _, b := range vars {
		if _, err := doc.AddVariable(b.Name, b.Value); err != nil {
			return pkg.ErrInvalidManifest.Wrapf("%s: vars.%s", src, b.Name).Wrap(err)
		}
	}

	applied := 0

	for i, s := range m.Statements {
		if err := ctx.Err(); err != nil {
			return err
		}

		kind, err := s.Kind()
		if err != nil {
			return pkg.ErrInvalidManifest.Wrapf("%s: statements[%d]", src, i).Wrap(err)
		}

		ok, err := l.env.Eval(s.When)
		if err != nil {
			return fmt.Errorf("%s: statements[%d]: %w", src, i, err)
		}

		if !ok {
			log.DebugContext(ctx, "skipped statement",
				slog.String("path", src),
				slog.Int("index", i),
				slog.Any("kind", kind),
				slog.String("when", s.When),
			)

			continue
		}

		st, err := add(doc, kind, s)
		if err != nil {
			return pkg.ErrInvalidManifest.Wrapf("%s: statements[%d] (%s)", src, i, kind).Wrap(err)
		}

		if log.Enabled(ctx, log.LevelTrace) {
			log.TraceContext(ctx, "applied statement",
				slog.String("path", src),
				slog.Int("index", i),
				slog.String("text", st.String()),
			)
		}

		applied++
	}

	log.DebugContext(ctx, "applied manifest",
		slog.String("path", src),
		slog.Int("vars", len(vars)),
		slog.Int("statements", applied),
		slog.Int("skipped", len(m.Statements)-applied),
	)

	return nil
}

// add appends the statement held by s to doc and returns it.
func add(doc *ninja.Document, kind ninja.Kind, s Statement) (ninja.Statement, error) {
	switch kind {
	case ninja.KindVariable:
		v, err := valueOf(s.Variable.Value)
		if err != nil {
			return nil, err
		}

		return added(doc.AddVariable(s.Variable.Name, v))

	case ninja.KindPool:
		return added(doc.AddPool(s.Pool.Name, s.Pool.Depth))

	case ninja.KindRule:
		vars, err := bindings(s.Rule.Vars)
		if err != nil {
			return nil, err
		}

		r, err := doc.AddRule(s.Rule.Name, ninja.Template(s.Rule.Command))
		if err != nil {
			return nil, err
		}

		return r, setAll(r.Set, vars)

	case ninja.KindBuild:
		return addBuild(doc, s.Build)

	case ninja.KindDefault:
		return added(doc.AddDefault(s.Default...))

	case ninja.KindInclude:
		return added(doc.AddInclude(s.Include))

	case ninja.KindSubninja:
		return added(doc.AddSubninja(s.Subninja))
	}

	return nil, fmt.Errorf("unsupported statement kind %v", kind)
}

// added drops the typed handle on error so callers never see a non-nil
// interface holding a nil pointer.
func added[S ninja.Statement](st S, err error) (ninja.Statement, error) {
	if err != nil {
		return nil, err
	}

	return st, nil
}

func addBuild(doc *ninja.Document, m *Build) (ninja.Statement, error) {
	vars, err := bindings(m.Vars)
	if err != nil {
		return nil, err
	}

	b, err := doc.AddBuild(m.Outputs, m.Rule, m.Inputs...)
	if err != nil {
		return nil, err
	}

	for _, step := range []struct {
		add   func(...string) error
		paths []string
	}{
		{b.AddImplicitOutputs, m.ImplicitOutputs},
		{b.AddImplicitInputs, m.Implicit},
		{b.AddOrderOnly, m.OrderOnly},
		{b.AddValidations, m.Validations},
	} {
		if len(step.paths) == 0 {
			continue
		}

		if err := step.add(step.paths...); err != nil {
			return nil, err
		}
	}

	return b, setAll(b.Set, vars)
}

func setAll(set func(string, ninja.Value) error, vars []ninja.Binding) error {
	for _, v := range vars {
		if err := set(v.Name, v.Value); err != nil {
			return err
		}
	}

	return nil
}
