package manifest

import (
	"maps"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/ngen/pkg"
)

// Env holds the values visible to "when" conditions in YAML and JSON
// manifests and to expressions in HCL manifests. It is safe for concurrent
// use.
//
// Conditions are expr-lang programs (https://expr-lang.org) that see:
//
//	platform            GOOS of the target platform
//	arch                GOARCH of the target platform
//	target              GNU-style "arch-os" pair (x86_64-linux)
//	params              map of -D key=value parameters
//	env(name)           process environment lookup
//	cwd()               working directory
//	file.exists(p)      file.isDir(p)  file.isRegular(p)
//	path.abs(p)         path.cat(p...) path.rel(from, to)
//	path.base(p)        path.ext(p)
//	mung.prefix(list, items...)
//	mung.prefixif(list, predicate, items...)
type Env struct {
	host    host
	params  map[string]string
	environ map[string]string

	once     sync.Once
	vars     map[string]any
	programs sync.Map // condition source -> *vm.Program
}

func newEnv(h host, params, environ map[string]string) *Env {
	e := &Env{
		host:    h,
		params:  maps.Clone(params),
		environ: maps.Clone(environ),
	}

	if e.params == nil {
		e.params = map[string]string{}
	}

	if e.environ == nil {
		e.environ = map[string]string{}
	}

	return e
}

// Platform returns the GOOS of the target platform.
func (e *Env) Platform() string { return e.host.OS }

// Arch returns the GOARCH of the target platform.
func (e *Env) Arch() string { return e.host.Arch }

// Param returns the value of parameter name and whether it was set.
func (e *Env) Param(name string) (string, bool) {
	v, ok := e.params[name]

	return v, ok
}

func (e *Env) exprVars() map[string]any {
	e.once.Do(func() {
		e.vars = map[string]any{
			"platform": e.host.OS,
			"arch":     e.host.Arch,
			"target":   e.host.Target(),
			"params":   e.params,
			"env":      func(name string) string { return e.environ[name] },
			"cwd":      func() string { return pathAbs(".") },
			"file": map[string]any{
				"exists":    fileExists,
				"isDir":     fileIsDir,
				"isRegular": fileIsRegular,
			},
			"path": map[string]any{
				"abs":  pathAbs,
				"cat":  pathCat,
				"rel":  pathRel,
				"base": pathBase,
				"ext":  pathExt,
			},
			"mung": map[string]any{
				"prefix":   mungPrefix,
				"prefixif": mungPrefixIf,
			},
		}
	})

	return e.vars
}

// Eval reports whether cond holds. An empty condition always holds.
func (e *Env) Eval(cond string) (bool, error) {
	cond = strings.TrimSpace(cond)
	if cond == "" {
		return true, nil
	}

	program, err := e.compile(cond)
	if err != nil {
		return false, err
	}

	out, err := expr.Run(program, e.exprVars())
	if err != nil {
		return false, pkg.ErrEvaluateCondition.Wrap(err).Wrapf("when: %s", cond)
	}

	ok, isBool := out.(bool)
	if !isBool {
		return false, pkg.ErrEvaluateCondition.Wrapf("when: %s: result is %T, not bool", cond, out)
	}

	return ok, nil
}

func (e *Env) compile(cond string) (*vm.Program, error) {
	if p, ok := e.programs.Load(cond); ok {
		return p.(*vm.Program), nil //nolint:forcetypeassert
	}

	program, err := expr.Compile(cond, expr.Env(e.exprVars()), expr.AsBool())
	if err != nil {
		return nil, pkg.ErrEvaluateCondition.Wrap(err).Wrapf("when: %s", cond)
	}

	p, _ := e.programs.LoadOrStore(cond, program)

	return p.(*vm.Program), nil //nolint:forcetypeassert
}
