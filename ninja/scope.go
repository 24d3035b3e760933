package ninja

import (
	"log/slog"
	"strings"
)

// Binding is a single "name = value" entry of a [Scope].
type Binding struct {
	Name  string
	Value Value
}

// Scope is an ordered list of bindings. Duplicate names are kept: ninja
// evaluates bindings in order and the last definition wins, so the emitted
// order is part of the file's meaning.
type Scope struct {
	bindings []Binding
}

// Len returns the number of bindings in s.
func (s *Scope) Len() int { return len(s.bindings) }

// Bindings returns a copy of the bindings in insertion order.
func (s *Scope) Bindings() []Binding {
	return append([]Binding(nil), s.bindings...)
}

// Lookup returns the last value bound to name.
func (s *Scope) Lookup(name string) (Value, bool) {
	for i := len(s.bindings) - 1; i >= 0; i-- {
		if s.bindings[i].Name == name {
			return s.bindings[i].Value, true
		}
	}

	return Value{}, false
}

// add validates and appends a binding.
func (s *Scope) add(name string, value Value) error {
	if err := ValidateIdentifier("variable", name); err != nil {
		return err
	}

	if err := value.Validate(); err != nil {
		return err
	}

	s.bindings = append(s.bindings, Binding{Name: name, Value: value})

	return nil
}

// replace validates value and overwrites the first binding of name in
// place, appending it if there is none.
func (s *Scope) replace(name string, value Value) error {
	for i := range s.bindings {
		if s.bindings[i].Name != name {
			continue
		}

		if err := value.Validate(); err != nil {
			return err
		}

		s.bindings[i].Value = value

		return nil
	}

	return s.add(name, value)
}

func (s *Scope) render(sb *strings.Builder) {
	for _, b := range s.bindings {
		writeBinding(sb, true, b.Name, b.Value)
	}
}

// reservedRuleBindings are the only names ninja accepts inside a rule block.
var reservedRuleBindings = map[string]struct{}{
	"command":          {},
	"depfile":          {},
	"dyndep":           {},
	"description":      {},
	"deps":             {},
	"generator":        {},
	"pool":             {},
	"restat":           {},
	"rspfile":          {},
	"rspfile_content":  {},
	"msvc_deps_prefix": {},
}

// IsReservedRuleBinding reports whether name may be bound inside a rule.
func IsReservedRuleBinding(name string) bool {
	_, ok := reservedRuleBindings[name]

	return ok
}

// bindings holds the variable scope shared by rules and build edges along
// with the setters for ninja's well-known variables.
type bindings struct {
	guard

	scope Scope
	// check rejects names that may not be bound in this block.
	check func(name string) error
	// unique names replace their previous binding instead of appending.
	unique map[string]bool
}

// Set appends a binding. Setting the same name twice emits both lines.
func (b *bindings) Set(name string, value Value) error {
	defer b.lock()()

	return b.set(name, value)
}

func (b *bindings) set(name string, value Value) error {
	if b.check != nil {
		if err := b.check(name); err != nil {
			return err
		}
	}

	if b.unique[name] {
		return b.scope.replace(name, value)
	}

	return b.scope.add(name, value)
}

// Bindings returns a copy of the bindings in insertion order.
func (b *bindings) Bindings() []Binding {
	defer b.lock()()

	return b.scope.Bindings()
}

// Lookup returns the last value bound to name.
func (b *bindings) Lookup(name string) (Value, bool) {
	defer b.lock()()

	return b.scope.Lookup(name)
}

// Description sets the text ninja prints when running the command.
func (b *bindings) Description(text string) error {
	return b.Set("description", Template(text))
}

// Depfile sets the path of a Makefile-syntax dependency file produced by the
// command.
func (b *bindings) Depfile(path string) error {
	return b.Set("depfile", Template(path))
}

// DepsGCC sets "deps = gcc".
func (b *bindings) DepsGCC() error {
	return b.Set("deps", Literal("gcc"))
}

// DepsMSVC sets "deps = msvc" and, when prefix is not empty,
// "msvc_deps_prefix".
func (b *bindings) DepsMSVC(prefix string) error {
	defer b.lock()()

	if err := b.set("deps", Literal("msvc")); err != nil {
		return err
	}

	if prefix == "" {
		return nil
	}

	return b.set("msvc_deps_prefix", Literal(prefix))
}

// Dyndep sets the path of a dynamic dependency file.
func (b *bindings) Dyndep(path string) error {
	return b.Set("dyndep", Template(path))
}

// Generator sets "generator = 1", marking the command as the one that
// regenerates the build file.
func (b *bindings) Generator() error {
	return b.Set("generator", Literal("1"))
}

// Restat sets "restat = 1".
func (b *bindings) Restat() error {
	return b.Set("restat", Literal("1"))
}

// Rspfile sets both "rspfile" and "rspfile_content". Ninja requires the two
// together.
func (b *bindings) Rspfile(path, content string) error {
	defer b.lock()()

	if err := b.set("rspfile", Template(path)); err != nil {
		return err
	}

	return b.set("rspfile_content", Template(content))
}

// Pool assigns the command to the named pool.
func (b *bindings) Pool(name string) error {
	if err := ValidateIdentifier("pool", name); err != nil {
		return err
	}

	return b.Set("pool", Literal(name))
}

// Console assigns the command to the built-in console pool.
func (b *bindings) Console() error {
	return b.Pool(ConsolePool)
}

func checkRuleBinding(name string) error {
	if !IsReservedRuleBinding(name) {
		return ErrUnexpectedRuleVar.With(slog.String("name", name))
	}

	return nil
}
