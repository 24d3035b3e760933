package ninja

import (
	"log/slog"
	"strings"
	"sync"
)

// Build is a build edge: the outputs a rule produces from its inputs.
//
//	build out | implicit-out: rule in | implicit || order-only |@ validation
//	  name = value
//
// The rule is referenced by name only. Whether it exists is for ninja to
// decide when it reads the file.
type Build struct {
	bindings

	rule            string
	outputs         []string
	implicitOutputs []string
	inputs          []string
	implicit        []string
	orderOnly       []string
	validations     []string
}

func newBuild(mu sync.Locker, outputs []string, rule string, inputs []string) (*Build, error) {
	if len(outputs) == 0 {
		return nil, ErrNoOutputs.With(slog.String("rule", rule))
	}

	if err := ValidateIdentifier("rule", rule); err != nil {
		return nil, err
	}

	if err := validatePaths(outputs); err != nil {
		return nil, err
	}

	if err := validatePaths(inputs); err != nil {
		return nil, err
	}

	return &Build{
		bindings: bindings{guard: guard{mu: mu}},
		rule:     rule,
		outputs:  append([]string(nil), outputs...),
		inputs:   append([]string(nil), inputs...),
	}, nil
}

// Kind returns [KindBuild].
func (b *Build) Kind() Kind { return KindBuild }

// Rule returns the name of the rule the edge runs.
func (b *Build) Rule() string { return b.rule }

// appendPaths validates paths and appends them to dst under b's lock.
func (b *Build) appendPaths(dst *[]string, paths []string) error {
	if err := validatePaths(paths); err != nil {
		return err
	}

	defer b.lock()()

	*dst = append(*dst, paths...)

	return nil
}

func (b *Build) copyPaths(src *[]string) []string {
	defer b.lock()()

	return append([]string(nil), (*src)...)
}

// AddOutputs appends explicit outputs.
func (b *Build) AddOutputs(paths ...string) error {
	return b.appendPaths(&b.outputs, paths)
}

// AddImplicitOutputs appends outputs that are not part of $out.
func (b *Build) AddImplicitOutputs(paths ...string) error {
	return b.appendPaths(&b.implicitOutputs, paths)
}

// AddInputs appends explicit inputs, which make up $in.
func (b *Build) AddInputs(paths ...string) error {
	return b.appendPaths(&b.inputs, paths)
}

// AddImplicitInputs appends inputs that are not part of $in but still
// trigger a rebuild when they change.
func (b *Build) AddImplicitInputs(paths ...string) error {
	return b.appendPaths(&b.implicit, paths)
}

// AddOrderOnly appends inputs that must be built first but never trigger a
// rebuild by themselves.
func (b *Build) AddOrderOnly(paths ...string) error {
	return b.appendPaths(&b.orderOnly, paths)
}

// AddValidations appends validation targets, built whenever the edge is.
func (b *Build) AddValidations(paths ...string) error {
	return b.appendPaths(&b.validations, paths)
}

// Outputs returns a copy of the explicit outputs.
func (b *Build) Outputs() []string { return b.copyPaths(&b.outputs) }

// ImplicitOutputs returns a copy of the implicit outputs.
func (b *Build) ImplicitOutputs() []string { return b.copyPaths(&b.implicitOutputs) }

// Inputs returns a copy of the explicit inputs.
func (b *Build) Inputs() []string { return b.copyPaths(&b.inputs) }

// ImplicitInputs returns a copy of the implicit inputs.
func (b *Build) ImplicitInputs() []string { return b.copyPaths(&b.implicit) }

// OrderOnly returns a copy of the order-only inputs.
func (b *Build) OrderOnly() []string { return b.copyPaths(&b.orderOnly) }

// Validations returns a copy of the validation targets.
func (b *Build) Validations() []string { return b.copyPaths(&b.validations) }

// String renders the edge header followed by its indented bindings.
func (b *Build) String() string { return b.renderString(b) }

func (b *Build) render(sb *strings.Builder) {
	sb.WriteString("build")
	writePaths(sb, b.outputs)

	if len(b.implicitOutputs) > 0 {
		sb.WriteString(" |")
		writePaths(sb, b.implicitOutputs)
	}

	sb.WriteString(": ")
	sb.WriteString(b.rule)
	writePaths(sb, b.inputs)

	if len(b.implicit) > 0 {
		sb.WriteString(" |")
		writePaths(sb, b.implicit)
	}

	if len(b.orderOnly) > 0 {
		sb.WriteString(" ||")
		writePaths(sb, b.orderOnly)
	}

	if len(b.validations) > 0 {
		sb.WriteString(" |@")
		writePaths(sb, b.validations)
	}

	sb.WriteByte('\n')
	b.scope.render(sb)
}
