package ninja

// Builder provides a chainable API over a [Document]. String arguments
// are ninja templates, so "$in" and "$out" pass through unchanged.
//
// The first error is kept and every later call becomes a no-op, so a chain
// needs a single check at the end:
//
//	b := ninja.NewBuilder(nil)
//	b.Rule("cc", "gcc -c $in -o $out").
//	    Description("CC $out").
//	    Build("cc", "main.o").Inputs("main.c").
//	    Default("main.o")
//	if err := b.Err(); err != nil {
//	    return err
//	}
//	fmt.Print(b.Document())
type Builder struct {
	doc *Document
	err error
}

// NewBuilder returns a Builder adding statements to doc. A nil doc is
// replaced by a new empty [Document].
func NewBuilder(doc *Document) *Builder {
	if doc == nil {
		doc = New()
	}

	return &Builder{doc: doc}
}

// Document returns the document being built.
func (b *Builder) Document() *Document { return b.doc }

// Err returns the first error encountered, if any.
func (b *Builder) Err() error { return b.err }

func (b *Builder) fail(err error) bool {
	if b.err == nil {
		b.err = err
	}

	return b.err != nil
}

// Variable appends a top-level variable.
func (b *Builder) Variable(name, value string) *Builder {
	if b.err == nil {
		_, err := b.doc.AddVariable(name, Template(value))
		b.fail(err)
	}

	return b
}

// Rule appends a rule and returns a builder for its bindings.
func (b *Builder) Rule(name, command string) *RuleBuilder {
	rb := &RuleBuilder{Builder: b}

	if b.err == nil {
		r, err := b.doc.AddRule(name, Template(command))
		if !b.fail(err) {
			rb.rule = r
		}
	}

	return rb
}

// Build appends a build edge and returns a builder for its paths and
// bindings.
func (b *Builder) Build(rule string, outputs ...string) *BuildBuilder {
	bb := &BuildBuilder{Builder: b}

	if b.err == nil {
		e, err := b.doc.AddBuild(outputs, rule)
		if !b.fail(err) {
			bb.build = e
		}
	}

	return bb
}

// Phony appends a phony edge making output an alias for inputs.
func (b *Builder) Phony(output string, inputs ...string) *BuildBuilder {
	return b.Build(PhonyRule, output).Inputs(inputs...)
}

// Pool appends a pool declaration.
func (b *Builder) Pool(name string, depth int) *Builder {
	if b.err == nil {
		_, err := b.doc.AddPool(name, depth)
		b.fail(err)
	}

	return b
}

// Default appends a default statement.
func (b *Builder) Default(targets ...string) *Builder {
	if b.err == nil {
		_, err := b.doc.AddDefault(targets...)
		b.fail(err)
	}

	return b
}

// Include appends an include statement.
func (b *Builder) Include(path string) *Builder {
	if b.err == nil {
		_, err := b.doc.AddInclude(path)
		b.fail(err)
	}

	return b
}

// Subninja appends a subninja statement.
func (b *Builder) Subninja(path string) *Builder {
	if b.err == nil {
		_, err := b.doc.AddSubninja(path)
		b.fail(err)
	}

	return b
}

// RuleBuilder configures the most recently added rule. The methods of the
// embedded [Builder] continue the chain with a new statement.
type RuleBuilder struct {
	*Builder

	rule *Rule
}

// Handle returns the rule, or nil if the chain has failed.
func (rb *RuleBuilder) Handle() *Rule { return rb.rule }

func (rb *RuleBuilder) do(f func(r *Rule) error) *RuleBuilder {
	if rb.err == nil {
		rb.fail(f(rb.rule))
	}

	return rb
}

// Set binds one of the reserved rule variables.
func (rb *RuleBuilder) Set(name, value string) *RuleBuilder {
	return rb.do(func(r *Rule) error { return r.Set(name, Template(value)) })
}

// Description sets the line ninja prints while the rule runs.
func (rb *RuleBuilder) Description(text string) *RuleBuilder {
	return rb.do(func(r *Rule) error { return r.Description(text) })
}

// Depfile names the Makefile-style dependency file the command writes.
func (rb *RuleBuilder) Depfile(path string) *RuleBuilder {
	return rb.do(func(r *Rule) error { return r.Depfile(path) })
}

// DepsGCC stores depfile dependencies in ninja's log as deps = gcc.
func (rb *RuleBuilder) DepsGCC() *RuleBuilder {
	return rb.do(func(r *Rule) error { return r.DepsGCC() })
}

// DepsMSVC parses /showIncludes output, optionally with a localized prefix.
func (rb *RuleBuilder) DepsMSVC(prefix string) *RuleBuilder {
	return rb.do(func(r *Rule) error { return r.DepsMSVC(prefix) })
}

// Dyndep names the file that supplies dynamically discovered dependencies.
func (rb *RuleBuilder) Dyndep(path string) *RuleBuilder {
	return rb.do(func(r *Rule) error { return r.Dyndep(path) })
}

// Generator marks the rule as regenerating the build file.
func (rb *RuleBuilder) Generator() *RuleBuilder {
	return rb.do(func(r *Rule) error { return r.Generator() })
}

// Restat has ninja re-stat outputs after the command runs.
func (rb *RuleBuilder) Restat() *RuleBuilder {
	return rb.do(func(r *Rule) error { return r.Restat() })
}

// Rspfile writes content to a response file before the command runs.
func (rb *RuleBuilder) Rspfile(path, content string) *RuleBuilder {
	return rb.do(func(r *Rule) error { return r.Rspfile(path, content) })
}

// UsePool assigns the rule's commands to the named pool.
func (rb *RuleBuilder) UsePool(name string) *RuleBuilder {
	return rb.do(func(r *Rule) error { return r.Pool(name) })
}

// Console runs the rule in the console pool.
func (rb *RuleBuilder) Console() *RuleBuilder {
	return rb.do(func(r *Rule) error { return r.Console() })
}

// BuildBuilder configures the most recently added build edge. The methods
// of the embedded [Builder] continue the chain with a new statement.
type BuildBuilder struct {
	*Builder

	build *Build
}

// Handle returns the build edge, or nil if the chain has failed.
func (bb *BuildBuilder) Handle() *Build { return bb.build }

func (bb *BuildBuilder) do(f func(e *Build) error) *BuildBuilder {
	if bb.err == nil {
		bb.fail(f(bb.build))
	}

	return bb
}

// Outputs appends explicit outputs.
func (bb *BuildBuilder) Outputs(paths ...string) *BuildBuilder {
	return bb.do(func(e *Build) error { return e.AddOutputs(paths...) })
}

// ImplicitOutputs appends outputs that $out does not expand to.
func (bb *BuildBuilder) ImplicitOutputs(paths ...string) *BuildBuilder {
	return bb.do(func(e *Build) error { return e.AddImplicitOutputs(paths...) })
}

// Inputs appends explicit inputs.
func (bb *BuildBuilder) Inputs(paths ...string) *BuildBuilder {
	return bb.do(func(e *Build) error { return e.AddInputs(paths...) })
}

// Implicit appends inputs that $in does not expand to.
func (bb *BuildBuilder) Implicit(paths ...string) *BuildBuilder {
	return bb.do(func(e *Build) error { return e.AddImplicitInputs(paths...) })
}

// OrderOnly appends inputs that must exist but never trigger a rebuild.
func (bb *BuildBuilder) OrderOnly(paths ...string) *BuildBuilder {
	return bb.do(func(e *Build) error { return e.AddOrderOnly(paths...) })
}

// Validations appends validation targets.
func (bb *BuildBuilder) Validations(paths ...string) *BuildBuilder {
	return bb.do(func(e *Build) error { return e.AddValidations(paths...) })
}

// Set binds an edge-local variable.
func (bb *BuildBuilder) Set(name, value string) *BuildBuilder {
	return bb.do(func(e *Build) error { return e.Set(name, Template(value)) })
}

// Description overrides the rule description for this edge.
func (bb *BuildBuilder) Description(text string) *BuildBuilder {
	return bb.do(func(e *Build) error { return e.Description(text) })
}

// Dyndep names the dyndep file for this edge.
func (bb *BuildBuilder) Dyndep(path string) *BuildBuilder {
	return bb.do(func(e *Build) error { return e.Dyndep(path) })
}

// UsePool assigns the edge's command to the named pool.
func (bb *BuildBuilder) UsePool(name string) *BuildBuilder {
	return bb.do(func(e *Build) error { return e.Pool(name) })
}

// Console runs this edge in the console pool.
func (bb *BuildBuilder) Console() *BuildBuilder {
	return bb.do(func(e *Build) error { return e.Console() })
}
