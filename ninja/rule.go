package ninja

import (
	"strings"
	"sync"
)

// PhonyRule is the name of ninja's built-in rule that runs no command.
const PhonyRule = "phony"

// Rule is a named command template. The command is always its first
// binding; further bindings are limited to the variables ninja accepts in a
// rule block (see [IsReservedRuleBinding]).
//
//	rule cc
//	  command = gcc -c $in -o $out
//	  description = CC $out
type Rule struct {
	bindings

	name string
}

func newRule(mu sync.Locker, name string, command Value) (*Rule, error) {
	if err := ValidateIdentifier("rule", name); err != nil {
		return nil, err
	}

	r := &Rule{
		bindings: bindings{
			guard:  guard{mu: mu},
			check:  checkRuleBinding,
			unique: map[string]bool{"command": true},
		},
		name: name,
	}

	if err := r.set("command", command); err != nil {
		return nil, err
	}

	return r, nil
}

// Kind returns [KindRule].
func (r *Rule) Kind() Kind { return KindRule }

// Name returns the rule's name.
func (r *Rule) Name() string { return r.name }

// Command returns the rule's command.
func (r *Rule) Command() Value {
	v, _ := r.Lookup("command")

	return v
}

// SetCommand replaces the rule's command.
func (r *Rule) SetCommand(command Value) error {
	return r.Set("command", command)
}

// String renders the rule header followed by its indented bindings.
func (r *Rule) String() string { return r.renderString(r) }

func (r *Rule) render(sb *strings.Builder) {
	sb.WriteString("rule ")
	sb.WriteString(r.name)
	sb.WriteByte('\n')
	r.scope.render(sb)
}
