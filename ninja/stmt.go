package ninja

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import (
	"strings"
	"sync"
)

// Kind identifies the type of a top-level statement.
type Kind int

const (
	KindVariable Kind = iota // variable
	KindRule                 // rule
	KindBuild                // build
	KindPool                 // pool
	KindDefault              // default
	KindInclude              // include
	KindSubninja             // subninja
)

// Statement is one top-level construct of a ninja file.
//
// Every statement is a self-contained renderer: its text depends only on its
// own state.
type Statement interface {
	Kind() Kind
	String() string

	// render writes the statement without taking the document lock.
	render(sb *strings.Builder)
}

// nopLocker is the lock used by documents created without [WithSync].
type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}

// guard is embedded by every statement. It holds the lock shared with the
// owning document.
type guard struct {
	mu sync.Locker
}

func (g guard) lock() func() {
	g.mu.Lock()

	return g.mu.Unlock
}

// renderString renders s into a new string while holding g's lock.
func (g guard) renderString(s Statement) string {
	defer g.lock()()

	var sb strings.Builder

	s.render(&sb)

	return sb.String()
}

// writePaths writes each path escaped and preceded by a space.
func writePaths(sb *strings.Builder, paths []string) {
	for _, p := range paths {
		sb.WriteByte(' ')
		sb.WriteString(EscapePath(p))
	}
}

// writeBinding writes "name = value" on its own line, indented when the
// binding belongs to a rule, build or pool block.
func writeBinding(sb *strings.Builder, indent bool, name string, value Value) {
	if indent {
		sb.WriteString("  ")
	}

	sb.WriteString(name)
	sb.WriteString(" = ")
	sb.WriteString(escapeLeadingSpace(value.String()))
	sb.WriteByte('\n')
}
