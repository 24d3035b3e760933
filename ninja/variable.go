package ninja

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// keywords start a statement when they begin a line, so ninja never reads
// them as the name of a top-level binding.
var keywords = []string{"build", "default", "include", "pool", "rule", "subninja"}

// Variable is a top-level binding: "name = value".
type Variable struct {
	guard

	name  string
	value Value
}

func newVariable(mu sync.Locker, name string, value Value) (*Variable, error) {
	if err := ValidateIdentifier("variable", name); err != nil {
		return nil, err
	}

	if slices.Contains(keywords, name) {
		return nil, ErrReservedName.With(slog.String("name", name))
	}

	if err := value.Validate(); err != nil {
		return nil, err
	}

	return &Variable{guard: guard{mu: mu}, name: name, value: value}, nil
}

// Kind returns [KindVariable].
func (v *Variable) Kind() Kind { return KindVariable }

// Name returns the variable's name.
func (v *Variable) Name() string { return v.name }

// Value returns the variable's current value.
func (v *Variable) Value() Value {
	defer v.lock()()

	return v.value
}

// SetValue replaces the variable's value.
func (v *Variable) SetValue(value Value) error {
	if err := value.Validate(); err != nil {
		return err
	}

	defer v.lock()()

	v.value = value

	return nil
}

// String renders the variable as a single line.
func (v *Variable) String() string { return v.renderString(v) }

func (v *Variable) render(sb *strings.Builder) {
	writeBinding(sb, false, v.name, v.value)
}
