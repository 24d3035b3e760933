package manifest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/ngen/ninja"
)

// Manifest is a declarative description of a ninja build file.
//
// Vars are emitted first, in order, followed by Statements in order.
type Manifest struct {
	Vars       yaml.MapSlice `json:"vars,omitempty"       yaml:"vars,omitempty"`
	Statements []Statement   `json:"statements,omitempty" yaml:"statements,omitempty"`

	// Path is the file the manifest was read from, if any.
	Path string `json:"-" yaml:"-"`
}

// Statement holds exactly one ninja statement. When, if non-empty, is a
// condition that must evaluate to true for the statement to be emitted.
type Statement struct {
	Variable *Variable `json:"variable,omitempty" yaml:"variable,omitempty"`
	Pool     *Pool     `json:"pool,omitempty"     yaml:"pool,omitempty"`
	Rule     *Rule     `json:"rule,omitempty"     yaml:"rule,omitempty"`
	Build    *Build    `json:"build,omitempty"    yaml:"build,omitempty"`
	Default  []string  `json:"default,omitempty"  yaml:"default,omitempty"`
	Include  string    `json:"include,omitempty"  yaml:"include,omitempty"`
	Subninja string    `json:"subninja,omitempty" yaml:"subninja,omitempty"`
	When     string    `json:"when,omitempty"     yaml:"when,omitempty"`
}

// Variable is a top-level variable binding.
type Variable struct {
	Name  string `json:"name"  yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// Pool declares a ninja pool.
type Pool struct {
	Name  string `json:"name"  yaml:"name"`
	Depth int    `json:"depth" yaml:"depth"`
}

// Rule declares a ninja rule. Vars may only name reserved rule variables.
type Rule struct {
	Name    string        `json:"name"           yaml:"name"`
	Command string        `json:"command"        yaml:"command"`
	Vars    yaml.MapSlice `json:"vars,omitempty" yaml:"vars,omitempty"`
}

// Build declares a ninja build edge.
type Build struct {
	Rule            string        `json:"rule"                       yaml:"rule"`
	Outputs         []string      `json:"outputs"                    yaml:"outputs"`
	ImplicitOutputs []string      `json:"implicit_outputs,omitempty" yaml:"implicit_outputs,omitempty"`
	Inputs          []string      `json:"inputs,omitempty"           yaml:"inputs,omitempty"`
	Implicit        []string      `json:"implicit,omitempty"         yaml:"implicit,omitempty"`
	OrderOnly       []string      `json:"order_only,omitempty"       yaml:"order_only,omitempty"`
	Validations     []string      `json:"validations,omitempty"      yaml:"validations,omitempty"`
	Vars            yaml.MapSlice `json:"vars,omitempty"             yaml:"vars,omitempty"`
}

// Kind returns the kind of statement s holds.
// It returns an error unless exactly one kind is set.
func (s Statement) Kind() (ninja.Kind, error) {
	var kinds []ninja.Kind

	if s.Variable != nil {
		kinds = append(kinds, ninja.KindVariable)
	}

	if s.Pool != nil {
		kinds = append(kinds, ninja.KindPool)
	}

	if s.Rule != nil {
		kinds = append(kinds, ninja.KindRule)
	}

	if s.Build != nil {
		kinds = append(kinds, ninja.KindBuild)
	}

	if s.Default != nil {
		kinds = append(kinds, ninja.KindDefault)
	}

	if s.Include != "" {
		kinds = append(kinds, ninja.KindInclude)
	}

	if s.Subninja != "" {
		kinds = append(kinds, ninja.KindSubninja)
	}

	switch len(kinds) {
	case 1:
		return kinds[0], nil
	case 0:
		return 0, errors.New("statement has no kind")
	default:
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = k.String()
		}

		return 0, fmt.Errorf(
			"statement has more than one kind: %s", strings.Join(names, ", "),
		)
	}
}

// valueOf converts a decoded scalar or sequence into a ninja value.
// Strings are ninja templates, so $in and $out pass through unchanged.
// Sequence items are joined with a single space.
//
// Unquoted numbers are decoded before they get here, so their spelling is
// lost: 1.10 renders as 1.1 and 0x10 as 16. Values whose text matters must
// be quoted.
func valueOf(v any) (ninja.Value, error) {
	switch v := v.(type) {
	case nil:
		return ninja.Literal(""), nil
	case string:
		return ninja.Template(v), nil
	case float64:
		return ninja.Literal(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case bool, int, int64, uint64:
		return ninja.Literal(fmt.Sprint(v)), nil
	case []any:
		parts := make([]ninja.Value, 0, 2*len(v))

		for i, item := range v {
			if i > 0 {
				parts = append(parts, ninja.Literal(" "))
			}

			p, err := valueOf(item)
			if err != nil {
				return ninja.Value{}, err
			}

			parts = append(parts, p)
		}

		return ninja.Concat(parts...), nil
	default:
		return ninja.Value{}, fmt.Errorf("unsupported value type %T", v)
	}
}

// bindings converts an ordered map into ninja bindings, keeping order.
func bindings(ms yaml.MapSlice) ([]ninja.Binding, error) {
	out := make([]ninja.Binding, 0, len(ms))

	for _, item := range ms {
		name, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("variable name %v is not a string", item.Key)
		}

		v, err := valueOf(item.Value)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}

		out = append(out, ninja.Binding{Name: name, Value: v})
	}

	return out, nil
}
