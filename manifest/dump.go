package manifest

import (
	"context"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/ardnew/ngen/ninja"
	"github.com/ardnew/ngen/pkg"
)

// FromDocument returns a manifest that reproduces doc when applied to an
// empty document. Every statement, variables included, is kept in
// document order. Values are recorded in their rendered ninja form.
func FromDocument(doc *ninja.Document) *Manifest {
	var m Manifest

	for _, st := range doc.Statements() {
		var s Statement

		switch st := st.(type) {
		case *ninja.Variable:
			s.Variable = &Variable{Name: st.Name(), Value: st.Value().String()}

		case *ninja.Pool:
			s.Pool = &Pool{Name: st.Name(), Depth: st.Depth()}

		case *ninja.Rule:
			s.Rule = &Rule{
				Name:    st.Name(),
				Command: st.Command().String(),
				Vars:    mapSlice(st.Bindings(), "command"),
			}

		case *ninja.Build:
			s.Build = &Build{
				Rule:            st.Rule(),
				Outputs:         st.Outputs(),
				ImplicitOutputs: st.ImplicitOutputs(),
				Inputs:          st.Inputs(),
				Implicit:        st.ImplicitInputs(),
				OrderOnly:       st.OrderOnly(),
				Validations:     st.Validations(),
				Vars:            mapSlice(st.Bindings(), ""),
			}

		case *ninja.Default:
			s.Default = st.Targets()

		case *ninja.Include:
			if st.Kind() == ninja.KindSubninja {
				s.Subninja = st.Path()
			} else {
				s.Include = st.Path()
			}

		default:
			continue
		}

		m.Statements = append(m.Statements, s)
	}

	return &m
}

func mapSlice(bs []ninja.Binding, skip string) yaml.MapSlice {
	var ms yaml.MapSlice

	for _, b := range bs {
		if b.Name != skip {
			ms = append(ms, yaml.MapItem{Key: b.Name, Value: b.Value.String()})
		}
	}

	return ms
}

// uniqueKeys reports the first name bound twice in ms. Mappings in every
// dump format hold a name once, so a repeated binding cannot be encoded.
func uniqueKeys(ms yaml.MapSlice) error {
	seen := make(map[any]bool, len(ms))

	for _, item := range ms {
		if seen[item.Key] {
			return fmt.Errorf("binding %v set more than once", item.Key)
		}

		seen[item.Key] = true
	}

	return nil
}

func checkBindings(m *Manifest) error {
	if err := uniqueKeys(m.Vars); err != nil {
		return fmt.Errorf("vars: %w", err)
	}

	for i, s := range m.Statements {
		var err error

		switch {
		case s.Rule != nil:
			err = uniqueKeys(s.Rule.Vars)
		case s.Build != nil:
			err = uniqueKeys(s.Build.Vars)
		}

		if err != nil {
			return fmt.Errorf("statement %d: %w", i, err)
		}
	}

	return nil
}

// Marshal encodes m in the given format.
//
// HCL output drops "when" conditions, which are only meaningful in YAML and
// JSON manifests. A rule or build edge that binds the same name twice
// cannot be encoded in any format and fails with [pkg.ErrInvalidFormat].
func Marshal(ctx context.Context, m *Manifest, format Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if err := checkBindings(m); err != nil {
		return nil, pkg.ErrInvalidFormat.Wrapf("%v: %w", format, err)
	}

	switch format {
	case FormatYAML:
		data, err = yaml.MarshalContext(ctx, m, yaml.Indent(2), yaml.IndentSequence(true))
	case FormatJSON:
		data, err = yaml.MarshalContext(ctx, m, yaml.JSON())
	case FormatHCL:
		return encodeHCL(m)
	default:
		return nil, pkg.ErrInvalidFormat.Wrapf("%v", format)
	}

	if err != nil {
		return nil, pkg.ErrYAMLMarshal.Wrap(err)
	}

	return data, nil
}

func encodeHCL(m *Manifest) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	block := func(typ string, labels ...string) *hclwrite.Body {
		if len(root.Blocks()) > 0 {
			root.AppendNewline()
		}

		return root.AppendNewBlock(typ, labels).Body()
	}

	for _, item := range m.Vars {
		block("variable", fmt.Sprint(item.Key)).
			SetAttributeValue("value", cty.StringVal(text(item.Value)))
	}

	for _, s := range m.Statements {
		switch {
		case s.Variable != nil:
			block("variable", s.Variable.Name).
				SetAttributeValue("value", cty.StringVal(text(s.Variable.Value)))

		case s.Pool != nil:
			block("pool", s.Pool.Name).
				SetAttributeValue("depth", cty.NumberIntVal(int64(s.Pool.Depth)))

		case s.Rule != nil:
			b := block("rule", s.Rule.Name)
			b.SetAttributeValue("command", cty.StringVal(s.Rule.Command))

			if err := hclVarsBlock(b, s.Rule.Vars); err != nil {
				return nil, err
			}

		case s.Build != nil:
			b := block("build", s.Build.Rule)
			b.SetAttributeValue("outputs", stringList(s.Build.Outputs))

			for _, attr := range []struct {
				name  string
				paths []string
			}{
				{"implicit_outputs", s.Build.ImplicitOutputs},
				{"inputs", s.Build.Inputs},
				{"implicit", s.Build.Implicit},
				{"order_only", s.Build.OrderOnly},
				{"validations", s.Build.Validations},
			} {
				if len(attr.paths) > 0 {
					b.SetAttributeValue(attr.name, stringList(attr.paths))
				}
			}

			if err := hclVarsBlock(b, s.Build.Vars); err != nil {
				return nil, err
			}

		case s.Default != nil:
			block("default").SetAttributeValue("targets", stringList(s.Default))

		case s.Include != "":
			block("include").SetAttributeValue("path", cty.StringVal(s.Include))

		case s.Subninja != "":
			block("subninja").SetAttributeValue("path", cty.StringVal(s.Subninja))
		}
	}

	return hclwrite.Format(f.Bytes()), nil
}

func hclVarsBlock(parent *hclwrite.Body, vars yaml.MapSlice) error {
	if len(vars) == 0 {
		return nil
	}

	body := parent.AppendNewBlock("vars", nil).Body()

	for _, item := range vars {
		name := fmt.Sprint(item.Key)
		if !hclsyntax.ValidIdentifier(name) {
			return pkg.ErrInvalidFormat.Wrapf("variable %q is not a valid HCL attribute name", name)
		}

		body.SetAttributeValue(name, cty.StringVal(text(item.Value)))
	}

	return nil
}

func stringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}

	vals := make([]cty.Value, len(items))
	for i, s := range items {
		vals[i] = cty.StringVal(s)
	}

	return cty.ListVal(vals)
}

// text renders a decoded manifest value in ninja syntax.
func text(v any) string {
	val, err := valueOf(v)
	if err != nil {
		return fmt.Sprint(v)
	}

	return val.String()
}
