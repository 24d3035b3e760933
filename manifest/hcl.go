package manifest

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/ardnew/ngen/pkg"
)

// Block bodies of an HCL manifest. Every statement block accepts an
// optional boolean "when" attribute; statements whose condition is false
// are dropped while decoding.
type (
	hclVariable struct {
		Value cty.Value `hcl:"value"`
		When  *bool     `hcl:"when,optional"`
	}

	hclPool struct {
		When  *bool `hcl:"when,optional"`
		Depth int   `hcl:"depth"`
	}

	hclRule struct {
		When    *bool    `hcl:"when,optional"`
		Vars    *hclVars `hcl:"vars,block"`
		Command string   `hcl:"command"`
	}

	hclBuild struct {
		When            *bool    `hcl:"when,optional"`
		Vars            *hclVars `hcl:"vars,block"`
		Outputs         []string `hcl:"outputs"`
		ImplicitOutputs []string `hcl:"implicit_outputs,optional"`
		Inputs          []string `hcl:"inputs,optional"`
		Implicit        []string `hcl:"implicit,optional"`
		OrderOnly       []string `hcl:"order_only,optional"`
		Validations     []string `hcl:"validations,optional"`
	}

	hclDefault struct {
		When    *bool    `hcl:"when,optional"`
		Targets []string `hcl:"targets"`
	}

	hclInclude struct {
		When *bool  `hcl:"when,optional"`
		Path string `hcl:"path"`
	}

	// hclVars is a block of arbitrary attributes kept in source order.
	hclVars struct {
		Body hcl.Body `hcl:",remain"`
	}
)

// EvalContext returns the HCL evaluation context for the environment.
//
// Variables: platform, arch, target, params.<name>, env.<NAME>.
// Functions: concat, format, join, lower, upper, param(name, default),
// file_exists(path).
func (e *Env) EvalContext() *hcl.EvalContext {
	strs := func(m map[string]string) cty.Value {
		obj := make(map[string]cty.Value, len(m))
		for k, v := range m {
			obj[k] = cty.StringVal(v)
		}

		return cty.ObjectVal(obj)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"platform": cty.StringVal(e.host.OS),
			"arch":     cty.StringVal(e.host.Arch),
			"target":   cty.StringVal(e.host.Target()),
			"params":   strs(e.params),
			"env":      strs(e.environ),
		},
		Functions: map[string]function.Function{
			"concat":      stdlib.ConcatFunc,
			"format":      stdlib.FormatFunc,
			"join":        stdlib.JoinFunc,
			"lower":       stdlib.LowerFunc,
			"upper":       stdlib.UpperFunc,
			"param":       e.paramFunc(),
			"file_exists": fileExistsFunc,
		},
	}
}

func (e *Env) paramFunc() function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "name", Type: cty.String},
			{Name: "default", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			if v, ok := e.params[args[0].AsString()]; ok {
				return cty.StringVal(v), nil
			}

			return args[1], nil
		},
	})
}

var fileExistsFunc = function.New(&function.Spec{
	Params: []function.Parameter{{Name: "path", Type: cty.String}},
	Type:   function.StaticReturnType(cty.Bool),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return cty.BoolVal(fileExists(args[0].AsString())), nil
	},
})

// decodeHCL decodes an HCL manifest. Blocks are kept in source order.
func decodeHCL(env *Env, path string, data []byte) (*Manifest, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, pkg.ErrDecodeManifest.Wrap(diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, pkg.ErrDecodeManifest.Wrapf("%s: unexpected body type %T", path, file.Body)
	}

	d := hclDecoder{ctx: env.EvalContext()}
	m := &Manifest{Path: path}

	for _, attr := range sortedAttributes(body.Attributes) {
		diags = diags.Append(&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unexpected attribute",
			Detail: fmt.Sprintf(
				"Top-level attribute %q is not allowed; declare it in a variable block.",
				attr.Name,
			),
			Subject: attr.NameRange.Ptr(),
		})
	}

	for _, block := range body.Blocks {
		stmt, keep, bd := d.statement(block)

		diags = append(diags, bd...)
		if keep {
			m.Statements = append(m.Statements, stmt)
		}
	}

	if diags.HasErrors() {
		return nil, pkg.ErrDecodeManifest.Wrap(diags)
	}

	return m, nil
}

type hclDecoder struct {
	ctx *hcl.EvalContext
}

// statement decodes one block and reports whether its condition holds.
func (d hclDecoder) statement(b *hclsyntax.Block) (Statement, bool, hcl.Diagnostics) {
	var (
		stmt  Statement
		when  *bool
		diags hcl.Diagnostics
	)

	switch b.Type {
	case "variable":
		var v hclVariable
		if diags = d.decode(b, 1, &v); !diags.HasErrors() {
			s, err := ctyString(v.Value)
			if err != nil {
				diags = diags.Append(valueDiag(b.DefRange(), err))
			}

			stmt.Variable = &Variable{Name: b.Labels[0], Value: s}
			when = v.When
		}

	case "pool":
		var v hclPool
		if diags = d.decode(b, 1, &v); !diags.HasErrors() {
			stmt.Pool = &Pool{Name: b.Labels[0], Depth: v.Depth}
			when = v.When
		}

	case "rule":
		var v hclRule
		if diags = d.decode(b, 1, &v); !diags.HasErrors() {
			vars, vd := d.vars(v.Vars)
			diags = append(diags, vd...)
			stmt.Rule = &Rule{Name: b.Labels[0], Command: v.Command, Vars: vars}
			when = v.When
		}

	case "build":
		var v hclBuild
		if diags = d.decode(b, 1, &v); !diags.HasErrors() {
			vars, vd := d.vars(v.Vars)
			diags = append(diags, vd...)
			stmt.Build = &Build{
				Rule:            b.Labels[0],
				Outputs:         v.Outputs,
				ImplicitOutputs: v.ImplicitOutputs,
				Inputs:          v.Inputs,
				Implicit:        v.Implicit,
				OrderOnly:       v.OrderOnly,
				Validations:     v.Validations,
				Vars:            vars,
			}
			when = v.When
		}

	case "default":
		var v hclDefault
		if diags = d.decode(b, 0, &v); !diags.HasErrors() {
			stmt.Default = v.Targets
			if stmt.Default == nil {
				stmt.Default = []string{}
			}

			when = v.When
		}

	case "include", "subninja":
		var v hclInclude
		if diags = d.decode(b, 0, &v); !diags.HasErrors() {
			if b.Type == "include" {
				stmt.Include = v.Path
			} else {
				stmt.Subninja = v.Path
			}

			when = v.When
		}

	default:
		diags = diags.Append(&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported block type",
			Detail:   fmt.Sprintf("Blocks of type %q are not expected here.", b.Type),
			Subject:  b.TypeRange.Ptr(),
		})
	}

	if diags.HasErrors() {
		return Statement{}, false, diags
	}

	return stmt, when == nil || *when, diags
}

// decode checks the label count of b and decodes its body into v.
func (d hclDecoder) decode(b *hclsyntax.Block, labels int, v any) hcl.Diagnostics {
	if len(b.Labels) != labels {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Wrong number of labels",
			Detail: fmt.Sprintf(
				"A %s block takes %d label(s), got %d.", b.Type, labels, len(b.Labels),
			),
			Subject: b.DefRange().Ptr(),
		}}
	}

	return gohcl.DecodeBody(b.Body, d.ctx, v)
}

// vars evaluates the attributes of a vars block in source order.
func (d hclDecoder) vars(v *hclVars) (yaml.MapSlice, hcl.Diagnostics) {
	if v == nil {
		return nil, nil
	}

	attrs, diags := v.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	list := slices.SortedFunc(maps.Values(attrs), func(a, b *hcl.Attribute) int {
		return cmp.Compare(a.Range.Start.Byte, b.Range.Start.Byte)
	})

	ms := make(yaml.MapSlice, 0, len(list))

	for _, a := range list {
		val, vd := a.Expr.Value(d.ctx)

		diags = append(diags, vd...)
		if vd.HasErrors() {
			continue
		}

		s, err := ctyString(val)
		if err != nil {
			diags = diags.Append(valueDiag(a.Expr.Range(), err))

			continue
		}

		ms = append(ms, yaml.MapItem{Key: a.Name, Value: s})
	}

	return ms, diags
}

func sortedAttributes(attrs hclsyntax.Attributes) []*hclsyntax.Attribute {
	return slices.SortedFunc(maps.Values(attrs), func(a, b *hclsyntax.Attribute) int {
		return cmp.Compare(a.SrcRange.Start.Byte, b.SrcRange.Start.Byte)
	})
}

func valueDiag(rng hcl.Range, err error) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Invalid value",
		Detail:   err.Error(),
		Subject:  rng.Ptr(),
	}
}

// ctyString renders a primitive value as a string and a collection of
// primitives as their space-separated strings.
func ctyString(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", nil
	}

	if !v.IsWhollyKnown() {
		return "", errors.New("value is not known")
	}

	ty := v.Type()
	if ty.IsListType() || ty.IsTupleType() || ty.IsSetType() {
		parts := make([]string, 0, v.LengthInt())

		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()

			s, err := ctyString(elem)
			if err != nil {
				return "", err
			}

			parts = append(parts, s)
		}

		return strings.Join(parts, " "), nil
	}

	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("cannot use %s as a ninja value", ty.FriendlyName())
	}

	return s.AsString(), nil
}
