package ninja

import (
	"log/slog"
	"strings"
)

type partKind uint8

const (
	partLiteral partKind = iota
	partList
	partRef
	partTemplate
)

type part struct {
	text  string
	items []string
	kind  partKind
}

// Value is the right-hand side of a binding. It is an immutable sequence of
// parts, each of which is a literal, a list of literals, a variable reference
// or a template already written in ninja syntax.
//
// References are never resolved here: Ref("out") renders as "$out" and ninja
// substitutes it when it reads the file.
//
// The zero Value renders as the empty string.
type Value struct {
	parts []part
}

// Literal returns a Value holding s verbatim. It is escaped when rendered.
func Literal(s string) Value {
	return Value{parts: []part{{kind: partLiteral, text: s}}}
}

// List returns a Value holding the given literal tokens joined by a single
// space.
func List(items ...string) Value {
	return ListSep(" ", items...)
}

// ListSep returns a Value holding the given literal tokens joined by sep.
// Each token and the separator are escaped when rendered. Empty tokens are
// kept.
func ListSep(sep string, items ...string) Value {
	return Value{parts: []part{{
		kind:  partList,
		text:  sep,
		items: append([]string(nil), items...),
	}}}
}

// Ref returns a Value referring to the variable name. It renders as an
// interpolation token ("$name" or "${name}").
func Ref(name string) Value {
	return Value{parts: []part{{kind: partRef, text: name}}}
}

// Template returns a Value holding s as text already written in ninja value
// syntax, such as "gcc -c $in -o $out". It is emitted verbatim and checked
// for malformed "$" escapes when attached to a statement.
func Template(s string) Value {
	return Value{parts: []part{{kind: partTemplate, text: s}}}
}

// Concat returns the concatenation of values.
func Concat(values ...Value) Value {
	n := 0
	for _, v := range values {
		n += len(v.parts)
	}

	parts := make([]part, 0, n)
	for _, v := range values {
		parts = append(parts, v.parts...)
	}

	return Value{parts: parts}
}

// IsZero reports whether v has no parts.
func (v Value) IsZero() bool { return len(v.parts) == 0 }

// Validate returns an error wrapping [ErrInvalidInput] if any part of v
// cannot be written.
func (v Value) Validate() error {
	for _, p := range v.parts {
		var err error

		switch p.kind {
		case partLiteral:
			err = ValidateText(p.text)

		case partList:
			err = ValidateText(p.text)
			for _, item := range p.items {
				if err != nil {
					break
				}

				err = ValidateText(item)
			}

		case partRef:
			if !IsIdentifier(p.text) {
				err = ErrBadIdentifier.With(
					slog.String("kind", "reference"),
					slog.String("name", p.text),
				)
			}

		case partTemplate:
			err = validateTemplate(p.text)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// String renders v in ninja value syntax.
func (v Value) String() string {
	rendered := make([]string, len(v.parts))

	for i, p := range v.parts {
		switch p.kind {
		case partLiteral:
			rendered[i] = Escape(p.text)

		case partList:
			items := make([]string, len(p.items))
			for j, item := range p.items {
				items[j] = Escape(item)
			}

			rendered[i] = strings.Join(items, Escape(p.text))

		case partTemplate:
			rendered[i] = p.text
		}
	}

	// References and templates ending in an unbraced reference need braces
	// when the text that follows could extend the variable name.
	for i := len(v.parts) - 1; i >= 0; i-- {
		p := v.parts[i]

		switch p.kind {
		case partRef:
			if strings.Contains(p.text, ".") || extendsName(rendered[i+1:]) {
				rendered[i] = "${" + p.text + "}"
			} else {
				rendered[i] = "$" + p.text
			}

		case partTemplate:
			if at, ok := trailingRef(p.text); ok && extendsName(rendered[i+1:]) {
				rendered[i] = p.text[:at] + "${" + p.text[at+1:] + "}"
			}
		}
	}

	return strings.Join(rendered, "")
}

// extendsName reports whether the first byte of the rendered text that
// follows a reference could be read as part of the reference's name.
func extendsName(following []string) bool {
	for _, s := range following {
		if s != "" {
			return isSimpleVarByte(s[0])
		}
	}

	return false
}

// trailingRef returns the offset of the "$" of an unbraced reference that
// ends s, if there is one. s must be a valid template.
func trailingRef(s string) (int, bool) {
	at, ok := -1, false

	for i := 0; i < len(s); i++ {
		ok = false

		if s[i] != '$' || i+1 >= len(s) {
			continue
		}

		switch c := s[i+1]; {
		case c == '{':
			if end := strings.IndexByte(s[i:], '}'); end > 0 {
				i += end
			}

		case isSimpleVarByte(c):
			at = i
			for i+1 < len(s) && isSimpleVarByte(s[i+1]) {
				i++
			}

			ok = true

		default:
			i++
		}
	}

	return at, ok
}
